package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/notification"
	"github.com/sirupsen/logrus"
)

type markNotificationReadRequest struct {
	ParentID string `json:"parentId"`
}

type markNotificationReadHandler struct {
	logger *logrus.Logger
	repo   notification.Repository
}

func NewMarkNotificationReadHandler(logger *logrus.Logger, repo notification.Repository) Handler {
	return &markNotificationReadHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *markNotificationReadHandler) Handle(c *fiber.Ctx) error {
	notificationID, err := uuid.Parse(c.Params("notification_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification ID"})
	}

	var req markNotificationReadRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind mark-read request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	parentID, err := uuid.Parse(req.ParentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid parent ID"})
	}

	if err := s.repo.MarkRead(c.Context(), notificationID, parentID); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "notification not found"})
		}
		s.logger.WithError(err).WithField("notification_id", notificationID).Error("failed to mark notification read")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to mark notification read"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "read"})
}
