package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/notification"
	"github.com/sirupsen/logrus"
)

const defaultNotificationLimit = 50

type listNotificationsHandler struct {
	logger *logrus.Logger
	repo   notification.Repository
}

func NewListNotificationsHandler(logger *logrus.Logger, repo notification.Repository) Handler {
	return &listNotificationsHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *listNotificationsHandler) Handle(c *fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Params("parent_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid parent ID"})
	}

	limit := c.QueryInt("limit", defaultNotificationLimit)

	notifications, err := s.repo.ListUnread(c.Context(), parentID, limit)
	if err != nil {
		s.logger.WithError(err).Error("failed to list notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list notifications"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}
