package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/app/monitoring"
	"github.com/sirupsen/logrus"
)

type updateDurationRequest struct {
	DurationSeconds int `json:"duration"`
}

type updateDurationHandler struct {
	logger    *logrus.Logger
	processor monitoring.Processor
}

func NewUpdateDurationHandler(logger *logrus.Logger, processor monitoring.Processor) Handler {
	return &updateDurationHandler{
		logger:    logger,
		processor: processor,
	}
}

func (s *updateDurationHandler) Handle(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("activity_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid activity ID"})
	}

	var req updateDurationRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind duration request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := s.processor.UpdateDuration(c.Context(), activityID, req.DurationSeconds); err != nil {
		s.logger.WithError(err).WithField("activity_id", activityID).Error("failed to update duration")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "updated"})
}
