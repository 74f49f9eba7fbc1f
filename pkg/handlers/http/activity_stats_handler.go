package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/app/monitoring"
	"github.com/sirupsen/logrus"
)

type activityStatsHandler struct {
	logger    *logrus.Logger
	processor monitoring.Processor
}

func NewActivityStatsHandler(logger *logrus.Logger, processor monitoring.Processor) Handler {
	return &activityStatsHandler{
		logger:    logger,
		processor: processor,
	}
}

func (s *activityStatsHandler) Handle(c *fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Query("parentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid parent ID"})
	}

	filter, err := parseActivityFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := s.processor.Stats(c.Context(), parentID, filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to compute activity stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute activity stats"})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
