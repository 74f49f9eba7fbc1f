package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/app/monitoring"
	"github.com/safenest/safenest/pkg/domain/activity"
	"github.com/sirupsen/logrus"
)

const defaultHistoryLimit = 50

type listActivitiesHandler struct {
	logger    *logrus.Logger
	processor monitoring.Processor
}

func NewListActivitiesHandler(logger *logrus.Logger, processor monitoring.Processor) Handler {
	return &listActivitiesHandler{
		logger:    logger,
		processor: processor,
	}
}

func (s *listActivitiesHandler) Handle(c *fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Query("parentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid parent ID"})
	}

	filter, err := parseActivityFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if filter.Limit == 0 {
		filter.Limit = defaultHistoryLimit
	}

	activities, err := s.processor.History(c.Context(), parentID, filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list activities")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list activities"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"activities": activities,
		"count":      len(activities),
	})
}

func parseActivityFilter(c *fiber.Ctx) (activity.Filter, error) {
	filter := activity.Filter{
		ChildName: c.Query("childName"),
		Kind:      c.Query("activityType"),
		Limit:     c.QueryInt("limit"),
		Offset:    c.QueryInt("offset"),
	}

	if raw := c.Query("flagged"); raw != "" {
		flagged := raw == "true"
		filter.Flagged = &flagged
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return activity.Filter{}, fiber.NewError(fiber.StatusBadRequest, "invalid since timestamp")
		}
		filter.Since = since
	}
	if raw := c.Query("until"); raw != "" {
		until, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return activity.Filter{}, fiber.NewError(fiber.StatusBadRequest, "invalid until timestamp")
		}
		filter.Until = until
	}

	return filter, nil
}
