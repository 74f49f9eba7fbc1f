package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/app/monitoring"
	"github.com/sirupsen/logrus"
)

type reportActivityRequest struct {
	ParentID           string    `json:"parentId"`
	ChildName          string    `json:"childName"`
	DeviceID           string    `json:"deviceId"`
	Kind               string    `json:"activityType"`
	ContentTitle       string    `json:"contentTitle"`
	ContentDescription string    `json:"contentDescription"`
	AppName            string    `json:"appName"`
	URL                string    `json:"url"`
	Screenshot         string    `json:"screenshot"`
	DurationSeconds    int       `json:"duration"`
	ObservedAt         time.Time `json:"timestamp"`
}

type reportActivityHandler struct {
	logger    *logrus.Logger
	processor monitoring.Processor
}

func NewReportActivityHandler(logger *logrus.Logger, processor monitoring.Processor) Handler {
	return &reportActivityHandler{
		logger:    logger,
		processor: processor,
	}
}

func (s *reportActivityHandler) Handle(c *fiber.Ctx) error {
	var req reportActivityRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind activity request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	parentID, err := uuid.Parse(req.ParentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid parent ID"})
	}

	entity, err := s.processor.ProcessActivity(c.Context(), monitoring.Submission{
		ParentID:           parentID,
		ChildName:          req.ChildName,
		DeviceID:           req.DeviceID,
		Kind:               req.Kind,
		ContentTitle:       req.ContentTitle,
		ContentDescription: req.ContentDescription,
		AppName:            req.AppName,
		URL:                req.URL,
		Screenshot:         req.Screenshot,
		DurationSeconds:    req.DurationSeconds,
		ObservedAt:         req.ObservedAt,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to process activity")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
