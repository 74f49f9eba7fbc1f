package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/app/settings"
	"github.com/safenest/safenest/pkg/domain/parent"
	"github.com/sirupsen/logrus"
)

// updateSettingsRequest carries only the fields the caller wants to change.
// Pointer fields distinguish an absent key from an explicit zero, so a
// partial body never resets thresholds or switches the caller did not send.
type updateSettingsRequest struct {
	ViolenceThreshold      *float64 `json:"violenceThreshold"`
	InappropriateThreshold *float64 `json:"inappropriateThreshold"`
	AdultContentThreshold  *float64 `json:"adultContentThreshold"`
	NotificationsEnabled   *bool    `json:"notificationsEnabled"`
	MonitoringEnabled      *bool    `json:"monitoringEnabled"`
}

func (r updateSettingsRequest) applyTo(current parent.Settings) parent.Settings {
	if r.ViolenceThreshold != nil {
		current.ViolenceThreshold = *r.ViolenceThreshold
	}
	if r.InappropriateThreshold != nil {
		current.InappropriateThreshold = *r.InappropriateThreshold
	}
	if r.AdultContentThreshold != nil {
		current.AdultContentThreshold = *r.AdultContentThreshold
	}
	if r.NotificationsEnabled != nil {
		current.NotificationsEnabled = *r.NotificationsEnabled
	}
	if r.MonitoringEnabled != nil {
		current.MonitoringEnabled = *r.MonitoringEnabled
	}
	return current
}

type updateSettingsHandler struct {
	logger  *logrus.Logger
	finder  settings.Finder
	updater settings.Updater
}

func NewUpdateSettingsHandler(logger *logrus.Logger, finder settings.Finder, updater settings.Updater) Handler {
	return &updateSettingsHandler{
		logger:  logger,
		finder:  finder,
		updater: updater,
	}
}

func (s *updateSettingsHandler) Handle(c *fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Params("parent_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid parent ID"})
	}

	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind settings request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	entity, err := s.finder.Find(c.Context(), parentID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch parent for settings update")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "parent not found"})
	}

	merged := req.applyTo(entity.Settings)

	if err := s.updater.Update(c.Context(), parentID, merged); err != nil {
		s.logger.WithError(err).WithField("parent_id", parentID).Error("failed to update settings")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(merged)
}
