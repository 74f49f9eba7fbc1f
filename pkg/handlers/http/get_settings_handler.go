package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/app/settings"
	"github.com/sirupsen/logrus"
)

type getSettingsHandler struct {
	logger *logrus.Logger
	finder settings.Finder
}

func NewGetSettingsHandler(logger *logrus.Logger, finder settings.Finder) Handler {
	return &getSettingsHandler{
		logger: logger,
		finder: finder,
	}
}

func (s *getSettingsHandler) Handle(c *fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Params("parent_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid parent ID"})
	}

	entity, err := s.finder.Find(c.Context(), parentID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch parent settings")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "parent not found"})
	}

	return c.Status(fiber.StatusOK).JSON(entity.Settings)
}
