package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Activities
	ReportActivityHandler Handler
	ListActivitiesHandler Handler
	ActivityStatsHandler  Handler
	UpdateDurationHandler Handler

	// Settings
	GetSettingsHandler    Handler
	UpdateSettingsHandler Handler

	// Notifications
	ListNotificationsHandler    Handler
	MarkNotificationReadHandler Handler
}
