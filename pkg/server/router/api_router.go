package router

import (
	"github.com/gofiber/fiber/v2"
	handlers "github.com/safenest/safenest/pkg/handlers/http"
)

type apiRouter struct {
	handlerTransport handlers.HandlerTransport
}

func NewApiRouter(handlerTransport handlers.HandlerTransport) ServerRouter {
	return &apiRouter{
		handlerTransport: handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	v1 := router.Group("/api/v1")
	{
		activities := v1.Group("/activities")
		{
			activities.Post("", r.handlerTransport.ReportActivityHandler.Handle)
			activities.Get("", r.handlerTransport.ListActivitiesHandler.Handle)
			activities.Get("/stats", r.handlerTransport.ActivityStatsHandler.Handle)
			activities.Patch("/:activity_id/duration", r.handlerTransport.UpdateDurationHandler.Handle)
		}

		parents := v1.Group("/parents/:parent_id")
		{
			parents.Get("/settings", r.handlerTransport.GetSettingsHandler.Handle)
			parents.Put("/settings", r.handlerTransport.UpdateSettingsHandler.Handle)
			parents.Get("/notifications", r.handlerTransport.ListNotificationsHandler.Handle)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.Post("/:notification_id/read", r.handlerTransport.MarkNotificationReadHandler.Handle)
		}
	}
	return nil
}
