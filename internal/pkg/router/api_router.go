package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/chapterhub/chapterhub/app/controllers"
	"github.com/chapterhub/chapterhub/internal/pkg/middleware"
)

type ApiRouter struct {
}

// InstallRouter registers the internal admin API. Everything under
// /api/internal needs the shared API key.
func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	internal := api.Group("/internal", middleware.InternalAPIKeyMiddleware())

	internal.Get("/members/:id", controllers.HandleGetMember)
	internal.Post("/members/:id/score/recompute", controllers.HandleMemberScoreRecompute)

	internal.Get("/champions", controllers.HandleListChampions)
	internal.Post("/champions/compute", controllers.HandleChampionsCompute)

	internal.Post("/reminders/scan", controllers.HandleRemindersScan)

	internal.Post("/payments/intents", controllers.HandleCreatePaymentIntent)

	internal.Get("/statistics", controllers.HandleGetStatistics)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
