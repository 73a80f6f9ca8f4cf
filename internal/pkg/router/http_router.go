package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chapterhub/chapterhub/app/controllers"
)

type HttpRouter struct {
}

// InstallRouter wires the routes the payment provider and load balancer
// reach without credentials.
func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Server-to-server notification endpoint; authenticated by the HMAC
	// signature inside the payload, not by a session or API key.
	app.Post("/payment/callback", controllers.HandlePaymentCallback)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
