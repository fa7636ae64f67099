package email

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
)

type EmailApi struct {
	controller *EmailController
	config     *config.Config
}

func NewEmailApi(controller *EmailController, config *config.Config) *EmailApi {
	return &EmailApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the email routes
func (h *EmailApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/email/send", auth, h.controller.SendEmail)
	app.Post("/api/email/mass", auth, h.controller.MassSendEmail)
	app.Get("/api/email/history", auth, h.controller.EmailHistory)
}
