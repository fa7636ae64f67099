package auth

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) *AuthApi {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all auth-related routes
func (h *AuthApi) Setup(app *fiber.App) {
	// Public routes
	app.Post("/api/auth/signup", h.controller.Signup)
	app.Post("/api/auth/login", h.controller.Login)
	app.Post("/api/auth/logout", h.controller.Logout)

	app.Get("/api/auth/user", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.CurrentUser)
}
