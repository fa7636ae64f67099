package options

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
)

type OptionApi struct {
	controller *OptionController
	config     *config.Config
}

func NewOptionApi(controller *OptionController, config *config.Config) *OptionApi {
	return &OptionApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the option-set routes
func (h *OptionApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	tables := app.Group("/api/tables", auth)
	tables.Get("/:table/options/:column", h.controller.ListOptions)
	tables.Post("/:table/options/:column", h.controller.SaveOptions)
	tables.Delete("/:table/options/:column", h.controller.DeleteOption)

	app.Get("/api/field-options", auth, h.controller.FieldOptions)
}
