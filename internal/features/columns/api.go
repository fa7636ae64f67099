package columns

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
)

type ColumnApi struct {
	controller *ColumnController
	config     *config.Config
}

func NewColumnApi(controller *ColumnController, config *config.Config) *ColumnApi {
	return &ColumnApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the column metadata routes
func (h *ColumnApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Get("/api/:table/columns", auth, h.controller.GetColumns)
	app.Get("/api/:table/columns/formats", auth, h.controller.GetFormats)
}
