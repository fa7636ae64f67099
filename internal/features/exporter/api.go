package exporter

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
)

type ExportApi struct {
	controller *ExportController
	config     *config.Config
}

func NewExportApi(controller *ExportController, config *config.Config) *ExportApi {
	return &ExportApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the export route
func (h *ExportApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Get("/api/:table/export", auth, h.controller.ExportTable)
}
