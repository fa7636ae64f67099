package importer

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
)

type ImportApi struct {
	controller *ImportController
	config     *config.Config
}

func NewImportApi(controller *ImportController, config *config.Config) *ImportApi {
	return &ImportApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the import routes
func (h *ImportApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/import/preview", auth, h.controller.PreviewImport)
	app.Post("/api/import", auth, h.controller.RunImport)
	app.Get("/api/import/jobs", auth, h.controller.ListImportJobs)
}
