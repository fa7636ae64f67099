package record

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
)

type RecordApi struct {
	controller *RecordController
	config     *config.Config
}

func NewRecordApi(controller *RecordController, config *config.Config) *RecordApi {
	return &RecordApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the generic record routes. The wildcard handlers pass
// reserved segments through to later routes, so registration order within
// this group only matters for the literal subpaths (view, count, reorder,
// batch) which must precede the :id routes.
func (h *RecordApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Get("/api/:table/view", auth, h.controller.ViewRecords)
	app.Get("/api/:table/count", auth, h.controller.CountRecords)
	app.Post("/api/:table/reorder", auth, h.controller.ReorderRecords)
	app.Post("/api/:table/batch", auth, h.controller.BatchCreateRecords)
	app.Get("/api/:table/:id/edit/:key", auth, h.controller.EditCell)

	app.Get("/api/:table", auth, h.controller.ListRecords)
	app.Post("/api/:table", auth, h.controller.CreateRecord)
	app.Patch("/api/:table/:id", auth, h.controller.UpdateRecord)
	app.Delete("/api/:table/:id", auth, h.controller.DeleteRecord)
}
