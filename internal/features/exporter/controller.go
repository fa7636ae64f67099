package exporter

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/middleware"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{Service: service}
}

// ExportTable godoc
// @Summary  Download the caller's records as an XLSX workbook
// @Tags     export
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param    table  path  string  true  "Table name"
// @Success  200  {file}  binary
// @Router   /api/{table}/export [get]
func (ctrl *ExportController) ExportTable(c *fiber.Ctx) error {
	data, filename, err := ctrl.Service.Export(c.UserContext(), c.Params("table"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, ErrInvalidTable) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid table",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Export failed",
			"details": err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
