package columns

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/fieldtype"
)

type ColumnController struct {
	Service ColumnService
}

func NewColumnController(service ColumnService) *ColumnController {
	return &ColumnController{Service: service}
}

// GetColumns godoc
// @Summary  Raw column metadata for a table
// @Tags     columns
// @Produce  json
// @Param    table  path  string  true  "Table name"
// @Success  200  {array}  fieldtype.ColumnMeta
// @Router   /api/{table}/columns [get]
func (ctrl *ColumnController) GetColumns(c *fiber.Ctx) error {
	metas, err := ctrl.Service.Metadata(c.UserContext(), c.Params("table"))
	if err != nil {
		return columnError(c, err)
	}
	if metas == nil {
		metas = []fieldtype.ColumnMeta{}
	}
	return c.JSON(metas)
}

// GetFormats godoc
// @Summary  Inferred column formats for a table
// @Tags     columns
// @Produce  json
// @Param    table  path  string  true  "Table name"
// @Success  200  {array}  fieldtype.ColumnFormat
// @Router   /api/{table}/columns/formats [get]
func (ctrl *ColumnController) GetFormats(c *fiber.Ctx) error {
	formats, err := ctrl.Service.Formats(c.UserContext(), c.Params("table"))
	if err != nil {
		return columnError(c, err)
	}
	if formats == nil {
		formats = []fieldtype.ColumnFormat{}
	}
	return c.JSON(formats)
}

func columnError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrInvalidTable) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid table",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Failed to fetch columns",
		"details": err.Error(),
	})
}
