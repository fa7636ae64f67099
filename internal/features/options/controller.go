package options

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/fieldtype"
)

type OptionController struct {
	Service OptionService
}

func NewOptionController(service OptionService) *OptionController {
	return &OptionController{Service: service}
}

// ListOptions godoc
// @Summary  List the option set for a table column
// @Tags     options
// @Produce  json
// @Param    table   path  string  true  "Table name"
// @Param    column  path  string  true  "Column name"
// @Success  200  {array}  fieldtype.Option
// @Router   /api/tables/{table}/options/{column} [get]
func (ctrl *OptionController) ListOptions(c *fiber.Ctx) error {
	opts, err := ctrl.Service.List(c.UserContext(), c.Params("table"), c.Params("column"))
	if err != nil {
		return optionError(c, err)
	}
	if opts == nil {
		opts = []fieldtype.Option{}
	}
	return c.JSON(opts)
}

type saveOptionsRequest struct {
	Options []fieldtype.Option `json:"options"`
}

// SaveOptions godoc
// @Summary  Replace the option set for a table column
// @Tags     options
// @Accept   json
// @Produce  json
// @Param    table   path  string  true  "Table name"
// @Param    column  path  string  true  "Column name"
// @Param    input   body  saveOptionsRequest  true  "Ordered option list"
// @Success  200  {object}  map[string]bool
// @Router   /api/tables/{table}/options/{column} [post]
func (ctrl *OptionController) SaveOptions(c *fiber.Ctx) error {
	var req saveOptionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.Replace(c.UserContext(), c.Params("table"), c.Params("column"), req.Options); err != nil {
		return optionError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type deleteOptionRequest struct {
	OptionID int64 `json:"optionId"`
}

// DeleteOption godoc
// @Summary  Delete one option and its column bindings
// @Tags     options
// @Accept   json
// @Produce  json
// @Router   /api/tables/{table}/options/{column} [delete]
func (ctrl *OptionController) DeleteOption(c *fiber.Ctx) error {
	var req deleteOptionRequest
	if err := c.BodyParser(&req); err != nil || req.OptionID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.Delete(c.UserContext(), req.OptionID); err != nil {
		return optionError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// FieldOptions godoc
// @Summary  Flattened option list for column inference
// @Tags     options
// @Produce  json
// @Param    table   query  string  true  "Table name"
// @Param    column  query  string  true  "Column name"
// @Success  200  {array}  fieldtype.Option
// @Router   /api/field-options [get]
func (ctrl *OptionController) FieldOptions(c *fiber.Ctx) error {
	tableName := c.Query("table")
	column := c.Query("column")
	if tableName == "" || column == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Table and column names are required",
		})
	}

	opts, err := ctrl.Service.List(c.UserContext(), tableName, column)
	if err != nil {
		return optionError(c, err)
	}
	if opts == nil {
		opts = []fieldtype.Option{}
	}
	return c.JSON(opts)
}

func optionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrInvalidTable) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid table",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Failed to process options",
		"details": err.Error(),
	})
}
