package record

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/middleware"
	"tablecrm/internal/table"
)

// reservedTables are path segments under /api/ that belong to other route
// groups; the wildcard record handlers pass them along untouched.
var reservedTables = map[string]bool{
	"tables":        true,
	"field-options": true,
	"auth":          true,
	"email":         true,
	"reminders":     true,
	"import":        true,
}

type RecordController struct {
	Service RecordService
}

func NewRecordController(service RecordService) *RecordController {
	return &RecordController{Service: service}
}

type reorderRequest struct {
	FromID int64 `json:"fromId"`
	ToID   int64 `json:"toId"`
}

type batchRequest struct {
	Data []map[string]any `json:"data"`
}

// ListRecords godoc
// @Summary  List the caller's records, newest first
// @Tags     records
// @Produce  json
// @Param    table  path  string  true  "Table name"
// @Success  200  {array}  map[string]any
// @Router   /api/{table} [get]
func (ctrl *RecordController) ListRecords(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}
	records, err := ctrl.Service.List(c.UserContext(), tableName, middleware.UserID(c))
	if err != nil {
		return recordError(c, err)
	}
	if records == nil {
		records = []map[string]any{}
	}
	return c.JSON(records)
}

// ViewRecords godoc
// @Summary  Searched and sorted view of the caller's records
// @Tags     records
// @Produce  json
// @Param    table  path   string  true   "Table name"
// @Param    q      query  string  false  "Case-insensitive search query"
// @Param    sort   query  string  false  "Sort keys, e.g. name:asc,amount:desc"
// @Success  200  {array}  map[string]any
// @Router   /api/{table}/view [get]
func (ctrl *RecordController) ViewRecords(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}
	records, err := ctrl.Service.View(c.UserContext(), tableName, middleware.UserID(c),
		c.Query("q"), c.Query("sort"))
	if err != nil {
		return recordError(c, err)
	}
	if records == nil {
		records = []map[string]any{}
	}
	return c.JSON(records)
}

// CountRecords godoc
// @Summary  Number of records the caller owns in a table
// @Tags     records
// @Produce  json
// @Param    table  path  string  true  "Table name"
// @Success  200  {object}  map[string]int64
// @Router   /api/{table}/count [get]
func (ctrl *RecordController) CountRecords(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}
	n, err := ctrl.Service.Count(c.UserContext(), tableName, middleware.UserID(c))
	if err != nil {
		return recordError(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}

// CreateRecord godoc
// @Summary  Create a record
// @Tags     records
// @Accept   json
// @Produce  json
// @Param    table  path  string          true  "Table name"
// @Param    body   body  map[string]any  true  "Record fields"
// @Success  201  {object}  map[string]any
// @Router   /api/{table} [post]
func (ctrl *RecordController) CreateRecord(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}

	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	created, err := ctrl.Service.Create(c.UserContext(), tableName, middleware.UserID(c), data)
	if err != nil {
		return recordError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateRecord godoc
// @Summary  Partially update an owned record
// @Tags     records
// @Accept   json
// @Produce  json
// @Param    table  path  string          true  "Table name"
// @Param    id     path  int             true  "Record id"
// @Param    body   body  map[string]any  true  "Changed fields"
// @Success  200  {object}  map[string]any
// @Router   /api/{table}/{id} [patch]
func (ctrl *RecordController) UpdateRecord(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}
	id, ok := recordIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid record id",
		})
	}

	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updated, err := ctrl.Service.Update(c.UserContext(), tableName, id, middleware.UserID(c), data)
	if err != nil {
		return recordError(c, err)
	}
	return c.JSON(updated)
}

// DeleteRecord godoc
// @Summary  Delete an owned record
// @Tags     records
// @Produce  json
// @Param    table  path  string  true  "Table name"
// @Param    id     path  int     true  "Record id"
// @Success  200  {object}  map[string]bool
// @Router   /api/{table}/{id} [delete]
func (ctrl *RecordController) DeleteRecord(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}
	id, ok := recordIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid record id",
		})
	}

	if err := ctrl.Service.Delete(c.UserContext(), tableName, id, middleware.UserID(c)); err != nil {
		return recordError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ReorderRecords godoc
// @Summary  Move a record by swapping creation timestamps
// @Tags     records
// @Accept   json
// @Produce  json
// @Param    table  path  string          true  "Table name"
// @Param    body   body  reorderRequest  true  "Ids of the rows to swap"
// @Success  200  {object}  map[string]string
// @Router   /api/{table}/reorder [post]
func (ctrl *RecordController) ReorderRecords(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.FromID == 0 || req.ToID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "fromId and toId are required",
		})
	}

	if err := ctrl.Service.Reorder(c.UserContext(), tableName, req.FromID, req.ToID, middleware.UserID(c)); err != nil {
		return recordError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Records reordered"})
}

// BatchCreateRecords godoc
// @Summary  Insert many records in one transaction
// @Tags     records
// @Accept   json
// @Produce  json
// @Param    table  path  string        true  "Table name"
// @Param    body   body  batchRequest  true  "Rows to insert"
// @Success  201  {object}  map[string]int
// @Router   /api/{table}/batch [post]
func (ctrl *RecordController) BatchCreateRecords(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}

	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "data must not be empty",
		})
	}

	created, err := ctrl.Service.Batch(c.UserContext(), tableName, middleware.UserID(c), req.Data)
	if err != nil {
		return recordError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"created": created})
}

// EditCell godoc
// @Summary  Editing control for one cell of an owned record
// @Tags     records
// @Produce  json
// @Param    table  path  string  true  "Table name"
// @Param    id     path  int     true  "Record id"
// @Param    key    path  string  true  "Field key"
// @Success  200  {object}  cell.EditInput
// @Router   /api/{table}/{id}/edit/{key} [get]
func (ctrl *RecordController) EditCell(c *fiber.Ctx) error {
	tableName, ok := ctrl.tableParam(c)
	if !ok {
		return c.Next()
	}
	id, ok := recordIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid record id",
		})
	}

	input, err := ctrl.Service.CellEdit(c.UserContext(), tableName, id, middleware.UserID(c), c.Params("key"))
	if err != nil {
		return recordError(c, err)
	}
	return c.JSON(input)
}

// tableParam resolves the wildcard segment. Reserved segments are handed
// back to the router; anything else is treated as a table name and the
// service rejects the unknown ones.
func (ctrl *RecordController) tableParam(c *fiber.Ctx) (string, bool) {
	tableName := c.Params("table")
	if reservedTables[tableName] {
		return "", false
	}
	return tableName, true
}

func recordIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func recordError(c *fiber.Ctx, err error) error {
	var verr *table.ValidationError
	switch {
	case errors.Is(err, ErrInvalidTable):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid table",
		})
	case errors.As(err, &verr):
		// Keeps batch row prefixes ("row 3: amount must be a valid number").
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Record not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Operation failed",
			"details": err.Error(),
		})
	}
}
