package importer

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/middleware"
)

type ImportController struct {
	Service ImportService
}

func NewImportController(service ImportService) *ImportController {
	return &ImportController{Service: service}
}

// PreviewImport godoc
// @Summary  Parse an uploaded file and preview its rows
// @Tags     import
// @Accept   multipart/form-data
// @Produce  json
// @Param    file   formData  file    true  "CSV or XLSX file"
// @Param    table  formData  string  true  "Target table"
// @Success  200  {object}  Preview
// @Router   /api/import/preview [post]
func (ctrl *ImportController) PreviewImport(c *fiber.Ctx) error {
	tableName := c.FormValue("table")
	if tableName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "table is required",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer file.Close()

	preview, err := ctrl.Service.Preview(c.UserContext(), file, fileHeader.Filename, tableName)
	if err != nil {
		return importError(c, err)
	}
	return c.JSON(preview)
}

// RunImport godoc
// @Summary  Import a mapped file into a table
// @Tags     import
// @Accept   multipart/form-data
// @Produce  json
// @Param    file     formData  file    true  "CSV or XLSX file"
// @Param    table    formData  string  true  "Target table"
// @Param    mapping  formData  string  true  "JSON object mapping file headers to field keys"
// @Success  201  {object}  Job
// @Router   /api/import [post]
func (ctrl *ImportController) RunImport(c *fiber.Ctx) error {
	tableName := c.FormValue("table")
	mappingJSON := c.FormValue("mapping")
	if tableName == "" || mappingJSON == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "table and mapping are required",
		})
	}

	var mapping map[string]string
	if err := json.Unmarshal([]byte(mappingJSON), &mapping); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mapping JSON",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer file.Close()

	job, err := ctrl.Service.Import(c.UserContext(), file, fileHeader.Filename, tableName, mapping, middleware.UserID(c))
	if err != nil {
		return importError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// ListImportJobs godoc
// @Summary  The caller's recent import runs
// @Tags     import
// @Produce  json
// @Success  200  {array}  Job
// @Router   /api/import/jobs [get]
func (ctrl *ImportController) ListImportJobs(c *fiber.Ctx) error {
	jobs, err := ctrl.Service.Jobs(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to list import jobs",
			"details": err.Error(),
		})
	}
	if jobs == nil {
		jobs = []Job{}
	}
	return c.JSON(jobs)
}

func importError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrInvalidTable) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid table",
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Import failed",
		"details": err.Error(),
	})
}
