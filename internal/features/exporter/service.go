// Package exporter writes a user's table to a styled XLSX workbook, using
// the same display formatting the table view shows on screen.
package exporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tablecrm/internal/cell"
	"tablecrm/internal/features/columns"
	"tablecrm/internal/features/record"
	"tablecrm/internal/fieldtype"
	"tablecrm/internal/table"
)

var ErrInvalidTable = errors.New("invalid table")

type ExportService interface {
	Export(ctx context.Context, tableName string, userID int64) ([]byte, string, error)
}

type ExportServiceImpl struct {
	RecordService record.RecordService
	ColumnService columns.ColumnService
}

func NewExportService(recordService record.RecordService, columnService columns.ColumnService) ExportService {
	return &ExportServiceImpl{
		RecordService: recordService,
		ColumnService: columnService,
	}
}

// Export renders the caller's records into one sheet: column labels as a
// bold header row, then each record formatted by its column's display rule
// so dates and currency come out as on screen.
func (s *ExportServiceImpl) Export(ctx context.Context, tableName string, userID int64) ([]byte, string, error) {
	if !table.Valid(tableName) {
		return nil, "", ErrInvalidTable
	}

	formats, err := s.ColumnService.Formats(ctx, tableName)
	if err != nil {
		return nil, "", err
	}
	records, err := s.RecordService.List(ctx, tableName, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Export"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, cf := range formats {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cellName, fieldtype.Label(cf.DBColumn))
		f.SetCellStyle(sheetName, cellName, cellName, headerStyle)
	}

	for rowIdx, rec := range records {
		for colIdx, cf := range formats {
			cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cellName, cell.Display(cf, rec[cf.Key]).Text)
		}
	}

	for i := range formats {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("%s.xlsx", tableName), nil
}
