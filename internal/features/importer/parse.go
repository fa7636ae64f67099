package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParsedFile is a tabular file reduced to headers and string cells. Rows
// shorter than the header line are padded, longer ones truncated.
type ParsedFile struct {
	Headers []string
	Rows    [][]string
}

// Parse picks the decoder by file extension. CSV parsing is quote-aware:
// quoted fields may contain commas, escaped quotes and newlines.
func Parse(r io.Reader, filename string) (*ParsedFile, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return parseCSV(r)
	case strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xls"):
		return parseExcel(r)
	default:
		return nil, fmt.Errorf("unsupported file format %q", filename)
	}
}

func parseCSV(r io.Reader) (*ParsedFile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, fitRow(rec, len(headers)))
	}
	return &ParsedFile{Headers: headers, Rows: rows}, nil
}

func parseExcel(r io.Reader) (*ParsedFile, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	headers := rows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		data = append(data, fitRow(row, len(headers)))
	}
	return &ParsedFile{Headers: headers, Rows: data}, nil
}

func fitRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
