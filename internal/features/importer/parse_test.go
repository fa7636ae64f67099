package importer

import (
	"strings"
	"testing"
)

func TestParseCSVQuoting(t *testing.T) {
	csvData := "Name,Notes,Amount\n" +
		"\"Acme, Inc.\",\"said \"\"hello\"\"\",1200\n" +
		"\"Multi\nline\",plain,3\n"

	parsed, err := Parse(strings.NewReader(csvData), "upload.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Headers) != 3 || parsed.Headers[0] != "Name" {
		t.Fatalf("headers = %v", parsed.Headers)
	}
	if len(parsed.Rows) != 2 {
		t.Fatalf("got %d rows", len(parsed.Rows))
	}
	if parsed.Rows[0][0] != "Acme, Inc." {
		t.Errorf("quoted comma: got %q", parsed.Rows[0][0])
	}
	if parsed.Rows[0][1] != `said "hello"` {
		t.Errorf("escaped quotes: got %q", parsed.Rows[0][1])
	}
	if parsed.Rows[1][0] != "Multi\nline" {
		t.Errorf("quoted newline: got %q", parsed.Rows[1][0])
	}
}

func TestParseCSVPadsShortRows(t *testing.T) {
	parsed, err := Parse(strings.NewReader("a,b,c\n1,2\n1,2,3,4\n"), "x.csv")
	if err != nil {
		t.Fatal(err)
	}
	for i, row := range parsed.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has width %d", i, len(row))
		}
	}
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	if _, err := Parse(strings.NewReader("x"), "upload.pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestMapRowsDropsUnmappedColumns(t *testing.T) {
	parsed := &ParsedFile{
		Headers: []string{"Full Name", "E-Mail", "Internal Ref"},
		Rows: [][]string{
			{"Ada", "ada@example.com", "X-1"},
			{"", "", "X-2"},
			{"Bob", "", "X-3"},
		},
	}
	mapping := map[string]string{
		"Full Name": "name",
		"E-Mail":    "email",
		// Internal Ref intentionally unmapped.
	}

	rows := MapRows(parsed, mapping)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (empty-mapped row dropped)", len(rows))
	}
	if rows[0]["name"] != "Ada" || rows[0]["email"] != "ada@example.com" {
		t.Errorf("row 0 = %v", rows[0])
	}
	for i, row := range rows {
		if _, ok := row["Internal Ref"]; ok {
			t.Errorf("row %d kept an unmapped column", i)
		}
		if _, ok := row["internalRef"]; ok {
			t.Errorf("row %d kept an unmapped column", i)
		}
	}
	// Empty cells never become empty-string fields.
	if _, ok := rows[1]["email"]; ok {
		t.Errorf("empty cell mapped: %v", rows[1])
	}
}
