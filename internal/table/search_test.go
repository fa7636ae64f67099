package table

import "testing"

func sampleRows() []map[string]any {
	return []map[string]any{
		{"name": "Acme Corp", "email": "hello@acme.test", "status": "Active"},
		{"name": "Beta LLC", "email": "ops@beta.test", "status": "Pending"},
		{"name": "Gamma Inc", "email": nil, "status": "Active"},
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	rows := sampleRows()
	got := Search(rows, "", []string{"name"})
	if len(got) != len(rows) {
		t.Fatalf("got %d rows", len(got))
	}
	for i := range rows {
		if got[i]["name"] != rows[i]["name"] {
			t.Error("order must be preserved")
		}
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	got := Search(sampleRows(), "active", []string{"status"})
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
}

func TestSearchNoMatch(t *testing.T) {
	got := Search(sampleRows(), "zzz", []string{"name", "email", "status"})
	if len(got) != 0 {
		t.Fatalf("got %d rows, want 0", len(got))
	}
}

func TestSearchOrAcrossFields(t *testing.T) {
	got := Search(sampleRows(), "beta", []string{"name", "email"})
	if len(got) != 1 || got[0]["name"] != "Beta LLC" {
		t.Fatalf("got %v", got)
	}
}

func TestSearchSkipsNilValues(t *testing.T) {
	got := Search(sampleRows(), "gamma", []string{"email", "name"})
	if len(got) != 1 || got[0]["name"] != "Gamma Inc" {
		t.Fatalf("got %v", got)
	}
}

func TestSearchFieldsPerTable(t *testing.T) {
	tests := []struct {
		table string
		want  []string
	}{
		{"tasks", []string{"title", "description", "status", "priority"}},
		{"customers", []string{"name", "email", "phone", "status"}},
		{"leads", []string{"name", "email", "phone", "status"}},
		{"finances", []string{"description", "type", "tag", "amount"}},
	}
	for _, tt := range tests {
		cfg, ok := Get(tt.table)
		if !ok {
			t.Fatalf("table %s missing", tt.table)
		}
		if len(cfg.SearchFields) != len(tt.want) {
			t.Fatalf("%s search fields = %v", tt.table, cfg.SearchFields)
		}
		for i, f := range tt.want {
			if cfg.SearchFields[i] != f {
				t.Errorf("%s search fields = %v, want %v", tt.table, cfg.SearchFields, tt.want)
			}
		}
	}
}
