package table

import (
	"reflect"
	"testing"
	"time"

	"tablecrm/internal/fieldtype"
)

func numFormats() map[string]fieldtype.ColumnFormat {
	return map[string]fieldtype.ColumnFormat{
		"a":      {Key: "a", DBColumn: "a", Config: fieldtype.NumberConfig("A")},
		"b":      {Key: "b", DBColumn: "b", Config: fieldtype.TextConfig("B")},
		"amount": {Key: "amount", DBColumn: "amount", Config: fieldtype.CurrencyConfig("Amount")},
		"due":    {Key: "due", DBColumn: "due", Config: fieldtype.DateConfig("Due", false)},
	}
}

func TestSortChainStability(t *testing.T) {
	rows := []map[string]any{
		{"a": 2.0, "b": "z"},
		{"a": 1.0, "b": "y"},
		{"a": 1.0, "b": "x"},
	}

	Sort(rows, []SortKey{{Key: "a"}, {Key: "b"}}, numFormats())

	want := []string{"x", "y", "z"}
	for i, w := range want {
		if rows[i]["b"] != w {
			t.Fatalf("row %d b = %v, want %v", i, rows[i]["b"], w)
		}
	}
}

func TestSortEqualKeysKeepOrder(t *testing.T) {
	rows := []map[string]any{
		{"a": 1.0, "b": "first"},
		{"a": 1.0, "b": "second"},
	}
	Sort(rows, []SortKey{{Key: "a"}}, numFormats())
	if rows[0]["b"] != "first" || rows[1]["b"] != "second" {
		t.Error("stable sort must keep insertion order for equal keys")
	}
}

func TestSortNumericVsLexicographic(t *testing.T) {
	rows := []map[string]any{
		{"amount": "100"},
		{"amount": "20"},
		{"amount": 3.0},
	}
	Sort(rows, []SortKey{{Key: "amount"}}, numFormats())
	want := []any{3.0, "20", "100"}
	for i, w := range want {
		if rows[i]["amount"] != w {
			t.Fatalf("amounts sorted %v, want %v at %d", rows[i]["amount"], w, i)
		}
	}
}

func TestSortInstants(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []map[string]any{
		{"due": t2},
		{"due": "2025-03-01"},
		{"due": t1},
	}
	Sort(rows, []SortKey{{Key: "due", Desc: true}}, numFormats())
	if !rows[0]["due"].(time.Time).Equal(t2) {
		t.Errorf("first = %v", rows[0]["due"])
	}
	if !rows[2]["due"].(time.Time).Equal(t1) {
		t.Errorf("last = %v", rows[2]["due"])
	}
}

func TestSortNilsNeverPanicAndGoLast(t *testing.T) {
	rows := []map[string]any{
		{"a": nil},
		{"a": 2.0},
		{"a": 1.0},
		{},
	}
	Sort(rows, []SortKey{{Key: "a"}}, numFormats())
	if rows[0]["a"] != 1.0 || rows[1]["a"] != 2.0 {
		t.Errorf("non-nil values first: %v", rows)
	}
	if rows[2]["a"] != nil || rows[3]["a"] != nil {
		t.Errorf("nil values last: %v", rows)
	}
}

func TestCycle(t *testing.T) {
	var chain []SortKey

	chain = Cycle(chain, "name")
	if !reflect.DeepEqual(chain, []SortKey{{Key: "name"}}) {
		t.Fatalf("after first click: %+v", chain)
	}

	chain = Cycle(chain, "name")
	if !reflect.DeepEqual(chain, []SortKey{{Key: "name", Desc: true}}) {
		t.Fatalf("after second click: %+v", chain)
	}

	chain = Cycle(chain, "name")
	if chain != nil {
		t.Fatalf("after third click: %+v", chain)
	}

	// Clicking a different header discards the active multi-key chain.
	chain = []SortKey{{Key: "a"}, {Key: "b", Desc: true}}
	chain = Cycle(chain, "name")
	if !reflect.DeepEqual(chain, []SortKey{{Key: "name"}}) {
		t.Fatalf("click on new column: %+v", chain)
	}
}

func TestParseSortParam(t *testing.T) {
	got := ParseSortParam("name:asc, amount:desc ,status")
	want := []SortKey{{Key: "name"}, {Key: "amount", Desc: true}, {Key: "status"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v", got)
	}
	if ParseSortParam("") != nil {
		t.Error("empty param should parse to nil")
	}
}
