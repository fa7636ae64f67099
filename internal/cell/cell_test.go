package cell

import (
	"testing"
	"time"

	"tablecrm/internal/fieldtype"
)

func optionFormat() fieldtype.ColumnFormat {
	return fieldtype.ColumnFormat{
		Key:      "status",
		DBColumn: "status",
		Config: fieldtype.OptionConfig("Status", []fieldtype.Option{
			{Value: "Active", Label: "Active", Color: "#22c55e"},
			{Value: "Inactive", Label: "Inactive", Color: "#6b7280"},
		}),
	}
}

func TestDisplayOption(t *testing.T) {
	cf := optionFormat()

	matched := Display(cf, "Active")
	if !matched.Pill || matched.Text != "Active" || matched.Color != "#22c55e" {
		t.Errorf("matched option rendered wrong: %+v", matched)
	}

	unmatched := Display(cf, "Archived")
	if unmatched.Pill || unmatched.Text != "Archived" || unmatched.Color != "" {
		t.Errorf("unmatched option should render raw: %+v", unmatched)
	}
}

func TestDisplayDate(t *testing.T) {
	cf := fieldtype.ColumnFormat{Key: "dueDate", DBColumn: "due_date", Config: fieldtype.DateConfig("Due Date", false)}

	got := Display(cf, time.Date(2025, 3, 9, 14, 0, 0, 0, time.UTC))
	if got.Text != "03/09/2025" {
		t.Errorf("date text = %q", got.Text)
	}

	if got := Display(cf, "2025-03-09"); got.Text != "03/09/2025" {
		t.Errorf("string date text = %q", got.Text)
	}

	if got := Display(cf, nil); got.Text != "" {
		t.Errorf("nil date text = %q", got.Text)
	}
}

func TestDisplayCurrency(t *testing.T) {
	cf := fieldtype.ColumnFormat{Key: "amount", DBColumn: "amount", Config: fieldtype.CurrencyConfig("Amount")}

	tests := []struct {
		in   any
		want string
	}{
		{1234.5, "$1,234.50"},
		{0.0, "$0.00"},
		{99.999, "$100.00"},
	}
	for _, tt := range tests {
		if got := Display(cf, tt.in); got.Text != tt.want {
			t.Errorf("Display(%v) = %q, want %q", tt.in, got.Text, tt.want)
		}
	}
}

func TestEditWidgets(t *testing.T) {
	tests := []struct {
		cfg        fieldtype.Config
		wantWidget string
		wantInput  string
	}{
		{fieldtype.TextConfig("Name"), "input", "text"},
		{fieldtype.EmailConfig("Email"), "input", "email"},
		{fieldtype.PhoneConfig("Phone"), "input", "tel"},
		{fieldtype.URLConfig("Site"), "input", "url"},
		{fieldtype.LongTextConfig("Description"), "textarea", ""},
		{fieldtype.NumberConfig("Qty"), "number", ""},
		{fieldtype.CurrencyConfig("Amount"), "number", ""},
		{fieldtype.DateConfig("Due", false), "date", ""},
	}

	for _, tt := range tests {
		in := Edit(fieldtype.ColumnFormat{Config: tt.cfg}, nil)
		if in.Widget != tt.wantWidget || in.InputType != tt.wantInput {
			t.Errorf("%s: widget=%s inputType=%s, want %s/%s",
				tt.cfg.Type, in.Widget, in.InputType, tt.wantWidget, tt.wantInput)
		}
	}
}

func TestEditOptionHasEmptySentinel(t *testing.T) {
	in := Edit(optionFormat(), "Active")
	if in.Widget != "select" {
		t.Fatalf("widget = %s", in.Widget)
	}
	if len(in.Options) != 3 || in.Options[0].Value != "" {
		t.Errorf("options should lead with empty sentinel: %+v", in.Options)
	}
	if in.Value != "Active" {
		t.Errorf("value = %q", in.Value)
	}
}

func TestNormalize(t *testing.T) {
	date := fieldtype.ColumnFormat{Key: "dueDate", Config: fieldtype.DateConfig("Due", false)}
	amount := fieldtype.ColumnFormat{Key: "amount", Config: fieldtype.CurrencyConfig("Amount")}
	text := fieldtype.ColumnFormat{Key: "name", Config: fieldtype.TextConfig("Name")}

	got, err := Normalize(date, "2025-03-09")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2025-03-09T00:00:00Z" {
		t.Errorf("date normalized to %v", got)
	}

	if got, err := Normalize(date, ""); err != nil || got != nil {
		t.Errorf("empty date = %v, %v", got, err)
	}

	if _, err := Normalize(date, "not-a-date"); err == nil {
		t.Error("want error for unparseable date")
	}

	if got, err := Normalize(amount, "12.50"); err != nil || got != 12.5 {
		t.Errorf("amount = %v, %v", got, err)
	}

	if _, err := Normalize(amount, "twelve"); err == nil {
		t.Error("want error for non-numeric amount")
	}

	if got, err := Normalize(text, "  keep as is "); err != nil || got != "  keep as is " {
		t.Errorf("text should pass through raw, got %v", got)
	}
}
