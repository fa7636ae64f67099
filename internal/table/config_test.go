package table

import (
	"errors"
	"testing"
	"time"
)

func TestProcessDataDefaults(t *testing.T) {
	out, err := ProcessData("tasks", map[string]any{"title": "Call back"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if out["status"] != "To Do" {
		t.Errorf("status = %v", out["status"])
	}
	if out["priority"] != "Medium" {
		t.Errorf("priority = %v", out["priority"])
	}

	// Explicit values are never overwritten.
	out, err = ProcessData("tasks", map[string]any{"status": "Done"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if out["status"] != "Done" {
		t.Errorf("status = %v", out["status"])
	}

	// Updates do not backfill defaults.
	out, err = ProcessData("leads", map[string]any{"name": "x"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out["status"]; ok {
		t.Error("update must not inject a default status")
	}
}

func TestProcessDataDates(t *testing.T) {
	out, err := ProcessData("tasks", map[string]any{"dueDate": "2025-04-01"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out["dueDate"].(time.Time); !ok {
		t.Errorf("dueDate = %T", out["dueDate"])
	}

	out, err = ProcessData("customers", map[string]any{"lastContact": ""}, false)
	if err != nil {
		t.Fatal(err)
	}
	if out["lastContact"] != nil {
		t.Errorf("empty date should clear to nil, got %v", out["lastContact"])
	}

	if _, err := ProcessData("finances", map[string]any{"date": "yesterday-ish"}, false); err == nil {
		t.Error("want error for unparseable date")
	}
}

func TestProcessDataNumbers(t *testing.T) {
	out, err := ProcessData("finances", map[string]any{"amount": "12.50"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if out["amount"] != 12.5 {
		t.Errorf("amount = %v", out["amount"])
	}

	if _, err := ProcessData("finances", map[string]any{"amount": "lots"}, false); err == nil {
		t.Error("want error for non-numeric amount")
	}
}

func TestProcessDataReportsValidationErrors(t *testing.T) {
	// Coercion failures carry the field so handlers can answer 400 instead
	// of treating them as storage failures.
	_, err := ProcessData("finances", map[string]any{"amount": "lots"}, false)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if verr.Field != "amount" || verr.Error() != "amount must be a valid number" {
		t.Errorf("got %+v", verr)
	}

	_, err = ProcessData("tasks", map[string]any{"dueDate": "someday"}, false)
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if verr.Field != "dueDate" {
		t.Errorf("field = %q", verr.Field)
	}
}

func TestValid(t *testing.T) {
	for _, name := range Names() {
		if !Valid(name) {
			t.Errorf("%s should be valid", name)
		}
	}
	if Valid("users") {
		t.Error("users must not be exposed as a record table")
	}
}
