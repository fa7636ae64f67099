// Package table holds the per-table registry and the pure list semantics
// (search, multi-key sort, header-click cycling) shared by the record API
// and the view endpoint.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Config declares a table's defaults, coercions and searchable fields.
// Field names are the camelCase record keys, not storage column names.
type Config struct {
	DefaultStatus   string
	DefaultPriority string
	DateFields      []string
	NumberFields    []string
	SearchFields    []string
}

var configs = map[string]Config{
	"customers": {
		DefaultStatus: "Pending",
		DateFields:    []string{"lastContact"},
		SearchFields:  []string{"name", "email", "phone", "status"},
	},
	"leads": {
		DefaultStatus: "New",
		SearchFields:  []string{"name", "email", "phone", "status"},
	},
	"tasks": {
		DefaultStatus:   "To Do",
		DefaultPriority: "Medium",
		DateFields:      []string{"dueDate"},
		SearchFields:    []string{"title", "description", "status", "priority"},
	},
	"finances": {
		DateFields:   []string{"date"},
		NumberFields: []string{"amount"},
		SearchFields: []string{"description", "type", "tag", "amount"},
	},
}

// ValidationError rejects a payload before it reaches storage, naming the
// field whose value could not be coerced.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// Names lists the known tables.
func Names() []string {
	return []string{"customers", "leads", "tasks", "finances"}
}

// Valid reports whether name is a known table.
func Valid(name string) bool {
	_, ok := configs[name]
	return ok
}

// Get returns the config for a known table.
func Get(name string) (Config, bool) {
	c, ok := configs[name]
	return c, ok
}

// ProcessData coerces incoming field values by the table's declared config
// and fills the status/priority defaults for create. Date fields parse to
// time.Time (empty values to nil); number fields must parse to a finite
// float or the whole payload is rejected naming the bad field.
func ProcessData(name string, data map[string]any, fillDefaults bool) (map[string]any, error) {
	cfg, ok := configs[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}

	out := make(map[string]any, len(data)+2)
	for k, v := range data {
		out[k] = v
	}

	for _, f := range cfg.DateFields {
		v, present := out[f]
		if !present {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if v == nil || s == "" {
			out[f] = nil
			continue
		}
		t, err := parseInstant(s)
		if err != nil {
			return nil, &ValidationError{Field: f, Msg: fmt.Sprintf("%s must be a valid date", f)}
		}
		out[f] = t
	}

	for _, f := range cfg.NumberFields {
		v, present := out[f]
		if !present || v == nil {
			continue
		}
		n, err := toFloat(v)
		if err != nil {
			return nil, &ValidationError{Field: f, Msg: fmt.Sprintf("%s must be a valid number", f)}
		}
		out[f] = n
	}

	if fillDefaults {
		if cfg.DefaultStatus != "" && isEmpty(out["status"]) {
			out["status"] = cfg.DefaultStatus
		}
		if cfg.DefaultPriority != "" && isEmpty(out["priority"]) {
			out["priority"] = cfg.DefaultPriority
		}
	}
	return out, nil
}

func isEmpty(v any) bool {
	return v == nil || fmt.Sprint(v) == ""
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		var err error
		f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not finite: %v", v)
	}
	return f, nil
}

func parseInstant(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02T15:04:05", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
