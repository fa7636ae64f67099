// Package cell implements the per-field-type display and edit contract:
// how a stored value is rendered in a table cell, what input widget edits
// it, and how an edited value is normalized back to its storage shape.
package cell

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"tablecrm/internal/fieldtype"
)

// DisplayCell is the read-mode rendering of one value.
type DisplayCell struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
	Pill  bool   `json:"pill,omitempty"`
}

// EditInput describes the widget that edits one value, pre-filled with the
// input-shaped form of the current value.
type EditInput struct {
	Widget    string             `json:"widget"`
	InputType string             `json:"inputType,omitempty"`
	Options   []fieldtype.Option `json:"options,omitempty"`
	Min       *float64           `json:"min,omitempty"`
	Max       *float64           `json:"max,omitempty"`
	Step      *float64           `json:"step,omitempty"`
	Value     string             `json:"value"`
	ReadOnly  bool               `json:"readOnly,omitempty"`
}

// Currency display uses a fixed locale regardless of the viewer.
var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// Display renders value for read mode under the column's inferred type.
// An option value with no matching option entry is shown raw, unstyled.
func Display(cf fieldtype.ColumnFormat, value any) DisplayCell {
	if value == nil {
		return DisplayCell{}
	}

	switch cf.Config.Type {
	case fieldtype.TypeOption:
		raw := fmt.Sprint(value)
		for _, opt := range cf.Config.Options {
			if opt.Value == raw {
				return DisplayCell{Text: opt.Label, Color: opt.Color, Pill: true}
			}
		}
		return DisplayCell{Text: raw}

	case fieldtype.TypeDate, fieldtype.TypeTimestamp:
		t, ok := asTime(value)
		if !ok {
			return DisplayCell{}
		}
		return DisplayCell{Text: t.Format("01/02/2006")}

	case fieldtype.TypeCurrency:
		f, ok := asFloat(value)
		if !ok {
			return DisplayCell{Text: fmt.Sprint(value)}
		}
		return DisplayCell{Text: currencyPrinter.Sprintf("$%v",
			number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))}

	case fieldtype.TypeNumber:
		if f, ok := asFloat(value); ok {
			return DisplayCell{Text: strconv.FormatFloat(f, 'f', -1, 64)}
		}
		return DisplayCell{Text: fmt.Sprint(value)}

	default:
		return DisplayCell{Text: fmt.Sprint(value)}
	}
}

// Edit builds the edit-mode widget for value under the column's type.
func Edit(cf fieldtype.ColumnFormat, value any) EditInput {
	c := cf.Config
	in := EditInput{ReadOnly: c.ReadOnly}

	switch c.Type {
	case fieldtype.TypeOption:
		in.Widget = "select"
		// Empty sentinel first so a cleared cell is representable.
		in.Options = append([]fieldtype.Option{{Value: "", Label: ""}}, c.Options...)
		if value != nil {
			in.Value = fmt.Sprint(value)
		}

	case fieldtype.TypeDate, fieldtype.TypeTimestamp:
		in.Widget = "date"
		if t, ok := asTime(value); ok {
			in.Value = t.Format("2006-01-02")
		}

	case fieldtype.TypeNumber, fieldtype.TypeCurrency:
		in.Widget = "number"
		in.Min, in.Max, in.Step = c.Min, c.Max, c.Step
		if f, ok := asFloat(value); ok {
			in.Value = strconv.FormatFloat(f, 'f', -1, 64)
		}

	case fieldtype.TypeLongText:
		in.Widget = "textarea"
		if value != nil {
			in.Value = fmt.Sprint(value)
		}

	default:
		in.Widget = "input"
		switch c.Type {
		case fieldtype.TypeEmail:
			in.InputType = "email"
		case fieldtype.TypePhone:
			in.InputType = "tel"
		case fieldtype.TypeURL:
			in.InputType = "url"
		default:
			in.InputType = "text"
		}
		if value != nil {
			in.Value = fmt.Sprint(value)
		}
	}
	return in
}

// ValidationError reports an edited value that cannot be normalized to the
// column's storage shape. It is raised before anything is persisted.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
}

// Normalize converts an edited input string back to the storage
// representation for the column's type. Empty inputs normalize to nil for
// dates and numbers.
func Normalize(cf fieldtype.ColumnFormat, input string) (any, error) {
	c := cf.Config

	switch c.Type {
	case fieldtype.TypeDate, fieldtype.TypeTimestamp:
		s := strings.TrimSpace(input)
		if s == "" {
			return nil, nil
		}
		t, err := parseDate(s)
		if err != nil {
			return nil, &ValidationError{Field: cf.Key, Value: input, Msg: fmt.Sprintf("%s must be a valid date", cf.Key)}
		}
		return t.UTC().Format(time.RFC3339), nil

	case fieldtype.TypeNumber, fieldtype.TypeCurrency:
		s := strings.TrimSpace(input)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &ValidationError{Field: cf.Key, Value: input, Msg: fmt.Sprintf("%s must be a valid number", cf.Key)}
		}
		return f, nil

	default:
		return input, nil
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func asTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		t, err := parseDate(v)
		return t, err == nil
	}
	return time.Time{}, false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		return f, err == nil
	}
	return 0, false
}
