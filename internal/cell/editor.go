package cell

import (
	"context"
	"errors"
	"fmt"

	"tablecrm/internal/fieldtype"
)

// State is the lifecycle of a single cell:
//
//	Display -> (Begin, unless read-only) -> Editing
//	Editing -> (Blur, changed)  -> Saving -> Display (commit on success)
//	Editing -> (Blur, unchanged) -> Display (no save issued)
//	Editing -> (Escape) -> Display (revert)
//
// A failed save returns to Display showing the pre-edit value; the edit is
// never committed locally ahead of a confirmed save.
type State int

const (
	StateDisplay State = iota
	StateEditing
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return "display"
	}
}

var (
	ErrCellBusy   = errors.New("another cell is already being edited")
	ErrReadOnly   = errors.New("cell is read-only")
	ErrNotEditing = errors.New("no cell is being edited")
)

// SaveFunc persists a normalized value. It is only invoked when the edited
// value differs from the original.
type SaveFunc func(ctx context.Context, row int64, key string, value any) error

// Editor serializes cell edits for one table instance: at most one cell is
// in Editing or Saving state at a time.
type Editor struct {
	state    State
	row      int64
	format   fieldtype.ColumnFormat
	original string
	current  string
}

func NewEditor() *Editor {
	return &Editor{state: StateDisplay}
}

func (e *Editor) State() State { return e.state }

// Begin opens a cell for editing. value is the current input-shaped value.
func (e *Editor) Begin(row int64, cf fieldtype.ColumnFormat, value string) error {
	if e.state != StateDisplay {
		return ErrCellBusy
	}
	if cf.Config.ReadOnly {
		return ErrReadOnly
	}
	e.state = StateEditing
	e.row = row
	e.format = cf
	e.original = value
	e.current = value
	return nil
}

// Input records the in-progress edited value.
func (e *Editor) Input(value string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.current = value
	return nil
}

// Escape abandons the edit and reverts to the pre-edit value.
func (e *Editor) Escape() error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.reset()
	return nil
}

// Blur closes the edit. An unchanged value returns to Display without
// calling save. A changed value is normalized, saved, and committed only on
// confirmed success; on any failure the cell returns to Display holding the
// pre-edit value and the error is reported to the caller.
func (e *Editor) Blur(ctx context.Context, save SaveFunc) (saved bool, err error) {
	if e.state != StateEditing {
		return false, ErrNotEditing
	}
	if e.current == e.original {
		e.reset()
		return false, nil
	}

	value, err := Normalize(e.format, e.current)
	if err != nil {
		e.reset()
		return false, err
	}

	e.state = StateSaving
	if err := save(ctx, e.row, e.format.Key, value); err != nil {
		e.reset()
		return false, fmt.Errorf("save %s: %w", e.format.Key, err)
	}
	e.reset()
	return true, nil
}

func (e *Editor) reset() {
	e.state = StateDisplay
	e.row = 0
	e.original = ""
	e.current = ""
	e.format = fieldtype.ColumnFormat{}
}
