// Package form holds the draft state of a create or edit form: the raw
// values, the per-field error messages and which fields the user has touched.
package form

import (
	"slices"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Mode tells validation whether a draft creates a record or edits one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Errors maps a field to its error message. A missing or empty message
// means the field is valid.
type Errors map[string]string

// HasErrors reports whether any field carries a message.
func (e Errors) HasErrors() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// Fields returns the fields with a message, following order first and then
// any remaining fields in lexical order.
func (e Errors) Fields(order []string) []string {
	var out []string
	seen := make(map[string]bool, len(e))
	for _, f := range order {
		if e[f] != "" {
			out = append(out, f)
		}
		seen[f] = true
	}
	var rest []string
	for f, msg := range e {
		if msg != "" && !seen[f] {
			rest = append(rest, f)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// First returns the first failing field following order.
// ok is false when there are no errors.
func (e Errors) First(order []string) (field, msg string, ok bool) {
	fields := e.Fields(order)
	if len(fields) == 0 {
		return "", "", false
	}
	return fields[0], e[fields[0]], true
}

// Touched records which fields the user has interacted with.
type Touched map[string]bool

// State is a form being filled in.
type State struct {
	Mode    Mode
	ID      int64 // Record being edited; zero in create mode.
	Values  types.Values
	Errors  Errors
	Touched Touched
}

// New returns an untouched form over a copy of values.
func New(mode Mode, id int64, values types.Values) *State {
	return &State{
		Mode:    mode,
		ID:      id,
		Values:  values.Clone(),
		Errors:  Errors{},
		Touched: Touched{},
	}
}

// Set stores value for field and marks the field touched.
func (s *State) Set(field, value string) {
	s.Values[field] = value
	s.Touched[field] = true
}

// Touch marks field as touched without changing its value.
func (s *State) Touch(field string) {
	s.Touched[field] = true
}

// TouchAll marks every listed field as touched. Submitting a form touches
// all of its fields so every error becomes visible.
func (s *State) TouchAll(fields []string) {
	for _, f := range fields {
		s.Touched[f] = true
	}
}

// Visible returns the errors of touched fields only.
func (s *State) Visible() Errors {
	out := Errors{}
	for f, msg := range s.Errors {
		if msg != "" && s.Touched[f] {
			out[f] = msg
		}
	}
	return out
}

// Valid reports whether the last validation pass found no errors.
func (s *State) Valid() bool {
	return !s.Errors.HasErrors()
}
