package crud

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/backoffice/internal/form"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// ValidationError carries every field error of a rejected draft.
// It matches types.ErrValidation with errors.Is.
type ValidationError struct {
	Entity string
	Errors form.Errors
	Order  []string // Field display order.
}

// Field returns the message for field, "" when the field is valid.
func (e *ValidationError) Field(name string) string {
	return e.Errors[name]
}

// Fields returns the failing fields in display order.
func (e *ValidationError) Fields() []string {
	return e.Errors.Fields(e.Order)
}

// Summary is the first failing field and its message, as shown in the
// warning notification.
func (e *ValidationError) Summary() string {
	field, msg, ok := e.Errors.First(e.Order)
	if !ok {
		return "invalid " + e.Entity
	}
	return fmt.Sprintf("%s: %s", field, msg)
}

func (e *ValidationError) Error() string {
	fields := e.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, e.Errors[f])
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return types.ErrValidation }

func (s *Store[T]) notFound(id int64) error {
	return fmt.Errorf("%s %d: %w", s.schema.Entity, id, types.ErrNotFound)
}
