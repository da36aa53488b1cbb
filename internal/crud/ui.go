package crud

import (
	"fmt"

	"github.com/mesh-intelligence/backoffice/internal/form"
)

// UIMode is which panel a page shows on top of its list. Only one panel is
// open at a time.
type UIMode int

const (
	UIClosed UIMode = iota
	UICreating
	UIEditing
	UIViewing
)

func (m UIMode) String() string {
	switch m {
	case UICreating:
		return "creating"
	case UIEditing:
		return "editing"
	case UIViewing:
		return "viewing"
	default:
		return "closed"
	}
}

// UIState is the open panel and, for editing and viewing, the item shown.
type UIState struct {
	Mode UIMode
	ID   int64
}

func (u UIState) String() string {
	if u.Mode == UIEditing || u.Mode == UIViewing {
		return fmt.Sprintf("%s(%d)", u.Mode, u.ID)
	}
	return u.Mode.String()
}

// UI returns the open panel.
func (s *Store[T]) UI() UIState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui
}

// OpenCreate opens the create panel and returns an empty form for it.
func (s *Store[T]) OpenCreate() *form.State {
	s.mu.Lock()
	s.ui = UIState{Mode: UICreating}
	s.mu.Unlock()
	return form.New(form.ModeCreate, 0, nil)
}

// View opens the read-only panel for the item with the given id.
// Returns ErrNotFound and leaves the panel unchanged for an unknown id.
func (s *Store[T]) View(id int64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		var zero T
		return zero, s.notFound(id)
	}
	s.ui = UIState{Mode: UIViewing, ID: id}
	return s.items[i], nil
}

// BeginEdit opens the edit panel for the item with the given id and returns
// a form prefilled with its values.
func (s *Store[T]) BeginEdit(id int64) (*form.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return nil, s.notFound(id)
	}
	s.ui = UIState{Mode: UIEditing, ID: id}
	return form.New(form.ModeEdit, id, s.items[i].Values()), nil
}

// Close closes whatever panel is open.
func (s *Store[T]) Close() {
	s.mu.Lock()
	s.ui = UIState{}
	s.mu.Unlock()
}
