// Package crud implements the generic in-memory entity store behind every
// back-office page. A Store owns one collection, mediates every mutation
// through a validator and reports outcomes through notifications.
//
// Mutations never modify the current slice: each successful create, edit or
// delete swaps in a freshly allocated slice, so a slice returned by Items is
// a stable snapshot. A rejected mutation leaves the collection untouched.
package crud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/mesh-intelligence/backoffice/internal/confirm"
	"github.com/mesh-intelligence/backoffice/internal/form"
	"github.com/mesh-intelligence/backoffice/internal/notify"
	"github.com/mesh-intelligence/backoffice/internal/validation"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// NaturalKey is a field that must be unique across the collection.
type NaturalKey struct {
	Field string
	Fold  bool // Compare case-insensitively.
}

// Schema describes one entity type to a Store.
type Schema[T types.Entity[T]] struct {
	// Entity is the singular display name, e.g. "purchase order".
	Entity string

	Validator   *validation.Validator
	NaturalKeys []NaturalKey

	// Decode overlays form values onto base. Create passes the zero value.
	Decode func(values types.Values, base T) (T, error)

	// Label names an item in confirmations. Defaults to "#<id>".
	Label func(T) string
}

func (s Schema[T]) label(item T) string {
	if s.Label != nil {
		return s.Label(item)
	}
	return fmt.Sprintf("#%d", item.GetID())
}

func (s Schema[T]) title() string {
	if s.Entity == "" {
		return ""
	}
	return strings.ToUpper(s.Entity[:1]) + s.Entity[1:]
}

// Store is the authoritative in-memory collection of one entity type.
type Store[T types.Entity[T]] struct {
	mu     sync.RWMutex
	schema Schema[T]
	items  []T
	ui     UIState

	notifier  notify.Notifier
	confirmer confirm.Confirmer
	logger    *slog.Logger
}

// Option configures a Store.
type Option[T types.Entity[T]] func(*Store[T])

// WithNotifier sets where success and warning messages go.
func WithNotifier[T types.Entity[T]](n notify.Notifier) Option[T] {
	return func(s *Store[T]) { s.notifier = n }
}

// WithConfirmer sets the confirmation step run before deletes.
func WithConfirmer[T types.Entity[T]](c confirm.Confirmer) Option[T] {
	return func(s *Store[T]) { s.confirmer = c }
}

// WithLogger sets the structured logger. The store adds the entity name to
// every record.
func WithLogger[T types.Entity[T]](l *slog.Logger) Option[T] {
	return func(s *Store[T]) { s.logger = l }
}

// New creates a store seeded with a copy of seed.
// Returns ErrDuplicateID if two seed items share an id.
// Without options, notifications are discarded and deletes are confirmed
// automatically.
func New[T types.Entity[T]](schema Schema[T], seed []T, opts ...Option[T]) (*Store[T], error) {
	if dups := lo.FindDuplicatesBy(seed, func(item T) int64 { return item.GetID() }); len(dups) > 0 {
		return nil, fmt.Errorf("%s seed id %d: %w", schema.Entity, dups[0].GetID(), types.ErrDuplicateID)
	}
	s := &Store[T]{
		schema: schema,
		items:  slices.Clone(seed),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = notify.Discard
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("entity", schema.Entity)
	if s.confirmer == nil {
		s.confirmer = confirm.Yes(s.notifier)
	}
	return s, nil
}

// Entity returns the singular entity name.
func (s *Store[T]) Entity() string { return s.schema.Entity }

// Fields returns the form fields of the entity in display order.
func (s *Store[T]) Fields() []string { return s.schema.Validator.Fields() }

// Items returns the current collection. The slice is a snapshot: it is
// never modified by the store and must not be modified by the caller.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Len returns the number of items.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the item with the given id.
// Returns ErrNotFound if no item has that id.
func (s *Store[T]) Get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], nil
	}
	var zero T
	return zero, s.notFound(id)
}

// NextID returns the id the next created item receives: one more than the
// largest id in the collection, or 1 when it is empty.
func (s *Store[T]) NextID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextIDLocked()
}

func (s *Store[T]) nextIDLocked() int64 {
	if len(s.items) == 0 {
		return 1
	}
	top := lo.MaxBy(s.items, func(a, b T) bool { return a.GetID() > b.GetID() })
	return top.GetID() + 1
}

func (s *Store[T]) indexLocked(id int64) int {
	return slices.IndexFunc(s.items, func(item T) bool { return item.GetID() == id })
}

// takenLocked builds the uniqueness lookup over the current items,
// ignoring the item with id exclude.
func (s *Store[T]) takenLocked(exclude int64) func(field, value string) bool {
	items := s.items
	keys := s.schema.NaturalKeys
	return func(field, value string) bool {
		key, ok := lo.Find(keys, func(k NaturalKey) bool { return k.Field == field })
		if !ok {
			return false
		}
		value = strings.TrimSpace(value)
		return lo.ContainsBy(items, func(item T) bool {
			if item.GetID() == exclude {
				return false
			}
			other := strings.TrimSpace(item.Values()[field])
			if key.Fold {
				return strings.EqualFold(other, value)
			}
			return other == value
		})
	}
}

// Validate refreshes the errors of a form without mutating anything. The
// form's ID only matters in edit mode.
func (s *Store[T]) Validate(f *form.State) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := validation.Context{Mode: f.Mode, Taken: s.takenLocked(0)}
	if f.Mode == form.ModeEdit {
		i := s.indexLocked(f.ID)
		if i < 0 {
			return s.notFound(f.ID)
		}
		ctx.ID = f.ID
		ctx.Original = s.items[i].Values()
		ctx.Taken = s.takenLocked(f.ID)
	}
	s.schema.Validator.Check(f, ctx)
	return nil
}

// Create validates draft and appends a new item with the next id.
// On a validation failure it returns a *ValidationError, shows a warning
// naming the first failing field and leaves the collection unchanged.
func (s *Store[T]) Create(draft types.Values) (T, error) {
	var zero T

	s.mu.Lock()
	errs := s.schema.Validator.ValidateAll(draft, validation.Context{
		Mode:  form.ModeCreate,
		Taken: s.takenLocked(0),
	})
	if errs.HasErrors() {
		s.mu.Unlock()
		return zero, s.reject(errs)
	}

	item, err := s.schema.Decode(draft, zero)
	if err != nil {
		s.mu.Unlock()
		s.notifier.Warning(fmt.Sprintf("%s could not be created", s.schema.title()))
		return zero, fmt.Errorf("decode %s: %w", s.schema.Entity, err)
	}
	item = item.WithID(s.nextIDLocked())

	s.items = append(slices.Clone(s.items), item)
	if s.ui.Mode == UICreating {
		s.ui = UIState{}
	}
	s.mu.Unlock()

	s.logger.Info("entity created", "id", item.GetID())
	s.notifier.Success(fmt.Sprintf("%s created successfully", s.schema.title()))
	return item, nil
}

// Edit applies draft over the stored item with the given id. Fields absent
// from draft keep their value. Uniqueness checks skip the item itself.
// Returns ErrNotFound for an unknown id and a *ValidationError when the
// merged values are invalid; in both cases nothing changes.
func (s *Store[T]) Edit(id int64, draft types.Values) (T, error) {
	var zero T

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return zero, s.notFound(id)
	}
	current := s.items[i]
	original := current.Values()

	errs := s.schema.Validator.ValidateAll(original.Merge(draft), validation.Context{
		Mode:     form.ModeEdit,
		ID:       id,
		Original: original,
		Taken:    s.takenLocked(id),
	})
	if errs.HasErrors() {
		s.mu.Unlock()
		return zero, s.reject(errs)
	}

	item, err := s.schema.Decode(draft, current)
	if err != nil {
		s.mu.Unlock()
		s.notifier.Warning(fmt.Sprintf("%s could not be updated", s.schema.title()))
		return zero, fmt.Errorf("decode %s: %w", s.schema.Entity, err)
	}
	item = item.WithID(id)

	next := slices.Clone(s.items)
	next[i] = item
	s.items = next
	if s.ui == (UIState{Mode: UIEditing, ID: id}) {
		s.ui = UIState{}
	}
	s.mu.Unlock()

	s.logger.Info("entity updated", "id", id, "fields", len(draft))
	s.notifier.Success(fmt.Sprintf("%s updated successfully", s.schema.title()))
	return item, nil
}

// Delete asks the confirmer before removing the item with the given id.
// It reports whether the item was removed. Deleting an unknown id is a
// no-op; a declined confirmation leaves the collection unchanged.
func (s *Store[T]) Delete(ctx context.Context, id int64) (bool, error) {
	item, err := s.Get(id)
	if err != nil {
		s.logger.Debug("delete of missing entity ignored", "id", id)
		return false, nil
	}

	title := s.schema.title()
	req := confirm.Request{
		ItemName:       s.schema.label(item),
		ItemType:       s.schema.Entity,
		SuccessMessage: fmt.Sprintf("%s deleted successfully", title),
		ErrorMessage:   fmt.Sprintf("%s could not be deleted", title),
	}
	ok, err := s.confirmer.Confirm(ctx, req, func() error { return s.remove(id) })
	if errors.Is(err, types.ErrNotFound) {
		s.logger.Debug("entity vanished before delete", "id", id)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", s.schema.Entity, id, err)
	}
	if ok {
		s.logger.Info("entity deleted", "id", id)
	}
	return ok, nil
}

// remove filters id out of the collection. The item may have vanished
// while the confirmation was pending.
func (s *Store[T]) remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return s.notFound(id)
	}
	s.items = lo.Reject(s.items, func(item T, _ int) bool { return item.GetID() == id })
	if s.ui.ID == id {
		s.ui = UIState{}
	}
	return nil
}

// reject builds the validation error and shows its first message.
func (s *Store[T]) reject(errs form.Errors) error {
	verr := &ValidationError{
		Entity: s.schema.Entity,
		Errors: errs,
		Order:  s.schema.Validator.Fields(),
	}
	s.logger.Debug("entity rejected", "fields", errs.Fields(verr.Order))
	s.notifier.Warning(verr.Summary())
	return verr
}
