// Package app composes the back-office pages. A page pairs one entity
// store with a list table and the cell renderers and extra row actions of
// that entity. Pages are type-erased so the command line can treat every
// entity alike.
package app

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/mesh-intelligence/backoffice/internal/crud"
	"github.com/mesh-intelligence/backoffice/internal/export"
	"github.com/mesh-intelligence/backoffice/internal/listing"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// ListOptions selects what a list shows.
type ListOptions struct {
	Query    string
	Page     int
	PageSize int
}

// Page is one entity screen of the back office.
type Page interface {
	// Name is the canonical page name, e.g. "purchase-orders".
	Name() string
	// Entity is the singular entity name, e.g. "purchase order".
	Entity() string
	// Fields lists the form fields in display order.
	Fields() []string
	// Actions lists the extra row actions the page supports.
	Actions() []string

	Render(w io.Writer, opts ListOptions) error
	Show(w io.Writer, id int64) error
	Create(values types.Values) (int64, error)
	Update(id int64, values types.Values) error
	Delete(ctx context.Context, id int64) (bool, error)
	Do(action string, id int64) error

	// Records returns the rows opts selects and Record one item, for
	// structured output.
	Records(opts ListOptions) any
	Record(id int64) (any, error)

	// UI reports which panel the page has open.
	UI() crud.UIState

	Dataset() export.Dataset
}

// action is an extra row action. Applies decides whether a row offers it;
// patch computes the edit it performs.
type action[T types.Entity[T]] struct {
	name    string
	applies func(T) bool
	patch   func(T) (types.Values, error)
}

// entityPage is the Page of one entity type.
type entityPage[T types.Entity[T]] struct {
	name       string
	store      *crud.Store[T]
	columns    []listing.Column[T]
	searchable []string
	actions    []action[T]
	pageSize   int
}

func (p *entityPage[T]) Name() string     { return p.name }
func (p *entityPage[T]) Entity() string   { return p.store.Entity() }
func (p *entityPage[T]) Fields() []string { return p.store.Fields() }
func (p *entityPage[T]) UI() crud.UIState { return p.store.UI() }

func (p *entityPage[T]) Actions() []string {
	return lo.Map(p.actions, func(a action[T], _ int) string { return a.name })
}

// Table builds a list table over the current items. Row callbacks drive
// the store's panels; deleting goes through the store's confirmation.
func (p *entityPage[T]) Table(ctx context.Context, pageSize int) *listing.Table[T] {
	if pageSize < 1 {
		pageSize = p.pageSize
	}
	return listing.New(listing.Config[T]{
		Columns:        p.columns,
		PageSize:       pageSize,
		SearchableKeys: p.searchable,
		OnView:         func(row T) { _, _ = p.store.View(row.GetID()) },
		OnEdit:         func(row T) { _, _ = p.store.BeginEdit(row.GetID()) },
		OnDelete:       func(row T) { _, _ = p.store.Delete(ctx, row.GetID()) },
		OnCreate:       func() { p.store.OpenCreate() },
		ExtraActions:   p.rowActions,
	}, p.store.Items())
}

func (p *entityPage[T]) rowActions(row T) []string {
	var out []string
	for _, a := range p.actions {
		if a.applies == nil || a.applies(row) {
			out = append(out, a.name)
		}
	}
	return out
}

func (p *entityPage[T]) list(opts ListOptions) *listing.Table[T] {
	t := p.Table(context.Background(), opts.PageSize)
	t.SetQuery(opts.Query)
	if opts.Page > 0 {
		t.SetPage(opts.Page)
	}
	return t
}

func (p *entityPage[T]) Render(w io.Writer, opts ListOptions) error {
	p.list(opts).Render(w)
	return nil
}

// Show opens the view panel for id and prints every field of the item.
func (p *entityPage[T]) Show(w io.Writer, id int64) error {
	item, err := p.store.View(id)
	if err != nil {
		return err
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendRow(table.Row{"id", item.GetID()})
	values := item.Values()
	for _, key := range p.exportKeys() {
		cell := values[key]
		if col, ok := lo.Find(p.columns, func(c listing.Column[T]) bool { return c.Key == key }); ok && col.Render != nil {
			cell = col.Render(item)
		}
		tw.AppendRow(table.Row{key, cell})
	}
	tw.Render()
	return nil
}

func (p *entityPage[T]) Create(values types.Values) (int64, error) {
	p.store.OpenCreate()
	item, err := p.store.Create(values)
	if err != nil {
		return 0, err
	}
	return item.GetID(), nil
}

func (p *entityPage[T]) Update(id int64, values types.Values) error {
	if _, err := p.store.BeginEdit(id); err != nil {
		return err
	}
	_, err := p.store.Edit(id, values)
	return err
}

func (p *entityPage[T]) Delete(ctx context.Context, id int64) (bool, error) {
	return p.store.Delete(ctx, id)
}

// Do runs the extra action named action on the item with the given id.
// The action's edit goes through the store like any other update.
func (p *entityPage[T]) Do(name string, id int64) error {
	a, ok := lo.Find(p.actions, func(a action[T]) bool { return a.name == name })
	if !ok {
		return fmt.Errorf("%s action %q: %w", p.Entity(), name, ErrUnknownAction)
	}
	item, err := p.store.Get(id)
	if err != nil {
		return err
	}
	if a.applies != nil && !a.applies(item) {
		return fmt.Errorf("%s %d cannot %s: %w", p.Entity(), id, name, types.ErrInvalidTransition)
	}
	patch, err := a.patch(item)
	if err != nil {
		return err
	}
	_, err = p.store.Edit(id, patch)
	return err
}

func (p *entityPage[T]) Records(opts ListOptions) any { return p.list(opts).PageRows() }

func (p *entityPage[T]) Record(id int64) (any, error) {
	return p.store.Get(id)
}

// exportKeys returns the fields an item exposes as values, in form order.
// Write-only fields such as passwords are left out.
func (p *entityPage[T]) exportKeys() []string {
	var zero T
	values := zero.Values()
	return slices.DeleteFunc(slices.Clone(p.Fields()), func(f string) bool {
		_, ok := values[f]
		return !ok
	})
}

func (p *entityPage[T]) Dataset() export.Dataset {
	keys := p.exportKeys()
	items := p.store.Items()
	ds := export.Dataset{
		Name:    p.name,
		Columns: append([]string{"id"}, keys...),
		Rows:    make([][]string, len(items)),
	}
	for i, item := range items {
		values := item.Values()
		row := make([]string, 0, len(ds.Columns))
		row = append(row, fmt.Sprint(item.GetID()))
		for _, k := range keys {
			row = append(row, values[k])
		}
		ds.Rows[i] = row
	}
	return ds
}
