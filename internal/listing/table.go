// Package listing renders collections of records as paginated, searchable
// tables with per-row actions. A Table knows nothing about what its rows
// mean: it filters, slices and draws them, and hands rows back to the
// caller's callbacks.
package listing

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// DefaultPageSize is used when a Table is created with a page size below 1.
const DefaultPageSize = 10

// NoResults is the placeholder shown when nothing matches.
const NoResults = "No results"

// Column is one table column. Render, when set, replaces the stringified
// field value.
type Column[T types.Record] struct {
	Key    string
	Header string
	Render func(row T) string
}

// Config describes a Table. Every callback is optional.
type Config[T types.Record] struct {
	Columns        []Column[T]
	PageSize       int
	SearchableKeys []string

	OnView   func(row T)
	OnEdit   func(row T)
	OnDelete func(row T)
	OnCreate func()

	// ExtraActions names additional controls for a row, shown after the
	// standard ones.
	ExtraActions func(row T) []string

	// Tail renders a trailing cell after the actions.
	Tail func(row T) string

	// Normalize is applied to both the query and field text before
	// matching. The table itself only folds case.
	Normalize func(s string) string
}

// Table holds the transient view state of one list: the rows, the query
// and the current page. It is not safe for concurrent use.
type Table[T types.Record] struct {
	cfg   Config[T]
	data  []T
	query string
	page  int
}

// New returns a table over data showing page 1.
func New[T types.Record](cfg Config[T], data []T) *Table[T] {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	return &Table[T]{cfg: cfg, data: data, page: 1}
}

// Columns returns the configured columns.
func (t *Table[T]) Columns() []Column[T] { return t.cfg.Columns }

// PageSize returns the number of rows per page.
func (t *Table[T]) PageSize() int { return t.cfg.PageSize }

// Query returns the current search query.
func (t *Table[T]) Query() string { return t.query }

// Page returns the current page, starting at 1.
func (t *Table[T]) Page() int { return t.page }

// SetData replaces the rows. The current page is clamped to the new page
// count; the query is kept.
func (t *Table[T]) SetData(data []T) {
	t.data = data
	t.page = t.clamp(t.page)
}

// SetQuery changes the search query and returns to page 1.
func (t *Table[T]) SetQuery(q string) {
	t.query = q
	t.page = 1
}

// SetPage moves to page n, clamped into [1, TotalPages].
func (t *Table[T]) SetPage(n int) {
	t.page = t.clamp(n)
}

// Next moves one page forward, stopping at the last page.
func (t *Table[T]) Next() { t.SetPage(t.page + 1) }

// Prev moves one page back, stopping at the first page.
func (t *Table[T]) Prev() { t.SetPage(t.page - 1) }

func (t *Table[T]) clamp(n int) int {
	return max(1, min(n, t.TotalPages()))
}

// Filtered returns the rows where any searchable field contains the query,
// ignoring case, in input order. An empty query matches every row.
func (t *Table[T]) Filtered() []T {
	if t.query == "" {
		return t.data
	}
	q := t.fold(t.query)
	return lo.Filter(t.data, func(row T, _ int) bool {
		return lo.SomeBy(t.cfg.SearchableKeys, func(key string) bool {
			v, ok := row.Field(key)
			return ok && strings.Contains(t.fold(stringify(v)), q)
		})
	})
}

func (t *Table[T]) fold(s string) string {
	if t.cfg.Normalize != nil {
		s = t.cfg.Normalize(s)
	}
	return strings.ToLower(s)
}

// TotalPages returns the number of pages of the filtered rows, at least 1.
func (t *Table[T]) TotalPages() int {
	n := len(t.Filtered())
	if n == 0 {
		return 1
	}
	return (n + t.cfg.PageSize - 1) / t.cfg.PageSize
}

// PageRows returns the filtered rows on the current page.
func (t *Table[T]) PageRows() []T {
	pages := Paginate(t.Filtered(), t.cfg.PageSize)
	if len(pages) == 0 {
		return nil
	}
	return pages[t.clamp(t.page)-1]
}

// Paginate splits rows into consecutive pages of size rows; only the last
// page may be shorter. No rows yields no pages.
func Paginate[T any](rows []T, size int) [][]T {
	if size < 1 {
		size = DefaultPageSize
	}
	return slices.Collect(slices.Chunk(rows, size))
}

// Cell returns the text of one cell.
func (t *Table[T]) Cell(row T, col Column[T]) string {
	if col.Render != nil {
		return col.Render(row)
	}
	v, ok := row.Field(col.Key)
	if !ok {
		return ""
	}
	return stringify(v)
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Actions returns the controls available on a row: the standard ones that
// have a callback, then the extra ones.
func (t *Table[T]) Actions(row T) []string {
	var out []string
	if t.cfg.OnView != nil {
		out = append(out, "view")
	}
	if t.cfg.OnEdit != nil {
		out = append(out, "edit")
	}
	if t.cfg.OnDelete != nil {
		out = append(out, "delete")
	}
	if t.cfg.ExtraActions != nil {
		out = append(out, t.cfg.ExtraActions(row)...)
	}
	return out
}

// View invokes the view callback with row.
func (t *Table[T]) View(row T) {
	if t.cfg.OnView != nil {
		t.cfg.OnView(row)
	}
}

// Edit invokes the edit callback with row.
func (t *Table[T]) Edit(row T) {
	if t.cfg.OnEdit != nil {
		t.cfg.OnEdit(row)
	}
}

// Delete invokes the delete callback with row. Confirming is up to the
// callback.
func (t *Table[T]) Delete(row T) {
	if t.cfg.OnDelete != nil {
		t.cfg.OnDelete(row)
	}
}

// Create invokes the create callback.
func (t *Table[T]) Create() {
	if t.cfg.OnCreate != nil {
		t.cfg.OnCreate()
	}
}

// Render draws the current page to w followed by a page footer.
func (t *Table[T]) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(t.cfg.Columns)+2)
	for _, col := range t.cfg.Columns {
		header = append(header, col.Header)
	}
	withActions := t.hasActions()
	if withActions {
		header = append(header, "Actions")
	}
	if t.cfg.Tail != nil {
		header = append(header, "")
	}
	tw.AppendHeader(header)

	rows := t.PageRows()
	if len(rows) == 0 {
		empty := make(table.Row, len(header))
		for i := range empty {
			empty[i] = NoResults
		}
		tw.AppendRow(empty, table.RowConfig{AutoMerge: true})
	}
	for _, row := range rows {
		cells := make(table.Row, 0, len(header))
		for _, col := range t.cfg.Columns {
			cells = append(cells, t.Cell(row, col))
		}
		if withActions {
			cells = append(cells, strings.Join(t.Actions(row), " "))
		}
		if t.cfg.Tail != nil {
			cells = append(cells, t.cfg.Tail(row))
		}
		tw.AppendRow(cells)
	}
	tw.Render()

	_, _ = fmt.Fprintf(w, "Page %d of %d (%d results)\n", t.clamp(t.page), t.TotalPages(), len(t.Filtered()))
}

func (t *Table[T]) hasActions() bool {
	return t.cfg.OnView != nil || t.cfg.OnEdit != nil || t.cfg.OnDelete != nil || t.cfg.ExtraActions != nil
}
