// Package export writes snapshots of back-office collections to disk as
// JSONL, CSV or a SQLite database. Exports are one-way: nothing is ever
// read back into a session.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Formats.
const (
	FormatJSONL  = "jsonl"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Formats lists the supported export formats.
var Formats = []string{FormatJSONL, FormatCSV, FormatSQLite}

// DatabaseFile is the file a SQLite export writes.
const DatabaseFile = "backoffice.db"

// ErrUnknownFormat is returned for a format outside Formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Dataset is a flat snapshot of one collection. Every row has one cell per
// column.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Export writes datasets into dir, creating it if needed, and returns the
// paths written. JSONL and CSV write one file per dataset concurrently;
// SQLite writes a single database with one table per dataset. Every file
// is replaced atomically.
func Export(ctx context.Context, dir, format string, datasets ...Dataset) ([]string, error) {
	if !slices.Contains(Formats, format) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	for _, ds := range datasets {
		if err := ds.check(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	if format == FormatSQLite {
		path := filepath.Join(dir, DatabaseFile)
		if err := writeSQLite(ctx, path, datasets); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	paths := make([]string, len(datasets))
	g, ctx := errgroup.WithContext(ctx)
	for i, ds := range datasets {
		path := filepath.Join(dir, ds.Name+"."+format)
		paths[i] = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var err error
			switch format {
			case FormatJSONL:
				err = writeJSONL(path, ds)
			case FormatCSV:
				err = writeCSV(path, ds)
			}
			if err != nil {
				return fmt.Errorf("exporting %s: %w", ds.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (ds Dataset) check() error {
	if ds.Name == "" {
		return errors.New("dataset without a name")
	}
	for i, row := range ds.Rows {
		if len(row) != len(ds.Columns) {
			return fmt.Errorf("dataset %s row %d: %d cells for %d columns", ds.Name, i+1, len(row), len(ds.Columns))
		}
	}
	return nil
}
