package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// writeSQLite builds a fresh database at path with one table per dataset.
// Every column is TEXT except id, which is the integer primary key when
// present. The database is built beside path and renamed into place.
func writeSQLite(ctx context.Context, path string, datasets []Dataset) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.db")
	if err != nil {
		return fmt.Errorf("creating temp database: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := fillSQLite(ctx, tmpName, datasets); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp database: %w", err)
	}
	return nil
}

func fillSQLite(ctx context.Context, path string, datasets []Dataset) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ds := range datasets {
		if _, err := tx.ExecContext(ctx, createTableSQL(ds)); err != nil {
			return fmt.Errorf("creating table %s: %w", ds.Name, err)
		}
		if len(ds.Rows) == 0 {
			continue
		}
		stmt, err := tx.PrepareContext(ctx, insertSQL(ds))
		if err != nil {
			return fmt.Errorf("preparing insert into %s: %w", ds.Name, err)
		}
		for i, row := range ds.Rows {
			args := make([]any, len(row))
			for j, cell := range row {
				args[j] = cell
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				stmt.Close()
				return fmt.Errorf("inserting %s row %d: %w", ds.Name, i+1, err)
			}
		}
		stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export transaction: %w", err)
	}
	return nil
}

func createTableSQL(ds Dataset) string {
	defs := make([]string, len(ds.Columns))
	for i, col := range ds.Columns {
		if col == "id" {
			defs[i] = quote(col) + " INTEGER PRIMARY KEY"
			continue
		}
		defs[i] = quote(col) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quote(ds.Name), strings.Join(defs, ", "))
}

func insertSQL(ds Dataset) string {
	cols := make([]string, len(ds.Columns))
	for i, col := range ds.Columns {
		cols[i] = quote(col)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(ds.Name), strings.Join(cols, ", "), placeholders)
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
