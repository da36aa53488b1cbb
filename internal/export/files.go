package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
)

// writeAtomic writes path through a temp file in the same directory using
// the temp-file, fsync, rename pattern. A failed write leaves any previous
// file in place.
func writeAtomic(path string, fill func(w *bufio.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		return fail(err)
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeJSONL writes one JSON object per row, keyed by column name.
func writeJSONL(path string, ds Dataset) error {
	return writeAtomic(path, func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		for i, row := range ds.Rows {
			rec := make(map[string]string, len(ds.Columns))
			for j, col := range ds.Columns {
				rec[col] = row[j]
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("writing record %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// writeCSV writes a header line followed by one line per row.
func writeCSV(path string, ds Dataset) error {
	tw := table.NewWriter()
	header := make(table.Row, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)
	for _, row := range ds.Rows {
		cells := make(table.Row, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		tw.AppendRow(cells)
	}

	return writeAtomic(path, func(w *bufio.Writer) error {
		if _, err := w.WriteString(tw.RenderCSV()); err != nil {
			return err
		}
		return w.WriteByte('\n')
	})
}
