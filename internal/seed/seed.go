// Package seed loads the mock datasets a back-office session starts from.
// Each entity has one JSONL file, one record per line. The files ship
// embedded in the binary; a seed directory may override any of them.
package seed

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Dataset file names, without the .jsonl extension.
const (
	Users          = "users"
	Products       = "products"
	Roles          = "roles"
	PurchaseOrders = "purchase_orders"
	Services       = "services"
)

// Names lists every dataset shipped with the binary.
var Names = []string{Users, Products, Roles, PurchaseOrders, Services}

//go:embed data/*.jsonl
var embedded embed.FS

// FileName returns the file a dataset is read from.
func FileName(name string) string { return name + ".jsonl" }

// Load reads dataset name. When dir is set and holds <name>.jsonl that file
// wins; otherwise the embedded copy is used. Blank lines and lines that are
// not JSON are skipped. A JSON line that does not decode into T fails the
// load with ErrDecode; two records sharing an id fail it with ErrDuplicateID.
func Load[T types.Record](name, dir string) ([]T, error) {
	data, err := open(name, dir)
	if err != nil {
		return nil, err
	}
	records, err := readJSONL(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName(name), err)
	}

	out := make([]T, 0, len(records))
	for i, raw := range records {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("%s record %d: %w: %v", FileName(name), i+1, types.ErrDecode, err)
		}
		out = append(out, item)
	}

	if dups := lo.FindDuplicatesBy(out, func(item T) int64 { return item.GetID() }); len(dups) > 0 {
		return nil, fmt.Errorf("%s id %d: %w", FileName(name), dups[0].GetID(), types.ErrDuplicateID)
	}
	return out, nil
}

func open(name, dir string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, FileName(name)))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("opening %s: %w", FileName(name), err)
		}
	}
	data, err := embedded.ReadFile("data/" + FileName(name))
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, types.ErrUnknownEntity)
	}
	return data, nil
}

// readJSONL returns each non-empty, well-formed line of r.
func readJSONL(r io.Reader) ([]json.RawMessage, error) {
	var records []json.RawMessage
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		records = append(records, json.RawMessage(bytes.Clone(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
