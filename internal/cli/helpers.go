package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// errUsage marks malformed command arguments.
var errUsage = errors.New("invalid arguments")

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseID parses a record id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: id %q: %w", errUsage, s, types.ErrInvalidID)
	}
	return id, nil
}

// parseValues turns key=value arguments into a form draft. A value may
// itself contain '='; a repeated key keeps its last value.
func parseValues(args []string) (types.Values, error) {
	values := make(types.Values, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", errUsage, arg)
		}
		values[key] = value
	}
	return values, nil
}
