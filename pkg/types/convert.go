package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %s: %q is not a number", ErrDecode, field, s)
	}
	return f, nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrDecode, field, s)
	}
	return n, nil
}

// SplitList splits a comma separated form value, trimming blanks and
// dropping empty items.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
