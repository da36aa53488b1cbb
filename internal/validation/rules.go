// Package validation implements per-field form validation for backoffice
// entities. Validators are pure: the result depends only on the field value,
// the whole draft and the Context, never on hidden state.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mesh-intelligence/backoffice/internal/form"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

var validate = validator.New()

// check runs a single validator tag against value.
func check(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

// Context carries what a rule needs beyond the draft itself.
type Context struct {
	Mode     form.Mode
	ID       int64        // Record being edited; zero when creating.
	Original types.Values // Stored values of the edited record.

	// Taken reports whether another record already uses value for field.
	// The record being edited is never reported. Nil means nothing is taken.
	Taken func(field, value string) bool
}

func (c Context) taken(field, value string) bool {
	if c.Taken == nil {
		return false
	}
	return c.Taken(field, value)
}

// Rule returns an error message for value, or "" when it is acceptable.
type Rule func(value string, draft types.Values, ctx Context) string

// Required rejects blank values. Every other rule accepts a blank value so
// that emptiness is reported once, by Required.
func Required(msg string) Rule {
	return func(value string, _ types.Values, _ Context) string {
		if strings.TrimSpace(value) == "" {
			return msg
		}
		return ""
	}
}

// nonBlank wraps a check that only applies to non-blank values.
func nonBlank(msg string, ok func(v string) bool) Rule {
	return func(value string, _ types.Values, _ Context) string {
		v := strings.TrimSpace(value)
		if v == "" || ok(v) {
			return ""
		}
		return msg
	}
}

// Digits accepts only ASCII digits.
func Digits(msg string) Rule {
	return nonBlank(msg, func(v string) bool { return check(v, "number") })
}

// Length requires exactly n characters.
func Length(n int, msg string) Rule {
	return nonBlank(msg, func(v string) bool { return check(v, fmt.Sprintf("len=%d", n)) })
}

// LengthBetween requires between min and max characters inclusive.
func LengthBetween(min, max int, msg string) Rule {
	return nonBlank(msg, func(v string) bool { return check(v, fmt.Sprintf("min=%d,max=%d", min, max)) })
}

// MinLength requires at least n characters. Blanks count, so a password of
// six spaces passes; Required still rejects an all-blank value.
func MinLength(n int, msg string) Rule {
	return func(value string, _ types.Values, _ Context) string {
		if value == "" || check(value, fmt.Sprintf("min=%d", n)) {
			return ""
		}
		return msg
	}
}

// MaxLength allows at most n characters.
func MaxLength(n int, msg string) Rule {
	return nonBlank(msg, func(v string) bool { return check(v, fmt.Sprintf("max=%d", n)) })
}

// Email accepts an address of the shape local@domain.tld.
func Email(msg string) Rule {
	return nonBlank(msg, func(v string) bool { return check(v, "email") })
}

// URL accepts an absolute URL.
func URL(msg string) Rule {
	return nonBlank(msg, func(v string) bool { return check(v, "url") })
}

// Date accepts a YYYY-MM-DD calendar date.
func Date(msg string) Rule {
	return nonBlank(msg, func(v string) bool { return check(v, "datetime="+types.DateLayout) })
}

// Pattern accepts values matching re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return nonBlank(msg, re.MatchString)
}

var lettersRe = regexp.MustCompile(`^[\p{L}][\p{L} '.-]*$`)

// Letters accepts names made of letters, spaces, apostrophes, dots and
// hyphens.
func Letters(msg string) Rule {
	return Pattern(lettersRe, msg)
}

// OneOf accepts one of a fixed list of options.
func OneOf(options []string, msg string) Rule {
	tag := "oneof=" + strings.Join(options, " ")
	return nonBlank(msg, func(v string) bool { return check(v, tag) })
}

// InSet accepts one of the options returned by options at validation time.
// A nil options func accepts anything.
func InSet(options func() []string, msg string) Rule {
	return nonBlank(msg, func(v string) bool {
		if options == nil {
			return true
		}
		for _, o := range options() {
			if strings.EqualFold(o, v) {
				return true
			}
		}
		return false
	})
}

// PositiveNumber accepts a decimal number greater than zero.
func PositiveNumber(msg string) Rule {
	return nonBlank(msg, func(v string) bool {
		f, err := strconv.ParseFloat(v, 64)
		return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && check(f, "gt=0")
	})
}

// IntAtLeast accepts an integer greater than or equal to min.
func IntAtLeast(min int, msg string) Rule {
	return nonBlank(msg, func(v string) bool {
		n, err := strconv.Atoi(v)
		return err == nil && check(n, fmt.Sprintf("gte=%d", min))
	})
}

// EqualsField requires the value to equal the draft value of other.
func EqualsField(other, msg string) Rule {
	return func(value string, draft types.Values, _ Context) string {
		if value != draft[other] {
			return msg
		}
		return ""
	}
}

// Unique rejects a value already used by another record for field.
func Unique(field, msg string) Rule {
	return func(value string, _ types.Values, ctx Context) string {
		v := strings.TrimSpace(value)
		if v != "" && ctx.taken(field, v) {
			return msg
		}
		return ""
	}
}

// ListNotEmpty requires at least one item in a comma separated list.
func ListNotEmpty(msg string) Rule {
	return func(value string, _ types.Values, _ Context) string {
		if len(types.SplitList(value)) == 0 {
			return msg
		}
		return ""
	}
}

// ListOf requires every item of a comma separated list to pass known.
// The message names the first unknown item.
func ListOf(known func(string) bool, format string) Rule {
	return func(value string, _ types.Values, _ Context) string {
		for _, item := range types.SplitList(value) {
			if !known(item) {
				return fmt.Sprintf(format, item)
			}
		}
		return ""
	}
}
