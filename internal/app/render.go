package app

import (
	"errors"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// ErrUnknownAction is returned when a page has no action by that name.
var ErrUnknownAction = errors.New("unknown action")

// Prices are shown the way the shop's customers read them: pesos with dot
// thousands separators.
var pricePrinter = message.NewPrinter(language.MustParse("es-CO"))

// Money formats an amount as whole pesos, e.g. "$ 32.000".
func Money(amount float64) string {
	return pricePrinter.Sprintf("$ %.0f", amount)
}

var (
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Status renders a status value with a color matching its meaning.
func Status(s string) string {
	switch s {
	case types.StatusActive, types.PurchaseOrderReceived:
		return goodStyle.Render(s)
	case types.PurchaseOrderPending:
		return pendingStyle.Render(s)
	case types.PurchaseOrderCancelled:
		return badStyle.Render(s)
	default:
		return mutedStyle.Render(s)
	}
}

// Fold lowercases s and strips diacritics, so "Café" matches "cafe".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
