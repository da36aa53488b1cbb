package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
)

// Console prints notifications as single styled lines.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Success(msg string) {
	c.print(successStyle.Render("✔ success"), msg)
}

func (c *Console) Warning(msg string) {
	c.print(warningStyle.Render("! warning"), msg)
}

func (c *Console) print(badge, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "%s %s\n", badge, msg)
}
