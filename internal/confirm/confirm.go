// Package confirm asks the user before a destructive action runs.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/backoffice/internal/notify"
)

// Request describes the item about to be deleted and the messages shown
// once the action finishes.
type Request struct {
	ItemName       string
	ItemType       string
	SuccessMessage string
	ErrorMessage   string
}

// Confirmer runs onConfirm only after the user agrees. It reports whether
// the action ran; an error from onConfirm is returned as is.
type Confirmer interface {
	Confirm(ctx context.Context, req Request, onConfirm func() error) (bool, error)
}

// Always answers every request with the same choice and never prompts.
type Always bool

func (a Always) Confirm(ctx context.Context, _ Request, onConfirm func() error) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !a {
		return false, nil
	}
	if err := onConfirm(); err != nil {
		return false, err
	}
	return true, nil
}

// AskFunc shows question and returns the user's answer. io.EOF means the
// user gave no answer.
type AskFunc func(question string) (string, error)

// Prompt asks a question and reports the outcome through a notifier.
type Prompt struct {
	ask      AskFunc
	notifier notify.Notifier
}

// NewPrompt returns a Prompt asking on out and reading answers from in.
// A nil notifier discards the outcome messages.
func NewPrompt(in io.Reader, out io.Writer, n notify.Notifier) *Prompt {
	r := bufio.NewReader(in)
	return NewAsk(func(question string) (string, error) {
		if _, err := fmt.Fprint(out, question); err != nil {
			return "", err
		}
		return r.ReadString('\n')
	}, n)
}

// NewAsk returns a Prompt built on an arbitrary question/answer function,
// such as a line editor that already owns the terminal.
func NewAsk(ask AskFunc, n notify.Notifier) *Prompt {
	if n == nil {
		n = notify.Discard
	}
	return &Prompt{ask: ask, notifier: n}
}

// Confirm asks "Delete <type> "<name>"? [y/N]". Only y or yes confirms; end
// of input counts as no.
func (p *Prompt) Confirm(ctx context.Context, req Request, onConfirm func() error) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	question := fmt.Sprintf("Delete %s %q? This cannot be undone. [y/N] ", req.ItemType, req.ItemName)
	answer, err := p.ask(question)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
	default:
		return false, nil
	}

	if err := onConfirm(); err != nil {
		if req.ErrorMessage != "" {
			p.notifier.Warning(req.ErrorMessage)
		}
		return false, err
	}
	if req.SuccessMessage != "" {
		p.notifier.Success(req.SuccessMessage)
	}
	return true, nil
}

// Yes confirms every request without asking and still reports the outcome
// messages through n.
func Yes(n notify.Notifier) *Prompt {
	return NewAsk(func(string) (string, error) { return "yes", nil }, n)
}
