// Package notify delivers user-facing success and warning notifications
// ("toasts"). Delivery is fire-and-forget: callers never inspect a result.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Notification is one delivered message.
type Notification struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

func newNotification(level Level, msg string) Notification {
	return Notification{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Level:   level,
		Message: msg,
		At:      time.Now(),
	}
}

// Notifier shows success and warning messages.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Warning(string) {}

// Tee fans every notification out to each notifier in turn.
func Tee(notifiers ...Notifier) Notifier {
	return tee(notifiers)
}

type tee []Notifier

func (t tee) Success(msg string) {
	for _, n := range t {
		n.Success(msg)
	}
}

func (t tee) Warning(msg string) {
	for _, n := range t {
		n.Warning(msg)
	}
}
