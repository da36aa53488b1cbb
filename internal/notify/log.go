package notify

import "log/slog"

// Log records notifications through a structured logger.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a notifier logging to logger, or to slog.Default when
// logger is nil.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Success(msg string) {
	l.logger.Info("notification", "level", LevelSuccess, "message", msg)
}

func (l *Log) Warning(msg string) {
	l.logger.Warn("notification", "level", LevelWarning, "message", msg)
}
