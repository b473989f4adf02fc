// Package notify abstracts the single-line message sink used to report
// informational notices and errors to the user, independent of the host
// (editor notification area, log file, test capture).
package notify

import "github.com/sirupsen/logrus"

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier delivers single-line messages to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// Logger is a Notifier backed by a logrus entry, used when no host
// notification area is available.
type Logger struct {
	Entry *logrus.Entry
}

func (l *Logger) Notify(level Level, message string) {
	switch level {
	case LevelError:
		l.Entry.Error(message)
	case LevelWarn:
		l.Entry.Warn(message)
	default:
		l.Entry.Info(message)
	}
}
