// Package logging provides pre-configured logrus loggers for actionmenu
// components. Because the menu renders inside an editor or a TUI, loggers
// never write to stdout: output goes to a log file and, when appropriate,
// to stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific
// component. It uses a singleton pattern per component to avoid
// re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	// Configure Level
	levelStr := "info"
	if env := os.Getenv("ACTIONMENU_LOG_LEVEL"); env != "" {
		levelStr = env
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	if os.Getenv("ACTIONMENU_LOG_CALLER") == "true" {
		logger.SetReportCaller(true)
	}

	logger.SetFormatter(&TextFormatter{})

	// Configure Output Sinks
	var writers []io.Writer

	// File sink: explicit path via env, otherwise a date-based file under
	// the user's state directory.
	logFilePath := os.Getenv("ACTIONMENU_LOG_FILE")
	if logFilePath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dateStr := time.Now().Format("2006-01-02")
			logFilePath = filepath.Join(home, ".local", "state", "actionmenu",
				component+"-"+dateStr+".log")
		}
	}
	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err == nil {
			file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err == nil {
				writers = append(writers, file)
			}
		}
	}

	// Stderr sink: only when debugging or when stderr is not an
	// interactive terminal (piped, CI). Interactive use keeps stderr
	// clean so floating surfaces are not disturbed.
	isDebug := logger.GetLevel() == logrus.DebugLevel
	isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if isDebug || !isInteractive {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}
