// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
// Everything is written to stderr; stdout belongs to the IPC stream.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.Mutex
	loggers []*log.Logger
	output  io.Writer = os.Stderr
)

// New creates a new default charm log.
func New(prefix string) *log.Logger {
	return register(log.NewWithOptions(output, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	}))
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return register(log.NewWithOptions(output, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	}))
}

func register(l *log.Logger) *log.Logger {
	mu.Lock()
	loggers = append(loggers, l)
	mu.Unlock()
	return l
}

// Setup points the global logger at stderr and applies level to it and to
// every logger created by this package.
func Setup(level log.Level) {
	log.SetOutput(output)
	SetLevel(level)
}

// SetLevel changes the level of the global logger and of every logger created by this package.
func SetLevel(level log.Level) {
	log.SetLevel(level)
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		l.SetLevel(level)
	}
}
