// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log on stdout.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stdout, prefix)
}

// NewWithWriter creates a charm log on w that respects the global log level.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Silence routes the global logger to io.Discard and returns a func that
// restores the previous writer. The full-screen UI owns the terminal while
// it runs, so stray log lines would corrupt it.
func Silence() func() {
	log.SetOutput(io.Discard)
	return func() {
		log.SetOutput(os.Stderr)
	}
}
