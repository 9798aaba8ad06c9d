// Package logging builds the charmbracelet/log logger shared by the CLI,
// the TUI and the controller.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasklist/internal/config"
)

// New returns a logger writing to w at the configured level and format.
func New(w io.Writer, cfg config.LogConfig) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     ParseLevel(cfg.Level),
		Formatter: ParseFormatter(cfg.Format),
		Prefix:    "tasklist",
	})
}

// ParseLevel maps a level name to a log.Level. Unknown names mean warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter maps a formatter name to a log.Formatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
