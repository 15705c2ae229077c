// SPDX-License-Identifier: AGPL-3.0-only
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New builds the process logger. JSON output is meant for log shippers, the
// text formatter for terminals.
func New(w io.Writer, level string, json bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "postview",
	})
	if json {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

// Discard is used by tests and by components constructed without a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
