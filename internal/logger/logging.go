// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates the process logger. It writes to stderr so stdout stays free
// for the msgpack stream; debug mode lowers the level and adds timestamps.
func New(prefix string, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: debug,
		Formatter:       log.TextFormatter,
	})
}
