// Package logger provides structured logging for the navstamp binary.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// RunStarted logs the start of a normalize run
func (l *Logger) RunStarted(vault string, total int, dryRun bool) {
	l.Info("normalize started",
		"vault", vault,
		"files", total,
		"dry_run", dryRun)
}

// RunCompleted logs the completion of a normalize run
func (l *Logger) RunCompleted(changed, unchanged, failed int, duration time.Duration) {
	l.Info("normalize completed",
		"changed", changed,
		"unchanged", unchanged,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FileChanged logs a file whose frontmatter was updated
func (l *Logger) FileChanged(path, action, icon string) {
	l.Info("file updated",
		"file", path,
		"action", action,
		"icon", icon)
}

// FileFailed logs an error for a specific file
func (l *Logger) FileFailed(path string, err error) {
	l.Error("file failed",
		"file", path,
		"error", err)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(path, reason string) {
	l.Debug("file skipped",
		"file", path,
		"reason", reason)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(vault, configFile string) {
	l.Debug("config loaded",
		"vault", vault,
		"config", configFile)
}

// ReportSaved logs where the run report was written
func (l *Logger) ReportSaved(path string) {
	l.Debug("report saved", "path", path)
}
