package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
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

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// DocumentParsed logs a successfully parsed document
func (l *Logger) DocumentParsed(path string, todos int, duration time.Duration) {
	l.Debug("document parsed",
		"file", path,
		"todos", todos,
		"duration", duration.Round(time.Microsecond))
}

// EmptyDocument logs a document with no content at all
func (l *Logger) EmptyDocument(path string) {
	l.Warn("document is empty",
		"file", path)
}

// ParseFailed logs a document that does not match the to-do grammar
func (l *Logger) ParseFailed(path string, err error) {
	l.Error("parse failed",
		"file", path,
		"error", err)
}

// ScanStarted logs the start of a directory scan
func (l *Logger) ScanStarted(dir string) {
	l.Info("scan started",
		"dir", dir)
}

// ScanCompleted logs the completion of a directory scan
func (l *Logger) ScanCompleted(files int, errors int, duration time.Duration) {
	l.Info("scan completed",
		"files_scanned", files,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, minDepth int, strict bool) {
	l.Debug("config loaded",
		"path", path,
		"min_depth", minDepth,
		"strict", strict)
}

// Reloaded logs a document reload in the browser
func (l *Logger) Reloaded(path, reason string) {
	l.Debug("document reloaded",
		"file", path,
		"reason", reason)
}
