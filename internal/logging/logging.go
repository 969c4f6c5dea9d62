// Package logging provides a leveled wrapper over the standard logger.
package logging

import (
	"log"
	"os"
	"strings"
)

// Level controls logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps "ERROR", "WARN", "INFO" or "DEBUG" (any case) to a Level.
// Anything else is LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "DEBUG":
		return LevelDebug
	}
	return LevelInfo
}

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelDebug:
		return "DEBUG"
	}
	return "INFO"
}

// Logger provides leveled logging.
type Logger struct {
	level  Level
	logger *log.Logger
}

// New creates a logger writing through the standard log package.
func New(level Level) *Logger {
	return &Logger{level: level, logger: log.Default()}
}

// NewFromEnv creates a logger from the LOG_LEVEL environment variable.
func NewFromEnv() *Logger {
	return New(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// Error logs error messages.
func (l *Logger) Error(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
}

// Warn logs warning messages.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

// Info logs info messages.
func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

// Debug logs debug messages.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool { return l != nil && l.level >= level }

// Level returns the current level.
func (l *Logger) Level() Level { return l.level }

func (l *Logger) printf(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.logger.Printf("["+level.String()+"] "+format, args...)
}
