// Package logging provides leveled logging for the MCP server.
//
// All output goes to stderr by default: stdout carries the framed protocol
// stream and must never receive log lines.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// LogLevel controls which messages a logger emits.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// LogLevel. Unknown names default to InfoLevel.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger is the logging interface used throughout the server.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// formatKeyValues renders trailing key-value pairs as "k=v" tokens. An
// orphaned key is rendered as "key=?".
func formatKeyValues(keysAndValues ...interface{}) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		sb.WriteByte(' ')
		if i+1 < len(keysAndValues) {
			sb.WriteString(fmt.Sprintf("%v=%v", keysAndValues[i], keysAndValues[i+1]))
		} else {
			sb.WriteString(fmt.Sprintf("%v=?", keysAndValues[i]))
		}
	}
	return sb.String()
}

// StdLogger writes leveled messages using the standard library log package.
type StdLogger struct {
	logger *log.Logger
	level  LogLevel
}

// NewStdLogger creates a logger writing to stderr at the given level.
func NewStdLogger(level LogLevel) *StdLogger {
	return &StdLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
		level:  level,
	}
}

// SetLevel changes the minimum level the logger emits.
func (l *StdLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *StdLogger) log(level LogLevel, tag, msg string, keysAndValues ...interface{}) {
	if level < l.level {
		return
	}
	l.logger.Printf("[%s] %s%s", tag, msg, formatKeyValues(keysAndValues...))
}

func (l *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(DebugLevel, "DEBUG", msg, keysAndValues...)
}

func (l *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(InfoLevel, "INFO", msg, keysAndValues...)
}

func (l *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(WarnLevel, "WARN", msg, keysAndValues...)
}

func (l *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(ErrorLevel, "ERROR", msg, keysAndValues...)
}

// NoopLogger discards all messages.
type NoopLogger struct{}

// NewNoopLogger creates a logger that does nothing.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *NoopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *NoopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *NoopLogger) Error(msg string, keysAndValues ...interface{}) {}

// TestingT is the subset of testing.T used by TestLogger.
type TestingT interface {
	Logf(format string, args ...interface{})
}

// TestLogger forwards messages to a testing.T.
type TestLogger struct {
	t     TestingT
	level LogLevel
}

// NewTestLogger creates a logger that writes through t.Logf at DebugLevel.
func NewTestLogger(t TestingT) *TestLogger {
	return &TestLogger{t: t, level: DebugLevel}
}

// SetLevel changes the minimum level the logger emits.
func (l *TestLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *TestLogger) log(level LogLevel, tag, msg string, keysAndValues ...interface{}) {
	if level < l.level {
		return
	}
	l.t.Logf("[%s] %s%s", tag, msg, formatKeyValues(keysAndValues...))
}

func (l *TestLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(DebugLevel, "DEBUG", msg, keysAndValues...)
}

func (l *TestLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(InfoLevel, "INFO", msg, keysAndValues...)
}

func (l *TestLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(WarnLevel, "WARN", msg, keysAndValues...)
}

func (l *TestLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(ErrorLevel, "ERROR", msg, keysAndValues...)
}
