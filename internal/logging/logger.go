// Package logging provides leveled, structured logging for turing. Entries go
// to stderr so they never interleave with the machine trace on stdout. Fields
// are written as sorted key=value pairs after the message.
package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level represents a log level.
type Level int

const (
	// LevelDebug is for per-step tracing and parser diagnostics.
	LevelDebug Level = iota
	// LevelInfo is for run lifecycle events.
	LevelInfo
	// LevelWarn is for recoverable problems.
	LevelWarn
	// LevelError is for failures that end a command.
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String returns the upper-case level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a name such as "debug" or "WARN" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger provides structured logging with context fields.
type Logger struct {
	mu       sync.RWMutex
	minLevel Level
	fields   map[string]interface{}
	output   *log.Logger
	parent   *Logger
}

var defaultLogger = New()

// New creates a Logger at warn level writing to stderr.
func New() *Logger {
	return &Logger{
		minLevel: LevelWarn,
		fields:   make(map[string]interface{}),
		output:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// SetLevel sets the minimum log level. Child loggers created with With follow
// their root's level.
func (l *Logger) SetLevel(level Level) {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.minLevel = level
}

// SetOutput sets the output logger for l and every child created from it.
func (l *Logger) SetOutput(output *log.Logger) {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.output = output
}

func (l *Logger) root() *Logger {
	for l.parent != nil {
		l = l.parent
	}
	return l
}

// With returns a child Logger with one additional context field.
func (l *Logger) With(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a child Logger with additional context fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		fields: newFields,
		parent: l.root(),
	}
}

func (l *Logger) log(level Level, msg string, keyVals ...interface{}) {
	root := l.root()
	root.mu.RLock()
	minLevel := root.minLevel
	output := root.output
	root.mu.RUnlock()

	if level < minLevel {
		return
	}

	allFields := make(map[string]interface{}, len(l.fields)+len(keyVals)/2)
	for k, v := range l.fields {
		allFields[k] = v
	}
	for i := 0; i+1 < len(keyVals); i += 2 {
		if key, ok := keyVals[i].(string); ok {
			allFields[key] = keyVals[i+1]
		}
	}

	var sb strings.Builder
	sb.WriteString(level.String())
	sb.WriteString(": ")
	sb.WriteString(msg)

	if len(allFields) > 0 {
		keys := make([]string, 0, len(allFields))
		for k := range allFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" |")
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(formatValue(allFields[k]))
		}
	}

	output.Print(sb.String())
}

// formatValue quotes strings containing whitespace and errors.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\n") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case error:
		return fmt.Sprintf("%q", val.Error())
	case fmt.Stringer:
		return formatValue(val.String())
	default:
		return fmt.Sprint(v)
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyVals ...interface{}) {
	l.log(LevelDebug, msg, keyVals...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keyVals ...interface{}) {
	l.log(LevelInfo, msg, keyVals...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyVals ...interface{}) {
	l.log(LevelWarn, msg, keyVals...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keyVals ...interface{}) {
	l.log(LevelError, msg, keyVals...)
}

// Package-level functions that use the default logger.

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the output for the default logger.
func SetOutput(output *log.Logger) {
	defaultLogger.SetOutput(output)
}

// With returns a child of the default logger with one context field.
func With(key string, value interface{}) *Logger {
	return defaultLogger.With(key, value)
}

// Debug logs at debug level using the default logger.
func Debug(msg string, keyVals ...interface{}) {
	defaultLogger.Debug(msg, keyVals...)
}

// Info logs at info level using the default logger.
func Info(msg string, keyVals ...interface{}) {
	defaultLogger.Info(msg, keyVals...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, keyVals ...interface{}) {
	defaultLogger.Warn(msg, keyVals...)
}

// Error logs at error level using the default logger.
func Error(msg string, keyVals ...interface{}) {
	defaultLogger.Error(msg, keyVals...)
}
