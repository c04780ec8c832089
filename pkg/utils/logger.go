package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ColorCode returns the ANSI color code for the log level
func (l LogLevel) ColorCode() string {
	switch l {
	case LogLevelDebug:
		return "\033[36m" // Cyan
	case LogLevelInfo:
		return "\033[32m" // Green
	case LogLevelWarn:
		return "\033[33m" // Yellow
	case LogLevelError:
		return "\033[31m" // Red
	default:
		return "\033[0m" // Reset
	}
}

// Logger defines the logging contract. Every component receives a Logger at
// construction time; there is no process-wide instance.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	SetLevel(level LogLevel)
	SetOutput(w io.Writer)

	WithField(key string, value interface{}) Logger
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level       LogLevel
	Output      io.Writer
	EnableColor bool
}

// DefaultLoggerConfig returns a default logger configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       LogLevelInfo,
		Output:      os.Stderr,
		EnableColor: true,
	}
}

// ConsoleLogger is the default Logger implementation
type ConsoleLogger struct {
	config *LoggerConfig
	logger *log.Logger
	fields map[string]interface{}
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config *LoggerConfig) *ConsoleLogger {
	if config == nil {
		config = DefaultLoggerConfig()
	}

	return &ConsoleLogger{
		config: config,
		logger: log.New(config.Output, "", 0),
		fields: make(map[string]interface{}),
	}
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.config.Level <= LogLevelDebug {
		l.log(LogLevelDebug, msg, args...)
	}
}

// Info logs an info message
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	if l.config.Level <= LogLevelInfo {
		l.log(LogLevelInfo, msg, args...)
	}
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	if l.config.Level <= LogLevelWarn {
		l.log(LogLevelWarn, msg, args...)
	}
}

// Error logs an error message
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	if l.config.Level <= LogLevelError {
		l.log(LogLevelError, msg, args...)
	}
}

// log performs the actual logging
func (l *ConsoleLogger) log(level LogLevel, msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	l.logger.Print(l.formatEntry(level, msg))
}

// formatEntry creates a formatted log entry
func (l *ConsoleLogger) formatEntry(level LogLevel, msg string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var builder strings.Builder

	if l.config.EnableColor {
		builder.WriteString(level.ColorCode())
	}

	builder.WriteString(fmt.Sprintf("[%s] %s", timestamp, level.String()))

	if len(l.fields) > 0 {
		builder.WriteString(" {")
		first := true
		for k, v := range l.fields {
			if !first {
				builder.WriteString(", ")
			}
			builder.WriteString(fmt.Sprintf("%s=%v", k, v))
			first = false
		}
		builder.WriteString("}")
	}

	builder.WriteString(fmt.Sprintf(" %s", msg))

	if l.config.EnableColor {
		builder.WriteString("\033[0m")
	}

	return builder.String()
}

// SetLevel sets the logging level
func (l *ConsoleLogger) SetLevel(level LogLevel) {
	l.config.Level = level
}

// SetOutput sets the output writer
func (l *ConsoleLogger) SetOutput(w io.Writer) {
	l.config.Output = w
	l.logger = log.New(w, "", 0)
}

// WithField returns a logger with an additional field
func (l *ConsoleLogger) WithField(key string, value interface{}) Logger {
	newLogger := &ConsoleLogger{
		config: l.config,
		logger: l.logger,
		fields: make(map[string]interface{}),
	}

	for k, v := range l.fields {
		newLogger.fields[k] = v
	}
	newLogger.fields[key] = value

	return newLogger
}

// NopLogger discards everything. Useful in tests and for library callers
// that do not want console output.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{})           {}
func (NopLogger) Info(string, ...interface{})            {}
func (NopLogger) Warn(string, ...interface{})            {}
func (NopLogger) Error(string, ...interface{})           {}
func (NopLogger) SetLevel(LogLevel)                      {}
func (NopLogger) SetOutput(io.Writer)                    {}
func (n NopLogger) WithField(string, interface{}) Logger { return n }
