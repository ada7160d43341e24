package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug for detailed troubleshooting
	LevelDebug LogLevel = iota
	// LevelInfo for general operational information
	LevelInfo
	// LevelWarning for non-critical issues
	LevelWarning
	// LevelError for errors that should be addressed
	LevelError
	// LevelCritical for severe failures such as simulated crashes
	LevelCritical
	// LevelFatal for unrecoverable startup errors; logging at this level exits
	LevelFatal
)

var levelNames = map[LogLevel]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
	LevelFatal:    "FATAL",
}

// String returns the canonical name of the log level
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Logger is the interface for logging messages
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
	Critical(format string, args ...interface{})
	Fatal(format string, args ...interface{})
	Log(level LogLevel, format string, args ...interface{})
	SetLevel(level LogLevel)
	SetOutput(w io.Writer)
}

// StandardLogger is a simple implementation of the Logger interface
type StandardLogger struct {
	level  LogLevel
	output io.Writer
}

// NewLogger creates a new StandardLogger with the specified log level
func NewLogger(level LogLevel) *StandardLogger {
	return &StandardLogger{
		level:  level,
		output: os.Stdout,
	}
}

// SetLevel sets the minimum log level that will be output
func (l *StandardLogger) SetLevel(level LogLevel) {
	l.level = level
}

// SetOutput sets the output destination for the logger
func (l *StandardLogger) SetOutput(w io.Writer) {
	l.output = w
}

// log outputs a log message if the level is sufficient
func (l *StandardLogger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	levelName := levelNames[level]
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(l.output, "[%s] [%s] %s\n", timestamp, levelName, message)

	if level == LevelFatal {
		os.Exit(1)
	}
}

// Log logs a message at an arbitrary level
func (l *StandardLogger) Log(level LogLevel, format string, args ...interface{}) {
	l.log(level, format, args...)
}

// Debug logs a debug message
func (l *StandardLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an informational message
func (l *StandardLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warning logs a warning message
func (l *StandardLogger) Warning(format string, args ...interface{}) {
	l.log(LevelWarning, format, args...)
}

// Error logs an error message
func (l *StandardLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Critical logs a critical message without terminating the process
func (l *StandardLogger) Critical(format string, args ...interface{}) {
	l.log(LevelCritical, format, args...)
}

// Fatal logs a fatal message and exits the program
func (l *StandardLogger) Fatal(format string, args ...interface{}) {
	l.log(LevelFatal, format, args...)
}

// ParseLogLevel converts a string log level to a LogLevel. Unknown
// strings fall back to LevelInfo.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warning", "warn":
		return LevelWarning
	case "error":
		return LevelError
	case "critical":
		return LevelCritical
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Global logger instance
var defaultLogger = NewLogger(LevelInfo)

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger *StandardLogger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the global default logger
func GetDefaultLogger() *StandardLogger {
	return defaultLogger
}

// Global convenience functions that use the default logger

// Debug logs a debug message using the default logger
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Info logs an informational message using the default logger
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Warning logs a warning message using the default logger
func Warning(format string, args ...interface{}) {
	defaultLogger.Warning(format, args...)
}

// Error logs an error message using the default logger
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

// Critical logs a critical message using the default logger
func Critical(format string, args ...interface{}) {
	defaultLogger.Critical(format, args...)
}

// Fatal logs a fatal message and exits the program using the default logger
func Fatal(format string, args ...interface{}) {
	defaultLogger.Fatal(format, args...)
}

// Log logs a message at an arbitrary level using the default logger
func Log(level LogLevel, format string, args ...interface{}) {
	defaultLogger.Log(level, format, args...)
}
