// Package logger provides enhanced logging with stage-specific support
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger interface for abstracted logging
type Logger interface {
	Info(message string, fields ...Field)
	Error(message string, fields ...Field)
	Warn(message string, fields ...Field)
	Debug(message string, fields ...Field)
	Success(message string, fields ...Field)
	WithScope(scope string) Logger
}

// Field represents a structured logging field
type Field struct {
	Key   string
	Value interface{}
}

// WithField creates a new field
func WithField(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// ScopedLogger implements Logger with pipeline-stage awareness
type ScopedLogger struct {
	logger *logrus.Logger
	scope  string
	mu     sync.RWMutex
}

// CustomFormatter formats logs with colors and the gamekeeper prefix
type CustomFormatter struct {
	TimestampFormat string
	DisableColors   bool
}

// Format implements logrus.Formatter
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	pad := "🎮"
	timestamp := entry.Time.Format(f.TimestampFormat)

	// Color the level
	var levelColor *color.Color
	var levelText string

	switch entry.Level {
	case logrus.ErrorLevel:
		levelColor = color.New(color.FgRed, color.Bold)
		levelText = "ERROR"
	case logrus.WarnLevel:
		levelColor = color.New(color.FgYellow, color.Bold)
		levelText = "WARN"
	case logrus.InfoLevel:
		levelColor = color.New(color.FgCyan)
		levelText = "INFO"
	case logrus.DebugLevel:
		levelColor = color.New(color.FgWhite, color.Faint)
		levelText = "DEBUG"
	default:
		levelColor = color.New(color.FgGreen)
		levelText = "SUCCESS"
	}

	// Build scope prefix
	scopePrefix := ""
	if scope, ok := entry.Data["scope"]; ok {
		scopePrefix = fmt.Sprintf("[%s] ", color.New(color.FgBlue).Sprint(scope))
		delete(entry.Data, "scope") // Remove from data to avoid duplication
	}

	// Format the message
	var output string
	if f.DisableColors {
		output = fmt.Sprintf("%s [%s] %s: %s%s", pad, timestamp, levelText, scopePrefix, entry.Message)
	} else {
		output = fmt.Sprintf("%s [%s] %s: %s%s",
			pad,
			timestamp,
			levelColor.Sprint(levelText),
			scopePrefix,
			entry.Message,
		)
	}

	// Add remaining fields
	if len(entry.Data) > 0 {
		fields := " {"
		first := true
		for k, v := range entry.Data {
			if !first {
				fields += ", "
			}
			fields += fmt.Sprintf("%s=%v", k, v)
			first = false
		}
		fields += "}"
		output += color.New(color.FgWhite, color.Faint).Sprint(fields)
	}

	return []byte(output + "\n"), nil
}

// CreateLogger creates a new logger instance
func CreateLogger(logFile string, logLevel string) Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&CustomFormatter{
		TimestampFormat: "15:04:05",
		DisableColors:   false,
	})

	// Add file output if specified
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			multiWriter := io.MultiWriter(os.Stdout, file)
			log.SetOutput(multiWriter)
		}
	}

	return &ScopedLogger{
		logger: log,
	}
}

// CreateLoggerWithOutput creates a logger with custom output (for testing)
func CreateLoggerWithOutput(logFile string, logLevel string, output io.Writer) Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&CustomFormatter{
		TimestampFormat: "15:04:05",
		DisableColors:   true, // Disable colors for test output
	})

	log.SetOutput(output)

	return &ScopedLogger{
		logger: log,
	}
}

// WithScope creates a new logger tagged with a pipeline stage or directory
func (l *ScopedLogger) WithScope(scope string) Logger {
	return &ScopedLogger{
		logger: l.logger,
		scope:  scope,
	}
}

// convertFields converts Field slice to logrus.Fields
func (l *ScopedLogger) convertFields(fields []Field) logrus.Fields {
	result := make(logrus.Fields)
	if l.scope != "" {
		result["scope"] = l.scope
	}
	for _, f := range fields {
		result[f.Key] = f.Value
	}
	return result
}

// Info logs an info message
func (l *ScopedLogger) Info(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Info(message)
}

// Error logs an error message
func (l *ScopedLogger) Error(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Error(message)
}

// Warn logs a warning message
func (l *ScopedLogger) Warn(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Warn(message)
}

// Debug logs a debug message
func (l *ScopedLogger) Debug(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Debug(message)
}

// Success logs a success message (info level with special formatting)
func (l *ScopedLogger) Success(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Info("✅ " + message)
}
