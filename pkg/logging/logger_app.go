package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// AppLogger is a leveled, field-structured application logger. Callers pass
// fields as alternating key/value pairs; odd trailing values are dropped.
type AppLogger struct {
	logger *logrus.Logger
	file   *os.File // nil when logging to stderr
}

// NewAppLogger creates a new application logger. An empty logPath logs to
// stderr; otherwise the log directory is created as needed and the file is
// opened for append.
func NewAppLogger(logPath string, level LogLevel) (*AppLogger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch level {
	case LogLevelDebug:
		logger.SetLevel(logrus.DebugLevel)
	case LogLevelWarn:
		logger.SetLevel(logrus.WarnLevel)
	case LogLevelError:
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	var file *os.File
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		logger.SetOutput(f)
		file = f
	} else {
		logger.SetOutput(os.Stderr)
	}

	return &AppLogger{
		logger: logger,
		file:   file,
	}, nil
}

func fields(keyvals []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		f[fmt.Sprintf("%v", keyvals[i])] = keyvals[i+1]
	}
	return f
}

// Debug logs a debug message with key/value fields
func (l *AppLogger) Debug(message string, keyvals ...interface{}) {
	l.logger.WithFields(fields(keyvals)).Debug(message)
}

// Info logs an informational message with key/value fields
func (l *AppLogger) Info(message string, keyvals ...interface{}) {
	l.logger.WithFields(fields(keyvals)).Info(message)
}

// Warn logs a warning with key/value fields
func (l *AppLogger) Warn(message string, keyvals ...interface{}) {
	l.logger.WithFields(fields(keyvals)).Warn(message)
}

// Error logs an error with key/value fields
func (l *AppLogger) Error(message string, keyvals ...interface{}) {
	l.logger.WithFields(fields(keyvals)).Error(message)
}

// IsDebug returns true if the logger is at debug level
func (l *AppLogger) IsDebug() bool {
	return l.logger.IsLevelEnabled(logrus.DebugLevel)
}

// Close closes the underlying log file, if any
func (l *AppLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
