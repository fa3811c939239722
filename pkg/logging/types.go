package logging

import "fmt"

// LogLevel represents the severity of a log message
type LogLevel string

const (
	// LogLevelDebug is for debug messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is for informational messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is for warning messages
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is for error messages
	LogLevelError LogLevel = "error"
)

// App is the global application logger
var App *AppLogger

func init() {
	// Default logger writes to stderr at info level
	var err error
	App, err = NewAppLogger("", LogLevelInfo)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default app logger: %v", err))
	}
}

// Initialize sets up the global logger. An empty logPath logs to stderr.
func Initialize(logPath string, level LogLevel) error {
	if level == "" {
		level = LogLevelInfo
	}

	newApp, err := NewAppLogger(logPath, level)
	if err != nil {
		return fmt.Errorf("failed to initialize app logger: %w", err)
	}

	App = newApp
	return nil
}

// MustInitialize initializes logging and panics on error
func MustInitialize(logPath string, level LogLevel) {
	if err := Initialize(logPath, level); err != nil {
		panic(fmt.Sprintf("failed to initialize logging: %v", err))
	}
}
