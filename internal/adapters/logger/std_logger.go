package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baditaflorin/go_wordlist_check/internal/ports"
	"github.com/baditaflorin/l"
)

// Level is the minimum severity a StdLogger writes.
type Level = l.Level

const (
	LevelDebug = l.LevelDebug
	LevelInfo  = l.LevelInfo
	LevelWarn  = l.LevelWarn
	LevelError = l.LevelError
)

// ParseLevel parses "debug", "info", "warn"/"warning" or "error".
// Unlike l.ParseLevel it rejects unknown names.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "debug", "info", "warn", "error", "":
	case "warning":
		name = "warn"
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return l.ParseLevel(name), nil
}

// Options configures a StdLogger.
type Options struct {
	// Output defaults to os.Stderr; stdout is reserved for wordlist data.
	Output io.Writer
	Level  Level
	JSON   bool
}

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger creates a new standard logger adapter writing to stderr at warn level.
func NewStdLogger() (ports.Logger, error) {
	return NewStdLoggerWithOptions(Options{Level: LevelWarn})
}

// NewStdLoggerWithOptions creates a new standard logger adapter.
func NewStdLoggerWithOptions(opts Options) (ports.Logger, error) {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		Level:       opts.Level,
		MinLevel:    opts.Level,
		JsonFormat:  opts.JSON,
		AsyncWrite:  false, // diagnostics must be on stderr before the process exits
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   false,
		Metrics:     false,
	})
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger}, nil
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
// Filtering follows config.MinLevel.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger}, nil
}

// FromExisting creates a new StdLogger from an existing l.Logger, keeping its level.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close closes the logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}

// Nop discards everything.
type Nop struct{}

// NewNop returns a logger that discards all messages.
func NewNop() ports.Logger { return Nop{} }

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Close() error                 { return nil }
