package logger

import (
	"context"
	"os"
	"strings"
	"time"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelFatal LogLevel = "FATAL"
)

// ParseLevel maps names such as "warn" or "ERROR" to a LogLevel. Unknown
// names resolve to debug.
func ParseLevel(name string) LogLevel {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(name)))
	switch level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelFatal:
		return level
	case "WARNING":
		return LogLevelWarn
	default:
		return LogLevelDebug
	}
}

type attributes = map[string]any

type LogEntry struct {
	Level      LogLevel
	Message    string
	Attributes attributes
	Error      error
	Timestamp  time.Time
}

type Logger interface {
	Log(ctx context.Context, entry LogEntry)
	Shutdown(ctx context.Context) error
}

// noopLogger discards entries until Initialize runs.
type noopLogger struct{}

func (noopLogger) Log(context.Context, LogEntry)  {}
func (noopLogger) Shutdown(context.Context) error { return nil }

var globalLogger Logger = noopLogger{}

func emit(ctx context.Context, level LogLevel, message string, err error, attrs attributes) {
	globalLogger.Log(ctx, LogEntry{
		Level:      level,
		Message:    message,
		Attributes: attrs,
		Error:      err,
		Timestamp:  time.Now(),
	})
}

func Debug(ctx context.Context, message string, attrs attributes) {
	emit(ctx, LogLevelDebug, message, nil, attrs)
}

func Info(ctx context.Context, message string, attrs attributes) {
	emit(ctx, LogLevelInfo, message, nil, attrs)
}

func Warn(ctx context.Context, message string, attrs attributes) {
	emit(ctx, LogLevelWarn, message, nil, attrs)
}

func Error(ctx context.Context, message string, err error, attrs attributes) {
	emit(ctx, LogLevelError, message, err, attrs)
}

// Fatal logs and terminates the process.
func Fatal(ctx context.Context, message string, err error, attrs attributes) {
	emit(ctx, LogLevelFatal, message, err, attrs)
}

func Log(ctx context.Context, entry LogEntry) {
	globalLogger.Log(ctx, entry)
}

func Shutdown(ctx context.Context) error {
	return globalLogger.Shutdown(ctx)
}

type Options struct {
	CollectorEndpoint string
	ServiceName       string
	IsProduction      bool
	// Verbose adds entry attributes to stdout output.
	Verbose bool
	// Level and Format only apply to stdout output; Format is "text" or "json".
	Level  string
	Format string
}

func Initialize(opts Options) error {
	if !opts.IsProduction {
		globalLogger = newStdoutLogger(os.Stdout, opts)
		return nil
	}

	l, err := initializeOtelLogger(opts.CollectorEndpoint, opts.ServiceName)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}
