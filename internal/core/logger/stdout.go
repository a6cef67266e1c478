package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// levelFatal sits above slog.LevelError so handlers never filter it out.
const levelFatal = slog.Level(12)

var slogLevels = map[LogLevel]slog.Level{
	LogLevelDebug: slog.LevelDebug,
	LogLevelInfo:  slog.LevelInfo,
	LogLevelWarn:  slog.LevelWarn,
	LogLevelError: slog.LevelError,
	LogLevelFatal: levelFatal,
}

type StdoutLogger struct {
	logger  *slog.Logger
	verbose bool
	exit    func(code int)
}

func newStdoutLogger(w io.Writer, opts Options) *StdoutLogger {
	minLevel, ok := slogLevels[ParseLevel(opts.Level)]
	if !ok {
		minLevel = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{
		Level: minLevel,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.LevelKey && attr.Value.Any() == levelFatal {
				attr.Value = slog.StringValue(string(LogLevelFatal))
			}
			return attr
		},
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return &StdoutLogger{
		logger:  slog.New(handler).With(slog.String("service", opts.ServiceName)),
		verbose: opts.Verbose,
		exit:    os.Exit,
	}
}

func (l *StdoutLogger) Log(ctx context.Context, entry LogEntry) {
	level, ok := slogLevels[entry.Level]
	if !ok {
		level = slog.LevelInfo
	}

	args := make([]any, 0, len(entry.Attributes)*2+4)
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if entry.Error != nil {
		args = append(args, "error", entry.Error.Error())
	}
	// attributes are noisy on a terminal, keep them behind the verbose flag
	if l.verbose {
		keys := make([]string, 0, len(entry.Attributes))
		for key := range entry.Attributes {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			args = append(args, key, entry.Attributes[key])
		}
	}

	l.logger.Log(ctx, level, entry.Message, args...)
	if entry.Level == LogLevelFatal {
		l.exit(1)
	}
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	return nil
}
