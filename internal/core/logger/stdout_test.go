package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"warn":    LogLevelWarn,
		"WARNING": LogLevelWarn,
		" Error ": LogLevelError,
		"info":    LogLevelInfo,
		"":        LogLevelDebug,
		"verbose": LogLevelDebug,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestStdoutLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newStdoutLogger(&buf, Options{ServiceName: "aceitera", Format: "json", Verbose: true})

	ctx := WithRequestID(context.Background(), "req-9")
	l.Log(ctx, LogEntry{
		Level:      LogLevelError,
		Message:    "sale failed",
		Error:      errors.New("boom"),
		Attributes: map[string]any{"product_id": "p-1"},
	})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	want := map[string]any{
		"level":      "ERROR",
		"msg":        "sale failed",
		"service":    "aceitera",
		"request_id": "req-9",
		"error":      "boom",
		"product_id": "p-1",
	}
	for key, value := range want {
		if record[key] != value {
			t.Errorf("expected %s=%v, got %v", key, value, record[key])
		}
	}
}

func TestStdoutLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newStdoutLogger(&buf, Options{Level: "warn"})

	l.Log(context.Background(), LogEntry{Level: LogLevelInfo, Message: "product listed"})
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	l.Log(context.Background(), LogEntry{Level: LogLevelWarn, Message: "stock low"})
	if !strings.Contains(buf.String(), "stock low") {
		t.Fatalf("expected warn to be written, got %q", buf.String())
	}
}

func TestStdoutLogger_HidesAttributesUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := newStdoutLogger(&buf, Options{})

	l.Log(context.Background(), LogEntry{
		Level:      LogLevelInfo,
		Message:    "sale registered",
		Attributes: map[string]any{"sale_id": "s-1"},
	})
	if strings.Contains(buf.String(), "sale_id") {
		t.Fatalf("expected attributes to be hidden, got %q", buf.String())
	}
}

func TestStdoutLogger_FatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := newStdoutLogger(&buf, Options{Level: "error"})
	code := -1
	l.exit = func(c int) { code = c }

	l.Log(context.Background(), LogEntry{Level: LogLevelFatal, Message: "store unreachable"})

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "level=FATAL") {
		t.Fatalf("expected FATAL level in output, got %q", buf.String())
	}
}
