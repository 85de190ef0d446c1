package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("item created", slog.Int64("item_id", 42))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("expected level label in %q", line)
	}
	if !strings.Contains(line, "item created") {
		t.Fatalf("expected message in %q", line)
	}
	if !strings.Contains(line, "item_id=42") {
		t.Fatalf("expected attr in %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("dropped")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Fatalf("info line should be dropped: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn line should be kept: %q", buf.String())
	}
}

func TestWithContextAddsCorrelation(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithSessionID(ctx, "sess-9")
	WithContext(ctx, logger).Info("listing")

	line := buf.String()
	if !strings.Contains(line, "correlation_id=req-1") {
		t.Fatalf("expected correlation id in %q", line)
	}
	if !strings.Contains(line, "session_id=sess-9") {
		t.Fatalf("expected session id in %q", line)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if parseLevel("nonsense") != slog.LevelInfo {
		t.Fatal("unknown level should map to info")
	}
	if parseLevel("debug") != slog.LevelDebug {
		t.Fatal("debug should parse")
	}
}
