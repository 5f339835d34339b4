package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	log.Info("bootstrap complete", "outcome", "loaded")

	out := buf.String()
	if !strings.Contains(out, "bootstrap complete") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "outcome=loaded") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	log.Info("bootstrap complete", "outcome", "defaulted")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if record["msg"] != "bootstrap complete" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["outcome"] != "defaulted" {
		t.Errorf("outcome = %v", record["outcome"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelWarn, Format: FormatText, Output: &buf})

	log.Info("should be dropped")
	log.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Error("info record leaked past warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn record missing")
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		v    int
		want slog.Level
	}{
		{0, slog.LevelInfo},
		{1, slog.LevelDebug},
		{2, slog.LevelDebug - 4},
		{5, slog.LevelDebug - 4},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.v); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestContextCarriage(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	ctx := NewContext(context.Background(), log)
	got := FromContext(ctx)
	if got != log {
		t.Error("FromContext did not return the stored logger")
	}

	if FromContext(context.Background()) == nil {
		t.Error("FromContext without a stored logger should fall back, not return nil")
	}
}

func TestNewDiscard(t *testing.T) {
	log := NewDiscard()
	// Must not panic or write anywhere observable.
	log.Error("dropped")
}

func TestMultiHandler_FanOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h)

	log.Info("info record")
	log.Warn("warn record")

	if !strings.Contains(a.String(), "info record") || !strings.Contains(a.String(), "warn record") {
		t.Errorf("text handler missing records: %q", a.String())
	}
	if strings.Contains(b.String(), "info record") {
		t.Error("json handler should filter info records")
	}
	if !strings.Contains(b.String(), "warn record") {
		t.Errorf("json handler missing warn record: %q", b.String())
	}
}

func TestHandler_PlainOutputWithoutTTY(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(h)

	log.Debug("probe", "k", "v")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("non-TTY output should carry no ANSI escapes: %q", out)
	}
	if !strings.Contains(out, "k=v") {
		t.Errorf("attribute missing: %q", out)
	}
}

func TestHandler_WithAttrsIndependence(t *testing.T) {
	var buf bytes.Buffer
	base := NewHandler(&buf, nil)

	derived := base.WithAttrs([]slog.Attr{slog.String("run", "1")})
	_ = derived.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "m", 0))

	if !strings.Contains(buf.String(), "run=1") {
		t.Errorf("derived handler attrs missing: %q", buf.String())
	}

	buf.Reset()
	_ = base.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "m", 0))
	if strings.Contains(buf.String(), "run=1") {
		t.Error("base handler polluted by derived attrs")
	}
}
