package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":  slog.LevelDebug,
		"debug":  slog.LevelDebug,
		" warn ": slog.LevelWarn,
		"ERROR":  slog.LevelError,
		"INFO":   slog.LevelInfo,
		"":       slog.LevelInfo,
		"trace":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "farefloor-api", LevelInfo)
	log.Debug("hidden")
	log.Info("surge floor applied", "tenant", "city")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "surge floor applied" || entry["service"] != "farefloor-api" || entry["tenant"] != "city" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("missing timestamp: %v", entry)
	}
	if _, ok := entry["hostname"]; !ok {
		t.Fatalf("missing hostname: %v", entry)
	}
}
