package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestCloudRunHandlerWritesSeverityAndData(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(slog.LevelInfo, &buf)).With("request_id", "r-1")

	log.Debug("dropped")
	log.Warn("upload rejected", "error", errors.New("file too large"), "size", 6)

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if event["severity"] != "WARNING" || event["message"] != "upload rejected" {
		t.Fatalf("unexpected event: %v", event)
	}
	data, ok := event["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data map: %v", event)
	}
	if data["request_id"] != "r-1" || data["error"] != "file too large" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestGetSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := getSlogLevel(in); got != want {
			t.Fatalf("getSlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
