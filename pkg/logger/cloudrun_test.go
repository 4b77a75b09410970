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
	log := slog.New(NewCloudRunHandlerWriter(slog.LevelInfo, &buf)).With("request_id", "r-1")

	log.Warn("store failed", "error", errors.New("boom"), "uid", "u-1")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if event["severity"] != "WARNING" {
		t.Fatalf("severity mismatch: %v", event["severity"])
	}
	if event["message"] != "store failed" {
		t.Fatalf("message mismatch: %v", event["message"])
	}
	data, ok := event["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data object: %v", event)
	}
	if data["error"] != "boom" || data["uid"] != "u-1" || data["request_id"] != "r-1" {
		t.Fatalf("data mismatch: %+v", data)
	}
}

func TestCloudRunHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerWriter(slog.LevelWarn, &buf))

	log.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below level, got %q", buf.String())
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
			t.Errorf("getSlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
