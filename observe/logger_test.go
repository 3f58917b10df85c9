package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("warn", &buf)

	ctx := context.Background()
	l.Debug(ctx, "debug msg")
	l.Info(ctx, "info msg")
	l.Warn(ctx, "warn msg")
	l.Error(ctx, "error msg")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("levels = %v, %v; want warn, error", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("info", &buf)

	l.Info(context.Background(), "attempt done",
		Field{Key: "duration_ms", Value: 12.0},
		Field{Key: "status", Value: 200},
	)

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e["msg"] != "attempt done" {
		t.Errorf("msg = %v", e["msg"])
	}
	if e["duration_ms"] != 12.0 {
		t.Errorf("duration_ms = %v, want 12", e["duration_ms"])
	}
	if _, ok := e["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("info", &buf)

	l.Info(context.Background(), "request sent",
		Field{Key: "authorization", Value: "token hunter2"},
		Field{Key: "Authorization", Value: "token hunter2"},
		Field{Key: "api_key", Value: "hunter2"},
		Field{Key: "host", Value: "api.example.com"},
	)

	entries := decodeLines(t, &buf)
	e := entries[0]
	if e["authorization"] != "[REDACTED]" {
		t.Errorf("authorization = %v, want [REDACTED]", e["authorization"])
	}
	if e["Authorization"] != "[REDACTED]" {
		t.Errorf("Authorization = %v, want [REDACTED] (case-insensitive)", e["Authorization"])
	}
	if e["api_key"] != "[REDACTED]" {
		t.Errorf("api_key = %v, want [REDACTED]", e["api_key"])
	}
	if e["host"] != "api.example.com" {
		t.Errorf("host = %v, want passthrough", e["host"])
	}
}

func TestLogger_WithRequest(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("info", &buf)

	scoped := l.WithRequest(RequestMeta{
		Method:  "GET",
		Host:    "api.example.com",
		Path:    "/repos/test-org/temp-repo",
		Attempt: 2,
	})
	scoped.Info(context.Background(), "retrying")

	entries := decodeLines(t, &buf)
	e := entries[0]
	if e["http.method"] != "GET" {
		t.Errorf("http.method = %v", e["http.method"])
	}
	if e["http.host"] != "api.example.com" {
		t.Errorf("http.host = %v", e["http.host"])
	}
	if e["http.attempt"] != 2.0 {
		t.Errorf("http.attempt = %v, want 2", e["http.attempt"])
	}

	// The base logger is unaffected.
	buf.Reset()
	l.Info(context.Background(), "plain")
	e = decodeLines(t, &buf)[0]
	if _, ok := e["http.method"]; ok {
		t.Error("base logger leaked request attributes")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
