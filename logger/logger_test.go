package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	wailsLogger "github.com/wailsapp/wails/v2/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.InfoLevel,
		"chatty":   zerolog.InfoLevel,
		"trace":    zerolog.TraceLevel,
		"info":     zerolog.InfoLevel,
		"disabled": zerolog.Disabled,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", in, got, want)
		}
	}
}

func TestWailsLevel(t *testing.T) {
	if WailsLevel(zerolog.DebugLevel) != wailsLogger.DEBUG {
		t.Error("Expected debug to map to DEBUG")
	}
	if WailsLevel(zerolog.FatalLevel) != wailsLogger.ERROR {
		t.Error("Expected fatal to map to ERROR")
	}
	if WailsLevel(zerolog.InfoLevel) != wailsLogger.INFO {
		t.Error("Expected info to map to INFO")
	}
}

func TestWailsAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewWailsAdapter(NewWithWriter(&buf, "debug"))

	adapter.Info("library loaded")
	adapter.Trace("dropped below debug")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Log line is not JSON: %v", err)
	}
	if entry["message"] != "library loaded" {
		t.Errorf("Expected message 'library loaded', got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("Expected level info, got %v", entry["level"])
	}
	if entry["source"] != "wails" {
		t.Errorf("Expected source wails, got %v", entry["source"])
	}
}
