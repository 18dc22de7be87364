package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"siteview/internal/config"
	"siteview/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("viewer ready", logging.Int(logging.FieldFrame, 3))

	content, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", content, err)
	}
	if line["msg"] != "viewer ready" || line["level"] != "info" {
		t.Fatalf("unexpected log line: %v", line)
	}
	if line["frame"] != float64(3) {
		t.Fatalf("expected frame attribute, got %v", line["frame"])
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", line)
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "playback")
	component.Info("cursor moved", logging.Int("frame", 7), logging.String("worker", "W 1"))
	component.Debug("hidden at info level")
	component.Warn("load failed", logging.Error(errors.New("boom")))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "INFO playback: cursor moved frame=7 worker=\"W 1\"") {
		t.Fatalf("unexpected console line: %q", text)
	}
	if strings.Contains(text, "hidden at info level") {
		t.Fatalf("debug line should be filtered: %q", text)
	}
	if !strings.Contains(text, "WARN playback: load failed error=boom") {
		t.Fatalf("missing warn line: %q", text)
	}
	if strings.Contains(text, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", text)
	}
}

func TestConsoleLoggerPutsLeadFieldsFirst(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "lead.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.With(logging.String("reason", "seek")).
		WithGroup("view").
		Info("cursor moved", logging.Int("zoom", 2), logging.Worker("W1"))
	logger.Info("frame ready", logging.String("reason", "tick"), logging.Frame(4))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "cursor moved reason=seek view.zoom=2 view.worker=W1") {
		t.Fatalf("unexpected grouped line: %q", text)
	}
	if !strings.Contains(text, "frame ready frame=4 reason=tick") {
		t.Fatalf("frame should lead other fields: %q", text)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "logger_test.go:") {
		t.Fatalf("expected caller information, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(t.Context(), 12) {
		t.Fatal("nop logger should never be enabled")
	}
	logger.Error("ignored")
}
