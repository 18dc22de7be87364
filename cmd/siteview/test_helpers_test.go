package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"siteview/internal/annotation"
	"siteview/internal/config"
	"siteview/internal/testsupport"
)

type cliTestEnv struct {
	cfg         *config.Config
	configPath  string
	annotations string
}

func setupCLITestEnv(t *testing.T, frames []annotation.Frame) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SITEVIEW_ANNOTATIONS", "")
	t.Setenv("SITEVIEW_API_TOKEN", "")

	annotations := testsupport.WriteAnnotations(t, frames)
	cfg := testsupport.NewConfig(t, testsupport.WithAnnotations(annotations))
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "error"

	configPath := filepath.Join(homeDir, ".config", "siteview", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, annotations: annotations}
}

func scenarioFrames() []annotation.Frame {
	return testsupport.Frames(3,
		testsupport.WorkerTrack{
			ID:         "W1",
			Activities: []string{"CP", "IV", "CP"},
			Positions:  []annotation.Position{{X: 0, Y: 0}, {X: 1100, Y: 500}, {X: 2200, Y: 1000}},
			Postures:   []string{"standing", "bending", "kneeling"},
		},
		testsupport.WorkerTrack{
			ID:         "W2",
			Activities: []string{"WAT", "WAT"},
			Positions:  []annotation.Position{{X: 100, Y: 100}, {X: 200, Y: 200}},
		},
	)
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// syncBuffer lets a test read output while a command is still writing it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, duration time.Duration, fn func() bool) {
	t.Helper()
	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", duration)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
