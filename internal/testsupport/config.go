package testsupport

import (
	"path/filepath"
	"testing"

	"siteview/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config rooted in a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.Annotations = filepath.Join(base, "annotations.json")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Playback.Autoplay = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAnnotations points the config at an annotation source.
func WithAnnotations(source string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.Annotations = source
	}
}

// WithAPIToken sets the bearer token guarding control endpoints.
func WithAPIToken(token string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.APIToken = token
	}
}
