package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"siteview/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the annotation source, state directory, and bind address.
type Paths struct {
	Annotations string `toml:"annotations"`
	StateDir    string `toml:"state_dir"`
	APIBind     string `toml:"api_bind"`
	APIToken    string `toml:"api_token"`
}

// Playback contains cursor cadence settings.
type Playback struct {
	IntervalMS int  `toml:"interval_ms"`
	Autoplay   bool `toml:"autoplay"`
}

// Spatial contains the position canvas geometry and the fixed domain extent
// worker positions are expressed in.
type Spatial struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	DomainWidth  float64 `toml:"domain_width"`
	DomainHeight float64 `toml:"domain_height"`
	PointRadius  float64 `toml:"point_radius"`
	HoverRadius  float64 `toml:"hover_radius"`
}

// Timeline contains the activity strip container geometry and zoom limits.
type Timeline struct {
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	MarginTop     int     `toml:"margin_top"`
	MarginRight   int     `toml:"margin_right"`
	MarginBottom  int     `toml:"margin_bottom"`
	MarginLeft    int     `toml:"margin_left"`
	BandPadding   float64 `toml:"band_padding"`
	MinZoom       float64 `toml:"min_zoom"`
	MaxZoom       float64 `toml:"max_zoom"`
	ZoomStep      float64 `toml:"zoom_step"`
	TooltipWindow int     `toml:"tooltip_window"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for siteview.
//
// Configuration sections by subsystem:
//   - Paths: annotation source, state directory, API bind address and token
//   - Playback: autoplay and tick interval
//   - Spatial: position canvas size and domain extent
//   - Timeline: strip container size, margins, zoom range, tooltip window
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Playback Playback `toml:"playback"`
	Spatial  Spatial  `toml:"spatial"`
	Timeline Timeline `toml:"timeline"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/siteview/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/siteview/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("siteview.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory used for the lock, pid, and log files.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	return nil
}

// AnnotationsIsURL reports whether the annotation source is fetched over HTTP.
func (c *Config) AnnotationsIsURL() bool {
	return isURL(c.Paths.Annotations)
}

// LockPath returns the flock path guarding single-instance serving.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "siteview.lock")
}

// PIDPath returns the pid file written while the server runs.
func (c *Config) PIDPath() string {
	return filepath.Join(c.Paths.StateDir, "siteview.pid")
}

// LogPath returns the log file the server appends to.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, "siteview.log")
}

func isURL(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	enc := toml.NewEncoder(&b)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}
