package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directories a batch run reads from and writes to.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	TempDir   string `toml:"temp_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Tools names the external binaries and bounds how long one stage may run.
type Tools struct {
	FFmpeg              string `toml:"ffmpeg"`
	FFprobe             string `toml:"ffprobe"`
	StageTimeoutMinutes int    `toml:"stage_timeout_minutes"`
}

// Video contains AV1 encoder settings.
type Video struct {
	Encoder            string `toml:"encoder"`
	HWAccel            string `toml:"hwaccel"`
	Preset             string `toml:"preset"`
	Lookahead          int    `toml:"lookahead"`
	StatsPeriodSeconds int    `toml:"stats_period_seconds"`
}

// Audio contains audio stage settings.
type Audio struct {
	Codec string `toml:"codec"`
	// ExclusionPolicy decides flagged tracks: keep, drop, or prompt.
	ExclusionPolicy string `toml:"exclusion_policy"`
}

// Subtitles contains subtitle mux and extraction settings.
type Subtitles struct {
	MuxCodec      string   `toml:"mux_codec"`
	TextCodecs    []string `toml:"text_codecs"`
	ExtractFormat string   `toml:"extract_format"`
}

// Language selects the display-name table used for track titles.
type Language struct {
	DisplayLocale string `toml:"display_locale"`
}

// Workflow contains batch discovery and housekeeping settings.
type Workflow struct {
	Extensions         []string `toml:"extensions"`
	StaleArtifactHours int      `toml:"stale_artifact_hours"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for av1batch.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Tools     Tools     `toml:"tools"`
	Video     Video     `toml:"video"`
	Audio     Audio     `toml:"audio"`
	Subtitles Subtitles `toml:"subtitles"`
	Language  Language  `toml:"language"`
	Workflow  Workflow  `toml:"workflow"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/av1batch/config.toml")
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
		decoder.DisallowUnknownFields()
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

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("av1batch.toml")
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

// EnsureDirectories creates the log directory. Temp and output roots are not
// created here; a missing root is reported by the run preflight instead.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// StageTimeout returns the per-stage deadline, or zero when stages are unbounded.
func (c *Config) StageTimeout() time.Duration {
	if c.Tools.StageTimeoutMinutes <= 0 {
		return 0
	}
	return time.Duration(c.Tools.StageTimeoutMinutes) * time.Minute
}

// StaleArtifactAge returns the age after which leftover temp artifacts are swept.
func (c *Config) StaleArtifactAge() time.Duration {
	if c.Workflow.StaleArtifactHours <= 0 {
		return 0
	}
	return time.Duration(c.Workflow.StaleArtifactHours) * time.Hour
}

// IsEligible reports whether path carries one of the configured input extensions.
func (c *Config) IsEligible(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range c.Workflow.Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
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
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
