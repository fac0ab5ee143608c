package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"av1batch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique, existing source, temp,
// output, and log directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "source")
	cfgVal.Paths.TempDir = filepath.Join(base, "temp")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Format = "json"
	cfgVal.Logging.Level = "error"
	for _, dir := range []string{cfgVal.Paths.SourceDir, cfgVal.Paths.TempDir, cfgVal.Paths.OutputDir, cfgVal.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithEncoder selects the video backend.
func WithEncoder(encoder string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Video.Encoder = encoder
	}
}

// WithStubFFmpeg installs a stub ffmpeg that lists av1_nvenc and writes a
// small file to its last argument. Invocations whose output path contains
// failOn exit 1 instead.
func WithStubFFmpeg(failOn string) ConfigOption {
	return func(b *configBuilder) {
		script := "#!/bin/sh\n" +
			"if [ \"$1\" = \"-hide_banner\" ] && [ \"$2\" = \"-encoders\" ]; then\n" +
			"  echo \" V....D av1_nvenc            NVIDIA NVENC av1 encoder\"\n" +
			"  exit 0\n" +
			"fi\n" +
			"for last; do :; done\n"
		if failOn != "" {
			script += "case \"$last\" in *" + failOn + "*) echo 'Conversion failed!' >&2; exit 1;; esac\n"
		}
		script += "echo 'frame=  10 fps=5 time=00:00:01.00' >&2\n" +
			"printf 'encoded' > \"$last\"\n"
		b.cfg.Tools.FFmpeg = WriteScript(b.t, filepath.Join(b.baseDir, "bin", "ffmpeg"), script)
	}
}

// WithStubFFprobe installs a stub ffprobe that prints payload for any probe.
func WithStubFFprobe(payload string) ConfigOption {
	return func(b *configBuilder) {
		script := "#!/bin/sh\ncat <<'JSON'\n" + payload + "\nJSON\n"
		b.cfg.Tools.FFprobe = WriteScript(b.t, filepath.Join(b.baseDir, "bin", "ffprobe"), script)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.TempDir)
}

// WriteConfigFile encodes cfg as TOML next to its directories and returns
// the file path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
