package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"av1batch/internal/testsupport"
)

const stubProbeJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
     "pix_fmt": "yuv420p", "r_frame_rate": "24/1", "avg_frame_rate": "24/1", "bit_rate": "8000000"},
    {"index": 1, "codec_type": "audio", "codec_name": "ac3", "channels": 6, "tags": {"language": "fre"}},
    {"index": 2, "codec_type": "subtitle", "codec_name": "subrip", "tags": {"language": "eng", "title": "SDH"}}
  ],
  "format": {"duration": "60.0", "size": "60000000"}
}`

type cliTestEnv struct {
	base       string
	sourceDir  string
	tempDir    string
	outputDir  string
	configPath string
}

// setupCLITestEnv writes stub ffmpeg/ffprobe scripts and a config file
// pointing at fresh source, temp, and output directories.
func setupCLITestEnv(t *testing.T, failFFmpegOn string) *cliTestEnv {
	t.Helper()

	for _, key := range []string{"VIDEO_PATH", "TEMP_PATH", "OUTPUT_PATH"} {
		t.Setenv(key, "")
	}
	cfg := testsupport.NewConfig(t,
		testsupport.WithStubFFmpeg(failFFmpegOn),
		testsupport.WithStubFFprobe(stubProbeJSON),
	)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	return &cliTestEnv{
		base:       base,
		sourceDir:  cfg.Paths.SourceDir,
		tempDir:    cfg.Paths.TempDir,
		outputDir:  cfg.Paths.OutputDir,
		configPath: testsupport.WriteConfigFile(t, cfg),
	}
}

func (e *cliTestEnv) addSource(t *testing.T, name string) {
	t.Helper()
	testsupport.WriteFile(t, filepath.Join(e.sourceDir, name), 64)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
