package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "FFmpeg:")
	requireContains(t, out, "av1_nvenc:")
	requireContains(t, out, "Output directory:")
}

func TestCheckCommandMissingOutput(t *testing.T) {
	env := setupCLITestEnv(t, "")
	if err := os.RemoveAll(env.outputDir); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected check failure")
	}
	requireContains(t, out, "[ERROR]")
}

func TestExtractSubtitlesCommand(t *testing.T) {
	env := setupCLITestEnv(t, "")
	env.addSource(t, "Film.mkv")
	outDir := filepath.Join(env.base, "subs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"extract-subtitles", filepath.Join(env.sourceDir, "Film.mkv"), "--out", outDir}, env.configPath)
	if err != nil {
		t.Fatalf("extract-subtitles: %v", err)
	}
	want := filepath.Join(outDir, "Film.2.eng.sdh.srt")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected sidecar %s: %v\n%s", want, err, out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
}

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("FFmpeg", statusOK, "ready", false)
	if !strings.Contains(plain, "[OK] ready") || strings.Contains(plain, ansiGreen) {
		t.Fatalf("unexpected plain line %q", plain)
	}
	colored := renderStatusLine("FFmpeg", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("unexpected colored line %q", colored)
	}
}

func TestRenderTablePadsRowsAndFooter(t *testing.T) {
	rendered := renderTable(tableLayout{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"only"}},
		Footer:  []string{"Total", "3/4"},
	})
	for _, want := range []string{"only", "3/4"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("table missing %q:\n%s", want, rendered)
		}
	}
	if renderTable(tableLayout{}) != "" {
		t.Fatal("empty headers should render nothing")
	}
}
