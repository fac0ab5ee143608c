package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"av1batch/internal/config"
	"av1batch/internal/services"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryReadable_Empty(t *testing.T) {
	if result := CheckDirectoryReadable("source", " "); result.Passed || result.Detail != "not configured" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRequireDirectories(t *testing.T) {
	temp, out := t.TempDir(), t.TempDir()
	if err := RequireDirectories(temp, out); err != nil {
		t.Fatalf("RequireDirectories: %v", err)
	}
	err := RequireDirectories(temp, filepath.Join(out, "missing"))
	if !errors.Is(err, services.ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory, got %v", err)
	}
	if !services.IsRunFatal(err) {
		t.Fatal("missing output root must be run fatal")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.SourceDir = t.TempDir()
	cfg.Paths.TempDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.LogDir = ""

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestCheckSystemDepsUsesConfiguredBinaries(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\necho ' V....D av1_nvenc            NVIDIA NVENC av1 encoder'\n"
	if err := os.WriteFile(ffmpeg, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Tools.FFmpeg = ffmpeg
	cfg.Tools.FFprobe = filepath.Join(dir, "ffprobe-missing")
	cfg.Video.Encoder = config.EncoderNVENC

	statuses := CheckSystemDeps(context.Background(), &cfg)
	if len(statuses) != 3 {
		t.Fatalf("expected ffmpeg, ffprobe, and encoder statuses, got %+v", statuses)
	}
	if !statuses[0].Available || statuses[1].Available || !statuses[2].Available {
		t.Fatalf("unexpected statuses %+v", statuses)
	}

	cfg.Video.Encoder = config.EncoderDrapto
	if statuses := CheckSystemDeps(context.Background(), &cfg); len(statuses) != 2 {
		t.Fatalf("drapto backend should skip the NVENC check, got %+v", statuses)
	}
}
