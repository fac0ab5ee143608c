package preflight

import (
	"context"

	"av1batch/internal/config"
	"av1batch/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the directory checks for the given config. The source
// directory only needs to be readable; temp and output need write access.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if cfg.Paths.SourceDir != "" {
		results = append(results, CheckDirectoryReadable("Source directory", cfg.Paths.SourceDir))
	}
	results = append(results,
		CheckDirectoryAccess("Temp directory", cfg.Paths.TempDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	)
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	return results
}

// CheckSystemDeps evaluates the external tools required by the configured
// video encoder.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	if cfg == nil {
		return nil
	}
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Required for muxing, audio, and NVENC encoding",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Tools.FFprobe,
			Description: "Required for media inspection",
		},
	}
	statuses := deps.CheckBinaries(requirements)
	if cfg.Video.Encoder == config.EncoderNVENC && len(statuses) > 0 && statuses[0].Available {
		statuses = append(statuses, deps.CheckEncoder(ctx, statuses[0].Command, config.EncoderNVENC))
	}
	return statuses
}
