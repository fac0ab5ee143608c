package workflow

import (
	"time"

	"av1batch/internal/config"
	"av1batch/internal/encoding"
	"av1batch/internal/language"
)

// Settings is the explicit configuration an Orchestrator runs with.
type Settings struct {
	TempDir    string
	OutputDir  string
	Extensions []string

	// Encoder is config.EncoderNVENC or config.EncoderDrapto.
	Encoder string
	Video   encoding.VideoOptions

	AudioCodec       string
	SubtitleMuxCodec string
	TextCodecs       []string
	Locale           language.Locale

	// StageTimeout bounds each external invocation; zero disables it.
	StageTimeout time.Duration
	// StaleArtifactAge enables the startup sweep when positive.
	StaleArtifactAge time.Duration
}

// SettingsFromConfig copies the relevant values out of cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		TempDir:    cfg.Paths.TempDir,
		OutputDir:  cfg.Paths.OutputDir,
		Extensions: append([]string(nil), cfg.Workflow.Extensions...),
		Encoder:    cfg.Video.Encoder,
		Video: encoding.VideoOptions{
			HWAccel:            cfg.Video.HWAccel,
			Preset:             cfg.Video.Preset,
			Lookahead:          cfg.Video.Lookahead,
			StatsPeriodSeconds: cfg.Video.StatsPeriodSeconds,
		},
		AudioCodec:       cfg.Audio.Codec,
		SubtitleMuxCodec: cfg.Subtitles.MuxCodec,
		TextCodecs:       append([]string(nil), cfg.Subtitles.TextCodecs...),
		Locale:           language.ParseLocale(cfg.Language.DisplayLocale),
		StageTimeout:     cfg.StageTimeout(),
		StaleArtifactAge: cfg.StaleArtifactAge(),
	}
}

// videoExt is the container the video stage produces.
func (s Settings) videoExt() string {
	if s.Encoder == config.EncoderDrapto {
		return ".mkv"
	}
	return ".mp4"
}
