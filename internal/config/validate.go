package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLanguage(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.TempDir == "" {
		return errors.New("paths.temp_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.TempDir == c.Paths.OutputDir {
		return errors.New("paths.temp_dir and paths.output_dir must differ")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.StageTimeoutMinutes < 0 {
		return errors.New("tools.stage_timeout_minutes must be zero or positive")
	}
	return nil
}

func (c *Config) validateVideo() error {
	switch c.Video.Encoder {
	case EncoderNVENC, EncoderDrapto:
		return nil
	default:
		return fmt.Errorf("video.encoder: unsupported value %q (expected %s or %s)", c.Video.Encoder, EncoderNVENC, EncoderDrapto)
	}
}

func (c *Config) validateAudio() error {
	switch c.Audio.ExclusionPolicy {
	case "keep", "drop", "prompt":
		return nil
	default:
		return fmt.Errorf("audio.exclusion_policy: unsupported value %q (expected keep, drop, or prompt)", c.Audio.ExclusionPolicy)
	}
}

func (c *Config) validateSubtitles() error {
	if len(c.Subtitles.TextCodecs) == 0 {
		return errors.New("subtitles.text_codecs must list at least one codec")
	}
	switch c.Subtitles.ExtractFormat {
	case "srt", "ass", "webvtt":
		return nil
	default:
		return fmt.Errorf("subtitles.extract_format: unsupported value %q (expected srt, ass, or webvtt)", c.Subtitles.ExtractFormat)
	}
}

func (c *Config) validateWorkflow() error {
	if len(c.Workflow.Extensions) == 0 {
		return errors.New("workflow.extensions must list at least one extension")
	}
	for _, ext := range c.Workflow.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("workflow.extensions: %q must start with a dot", ext)
		}
	}
	if c.Workflow.StaleArtifactHours < 0 {
		return errors.New("workflow.stale_artifact_hours must be zero or positive")
	}
	return nil
}

func (c *Config) validateLanguage() error {
	switch c.Language.DisplayLocale {
	case "fr", "en":
		return nil
	default:
		return fmt.Errorf("language.display_locale: unsupported value %q (expected fr or en)", c.Language.DisplayLocale)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
