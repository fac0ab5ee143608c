package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables that override the [paths] section.
const (
	EnvSourceDir = "VIDEO_PATH"
	EnvTempDir   = "TEMP_PATH"
	EnvOutputDir = "OUTPUT_PATH"
)

func (c *Config) normalize() error {
	c.applyEnvOverrides()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeVideo()
	c.normalizeAudio()
	c.normalizeSubtitles()
	c.normalizeWorkflow()
	c.normalizeLogging()
	c.Language.DisplayLocale = strings.ToLower(strings.TrimSpace(c.Language.DisplayLocale))
	return nil
}

func (c *Config) applyEnvOverrides() {
	if value, ok := os.LookupEnv(EnvSourceDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.SourceDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(EnvTempDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.TempDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(EnvOutputDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.TempDir, err = expandPath(strings.TrimSpace(c.Paths.TempDir)); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeVideo() {
	c.Video.Encoder = strings.ToLower(strings.TrimSpace(c.Video.Encoder))
	if c.Video.Encoder == "" {
		c.Video.Encoder = defaultVideoEncoder
	}
	c.Video.HWAccel = strings.TrimSpace(c.Video.HWAccel)
	c.Video.Preset = strings.TrimSpace(c.Video.Preset)
	if c.Video.Preset == "" {
		c.Video.Preset = defaultVideoPreset
	}
	if c.Video.Lookahead <= 0 {
		c.Video.Lookahead = defaultLookahead
	}
	if c.Video.StatsPeriodSeconds <= 0 {
		c.Video.StatsPeriodSeconds = defaultStatsPeriodSeconds
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Codec = strings.ToLower(strings.TrimSpace(c.Audio.Codec))
	if c.Audio.Codec == "" {
		c.Audio.Codec = defaultAudioCodec
	}
	c.Audio.ExclusionPolicy = strings.ToLower(strings.TrimSpace(c.Audio.ExclusionPolicy))
	if c.Audio.ExclusionPolicy == "" {
		c.Audio.ExclusionPolicy = defaultExclusionPolicy
	}
}

func (c *Config) normalizeSubtitles() {
	c.Subtitles.MuxCodec = strings.TrimSpace(c.Subtitles.MuxCodec)
	if c.Subtitles.MuxCodec == "" {
		c.Subtitles.MuxCodec = defaultMuxSubtitleCodec
	}
	codecs := make([]string, 0, len(c.Subtitles.TextCodecs))
	for _, codec := range c.Subtitles.TextCodecs {
		if codec = strings.ToLower(strings.TrimSpace(codec)); codec != "" {
			codecs = append(codecs, codec)
		}
	}
	if len(codecs) == 0 {
		codecs = append(codecs, defaultTextSubtitles...)
	}
	c.Subtitles.TextCodecs = codecs
	c.Subtitles.ExtractFormat = strings.ToLower(strings.TrimSpace(c.Subtitles.ExtractFormat))
	if c.Subtitles.ExtractFormat == "" {
		c.Subtitles.ExtractFormat = defaultExtractFormat
	}
}

func (c *Config) normalizeWorkflow() {
	exts := make([]string, 0, len(c.Workflow.Extensions))
	for _, ext := range c.Workflow.Extensions {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			exts = append(exts, ext)
		}
	}
	c.Workflow.Extensions = exts
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
