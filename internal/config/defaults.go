package config

const (
	defaultSourceDir          = "~/videos"
	defaultTempDir            = "~/.local/share/av1batch/tmp"
	defaultOutputDir          = "~/videos/av1"
	defaultLogDir             = "~/.local/share/av1batch/logs"
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultVideoEncoder       = EncoderNVENC
	defaultHWAccel            = "cuda"
	defaultVideoPreset        = "p3"
	defaultLookahead          = 32
	defaultStatsPeriodSeconds = 5
	defaultAudioCodec         = "aac"
	defaultExclusionPolicy    = "keep"
	defaultMuxSubtitleCodec   = "mov_text"
	defaultExtractFormat      = "srt"
	defaultDisplayLocale      = "fr"
	defaultStaleArtifactHours = 24
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

const (
	// EncoderNVENC drives ffmpeg's av1_nvenc hardware encoder.
	EncoderNVENC = "av1_nvenc"
	// EncoderDrapto encodes through the drapto SVT-AV1 library.
	EncoderDrapto = "drapto"
)

var (
	defaultExtensions    = []string{".mp4", ".mkv", ".avi", ".mov"}
	defaultTextSubtitles = []string{"subrip", "ass", "ssa", "text"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			TempDir:   defaultTempDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Video: Video{
			Encoder:            defaultVideoEncoder,
			HWAccel:            defaultHWAccel,
			Preset:             defaultVideoPreset,
			Lookahead:          defaultLookahead,
			StatsPeriodSeconds: defaultStatsPeriodSeconds,
		},
		Audio: Audio{
			Codec:           defaultAudioCodec,
			ExclusionPolicy: defaultExclusionPolicy,
		},
		Subtitles: Subtitles{
			MuxCodec:      defaultMuxSubtitleCodec,
			TextCodecs:    append([]string(nil), defaultTextSubtitles...),
			ExtractFormat: defaultExtractFormat,
		},
		Language: Language{
			DisplayLocale: defaultDisplayLocale,
		},
		Workflow: Workflow{
			Extensions:         append([]string(nil), defaultExtensions...),
			StaleArtifactHours: defaultStaleArtifactHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
