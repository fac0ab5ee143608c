package subtitles

import (
	"log/slog"
	"slices"
	"strings"

	"av1batch/internal/language"
	"av1batch/internal/logging"
	"av1batch/internal/media/streaminfo"
	"av1batch/internal/textutil"
)

// DefaultTextCodecs lists the codecs kept when Options.TextCodecs is empty.
var DefaultTextCodecs = []string{"subrip", "ass", "ssa", "text"}

var (
	forcedMarkers          = []string{"forcé", "forced"}
	hearingImpairedMarkers = []string{"sdh", "hi", "cc", "closed", "hearing", "impaired", "malentendant", "malentendants"}
)

// Options configures BuildPlans.
type Options struct {
	TextCodecs []string
	Locale     language.Locale
	Logger     *slog.Logger
}

// Plan describes one kept subtitle track.
type Plan struct {
	SourceIndex     int
	OutputIndex     int
	Codec           string
	Language        string
	Title           string
	Forced          bool
	HearingImpaired bool
}

// Disposition returns the ffmpeg disposition value for the track.
func (p Plan) Disposition() string {
	switch {
	case p.Forced && p.HearingImpaired:
		return "forced+hearing_impaired"
	case p.Forced:
		return "forced"
	case p.HearingImpaired:
		return "hearing_impaired"
	default:
		return "0"
	}
}

// Result lists kept plans in source order plus the dropped tracks.
type Result struct {
	Plans   []Plan
	Dropped []streaminfo.SubtitleStreamInfo
}

// IsTextCodec reports whether codec is in allowed, or in DefaultTextCodecs
// when allowed is empty.
func IsTextCodec(codec string, allowed []string) bool {
	if len(allowed) == 0 {
		allowed = DefaultTextCodecs
	}
	codec = strings.ToLower(strings.TrimSpace(codec))
	return codec != "" && slices.Contains(allowed, codec)
}

// IsForced reports whether the track is forced by tag or by title.
func IsForced(stream streaminfo.SubtitleStreamInfo) bool {
	return stream.ForcedTag || textutil.ContainsFold(stream.Title, forcedMarkers...)
}

// IsHearingImpaired reports whether the track is SDH by tag or by a whole-word
// title keyword.
func IsHearingImpaired(stream streaminfo.SubtitleStreamInfo) bool {
	return stream.HearingImpairedTag || textutil.ContainsWord(stream.Title, hearingImpairedMarkers...)
}

// DisplayTitle returns the language display name with the hearing-impaired
// suffix first and the forced suffix second.
func DisplayTitle(lang string, forced, hearingImpaired bool, locale language.Locale) string {
	title := language.DisplayName(lang, locale)
	if hearingImpaired {
		if locale == language.English {
			title += " (SDH)"
		} else {
			title += " (malentendant)"
		}
	}
	if forced {
		if locale == language.English {
			title += " (forced)"
		} else {
			title += " (forcé)"
		}
	}
	return title
}

// BuildPlans keeps text tracks and derives their labels. Dropped tracks are
// logged as warnings.
func BuildPlans(streams []streaminfo.SubtitleStreamInfo, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	var result Result
	for _, stream := range streams {
		if !IsTextCodec(stream.Codec, opts.TextCodecs) {
			logging.WarnWithContext(logger, "subtitle track dropped, codec is not text based", "subtitle_dropped",
				logging.Int("stream_index", stream.Index),
				logging.String("codec", stream.Codec),
				logging.String("language", stream.Language),
				logging.String(logging.FieldErrorHint, "image subtitles cannot be stored in MP4; extract or OCR them separately"),
			)
			result.Dropped = append(result.Dropped, stream)
			continue
		}
		forced := IsForced(stream)
		hearingImpaired := IsHearingImpaired(stream)
		result.Plans = append(result.Plans, Plan{
			SourceIndex:     stream.Index,
			OutputIndex:     len(result.Plans),
			Codec:           strings.ToLower(stream.Codec),
			Language:        language.ToISO3(stream.Language),
			Title:           DisplayTitle(stream.Language, forced, hearingImpaired, opts.Locale),
			Forced:          forced,
			HearingImpaired: hearingImpaired,
		})
	}
	logger.Debug("subtitle plan built",
		logging.Int("kept", len(result.Plans)),
		logging.Int("dropped", len(result.Dropped)),
	)
	return result
}
