package audio

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"av1batch/internal/language"
	"av1batch/internal/logging"
	"av1batch/internal/media/streaminfo"
	"av1batch/internal/textutil"
)

// Confirmer answers whether a flagged track should be dropped.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Exclusion names why a track is a removal candidate.
type Exclusion string

const (
	ExclusionNone             Exclusion = ""
	ExclusionQuebecois        Exclusion = "québécois"
	ExclusionAudioDescription Exclusion = "audio description"
)

var (
	quebecoisMarkers   = []string{"vfq", "québécois", "quebecois", "québec"}
	descriptionMarkers = []string{"ad", "audio description", "audiodescription", "audio descriptive", "audiodescriptive", "description audio"}
	// descriptionTags are release tags found glued to an AD marker ("VFAD").
	descriptionTags = []string{"vf", "vff", "vfi", "vfq", "vo", "vost", "fr", "fre", "fra", "en", "eng"}
)

// Options configures BuildPlans.
type Options struct {
	// TargetCodec is the codec tracks are re-encoded to; tracks already in it
	// are copied.
	TargetCodec string
	Locale      language.Locale
	Confirm     Confirmer
	Logger      *slog.Logger
}

// Plan is the encode decision for one kept source track.
type Plan struct {
	SourceIndex int
	OutputIndex int
	// Copy is true when the source codec already matches the target.
	Copy     bool
	Codec    string
	Bitrate  string
	Channels int
	Title    string
	Language string
}

// Result lists kept plans in source order plus the confirmed drops.
type Result struct {
	Plans   []Plan
	Dropped []streaminfo.AudioStreamInfo
}

// BitrateForChannels returns the target bitrate for a channel count.
func BitrateForChannels(channels int) string {
	switch channels {
	case 6:
		return "512k"
	case 8:
		return "640k"
	default:
		return "192k"
	}
}

// ClassifyExclusion reports whether title marks a removal candidate.
func ClassifyExclusion(title string) Exclusion {
	if strings.TrimSpace(title) == "" {
		return ExclusionNone
	}
	if textutil.ContainsFold(title, quebecoisMarkers...) {
		return ExclusionQuebecois
	}
	if textutil.ContainsWord(title, descriptionMarkers...) || hasGluedDescriptionMarker(title) {
		return ExclusionAudioDescription
	}
	return ExclusionNone
}

// hasGluedDescriptionMarker matches "ad" fused to a channel layout ("AD5.1")
// or to a release tag ("VFAD"). Ordinary words starting or ending in "ad" do
// not match.
func hasGluedDescriptionMarker(title string) bool {
	for _, token := range textutil.Words(title) {
		if rest, ok := strings.CutPrefix(token, "ad"); ok && rest != "" && strings.Trim(rest, "0123456789") == "" {
			return true
		}
		if tag, ok := strings.CutSuffix(token, "ad"); ok && slices.Contains(descriptionTags, tag) {
			return true
		}
	}
	return false
}

// IsExclusionCandidate reports whether title carries a VFQ or audio
// description marker.
func IsExclusionCandidate(title string) bool {
	return ClassifyExclusion(title) != ExclusionNone
}

// BuildPlans decides every source track. Flagged tracks are dropped only when
// opts.Confirm confirms; a nil Confirmer keeps them.
func BuildPlans(streams []streaminfo.AudioStreamInfo, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	target := strings.ToLower(strings.TrimSpace(opts.TargetCodec))
	if target == "" {
		target = "aac"
	}

	var result Result
	for _, stream := range streams {
		if reason := ClassifyExclusion(stream.Title); reason != ExclusionNone {
			prompt := fmt.Sprintf("Audio track %d %q looks like %s. Drop it?", stream.Index, stream.Title, reason)
			logging.WarnWithContext(logger, "audio track flagged for removal", "audio_track_flagged",
				logging.Int("stream_index", stream.Index),
				logging.String("title", stream.Title),
				logging.String("reason", string(reason)),
				logging.String(logging.FieldErrorHint, "set audio.exclusion_policy to drop or prompt to remove such tracks"),
			)
			if opts.Confirm != nil && opts.Confirm.Confirm(prompt) {
				logger.Info("audio track dropped",
					logging.Int("stream_index", stream.Index),
					logging.String("title", stream.Title),
				)
				result.Dropped = append(result.Dropped, stream)
				continue
			}
			logger.Info("audio track kept",
				logging.Int("stream_index", stream.Index),
				logging.String("title", stream.Title),
			)
		}

		channels := stream.Channels
		if channels <= 0 {
			channels = 2
		}
		plan := Plan{
			SourceIndex: stream.Index,
			OutputIndex: len(result.Plans),
			Codec:       target,
			Bitrate:     BitrateForChannels(channels),
			Channels:    channels,
			Title:       language.DisplayName(stream.Language, opts.Locale),
			Language:    language.ToISO3(stream.Language),
		}
		if stream.Codec == target {
			plan.Copy = true
			plan.Codec = "copy"
			logging.WarnWithContext(logger, "audio track already in target codec, copied as-is", "audio_passthrough",
				logging.Int("stream_index", stream.Index),
				logging.String("codec", stream.Codec),
				logging.String(logging.FieldErrorHint, "the raw stream is preserved without re-encoding"),
			)
		}
		result.Plans = append(result.Plans, plan)
	}
	return result
}

// Args builds the ffmpeg argument list for the audio stage: video copied, one
// mapping and codec block per plan, subtitles and attachments carried over.
func Args(input, output string, plans []Plan) []string {
	args := []string{"-y", "-nostdin", "-hide_banner",
		"-i", input,
		"-map", "0:v",
		"-c:v", "copy",
	}
	for _, p := range plans {
		n := p.OutputIndex
		args = append(args, "-map", fmt.Sprintf("0:%d", p.SourceIndex))
		if p.Copy {
			args = append(args, fmt.Sprintf("-c:a:%d", n), "copy")
		} else {
			args = append(args,
				fmt.Sprintf("-c:a:%d", n), p.Codec,
				fmt.Sprintf("-b:a:%d", n), p.Bitrate,
				fmt.Sprintf("-ac:a:%d", n), fmt.Sprintf("%d", p.Channels),
			)
		}
		args = append(args,
			fmt.Sprintf("-metadata:s:a:%d", n), "language="+p.Language,
			fmt.Sprintf("-metadata:s:a:%d", n), "title="+p.Title,
		)
	}
	args = append(args,
		"-map", "0:s?",
		"-c:s", "copy",
		"-map", "0:t?",
		"-map_metadata", "0",
		output,
	)
	return args
}
