package streaminfo

import (
	"cmp"
	"slices"
	"strings"

	"av1batch/internal/media/ffprobe"
)

// VideoStreamInfo describes the first video stream of a source.
type VideoStreamInfo struct {
	PixFmt           string
	Width            int
	Height           int
	NominalFrameRate string
	AverageFrameRate string
	ColorPrimaries   string
	ColorTransfer    string
	ColorSpace       string
	// BitRate is in bits per second; 0 when neither the stream nor the
	// size/duration fallback could provide one.
	BitRate          int64
	MasteringDisplay bool
	ContentLight     bool
	SideDataTypes    []string
	DurationSeconds  float64
}

// AudioStreamInfo describes one source audio stream.
type AudioStreamInfo struct {
	Index    int
	Codec    string
	Channels int
	BitRate  int64
	Language string
	Title    string
}

// SubtitleStreamInfo describes one source subtitle stream. The forced and
// hearing-impaired values here are the raw tag and disposition signals; the
// subtitle planner combines them with title heuristics.
type SubtitleStreamInfo struct {
	Index              int
	Codec              string
	Language           string
	Title              string
	ForcedTag          bool
	HearingImpairedTag bool
}

// VideoFromProbe builds the video snapshot from a video probe result. The
// second return is false when the result carries no video stream. fileSize is
// used with the container duration when the stream reports no bitrate.
func VideoFromProbe(result ffprobe.Result, fileSize int64) (VideoStreamInfo, bool) {
	videos := result.StreamsOfType("video")
	if len(videos) == 0 {
		return VideoStreamInfo{}, false
	}
	s := videos[0]
	info := VideoStreamInfo{
		PixFmt:           strings.TrimSpace(s.PixFmt),
		Width:            s.Width,
		Height:           s.Height,
		NominalFrameRate: strings.TrimSpace(s.RFrameRate),
		AverageFrameRate: strings.TrimSpace(s.AvgFrameRate),
		ColorPrimaries:   normalizeColor(s.ColorPrimaries),
		ColorTransfer:    normalizeColor(s.ColorTransfer),
		ColorSpace:       normalizeColor(s.ColorSpace),
		BitRate:          s.BitRateValue(),
		MasteringDisplay: s.HasMasteringDisplay(),
		ContentLight:     s.HasContentLight(),
		DurationSeconds:  result.DurationSeconds(),
	}
	for _, sd := range s.SideDataList {
		if t := strings.TrimSpace(sd.Type); t != "" {
			info.SideDataTypes = append(info.SideDataTypes, t)
		}
	}
	if info.BitRate <= 0 {
		if fileSize <= 0 {
			fileSize = result.SizeBytes()
		}
		info.BitRate = FallbackBitRate(fileSize, info.DurationSeconds)
	}
	return info, true
}

// FallbackBitRate estimates an overall bitrate as size*8/duration.
func FallbackBitRate(sizeBytes int64, durationSeconds float64) int64 {
	if sizeBytes <= 0 || !(durationSeconds > 0) {
		return 0
	}
	return int64(float64(sizeBytes) * 8 / durationSeconds)
}

// AudioFromProbe converts audio probe records, ordered by stream index.
func AudioFromProbe(result ffprobe.Result) []AudioStreamInfo {
	streams := result.StreamsOfType("audio")
	out := make([]AudioStreamInfo, 0, len(streams))
	for _, s := range streams {
		out = append(out, AudioStreamInfo{
			Index:    s.Index,
			Codec:    strings.ToLower(strings.TrimSpace(s.CodecName)),
			Channels: s.Channels,
			BitRate:  s.BitRateValue(),
			Language: strings.ToLower(s.Tag("language")),
			Title:    s.Tag("title"),
		})
	}
	slices.SortStableFunc(out, func(a, b AudioStreamInfo) int { return cmp.Compare(a.Index, b.Index) })
	return out
}

// SubtitlesFromProbe converts subtitle probe records, ordered by stream index.
func SubtitlesFromProbe(result ffprobe.Result) []SubtitleStreamInfo {
	streams := result.StreamsOfType("subtitle")
	out := make([]SubtitleStreamInfo, 0, len(streams))
	for _, s := range streams {
		out = append(out, SubtitleStreamInfo{
			Index:              s.Index,
			Codec:              strings.ToLower(strings.TrimSpace(s.CodecName)),
			Language:           strings.ToLower(s.Tag("language")),
			Title:              s.Tag("title"),
			ForcedTag:          s.Tag("forced") == "1" || s.Disposition["forced"] == 1,
			HearingImpairedTag: s.Tag("hearing_impaired") == "1" || s.Disposition["hearing_impaired"] == 1,
		})
	}
	slices.SortStableFunc(out, func(a, b SubtitleStreamInfo) int { return cmp.Compare(a.Index, b.Index) })
	return out
}

func normalizeColor(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "unknown" || value == "unspecified" {
		return ""
	}
	return value
}
