package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"av1batch/internal/services"
)

// Stream selectors and -show_entries lists used by the pipeline stages.
const (
	SelectVideo    = "v:0"
	SelectAudio    = "a"
	SelectSubtitle = "s"

	// VideoEntries is empty so the video probe returns whole stream and
	// format sections, side_data_list included.
	VideoEntries    = ""
	AudioEntries    = "stream=index,codec_name,codec_type,channels,channel_layout,bit_rate:stream_tags=language,title"
	SubtitleEntries = "stream=index,codec_name,codec_type:stream_tags=language,title,forced,hearing_impaired:stream_disposition=forced,hearing_impaired"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index          int               `json:"index"`
	CodecName      string            `json:"codec_name"`
	CodecType      string            `json:"codec_type"`
	Duration       string            `json:"duration"`
	BitRate        string            `json:"bit_rate"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	PixFmt         string            `json:"pix_fmt"`
	RFrameRate     string            `json:"r_frame_rate"`
	AvgFrameRate   string            `json:"avg_frame_rate"`
	ColorPrimaries string            `json:"color_primaries"`
	ColorTransfer  string            `json:"color_transfer"`
	ColorSpace     string            `json:"color_space"`
	Channels       int               `json:"channels"`
	ChannelLayout  string            `json:"channel_layout"`
	Tags           map[string]string `json:"tags"`
	Disposition    map[string]int    `json:"disposition"`
	SideDataList   []SideData        `json:"side_data_list"`

	MasteringDisplayMetadata json.RawMessage `json:"mastering_display_metadata"`
	ContentLightMetadata     json.RawMessage `json:"content_light_metadata"`
}

// SideData is one entry of a stream's side_data_list.
type SideData struct {
	Type string `json:"side_data_type"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

// Probe runs ffprobe against path restricted to the streams matched by
// selector, returning only the requested entries.
func Probe(ctx context.Context, binary, path, selector, entries string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, services.Wrap(services.ErrProbe, "probe", selector, "empty path", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return Result{}, services.Wrap(services.ErrProbe, "probe", selector, "source unavailable", err)
	}

	args := []string{"-v", "error", "-hide_banner"}
	if selector != "" {
		args = append(args, "-select_streams", selector)
	}
	if entries != "" {
		args = append(args, "-show_entries", entries)
	} else {
		args = append(args, "-show_streams", "-show_format")
	}
	args = append(args, "-of", "json", "--", path)

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return Result{}, services.Wrap(services.ErrProbe, "probe", selector, strings.TrimSpace(stderr.String()), err)
	}
	result, err := Parse(output)
	if err != nil {
		return Result{}, services.Wrap(services.ErrProbe, "probe", selector, "decode output", err)
	}
	return result, nil
}

// Parse decodes an ffprobe JSON payload.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), data...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// StreamsOfType returns the streams whose codec_type matches kind.
func (r Result) StreamsOfType(kind string) []Stream {
	var out []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, kind) {
			out = append(out, stream)
		}
	}
	return out
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

// Tag returns the tag value for key, matching keys case-insensitively.
func (s Stream) Tag(key string) string {
	if value, ok := s.Tags[key]; ok {
		return strings.TrimSpace(value)
	}
	for k, value := range s.Tags {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// BitRateValue returns the stream bitrate in bits per second, or 0 when unavailable.
func (s Stream) BitRateValue() int64 {
	rate := parseFloat(s.BitRate)
	if math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return int64(rate)
}

// HasMasteringDisplay reports mastering display metadata on the stream itself.
func (s Stream) HasMasteringDisplay() bool {
	return hasPayload(s.MasteringDisplayMetadata)
}

// HasContentLight reports content light level metadata on the stream itself.
func (s Stream) HasContentLight() bool {
	return hasPayload(s.ContentLightMetadata)
}

func hasPayload(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	switch trimmed {
	case "", "null", `""`, "{}", "[]":
		return false
	}
	return true
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || cleaned == "N/A" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

// Prober runs stream probes. It exists so the pipeline can be driven by a
// fake in tests.
type Prober interface {
	Probe(ctx context.Context, path, selector, entries string) (Result, error)
}

// CommandProber probes with a local ffprobe binary.
type CommandProber struct {
	Binary string
}

// Probe implements Prober.
func (p CommandProber) Probe(ctx context.Context, path, selector, entries string) (Result, error) {
	return Probe(ctx, p.Binary, path, selector, entries)
}
