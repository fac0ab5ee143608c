package ffmpeg

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"av1batch/internal/logging"
)

// Progress markers matched against ffmpeg output lines.
const (
	MarkerFrame    = "frame="
	MarkerTime     = "time="
	MarkerAudio    = "Audio"
	MarkerSubtitle = "Subtitle"
)

// Matches reports whether line carries any of markers.
func Matches(line string, markers ...string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// ParseTime extracts the time=HH:MM:SS.ss position from a progress line.
func ParseTime(line string) (float64, bool) {
	idx := strings.LastIndex(line, MarkerTime)
	if idx < 0 {
		return 0, false
	}
	value := line[idx+len(MarkerTime):]
	if end := strings.IndexAny(value, " \t"); end >= 0 {
		value = value[:end]
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return float64(hours*3600+minutes*60) + seconds, true
}

// Percent converts a progress line into a completion percentage against
// durationSeconds, or -1 when either is unknown.
func Percent(line string, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return -1
	}
	position, ok := ParseTime(line)
	if !ok {
		return -1
	}
	percent := position / durationSeconds * 100
	if percent > 100 {
		percent = 100
	}
	return percent
}

// ProgressLogger returns an onLine callback that logs sampled progress lines
// carrying any of markers. Lines without markers are only logged at debug.
func ProgressLogger(logger *slog.Logger, stage string, durationSeconds float64, markers ...string) func(string) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(markers) == 0 {
		markers = []string{MarkerFrame, MarkerTime}
	}
	sampler := logging.NewProgressSampler(5)
	return func(line string) {
		if !Matches(line, markers...) {
			logger.Debug("encoder output", logging.String("line", line))
			return
		}
		percent := Percent(line, durationSeconds)
		if !sampler.ShouldLog(percent, stage) {
			return
		}
		attrs := []logging.Attr{
			logging.String(logging.FieldEventType, "stage_progress"),
			logging.String("line", strings.TrimSpace(line)),
		}
		if percent >= 0 {
			attrs = append(attrs, logging.Float64("percent", percent))
		}
		logger.LogAttrs(context.Background(), slog.LevelInfo, stage+" progress", attrs...)
	}
}
