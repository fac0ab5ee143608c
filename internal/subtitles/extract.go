package subtitles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"av1batch/internal/logging"
	"av1batch/internal/media/streaminfo"
	"av1batch/internal/services"
	"av1batch/internal/services/ffmpeg"
	"av1batch/internal/textutil"
)

// ExtractRequest describes a sidecar extraction.
type ExtractRequest struct {
	Source string
	// OutputDir defaults to the source directory.
	OutputDir string
	Streams   []streaminfo.SubtitleStreamInfo
	// Format is srt, ass, or webvtt; srt when empty.
	Format     string
	TextCodecs []string
}

// Extracted reports one written sidecar.
type Extracted struct {
	SourceIndex int
	Path        string
}

type sidecarFormat struct {
	codec string
	ext   string
}

var sidecarFormats = map[string]sidecarFormat{
	"srt":    {codec: "srt", ext: ".srt"},
	"ass":    {codec: "ass", ext: ".ass"},
	"webvtt": {codec: "webvtt", ext: ".vtt"},
}

// SidecarName returns <base>.<index>.<lang>[.forced][.sdh]<ext>.
func SidecarName(source string, stream streaminfo.SubtitleStreamInfo, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	base = textutil.SanitizeFileName(base)
	if base == "" {
		base = "subtitle"
	}
	lang := textutil.SanitizeToken(stream.Language)
	if lang == "unknown" {
		lang = "und"
	}
	parts := []string{base, strconv.Itoa(stream.Index), lang}
	if IsForced(stream) {
		parts = append(parts, "forced")
	}
	if IsHearingImpaired(stream) {
		parts = append(parts, "sdh")
	}
	return strings.Join(parts, ".") + ext
}

// Extract writes each text track to a sidecar file. Per-track failures are
// logged and skipped; an error is returned only when nothing could be written
// or the request itself is invalid.
func Extract(ctx context.Context, inv ffmpeg.Invoker, req ExtractRequest, logger *slog.Logger) ([]Extracted, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if strings.TrimSpace(req.Source) == "" {
		return nil, services.Wrap(services.ErrValidation, "extract", "request", "source path is required", nil)
	}
	if _, err := os.Stat(req.Source); err != nil {
		return nil, services.Wrap(services.ErrSourceNotFound, "extract", "stat source", req.Source, err)
	}
	format, ok := sidecarFormats[strings.ToLower(strings.TrimSpace(req.Format))]
	if !ok {
		if strings.TrimSpace(req.Format) != "" {
			return nil, services.Wrap(services.ErrValidation, "extract", "request", fmt.Sprintf("unsupported subtitle format %q", req.Format), nil)
		}
		format = sidecarFormats["srt"]
	}
	outDir := strings.TrimSpace(req.OutputDir)
	if outDir == "" {
		outDir = filepath.Dir(req.Source)
	}
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		return nil, services.Wrap(services.ErrNotADirectory, "extract", "stat output", outDir, err)
	}

	var (
		written  []Extracted
		failures []error
	)
	for _, stream := range req.Streams {
		if !IsTextCodec(stream.Codec, req.TextCodecs) {
			logging.WarnWithContext(logger, "subtitle track skipped, codec is not text based", "subtitle_extract_skipped",
				logging.Int("stream_index", stream.Index),
				logging.String("codec", stream.Codec),
				logging.String(logging.FieldErrorHint, "only text subtitles can be extracted"),
			)
			continue
		}
		target := filepath.Join(outDir, SidecarName(req.Source, stream, format.ext))
		args := []string{"-y", "-nostdin", "-hide_banner",
			"-i", req.Source,
			"-map", fmt.Sprintf("0:%d", stream.Index),
			"-c:s", format.codec,
			target,
		}
		logger.Info("extracting subtitle track",
			logging.Int("stream_index", stream.Index),
			logging.String("language", stream.Language),
			logging.String("path", target),
		)
		onLine := ffmpeg.ProgressLogger(logger, "extract", 0, ffmpeg.MarkerFrame, ffmpeg.MarkerTime, ffmpeg.MarkerSubtitle)
		if err := ffmpeg.Run(ctx, inv, "extract", args, onLine); err != nil {
			logging.WarnWithContext(logger, "subtitle extraction failed", "subtitle_extract_failed",
				logging.Int("stream_index", stream.Index),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "inspect the track with ffprobe; the remaining tracks are still extracted"),
			)
			_ = os.Remove(target)
			failures = append(failures, err)
			continue
		}
		logging.OK(logger, "subtitle track extracted",
			logging.Int("stream_index", stream.Index),
			logging.String("path", target),
		)
		written = append(written, Extracted{SourceIndex: stream.Index, Path: target})
	}
	if len(written) == 0 && len(failures) > 0 {
		return nil, errors.Join(failures...)
	}
	return written, nil
}
