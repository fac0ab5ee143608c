package drapto

import (
	"log/slog"

	"github.com/dustin/go-humanize"
	draptolib "github.com/five82/drapto"

	"av1batch/internal/logging"
)

// logReporter adapts the Drapto Reporter interface to structured logs and an
// optional ProgressUpdate callback.
type logReporter struct {
	logger   *slog.Logger
	callback func(ProgressUpdate)
}

func newLogReporter(logger *slog.Logger, callback func(ProgressUpdate)) *logReporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &logReporter{logger: logger, callback: callback}
}

func (r *logReporter) emit(update ProgressUpdate) {
	if r.callback != nil {
		r.callback(update)
	}
}

func (r *logReporter) Hardware(s draptolib.HardwareSummary) {
	r.logger.Debug("drapto hardware", logging.String("hostname", s.Hostname))
}

func (r *logReporter) Initialization(s draptolib.InitializationSummary) {
	r.logger.Info("drapto initialized",
		logging.String("input", s.InputFile),
		logging.Any("resolution", s.Resolution),
		logging.Any("dynamic_range", s.DynamicRange),
	)
}

func (r *logReporter) StageProgress(s draptolib.StageProgress) {
	update := ProgressUpdate{
		Percent: float64(s.Percent),
		Stage:   s.Stage,
		Message: s.Message,
	}
	if s.ETA != nil {
		update.ETA = *s.ETA
	}
	r.emit(update)
}

func (r *logReporter) CropResult(s draptolib.CropSummary) {
	r.logger.Info("drapto crop detection",
		logging.Any("crop", s.Crop),
		logging.Bool("required", s.Required),
		logging.Bool("disabled", s.Disabled),
		logging.String("message", s.Message),
	)
}

func (r *logReporter) EncodingConfig(s draptolib.EncodingConfigSummary) {
	r.logger.Info("drapto encoding config",
		logging.Any("encoder", s.Encoder),
		logging.Any("preset", s.Preset),
		logging.Any("quality", s.Quality),
		logging.Any("pixel_format", s.PixelFormat),
	)
}

func (r *logReporter) EncodingStarted(totalFrames uint64) {
	r.logger.Debug("drapto encoding started", logging.Any("total_frames", totalFrames))
}

func (r *logReporter) EncodingProgress(s draptolib.ProgressSnapshot) {
	r.emit(ProgressUpdate{
		Percent: float64(s.Percent),
		Stage:   "encoding",
		ETA:     s.ETA,
		Speed:   float64(s.Speed),
		FPS:     float64(s.FPS),
	})
}

func (r *logReporter) ValidationComplete(s draptolib.ValidationSummary) {
	for _, step := range s.Steps {
		if step.Passed {
			continue
		}
		logging.WarnWithContext(r.logger, "drapto validation step failed", "drapto_validation_failed",
			logging.Any("step", step.Name),
			logging.Any("details", step.Details),
			logging.String(logging.FieldErrorHint, "inspect the encoded file before relying on it"),
		)
	}
	r.logger.Info("drapto validation complete", logging.Bool("passed", s.Passed))
}

func (r *logReporter) EncodingComplete(s draptolib.EncodingOutcome) {
	r.logger.Info("drapto encoding complete",
		logging.String("output", s.OutputPath),
		logging.String("original_size", humanize.Bytes(uint64(s.OriginalSize))),
		logging.String("encoded_size", humanize.Bytes(uint64(s.EncodedSize))),
		logging.Any("elapsed", s.TotalTime),
	)
}

func (r *logReporter) Warning(message string) {
	logging.WarnWithContext(r.logger, "drapto warning", "drapto_warning",
		logging.String("message", message),
	)
}

func (r *logReporter) Error(e draptolib.ReporterError) {
	logging.ErrorWithContext(r.logger, "drapto error", "drapto_error",
		logging.String("title", e.Title),
		logging.String("message", e.Message),
		logging.String("context", e.Context),
		logging.String(logging.FieldErrorHint, e.Suggestion),
	)
}

func (r *logReporter) OperationComplete(message string) {
	r.logger.Debug("drapto operation complete", logging.String("message", message))
}

func (r *logReporter) BatchStarted(s draptolib.BatchStartInfo) {
	r.logger.Debug("drapto batch started", logging.Any("total_files", s.TotalFiles))
}

func (r *logReporter) FileProgress(s draptolib.FileProgressContext) {
	r.logger.Debug("drapto file progress",
		logging.Any("current_file", s.CurrentFile),
		logging.Any("total_files", s.TotalFiles),
	)
}

func (r *logReporter) BatchComplete(s draptolib.BatchSummary) {
	r.logger.Debug("drapto batch complete",
		logging.Any("successful", s.SuccessfulCount),
		logging.Any("total_files", s.TotalFiles),
	)
}

var _ draptolib.Reporter = (*logReporter)(nil)
