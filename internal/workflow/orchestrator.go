package workflow

import (
	"context"
	"errors"
	"log/slog"

	"av1batch/internal/logging"
	"av1batch/internal/media/audio"
	"av1batch/internal/media/ffprobe"
	"av1batch/internal/preflight"
	"av1batch/internal/services"
	"av1batch/internal/services/drapto"
	"av1batch/internal/services/ffmpeg"
	"av1batch/internal/staging"
)

// ErrNoEligibleFiles reports a source directory without any file carrying a
// configured extension.
var ErrNoEligibleFiles = errors.New("no eligible files")

// ErrOutputConflict reports a source whose output path is already claimed by
// an earlier file in the same batch.
var ErrOutputConflict = errors.New("output name conflict")

// Orchestrator runs batches of jobs.
type Orchestrator struct {
	settings Settings
	logger   *slog.Logger
	invoker  ffmpeg.Invoker
	prober   ffprobe.Prober
	confirm  audio.Confirmer
	drapto   drapto.Encoder
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithInvoker sets the encoder invoker.
func WithInvoker(inv ffmpeg.Invoker) Option {
	return func(o *Orchestrator) {
		if inv != nil {
			o.invoker = inv
		}
	}
}

// WithProber sets the stream prober.
func WithProber(p ffprobe.Prober) Option {
	return func(o *Orchestrator) {
		if p != nil {
			o.prober = p
		}
	}
}

// WithConfirmer sets the decision policy for flagged audio tracks.
func WithConfirmer(c audio.Confirmer) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.confirm = c
		}
	}
}

// WithDraptoEncoder sets the encoder used when Settings.Encoder is drapto.
func WithDraptoEncoder(e drapto.Encoder) Option {
	return func(o *Orchestrator) {
		if e != nil {
			o.drapto = e
		}
	}
}

// New constructs an Orchestrator. Without options it shells out to ffmpeg and
// ffprobe from PATH and keeps every flagged audio track.
func New(settings Settings, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		settings: settings,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		invoker:  ffmpeg.NewCommandInvoker(""),
		prober:   ffprobe.CommandProber{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.drapto == nil {
		o.drapto = drapto.NewLibrary(logger)
	}
	return o
}

// Run processes every eligible file in dir sequentially. The returned error
// is non-nil only for run-level failures; per-file failures are reported in
// the Summary.
func (o *Orchestrator) Run(ctx context.Context, dir string) (Summary, error) {
	files, err := Discover(dir, o.settings.Extensions)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, services.Wrap(ErrNoEligibleFiles, StageDiscover, dir, "no file with a configured extension", nil)
	}
	if err := preflight.RequireDirectories(o.settings.TempDir, o.settings.OutputDir); err != nil {
		return Summary{Total: len(files)}, err
	}

	lock, err := staging.AcquireLock(o.settings.TempDir)
	if err != nil {
		return Summary{Total: len(files)}, services.Wrap(services.ErrConfiguration, "run", "lock temp directory", "another run may be active", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			o.logger.Warn("failed to release temp directory lock", logging.Error(err))
		}
	}()

	if o.settings.StaleArtifactAge > 0 {
		swept := staging.CleanStale(ctx, o.settings.TempDir, o.settings.StaleArtifactAge, o.logger)
		if len(swept.Removed) > 0 {
			o.logger.Info("stale artifacts removed", logging.Int("count", len(swept.Removed)))
		}
	}

	o.logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.String("source_dir", dir),
		logging.Int("files", len(files)),
		logging.String("encoder", o.settings.Encoder),
	)

	conflicts := o.outputConflicts(files)
	for _, later := range files {
		first, ok := conflicts[later]
		if !ok {
			continue
		}
		logging.WarnWithContext(o.logger, "sources share an output name", "output_conflict",
			logging.String(logging.FieldSource, later),
			logging.String("claimed_by", first),
			logging.String(logging.FieldErrorHint, "rename one of the sources so each maps to its own output file"),
		)
	}

	summary := Summary{Total: len(files)}
	for i, file := range files {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}
		if first, ok := conflicts[file]; ok {
			summary.add(o.rejectConflict(ctx, file, first))
			continue
		}
		o.logger.Info("processing file",
			logging.String(logging.FieldSource, file),
			logging.Int("position", i+1),
			logging.Int("total", len(files)),
		)
		job := o.RunJob(ctx, file)
		summary.add(job)
	}

	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Int("total", summary.Total),
	}
	if summary.Failed == 0 && !summary.Interrupted {
		logging.OK(o.logger, "batch complete", attrs...)
	} else {
		logging.WarnWithContext(o.logger, "batch complete with failures", "batch_complete",
			append(attrs, logging.String(logging.FieldErrorHint, "see the per-file errors above"))...)
	}
	if summary.Interrupted {
		return summary, ctx.Err()
	}
	return summary, nil
}

// outputConflicts maps every source whose final path was already claimed by
// an earlier source to that earlier source. files must be in run order.
func (o *Orchestrator) outputConflicts(files []string) map[string]string {
	owners := make(map[string]string, len(files))
	conflicts := make(map[string]string)
	for _, file := range files {
		final := o.pathsFor(file).Final
		if first, ok := owners[final]; ok {
			conflicts[file] = first
			continue
		}
		owners[final] = file
	}
	return conflicts
}

func (o *Orchestrator) rejectConflict(ctx context.Context, source, first string) *Job {
	job := newJob(source, o.pathsFor(source))
	ctx = services.WithSource(services.WithJobID(ctx, job.ID), source)
	err := services.Wrap(ErrOutputConflict, StageDiscover, "reserve output", job.Paths.Final+" is produced from "+first, nil)
	o.failJob(logging.WithContext(ctx, o.logger), job, StageDiscover, err)
	return job
}

func (o *Orchestrator) pathsFor(source string) staging.JobPaths {
	return staging.PathsFor(o.settings.TempDir, o.settings.OutputDir, source, o.settings.videoExt())
}
