package workflow

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"av1batch/internal/config"
	"av1batch/internal/encoding"
	"av1batch/internal/fileutil"
	"av1batch/internal/logging"
	"av1batch/internal/media/audio"
	"av1batch/internal/media/ffprobe"
	"av1batch/internal/media/streaminfo"
	"av1batch/internal/services"
	"av1batch/internal/services/drapto"
	"av1batch/internal/services/ffmpeg"
	"av1batch/internal/staging"
	"av1batch/internal/subtitles"
)

// RunJob drives one source file through every stage. The returned job is
// either Finalized or Failed; a failed job leaves none of its temp artifacts
// behind.
func (o *Orchestrator) RunJob(ctx context.Context, source string) *Job {
	job := newJob(source, o.pathsFor(source))
	ctx = services.WithJobID(ctx, job.ID)
	ctx = services.WithSource(ctx, source)
	logger := logging.WithContext(ctx, o.logger)

	steps := []struct {
		stage string
		next  State
		run   func(context.Context, *Job, *slog.Logger) error
	}{
		{StageMux, StateMuxed, o.muxStage},
		{StageAudio, StateAudioDone, o.audioStage},
		{StageVideo, StateVideoDone, o.videoStage},
		{StageFinalize, StateFinalized, o.finalizeStage},
	}

	if _, err := os.Stat(source); err != nil {
		o.failJob(logger, job, StageMux, services.Wrap(services.ErrSourceNotFound, StageMux, "stat source", source, err))
		return job
	}

	for _, step := range steps {
		stageCtx := services.WithStage(ctx, step.stage)
		stageLogger := logging.WithContext(stageCtx, o.logger)
		var cancel context.CancelFunc = func() {}
		if o.settings.StageTimeout > 0 && step.stage != StageFinalize {
			stageCtx, cancel = context.WithTimeout(stageCtx, o.settings.StageTimeout)
		}
		stageLogger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))
		err := step.run(stageCtx, job, stageLogger)
		cancel()
		if err == nil {
			err = job.advance(step.next)
		}
		if err != nil {
			o.failJob(stageLogger, job, step.stage, err)
			return job
		}
		logging.OK(stageLogger, "stage complete",
			logging.String(logging.FieldEventType, "stage_complete"),
			logging.String("state", string(job.State)),
		)
	}

	// Only the first slot can still be tracked here; the final file has left
	// the temp root.
	staging.RemoveArtifacts(job.Artifacts(), logger)
	job.artifacts = nil
	logging.OK(logger, "file finalized",
		logging.String(logging.FieldEventType, "job_complete"),
		logging.String("output", job.Paths.Final),
		logging.Duration("elapsed", job.Duration()),
	)
	return job
}

func (o *Orchestrator) failJob(logger *slog.Logger, job *Job, stage string, err error) {
	job.fail(stage, err)
	cleanup := staging.RemoveArtifacts(job.Artifacts(), logger)
	job.artifacts = nil
	for _, cerr := range cleanup.Errors {
		job.artifacts = append(job.artifacts, cerr.Path)
	}
	logging.ErrorWithContext(logger, "file failed", "job_failed",
		logging.String(logging.FieldStage, stage),
		logging.Error(err),
		logging.Int("artifacts_removed", len(cleanup.Removed)),
		logging.String(logging.FieldErrorHint, failureHint(err)),
	)
}

func failureHint(err error) string {
	switch {
	case errors.Is(err, ErrOutputConflict):
		return "rename one of the sources so each maps to its own output file"
	case errors.Is(err, services.ErrSourceNotFound):
		return "the file disappeared from the source directory"
	case errors.Is(err, services.ErrNoVideoStream):
		return "the source has no video stream to encode"
	case errors.Is(err, services.ErrProbe):
		return "run ffprobe on the source to inspect it"
	case errors.Is(err, context.DeadlineExceeded):
		return "raise tools.stage_timeout_minutes or set it to 0"
	case errors.Is(err, services.ErrEncodeFailure):
		return "the encoder output tail is included in the error"
	case errors.Is(err, services.ErrMoveFailure):
		return "check free space and permissions on temp_dir and output_dir"
	default:
		return "check logs for details"
	}
}

// muxStage normalizes the container to MP4 and carries the text subtitles.
func (o *Orchestrator) muxStage(ctx context.Context, job *Job, logger *slog.Logger) error {
	var streams []streaminfo.SubtitleStreamInfo
	result, err := o.prober.Probe(ctx, job.Source, ffprobe.SelectSubtitle, ffprobe.SubtitleEntries)
	if err != nil {
		logging.WarnWithContext(logger, "subtitle probe failed, continuing without subtitles", "subtitle_probe_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run ffprobe on the source to inspect its subtitle streams"),
		)
	} else {
		streams = streaminfo.SubtitlesFromProbe(result)
	}
	plan := subtitles.BuildPlans(streams, subtitles.Options{
		TextCodecs: o.settings.TextCodecs,
		Locale:     o.settings.Locale,
		Logger:     logger,
	})
	logger.Info("subtitle plan",
		logging.Int("kept", len(plan.Plans)),
		logging.Int("dropped", len(plan.Dropped)),
	)

	args := subtitles.MuxArgs(job.Source, job.Paths.Work, plan.Plans, o.settings.SubtitleMuxCodec)
	job.track(job.Paths.Work)
	onLine := ffmpeg.ProgressLogger(logger, StageMux, 0, ffmpeg.MarkerFrame, ffmpeg.MarkerTime, ffmpeg.MarkerAudio)
	if err := ffmpeg.Run(ctx, o.invoker, StageMux, args, onLine); err != nil {
		return err
	}
	return o.moveInto(job, job.Paths.Work, job.Paths.Mux, StageMux)
}

// audioStage re-encodes audio and replaces the first slot in place.
func (o *Orchestrator) audioStage(ctx context.Context, job *Job, logger *slog.Logger) error {
	var streams []streaminfo.AudioStreamInfo
	result, err := o.prober.Probe(ctx, job.Paths.Mux, ffprobe.SelectAudio, ffprobe.AudioEntries)
	if err != nil {
		logging.WarnWithContext(logger, "audio probe failed, continuing without audio", "audio_probe_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run ffprobe on the source to inspect its audio streams"),
		)
	} else {
		streams = streaminfo.AudioFromProbe(result)
	}
	plan := audio.BuildPlans(streams, audio.Options{
		TargetCodec: o.settings.AudioCodec,
		Locale:      o.settings.Locale,
		Confirm:     o.confirm,
		Logger:      logger,
	})
	logger.Info("audio plan",
		logging.Int("kept", len(plan.Plans)),
		logging.Int("dropped", len(plan.Dropped)),
	)

	args := audio.Args(job.Paths.Mux, job.Paths.Audio, plan.Plans)
	job.track(job.Paths.Audio)
	onLine := ffmpeg.ProgressLogger(logger, StageAudio, 0, ffmpeg.MarkerFrame, ffmpeg.MarkerTime, ffmpeg.MarkerAudio)
	if err := ffmpeg.Run(ctx, o.invoker, StageAudio, args, onLine); err != nil {
		return err
	}
	return o.moveInto(job, job.Paths.Audio, job.Paths.Mux, StageAudio)
}

// videoStage encodes the staged file to AV1 into the second slot.
func (o *Orchestrator) videoStage(ctx context.Context, job *Job, logger *slog.Logger) error {
	result, err := o.prober.Probe(ctx, job.Paths.Mux, ffprobe.SelectVideo, ffprobe.VideoEntries)
	if err != nil {
		return err
	}
	var info *streaminfo.VideoStreamInfo
	if v, ok := streaminfo.VideoFromProbe(result, fileSize(job.Paths.Mux)); ok {
		info = &v
	}
	profile, err := encoding.ComputeProfile(info)
	if err != nil {
		return err
	}
	logger.Info("encoding profile",
		logging.String("resolution", string(profile.Resolution)),
		logging.Bool("hdr", profile.HDR),
		logging.Float64("fps", profile.Framerate),
		logging.Int64("source_bitrate", info.BitRate),
		logging.Int64("target_bitrate", profile.Targets.Bitrate),
		logging.Int("cq", profile.Targets.CQ),
		logging.Int("gop", profile.GOP),
		logging.String("encoder", o.settings.Encoder),
	)

	if o.settings.Encoder == config.EncoderDrapto {
		return o.draptoEncode(ctx, job, logger)
	}

	args := encoding.VideoArgs(o.settings.Video, job.Paths.Mux, job.Paths.Work, profile)
	job.track(job.Paths.Work)
	onLine := ffmpeg.ProgressLogger(logger, StageVideo, info.DurationSeconds, ffmpeg.MarkerFrame, ffmpeg.MarkerTime)
	if err := ffmpeg.Run(ctx, o.invoker, StageVideo, args, onLine); err != nil {
		return err
	}
	return o.moveInto(job, job.Paths.Work, job.Paths.Video, StageVideo)
}

func (o *Orchestrator) draptoEncode(ctx context.Context, job *Job, logger *slog.Logger) error {
	produced := drapto.OutputPath(job.Paths.Mux, o.settings.TempDir)
	job.track(produced)
	sampler := logging.NewProgressSampler(5)
	output, err := o.drapto.Encode(ctx, job.Paths.Mux, o.settings.TempDir, func(update drapto.ProgressUpdate) {
		if !sampler.ShouldLog(update.Percent, update.Stage) {
			return
		}
		logger.Info("video progress",
			logging.String(logging.FieldEventType, "stage_progress"),
			logging.String("phase", update.Stage),
			logging.Float64("percent", update.Percent),
			logging.Duration("eta", update.ETA),
		)
	})
	if err != nil {
		return services.Wrap(services.ErrEncodeFailure, StageVideo, "drapto encode", job.Paths.Mux, err)
	}
	if output != produced {
		job.track(output)
	}
	return o.moveInto(job, output, job.Paths.Video, StageVideo)
}

// finalizeStage moves the second slot into the output root.
func (o *Orchestrator) finalizeStage(_ context.Context, job *Job, _ *slog.Logger) error {
	if err := fileutil.Move(job.Paths.Video, job.Paths.Final); err != nil {
		return services.Wrap(services.ErrMoveFailure, StageFinalize, "move to output", job.Paths.Final, err)
	}
	job.untrack(job.Paths.Video)
	return nil
}

// moveInto moves src over dest and updates the job's artifact set.
func (o *Orchestrator) moveInto(job *Job, src, dest, stage string) error {
	job.track(dest)
	if err := fileutil.Move(src, dest); err != nil {
		return services.Wrap(services.ErrMoveFailure, stage, "stage artifact", dest, err)
	}
	job.untrack(src)
	return nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
