package workflow

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"av1batch/internal/staging"
)

// State is a job's position in the pipeline.
type State string

const (
	StateCreated   State = "created"
	StateMuxed     State = "muxed"
	StateAudioDone State = "audio_done"
	StateVideoDone State = "video_done"
	StateFinalized State = "finalized"
	StateFailed    State = "failed"
)

// Stage names used in logs, errors, and summaries.
const (
	StageDiscover = "discover"
	StageMux      = "mux"
	StageAudio    = "audio"
	StageVideo    = "video"
	StageFinalize = "finalize"
)

var nextState = map[State]State{
	StateCreated:   StateMuxed,
	StateMuxed:     StateAudioDone,
	StateAudioDone: StateVideoDone,
	StateVideoDone: StateFinalized,
}

// Job is one source file's run through the pipeline.
type Job struct {
	ID     string
	Source string
	Paths  staging.JobPaths
	State  State

	// FailedStage and Err are set when State is StateFailed.
	FailedStage string
	Err         error

	Started  time.Time
	Finished time.Time

	artifacts []string
}

func newJob(source string, paths staging.JobPaths) *Job {
	return &Job{
		ID:      uuid.NewString(),
		Source:  source,
		Paths:   paths,
		State:   StateCreated,
		Started: time.Now(),
	}
}

// Artifacts returns the temp files the job currently owns.
func (j *Job) Artifacts() []string {
	return slices.Clone(j.artifacts)
}

func (j *Job) track(path string) {
	if path == "" || slices.Contains(j.artifacts, path) {
		return
	}
	j.artifacts = append(j.artifacts, path)
}

func (j *Job) untrack(path string) {
	j.artifacts = slices.DeleteFunc(j.artifacts, func(p string) bool { return p == path })
}

// advance moves the job to the next state. Only the forward edge from the
// current state is allowed.
func (j *Job) advance(to State) error {
	want, ok := nextState[j.State]
	if !ok || want != to {
		return fmt.Errorf("invalid transition %s -> %s", j.State, to)
	}
	j.State = to
	if to == StateFinalized {
		j.Finished = time.Now()
	}
	return nil
}

func (j *Job) fail(stage string, err error) {
	j.State = StateFailed
	j.FailedStage = stage
	j.Err = err
	j.Finished = time.Now()
}

// Duration is the wall time the job took, or so far.
func (j *Job) Duration() time.Duration {
	end := j.Finished
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(j.Started)
}
