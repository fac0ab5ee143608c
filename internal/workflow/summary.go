package workflow

import "time"

// Result is the outcome of one job as reported to the caller.
type Result struct {
	JobID    string
	Source   string
	Output   string
	State    State
	Stage    string
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the file reached the output root.
func (r Result) Succeeded() bool {
	return r.State == StateFinalized
}

// Summary tallies a batch.
type Summary struct {
	Total     int
	Processed int
	Failed    int
	Results   []Result
	// Interrupted is set when the run context was cancelled before every
	// file was attempted.
	Interrupted bool
}

func (s *Summary) add(job *Job) {
	result := Result{
		JobID:    job.ID,
		Source:   job.Source,
		State:    job.State,
		Stage:    job.FailedStage,
		Err:      job.Err,
		Duration: job.Duration(),
	}
	if job.State == StateFinalized {
		result.Output = job.Paths.Final
		s.Processed++
	} else {
		s.Failed++
	}
	s.Results = append(s.Results, result)
}

// HasFailures reports whether any attempted file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}
