package logging

import "strings"

// defaultUnknownEvery is how many progress lines without a computable
// percentage pass between emitted records.
const defaultUnknownEvery = 20

// ProgressSampler thins encoder progress output. It emits when the stage
// changes, when the percentage crosses a bucket boundary, or every N lines
// when no percentage is known.
type ProgressSampler struct {
	bucketSize   float64
	unknownEvery int
	lastStage    string
	lastBucket   int
	unknownSeen  int
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 5%) or when the stage changes.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	return &ProgressSampler{bucketSize: bucketSize, unknownEvery: defaultUnknownEvery, lastBucket: -1}
}

// ShouldLog reports whether a progress event should be logged. A negative
// percent means the total is unknown.
func (s *ProgressSampler) ShouldLog(percent float64, stage string) bool {
	if s == nil {
		return true
	}
	stage = strings.TrimSpace(stage)
	if stage != "" && stage != s.lastStage {
		s.lastStage = stage
		s.lastBucket = -1
		s.unknownSeen = 0
		if percent >= 0 {
			s.lastBucket = s.bucket(percent)
		}
		return true
	}
	if percent < 0 {
		s.unknownSeen++
		if s.unknownSeen >= s.unknownEvery {
			s.unknownSeen = 0
			return true
		}
		return false
	}
	bucket := s.bucket(percent)
	if bucket > s.lastBucket {
		s.lastBucket = bucket
		return true
	}
	return false
}

func (s *ProgressSampler) bucket(percent float64) int {
	if percent >= 100 {
		return int(100 / s.bucketSize)
	}
	return int(percent / s.bucketSize)
}

// Reset clears the sampler state (e.g. when a new job starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastStage = ""
	s.lastBucket = -1
	s.unknownSeen = 0
}
