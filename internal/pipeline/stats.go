package pipeline

import (
	"time"

	"github.com/backmassage/bundlekit/internal/emit"
	"github.com/backmassage/bundlekit/internal/inject"
)

// RunStats summarizes one build invocation.
type RunStats struct {
	Outputs    int // bundler outputs, sourcemaps included
	Written    []emit.Written
	HTMLFiles  int
	Collisions int

	Injected      int
	Replaced      int
	Unchanged     int
	InjectSkipped int
	InjectFailed  int

	Duration time.Duration
}

// TotalBytes returns the combined size of every emitted file.
func (s *RunStats) TotalBytes() int64 {
	var n int64
	for _, w := range s.Written {
		n += w.Size
	}
	return n
}

// recordInjections tallies per-file injection outcomes.
func (s *RunStats) recordInjections(results []inject.Result) {
	for _, r := range results {
		switch r.Action {
		case inject.ActionInserted:
			s.Injected++
		case inject.ActionReplaced:
			s.Replaced++
		case inject.ActionUnchanged:
			s.Unchanged++
		case inject.ActionSkipped:
			s.InjectSkipped++
		case inject.ActionFailed:
			s.InjectFailed++
		}
	}
}
