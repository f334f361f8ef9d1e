package redosprobe

import (
	"context"
	"time"

	"github.com/seclab-tools/redosprobe/internal/pump"
)

// SearchStatus is how a [Search] terminated.
type SearchStatus = pump.SearchStatus

const (
	SearchDone            = pump.Done
	SearchBaselineTimeout = pump.BaselineTimeout
	SearchPartialTimeout  = pump.PartialTimeout
	SearchFastbreak       = pump.Fastbreak
)

// ProfileStatus is how one (pump_pos, pump_len) probe terminated.
type ProfileStatus = pump.ProfileStatus

const (
	ProfileFull            = pump.ProfileFull
	ProfilePumpTimeout     = pump.ProfilePumpTimeout
	ProfileBasePumpTimeout = pump.ProfileBasePumpTimeout
)

// Point is one (pumped subject length, sampled cost) observation.
type Point = pump.Point

// Profile is the record of one interesting (pump_pos, pump_len) site.
type Profile = pump.Profile

// SearchResult is the outcome of one full [Search] over a witness.
type SearchResult = pump.SearchResult

// Search runs the exhaustive pump/classify loop over witness using client,
// returning as soon as a fastbreak-worthy growth shape is found, the
// deadline passes, or every (pos, len) pair has been tried. width is the
// byte width of one character in witness (1 for Latin-1, 2 for UTF-16LE).
func Search(ctx context.Context, client *Sampler, witness []byte, width int, deadline time.Time) (*SearchResult, error) {
	return pump.Search(ctx, client, witness, width, deadline)
}

// Job is one witness to search, submitted to a [WorkerPool].
type Job = pump.Job

// JobResult pairs a [Job] with the search outcome, or the error that
// aborted it.
type JobResult = pump.JobResult

// WorkerPool runs a fixed set of worker goroutines, one per CPU, each
// holding an exclusive [Sampler] subprocess for its entire lifetime.
type WorkerPool = pump.Pool

// NewWorkerPool builds a worker pool sized to workers goroutines (or
// runtime.NumCPU() if workers is non-positive), each backed by a [Sampler]
// built by spawn for the CPU slot it was handed.
func NewWorkerPool(workers, queueDepth int, spawn func(cpu int) *Sampler) *WorkerPool {
	return pump.NewPool(workers, queueDepth, spawn)
}

// ReportObject is the cross-profile reduction of a [SearchResult] into the
// single winning classification and the witness slice responsible for it.
type ReportObject = pump.ReportObject

// Aggregate reduces res's profiles to one winning classification, mirroring
// the priority Search itself used while running: a baseline timeout, then a
// fastbreak's own profile, then any mid-search timeout, then the strongest
// completed Polynomial fit. witness and width must be the same values
// passed to the [Search] call that produced res; regexp and flags identify
// the pattern that was searched and are copied into the result verbatim.
func Aggregate(res *SearchResult, regexp []byte, flags string, witness []byte, width int) ReportObject {
	return pump.Aggregate(res, regexp, flags, witness, width)
}
