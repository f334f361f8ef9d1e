package redosprobe

import (
	"github.com/seclab-tools/redosprobe/internal/sampler"
)

// SamplerMode selects which wire protocol a [Sampler] speaks.
type SamplerMode = sampler.Mode

const (
	// PathLengthMode measures the number of VM steps taken while matching.
	PathLengthMode = sampler.PathLength
	// WallClockMode measures elapsed time.
	WallClockMode = sampler.WallClock
)

// SampleTimedOut is the sentinel cost a [Sampler] returns when a sample did
// not complete within its timeout. It is data, not an error: a timeout is a
// legitimate (if extreme) point on a cost curve.
const SampleTimedOut = sampler.TimedOut

// Sampler owns one external sampler subprocess for its entire lifetime. It
// is not safe for concurrent use — the intended deployment is one Sampler
// per worker goroutine, each with its own subprocess.
type Sampler = sampler.Client

// CharEncoding identifies how a [WallClockRequest]'s witness bytes should
// be interpreted by the sampler.
type CharEncoding = sampler.CharEncoding

const (
	Latin1  = sampler.Latin1
	UTF16LE = sampler.UTF16LE
)

// WallClockRequest is one request of the wall-clock sampler protocol.
type WallClockRequest = sampler.WallClockRequest

// NewSampler creates a [Sampler] that spawns argv[0] with argv[1:] as
// arguments each time it opens a subprocess, speaking mode's wire protocol.
func NewSampler(mode SamplerMode, argv []string, opts ...SamplerOption) *Sampler {
	return sampler.New(mode, argv, opts...)
}
