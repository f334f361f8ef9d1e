package redosprobe

import (
	"time"

	"github.com/seclab-tools/redosprobe/internal/sampler"
)

// SamplerOption configures a [Sampler] created by [NewSampler].
type SamplerOption = sampler.Option

// WithOpenTimeout overrides how long a [Sampler] waits for its subprocess's
// handshake line before giving up. The default is 5 seconds.
func WithOpenTimeout(d time.Duration) SamplerOption {
	return sampler.WithOpenTimeout(d)
}

// WithSampleTimeout overrides a [Sampler]'s per-sample response deadline.
// The default depends on the sampler's [SamplerMode].
func WithSampleTimeout(d time.Duration) SamplerOption {
	return sampler.WithSampleTimeout(d)
}
