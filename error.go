package redosprobe

import (
	"github.com/seclab-tools/redosprobe/internal/bytecode"
	"github.com/seclab-tools/redosprobe/internal/cfg"
	"github.com/seclab-tools/redosprobe/internal/sampler"
)

// DecodeError is returned by [Decode] when a byte stream cannot be
// interpreted as a valid instruction stream. Use its PC method, after a type
// assertion or errors.As, to recover the offset at which decoding failed.
type DecodeError = bytecode.DecodeError

// BuildError is returned by [BasicBlocks] and [ExtendedBlocks] when a
// program's control flow cannot be turned into a well-formed graph.
type BuildError = cfg.BuildError

// ClientError reports a failure to open or speak to a sampler subprocess,
// returned by [NewSampler]'s Open method.
type ClientError = sampler.ClientError
