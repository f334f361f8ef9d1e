// Package redosprobe analyzes compiled regexp VM bytecode for
// algorithmic-complexity (ReDoS) vulnerabilities.
//
// The pipeline has three stages: decode a bytecode buffer into a typed
// instruction stream ([Decode]), build a control-flow graph from it and
// collapse it into extended basic blocks ([BasicBlocks], [ExtendedBlocks]),
// then drive an external sampler subprocess over candidate witness strings
// and classify the resulting cost curve ([NewSampler], [Search],
// [Classify]).
//
// Nothing here parses regexp syntax or produces bytecode; both are assumed
// to already exist, typically dumped by the engine under test.
package redosprobe
