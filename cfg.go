package redosprobe

import (
	"github.com/seclab-tools/redosprobe/internal/cfg"
)

// BlockID identifies a block within a [Graph]. See [Graph.Block].
type BlockID = cfg.ID

// Block is a maximal run of instructions with a single entry and a single
// exit. A block produced by [ExtendedBlocks] additionally has a non-nil
// SideExits set.
type Block = cfg.Block

// Graph is a control-flow graph over a decoded instruction stream.
type Graph = cfg.Graph

// BasicBlocks partitions program into basic blocks and links them by
// control-flow edge.
func BasicBlocks(program []Instruction) (*Graph, error) {
	return cfg.Build(program)
}

// ExtendedBlocks merges g's basic blocks into extended basic blocks in
// place, absorbing side exits that lead only to match failure, and returns
// g for chaining.
func ExtendedBlocks(g *Graph) (*Graph, error) {
	return cfg.Extend(g)
}
