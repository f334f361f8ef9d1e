// Package cfg builds a control-flow graph out of a decoded instruction
// stream, first as basic blocks and then as extended basic blocks that
// absorb failure-only side exits.
//
// Blocks are addressed by a stable integer id rather than by pointer or
// instruction address: once blocks start merging, two different addresses
// can refer to the same block, and an id lets every structure (successor
// sets, worklists, the final graph) use plain comparable keys instead of
// juggling pointer identity.
package cfg

import (
	"sort"

	"github.com/seclab-tools/redosprobe/internal/bytecode"
)

// ID identifies a block within a [Graph]. IDs are assigned in construction
// order and never reused, even across a merge that retires two blocks into
// one.
type ID int

// Block is a maximal run of instructions with a single entry and a single
// exit: control only ever enters at its first instruction and only ever
// leaves after its last.
type Block struct {
	ID    ID
	Instr []bytecode.Instruction

	Successors   map[ID]struct{}
	Predecessors map[ID]struct{}

	// SideExits is non-nil only for a block produced by [Extend]: the set
	// of blocks reached only through an absorbed failure path.
	SideExits map[ID]struct{}
}

// First returns the block's leading instruction's address.
func (b *Block) First() uint32 { return b.Instr[0].PC() }

// Last returns the block's final instruction.
func (b *Block) Last() bytecode.Instruction { return b.Instr[len(b.Instr)-1] }

func newBlock(id ID) *Block {
	return &Block{
		ID:           id,
		Successors:   make(map[ID]struct{}),
		Predecessors: make(map[ID]struct{}),
	}
}

// Graph is a control-flow graph over a fixed instruction stream. Blocks are
// looked up by [ID]. The graph does not store its entry points; [Extend]
// computes them (the program entry, plus every PushBt target) when it runs.
type Graph struct {
	blocks map[ID]*Block
	order  []ID // insertion order, kept so iteration is deterministic
	nextID ID
}

func newGraph() *Graph {
	return &Graph{blocks: make(map[ID]*Block)}
}

func (g *Graph) add(b *Block) {
	g.blocks[b.ID] = b
	g.order = append(g.order, b.ID)
}

func (g *Graph) remove(id ID) {
	delete(g.blocks, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

func (g *Graph) allocID() ID {
	id := g.nextID
	g.nextID++
	return id
}

// Block returns the block with the given id, or nil if it has been merged
// away or never existed.
func (g *Graph) Block(id ID) *Block { return g.blocks[id] }

// Blocks returns every live block, ordered by the address of its first
// instruction. [Extend] appends newly merged blocks to the graph without
// keeping g.order address-sorted, so this always re-sorts rather than
// trusting insertion order.
func (g *Graph) Blocks() []*Block {
	out := make([]*Block, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.blocks[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].First() < out[j].First() })
	return out
}

// blockAt finds the block whose instruction range contains addr.
func (g *Graph) blockAt(addr uint32) *Block {
	for _, id := range g.order {
		b := g.blocks[id]
		if b.First() <= addr && addr <= b.Last().PC() {
			return b
		}
	}
	return nil
}
