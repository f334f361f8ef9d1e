package cfg

import (
	"sort"

	"github.com/seclab-tools/redosprobe/internal/bytecode"
	"github.com/seclab-tools/redosprobe/internal/dbg"
)

// edge is a pseudo-edge emitted while scanning for block leaders. A src of
// -1 means the edge's true source is unknown (an indirect jump, or simply
// unreachable code); it still forces dst to be a leader, but contributes no
// predecessor/successor link.
type edge struct {
	src, dst int64
}

const noSrc int64 = -1

// Build partitions program into basic blocks and links them by control-flow
// edge, returning the resulting [Graph].
func Build(program []bytecode.Instruction) (*Graph, error) {
	if len(program) == 0 {
		return nil, errEmptyProgram()
	}

	edges := leaderEdges(program)

	leaderSet := make(map[uint32]struct{})
	for _, e := range edges {
		leaderSet[uint32(e.dst)] = struct{}{}
	}
	leaders := make([]uint32, 0, len(leaderSet))
	for l := range leaderSet {
		leaders = append(leaders, l)
	}
	sort.Slice(leaders, func(i, j int) bool { return leaders[i] < leaders[j] })

	g := newGraph()

	pc := 0
	for _, leader := range leaders {
		if pc >= len(program) {
			break
		}

		b := newBlock(g.allocID())
		for pc < len(program) && program[pc].PC() < leader {
			b.Instr = append(b.Instr, program[pc])
			pc++
		}
		if len(b.Instr) == 0 {
			continue
		}
		g.add(b)
	}
	if pc < len(program) {
		b := newBlock(g.allocID())
		b.Instr = append(b.Instr, program[pc:]...)
		g.add(b)
	}

	for _, e := range edges {
		if e.src == noSrc {
			continue
		}
		src := g.blockAt(uint32(e.src))
		dst := g.blockAt(uint32(e.dst))
		if src == nil || dst == nil {
			continue
		}
		src.Successors[dst.ID] = struct{}{}
		dst.Predecessors[src.ID] = struct{}{}
	}

	dbg.Log(nil, "cfg.Build", "%d instructions -> %d blocks", len(program), len(g.blocks))

	return g, nil
}

// leaderEdges scans program for pseudo control-flow edges, per the opcode
// table: unconditional and conditional branches contribute both their
// target and the fall-through address; instructions whose true predecessor
// cannot be known statically (PopBt's indirect jump, and the two program
// exits) still force their fall-through address to be a leader.
//
// Only the opcodes that actually branch contribute an edge here: GoTo,
// AdvanceCpAndGoto, PushBt, PopBt, CheckChar, CheckNotChar,
// CheckCurrentPosition, LoadCurrentChar, SkipUntilBitInTable, Succeed, and
// Fail. Character-class and counter-check opcodes (CheckCharInRange,
// CheckGreedy, CheckRegisterLt, and the like) fall straight through to the
// next instruction in this engine and never redirect control on their own,
// so they contribute no pseudo-edge.
func leaderEdges(program []bytecode.Instruction) []edge {
	var out []edge

	add := func(src, dst int64) { out = append(out, edge{src, dst}) }

	for _, instr := range program {
		pc := int64(instr.PC())
		width, _ := instr.Op().Width()
		fallThrough := pc + int64(width)

		switch i := instr.(type) {
		case *bytecode.GoTo:
			add(pc, int64(i.Target))
			add(pc, fallThrough)
		case *bytecode.AdvanceCpAndGoto:
			add(pc, int64(i.Target))
			add(pc, fallThrough)
		case *bytecode.PushBt:
			add(noSrc, int64(i.Target))
		case *bytecode.PopBt:
			add(noSrc, fallThrough)
		case *bytecode.CheckChar:
			add(pc, int64(i.Target))
			add(pc, fallThrough)
		case *bytecode.CheckNotChar:
			add(pc, int64(i.Target))
			add(pc, fallThrough)
		case *bytecode.CheckCurrentPosition:
			add(pc, int64(i.FailTarget))
			add(pc, fallThrough)
		case *bytecode.LoadCurrentChar:
			add(pc, int64(i.FailTarget))
			add(pc, fallThrough)
		case *bytecode.SkipUntilBitInTable:
			add(pc, int64(i.MatchTarget))
			add(pc, int64(i.FailTarget))
			add(pc, fallThrough)
		case *bytecode.Succeed:
			add(noSrc, fallThrough)
		case *bytecode.Fail:
			add(noSrc, fallThrough)
		}
	}

	return out
}
