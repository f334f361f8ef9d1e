package cfg

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/seclab-tools/redosprobe/internal/bytecode"
	"github.com/seclab-tools/redosprobe/internal/dbg"
)

// Extend merges g's basic blocks into extended basic blocks in place,
// absorbing side exits that lead only to match failure, and returns g for
// chaining.
//
// A block with a non-nil SideExits is an extended block; a block built by
// [Build] always has a nil SideExits.
func Extend(g *Graph) (*Graph, error) {
	if len(g.blocks) == 0 {
		return g, errEmptyProgram()
	}

	failing := blocksWhichFail(g)

	roots := map[ID]struct{}{g.order[0]: {}}
	for _, id := range g.order {
		for _, instr := range g.blocks[id].Instr {
			push, ok := instr.(*bytecode.PushBt)
			if !ok {
				continue
			}
			target := g.blockAt(push.Target)
			if target == nil {
				return nil, errDanglingEdge(push.Target)
			}
			roots[target.ID] = struct{}{}
		}
	}
	if len(roots) == 0 {
		return nil, errNoRoot()
	}

	worklist := make([]ID, 0, len(roots))
	for id := range roots {
		worklist = append(worklist, id)
	}
	inWorklist := func(id ID) bool {
		for _, w := range worklist {
			if w == id {
				return true
			}
		}
		return false
	}

	for len(worklist) > 0 {
		a := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		root := g.Block(a)
		if root == nil {
			continue // orphaned by an earlier merge
		}

		if _, ok := root.Last().(*bytecode.PopBt); ok {
			continue
		}

		if len(root.Successors) == 0 || len(root.Successors) > 2 {
			continue
		}

		var mergeWith ID
		var sideExit *ID

		switch len(root.Successors) {
		case 1:
			for s := range root.Successors {
				mergeWith = s
			}
		case 2:
			var s1, s2 ID
			i := 0
			for s := range root.Successors {
				if i == 0 {
					s1 = s
				} else {
					s2 = s
				}
				i++
			}
			_, s1Fails := failing[s1]
			_, s2Fails := failing[s2]
			switch {
			case s1Fails == s2Fails:
				// neither fails (a genuine decision point) or both fail
				// (no useful forward path): either way, no merge.
				continue
			case s1Fails:
				sideExit, mergeWith = &s1, s2
			default:
				sideExit, mergeWith = &s2, s1
			}
		}

		if mergeWith == root.ID {
			continue
		}
		if inWorklist(mergeWith) {
			continue
		}

		b := g.Block(mergeWith)
		if b == nil {
			continue
		}
		if len(b.Predecessors) > 1 {
			continue
		}

		merged, err := mergeBlocks(g, root, b, sideExit)
		if err != nil {
			return nil, err
		}

		for _, id := range g.order {
			rewire(g.blocks[id], root.ID, merged.ID)
			rewire(g.blocks[id], b.ID, merged.ID)
		}

		g.remove(root.ID)
		g.remove(b.ID)
		g.add(merged)

		if _, ok := failing[root.ID]; ok {
			delete(failing, root.ID)
			failing[merged.ID] = struct{}{}
		}
		if _, ok := failing[b.ID]; ok {
			delete(failing, b.ID)
			failing[merged.ID] = struct{}{}
		}

		worklist = append(worklist, merged.ID)
		dbg.Log(nil, "cfg.Extend", "merged %d+%d -> %d", root.ID, b.ID, merged.ID)
	}

	return g, nil
}

// mergeBlocks builds the extended block resulting from absorbing b into a,
// with an optional side exit e that a's other branch led to.
func mergeBlocks(g *Graph, a, b *Block, e *ID) (*Block, error) {
	n := newBlock(g.allocID())

	var cloned []bytecode.Instruction
	if err := deepcopy.Copy(&cloned, &a.Instr); err != nil {
		return nil, err
	}
	n.Instr = append(cloned, b.Instr...)

	n.Successors = make(map[ID]struct{}, len(b.Successors))
	for s := range b.Successors {
		n.Successors[s] = struct{}{}
	}
	n.Predecessors = make(map[ID]struct{}, len(a.Predecessors))
	for p := range a.Predecessors {
		n.Predecessors[p] = struct{}{}
	}

	n.SideExits = make(map[ID]struct{}, len(a.SideExits)+1)
	for s := range a.SideExits {
		n.SideExits[s] = struct{}{}
	}
	if e != nil {
		n.SideExits[*e] = struct{}{}
	}

	return n, nil
}

// rewire replaces every occurrence of from in b's successor, predecessor,
// and side-exit sets with to.
func rewire(b *Block, from, to ID) {
	if b.ID == from || b.ID == to {
		return
	}
	if _, ok := b.Successors[from]; ok {
		delete(b.Successors, from)
		b.Successors[to] = struct{}{}
	}
	if _, ok := b.Predecessors[from]; ok {
		delete(b.Predecessors, from)
		b.Predecessors[to] = struct{}{}
	}
	if _, ok := b.SideExits[from]; ok {
		delete(b.SideExits, from)
		b.SideExits[to] = struct{}{}
	}
}

// blocksWhichFail computes the set of blocks that unconditionally proceed
// to match failure: blocks ending in Fail, plus any predecessor all of
// whose successors are already known to fail.
//
// When a qualifying predecessor is found, it is the predecessor itself —
// not the block whose successors we were inspecting — that gets added to
// the failing set and re-queued for its own predecessors to be examined.
func blocksWhichFail(g *Graph) map[ID]struct{} {
	failing := make(map[ID]struct{})
	var worklist []ID

	for _, id := range g.order {
		if _, ok := g.blocks[id].Last().(*bytecode.Fail); ok {
			failing[id] = struct{}{}
			worklist = append(worklist, id)
		}
	}

	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		block := g.blocks[id]

		for pred := range block.Predecessors {
			if _, ok := failing[pred]; ok {
				continue
			}

			predBlock := g.blocks[pred]
			if _, ok := predBlock.Last().(*bytecode.PopBt); ok {
				continue
			}

			allFail := true
			for s := range predBlock.Successors {
				if _, ok := failing[s]; !ok {
					allFail = false
					break
				}
			}
			if allFail {
				failing[pred] = struct{}{}
				worklist = append(worklist, pred)
			}
		}
	}

	return failing
}
