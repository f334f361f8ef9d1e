package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seclab-tools/redosprobe/internal/cfg"
)

// linearChain is GoTo -> Succeed: one unconditional edge, no decision
// point, so Extend should fold it into a single extended block.
func linearChain() []byte {
	buf := make([]byte, 0, 12)
	buf = append(buf, 2, 0, 0, 0, 8, 0, 0, 0) // GoTo -> 8 (pc 0)
	buf = append(buf, 31, 0, 0, 0)            // Succeed (pc 8)
	return buf
}

func TestExtendMergesUnconditionalChain(t *testing.T) {
	t.Parallel()

	g, err := cfg.Build(decode(t, linearChain()))
	require.NoError(t, err)
	require.Len(t, g.Blocks(), 2)

	g, err = cfg.Extend(g)
	require.NoError(t, err)
	require.Len(t, g.Blocks(), 1, "the unconditional edge should be absorbed into one extended block")
}

// checkThenFail is CheckChar 'a' -> 12 (match path), fallthrough to Fail;
// the CheckChar block and its match target should merge into one extended
// block, while the Fail block stays separate and is recorded as that
// block's side exit.
func checkThenFail() []byte {
	buf := make([]byte, 0, 16)
	buf = append(buf, 4, 'a', 0, 0, 12, 0, 0, 0) // CheckChar 'a' -> 12 (pc 0)
	buf = append(buf, 32, 0, 0, 0)               // Fail (pc 8)
	buf = append(buf, 31, 0, 0, 0)               // Succeed (pc 12)
	return buf
}

func TestExtendAbsorbsFailingSideExit(t *testing.T) {
	t.Parallel()

	g, err := cfg.Build(decode(t, checkThenFail()))
	require.NoError(t, err)
	require.Len(t, g.Blocks(), 3)

	g, err = cfg.Extend(g)
	require.NoError(t, err)

	blocks := g.Blocks()
	require.Len(t, blocks, 2, "the CheckChar block and its match target merge; the Fail block becomes a recorded side exit")

	var merged *cfg.Block
	for _, b := range blocks {
		if b.First() == 0 {
			merged = b
		}
	}
	require.NotNil(t, merged)
	require.Len(t, merged.SideExits, 1)
}

func TestExtendDoesNotMergeAcrossPopBt(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 0, 8)
	buf = append(buf, 1, 0, 0, 0) // PopBt (pc 0) — indirect, never a merge source
	buf = append(buf, 31, 0, 0, 0)

	g, err := cfg.Build(decode(t, buf))
	require.NoError(t, err)
	require.Len(t, g.Blocks(), 2, "PopBt's fall-through forces a leader even though its true source is unknown")

	g, err = cfg.Extend(g)
	require.NoError(t, err)
	require.Len(t, g.Blocks(), 2, "a block ending in PopBt is never a merge source")
}

func TestExtendEmptyGraph(t *testing.T) {
	t.Parallel()

	_, err := cfg.Extend(&cfg.Graph{})
	require.Error(t, err)
}

// threeWayBranch's CheckChar/GoTo/Succeed chain merges into one extended
// block while its Fail side exit (pc 8) stays separate; the merged block
// ends up with a higher id than the surviving Fail block even though its
// first instruction has the lower address, so Blocks() returning insertion
// order alone would report them out of address order.
func threeWayBranch() []byte {
	buf := make([]byte, 0, 24)
	buf = append(buf, 4, 'a', 0, 0, 12, 0, 0, 0) // CheckChar 'a' -> 12 (pc 0)
	buf = append(buf, 32, 0, 0, 0)               // Fail (pc 8)
	buf = append(buf, 2, 0, 0, 0, 20, 0, 0, 0)   // GoTo -> 20 (pc 12)
	buf = append(buf, 31, 0, 0, 0)               // Succeed (pc 20)
	return buf
}

func TestExtendBlocksRemainAddressSortedAfterMerge(t *testing.T) {
	t.Parallel()

	g, err := cfg.Build(decode(t, threeWayBranch()))
	require.NoError(t, err)

	g, err = cfg.Extend(g)
	require.NoError(t, err)

	blocks := g.Blocks()
	for i := 1; i < len(blocks); i++ {
		require.Less(t, blocks[i-1].First(), blocks[i].First(), "Blocks() must stay address-sorted across a merge")
	}
}
