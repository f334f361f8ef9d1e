package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seclab-tools/redosprobe/internal/bytecode"
	"github.com/seclab-tools/redosprobe/internal/cfg"
)

// decode is a small helper that fails the test on a malformed fixture program; test
// fixtures are hand-built and must always decode cleanly.
func decode(t *testing.T, buf []byte) []bytecode.Instruction {
	t.Helper()
	program, err := bytecode.Decode(buf)
	require.NoError(t, err)
	return program
}

// straightLine is Succeed only: one instruction, one block, no edges.
func straightLine() []byte {
	return []byte{31, 0, 0, 0}
}

// branching is CheckChar 'a' -> target 12, fallthrough to Fail at pc 8,
// and Succeed at pc 12.
func branching() []byte {
	buf := make([]byte, 0, 16)
	buf = append(buf, 4, 'a', 0, 0, 12, 0, 0, 0) // CheckChar 'a' -> 12 (pc 0, width 8)
	buf = append(buf, 32, 0, 0, 0)               // Fail (pc 8, width 4)
	buf = append(buf, 31, 0, 0, 0)               // Succeed (pc 12, width 4)
	return buf
}

func TestBuildStraightLine(t *testing.T) {
	t.Parallel()

	g, err := cfg.Build(decode(t, straightLine()))
	require.NoError(t, err)
	require.Len(t, g.Blocks(), 1)
	require.Empty(t, g.Blocks()[0].Successors)
}

func TestBuildBranchPartitionsAtTargets(t *testing.T) {
	t.Parallel()

	g, err := cfg.Build(decode(t, branching()))
	require.NoError(t, err)

	blocks := g.Blocks()
	require.Len(t, blocks, 3)

	entry := blocks[0]
	require.Equal(t, uint32(0), entry.First())
	require.Len(t, entry.Successors, 2)

	for _, b := range blocks {
		for succ := range b.Successors {
			target := g.Block(succ)
			require.NotNil(t, target)
			require.Contains(t, target.Predecessors, b.ID)
		}
	}
}

func TestBuildEmptyProgram(t *testing.T) {
	t.Parallel()

	_, err := cfg.Build(nil)
	require.Error(t, err)
}

func TestBuildPushBtHasNoSourceEdge(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 0, 16)
	buf = append(buf, 0, 0, 0, 0, 8, 0, 0, 0) // PushBt -> 8
	buf = append(buf, 31, 0, 0, 0)            // Succeed (pc 8)

	g, err := cfg.Build(decode(t, buf))
	require.NoError(t, err)

	blocks := g.Blocks()
	require.Len(t, blocks, 2)
	require.Empty(t, blocks[0].Successors, "PushBt's target is reached indirectly, not via a CFG edge")
}
