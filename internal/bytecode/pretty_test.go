package bytecode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seclab-tools/redosprobe/internal/bytecode"
)

func TestFprintFormatsFields(t *testing.T) {
	t.Parallel()

	buf := []byte{2, 0, 0, 0, 8, 0, 0, 0} // GoTo target=8
	program, err := bytecode.Decode(buf)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, bytecode.Fprint(&sb, program))

	out := sb.String()
	require.Contains(t, out, "GO_TO")
	require.Contains(t, out, "target: 0x8")
}

func TestFprintEmptyProgram(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, bytecode.Fprint(&sb, nil))
	require.Empty(t, sb.String())
}

func TestFprintRendersScreamingSnakeMnemonics(t *testing.T) {
	t.Parallel()

	buf := []byte{14, 0, 0, 0, 97, 0, 122, 0, 32, 0, 0, 0} // CheckCharInRange
	program, err := bytecode.Decode(buf)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, bytecode.Fprint(&sb, program))

	require.Contains(t, sb.String(), "CHECK_CHAR_IN_RANGE")
}
