package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTotCount(t *testing.T) {
	t.Parallel()

	n, err := parseTotCount("TOTCOUNT 42\n")
	require.NoError(t, err)
	require.Equal(t, int64(42), n)

	_, err = parseTotCount("garbage\n")
	require.Error(t, err)
}

func TestParseResult(t *testing.T) {
	t.Parallel()

	ms, err := parseResult("RESULT(12.5)\n")
	require.NoError(t, err)
	require.InDelta(t, 12.5, ms, 1e-9)

	_, err = parseResult("RESULT(12.5\n")
	require.Error(t, err)
}

func TestFormatTotCountLineRoundTrips(t *testing.T) {
	t.Parallel()

	line := formatTotCountLine(7)
	n, err := parseTotCount(line)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
}

func TestModeHandshake(t *testing.T) {
	t.Parallel()
	require.Equal(t, handshakePathLength, PathLength.handshake())
	require.Equal(t, handshakeWallClock, WallClock.handshake())
}
