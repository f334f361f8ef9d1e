package pump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLadderIsAscendingAndBounded(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, ladder)
	for i, v := range ladder {
		require.GreaterOrEqual(t, v, 10)
		require.LessOrEqual(t, v, 256)
		if i > 0 {
			require.Greater(t, v, ladder[i-1], "ladder must be strictly ascending after dedup")
		}
	}
}

func TestReversedDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	xs := []int{1, 2, 3}
	rev := reversed(xs)
	require.Equal(t, []int{3, 2, 1}, rev)
	require.Equal(t, []int{1, 2, 3}, xs)
}

func TestTruncatedFallbackReversesAndBounds(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{2, 1}, truncatedFallback(2))
	require.Equal(t, reversed(fallbackLadder), truncatedFallback(100))
}
