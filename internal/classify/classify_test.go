package classify_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/seclab-tools/redosprobe/internal/classify"
)

type curveFixture struct {
	Name          string    `yaml:"name"`
	Xs            []float64 `yaml:"xs"`
	Ys            []float64 `yaml:"ys"`
	WantKind      string    `yaml:"want_kind"`
	WantDegree    int       `yaml:"want_degree"`
	WantFastbreak bool      `yaml:"want_fastbreak"`
}

func loadCurveFixtures(t *testing.T) []curveFixture {
	t.Helper()
	raw, err := os.ReadFile("testdata/curves.yaml")
	require.NoError(t, err)

	var fixtures []curveFixture
	require.NoError(t, yaml.Unmarshal(raw, &fixtures))
	return fixtures
}

func TestClassifyShapes(t *testing.T) {
	t.Parallel()
	for _, fx := range loadCurveFixtures(t) {
		t.Run(fx.Name, func(t *testing.T) {
			t.Parallel()

			result := classify.Classify(fx.Xs, fx.Ys)
			require.Equal(t, fx.WantKind, result.Kind.String())

			if fx.WantDegree != 0 {
				require.Equal(t, fx.WantDegree, result.Degree)
			}
			if fx.WantFastbreak {
				require.True(t, result.Fastbreak())
			}
		})
	}
}

func TestClassifyRequiresFourPoints(t *testing.T) {
	t.Parallel()
	result := classify.Classify([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.Equal(t, classify.Unknown, result.Kind)
}
