package pump

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seclab-tools/redosprobe/internal/classify"
	"github.com/seclab-tools/redosprobe/internal/sampler"
)

func TestWitnessSlicePumpsOnlyTheMiddle(t *testing.T) {
	t.Parallel()

	witness := []byte("abcdef")
	got := witnessSlice(witness, 1, 2, 1, 3)
	require.Equal(t, "abcbcbcdef", string(got))
}

func TestWitnessSliceSingleRepeatIsIdentity(t *testing.T) {
	t.Parallel()

	witness := []byte("abcdef")
	got := witnessSlice(witness, 1, 2, 1, 1)
	require.Equal(t, string(witness), string(got))
}

// constantCostSampler reports the same cost no matter what it is fed, so a
// [Search] over it should never see a rising slowdown and should finish
// with no profiles at all.
var constantCostSampler = []string{"sh", "-c", `
printf 'feed base64 lines now\n'
while IFS= read -r line; do
  printf 'TOTCOUNT 5\n'
done
`}

// silentSampler answers the handshake but never replies to a sample.
var silentSampler = []string{"sh", "-c", `
printf 'feed base64 lines now\n'
while IFS= read -r line; do
  sleep 5
done
`}

func TestSearchDoneWhenCostNeverGrows(t *testing.T) {
	t.Parallel()

	client := sampler.New(sampler.PathLength, constantCostSampler)
	defer client.Close()

	res, err := Search(context.Background(), client, []byte("ab"), 1, time.Now().Add(10*time.Second))
	require.NoError(t, err)
	require.Equal(t, Done, res.Status)
	require.Empty(t, res.Profiles)
}

func TestSearchBaselineTimeout(t *testing.T) {
	t.Parallel()

	client := sampler.New(sampler.PathLength, silentSampler, sampler.WithSampleTimeout(100*time.Millisecond))
	defer client.Close()

	res, err := Search(context.Background(), client, []byte("ab"), 1, time.Now().Add(10*time.Second))
	require.NoError(t, err)
	require.Equal(t, BaselineTimeout, res.Status)
}

func TestSearchPartialTimeoutWhenDeadlineAlreadyPast(t *testing.T) {
	t.Parallel()

	client := sampler.New(sampler.PathLength, constantCostSampler)
	defer client.Close()

	res, err := Search(context.Background(), client, []byte("abc"), 1, time.Now().Add(-time.Second))
	require.NoError(t, err)
	require.Equal(t, PartialTimeout, res.Status)
}

func TestAggregateBaselineTimeoutShortCircuits(t *testing.T) {
	t.Parallel()

	res := &SearchResult{Status: BaselineTimeout}
	report := Aggregate(res, []byte(`a+`), "", []byte("abcdef"), 1)
	require.Equal(t, "EXPONENTIAL(baseline_fail)", report.Class)
	require.Nil(t, report.Prefix)
	require.Equal(t, "a+", string(report.Regexp))
}

func TestAggregateFastbreakUsesLastProfile(t *testing.T) {
	t.Parallel()

	res := &SearchResult{
		Status: Fastbreak,
		Profiles: []Profile{
			{PumpPos: 0, PumpLen: 1, Class: classify.Result{Kind: classify.Polynomial, Degree: 2}},
			{PumpPos: 2, PumpLen: 3, Class: classify.Result{Kind: classify.Exponential}},
		},
	}
	report := Aggregate(res, []byte(`(a+)+`), "i", []byte("abcdefgh"), 1)
	require.Equal(t, "EXPONENTIAL", report.Class)
	require.Equal(t, "ab", string(report.Prefix))
	require.Equal(t, "cde", string(report.Pump))
	require.Equal(t, "fgh", string(report.Suffix))
	require.Equal(t, "i", report.Flags)
}

func TestAggregatePrefersBasePumpTimeoutOverFittedProfiles(t *testing.T) {
	t.Parallel()

	res := &SearchResult{
		Status: Done,
		Profiles: []Profile{
			{PumpPos: 0, PumpLen: 2, Class: classify.Result{Kind: classify.Polynomial, Degree: 3}},
			{PumpPos: 1, PumpLen: 1, Status: ProfileBasePumpTimeout},
		},
	}
	report := Aggregate(res, nil, "", []byte("abcdef"), 1)
	require.Equal(t, "EXPONENTIAL(pump_timeout)", report.Class)
	require.Equal(t, "a", string(report.Prefix))
}

func TestAggregatePicksHighestDegreePolynomial(t *testing.T) {
	t.Parallel()

	res := &SearchResult{
		Status: Done,
		Profiles: []Profile{
			{PumpPos: 0, PumpLen: 1, Class: classify.Result{Kind: classify.Polynomial, Degree: 2, LeadingCoef: 5}},
			{PumpPos: 3, PumpLen: 1, Class: classify.Result{Kind: classify.Polynomial, Degree: 3, LeadingCoef: 1}},
			{PumpPos: 1, PumpLen: 1, Class: classify.Result{Kind: classify.Linear}},
		},
	}
	report := Aggregate(res, nil, "", []byte("abcdef"), 1)
	require.Equal(t, "POLYNOMIAL", report.Class)
	require.Equal(t, "d", string(report.Pump))
}

func TestAggregateUnknownWhenNothingQualifies(t *testing.T) {
	t.Parallel()

	res := &SearchResult{Status: Done, Profiles: []Profile{{Class: classify.Result{Kind: classify.Linear}}}}
	report := Aggregate(res, nil, "", []byte("abcdef"), 1)
	require.Equal(t, "UNKNOWN", report.Class)
	require.Nil(t, report.Prefix)
}
