package pump

import "math"

// ladder is the predefined sequence of pump multipliers report_pump walks
// through, from least to most aggressive: 20 points evenly spaced between
// 10 and 256, rounded to the nearest integer and deduplicated.
var ladder = buildLadder()

// fallbackLadder is substituted, truncated to the remaining queue length,
// the first time the main ladder hits a sampler timeout.
var fallbackLadder = []int{1, 2, 3, 4}

func buildLadder() []int {
	const (
		lo, hi = 10.0, 256.0
		n      = 20
	)

	seen := make(map[int]struct{}, n)
	var out []int
	for i := 0; i < n; i++ {
		x := lo + (hi-lo)*float64(i)/float64(n-1)
		v := int(math.Round(x))
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
