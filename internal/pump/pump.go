// Package pump drives the external sampler through a position/length
// search over a witness string, looking for a pumped slice whose cost
// grows super-linearly with the number of repetitions.
package pump

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seclab-tools/redosprobe/internal/classify"
	"github.com/seclab-tools/redosprobe/internal/dbg"
	"github.com/seclab-tools/redosprobe/internal/sampler"
)

// SearchStatus is how a [Search] terminated.
type SearchStatus int

const (
	Done SearchStatus = iota
	BaselineTimeout
	PartialTimeout
	Fastbreak
)

// ProfileStatus is how one (pump_pos, pump_len) probe terminated.
type ProfileStatus int

const (
	ProfileFull ProfileStatus = iota
	ProfilePumpTimeout
	ProfileBasePumpTimeout
)

// Point is one (pumped subject length, sampled cost) observation.
type Point struct {
	Length int
	Cost   int64
}

// Profile is the record of one interesting (pump_pos, pump_len) site: the
// points collected while walking the pump-count ladder there, and how
// that walk ended.
type Profile struct {
	Status  ProfileStatus
	PumpPos int
	PumpLen int
	Points  []Point
	Class   classify.Result
}

// SearchResult is the outcome of one full [Search] over a witness.
type SearchResult struct {
	RunID    uuid.UUID
	Status   SearchStatus
	Profiles []Profile
}

// witnessSlice pumps witness by repeating the char_width-scaled region
// [pos, pos+length) k times, leaving the surrounding prefix and suffix
// untouched. pos and length are in characters, not bytes.
func witnessSlice(witness []byte, pos, length, width, times int) []byte {
	before := witness[:pos*width]
	middle := witness[pos*width : (pos+length)*width]
	after := witness[(pos+length)*width:]

	out := make([]byte, 0, len(before)+len(middle)*times+len(after))
	out = append(out, before...)
	for i := 0; i < times; i++ {
		out = append(out, middle...)
	}
	out = append(out, after...)
	return out
}

// Search runs the exhaustive pump/classify loop over witness, returning as
// soon as a fastbreak-worthy shape is found, the deadline passes, or every
// (pos, len) pair has been tried.
func Search(ctx context.Context, client *sampler.Client, witness []byte, width int, deadline time.Time) (*SearchResult, error) {
	res := &SearchResult{RunID: uuid.New()}

	baseline, err := client.Sample(ctx, witness)
	if err != nil {
		return nil, err
	}
	if baseline == sampler.TimedOut {
		res.Status = BaselineTimeout
		return res, nil
	}
	dbg.Log(nil, "pump.Search", "baseline=%d", baseline)

	n := len(witness) / width
	slowestPerChar := 0.0

	for pumpLen := 1; pumpLen < n; pumpLen++ {
		for pumpPos := n - pumpLen - 1; pumpPos >= 0; pumpPos-- {
			if time.Now().After(deadline) {
				res.Status = PartialTimeout
				return res, nil
			}

			pumped := witnessSlice(witness, pumpPos, pumpLen, width, 100)
			cost, err := client.Sample(ctx, pumped)
			if err != nil {
				return nil, err
			}

			timedOut := cost == sampler.TimedOut
			if timedOut {
				res.Profiles = append(res.Profiles, Profile{
					Status:  ProfileBasePumpTimeout,
					PumpPos: pumpPos,
					PumpLen: pumpLen,
				})
			}

			slowdownPerChar := (float64(cost) - float64(baseline)) / float64(pumpLen)
			if !timedOut && slowdownPerChar <= slowestPerChar {
				continue
			}
			if !timedOut {
				slowestPerChar = slowdownPerChar
			}

			profile, err := reportPump(ctx, client, width, witness, pumpPos, pumpLen, deadline)
			if err != nil {
				return nil, err
			}

			xs := make([]float64, len(profile.Points))
			ys := make([]float64, len(profile.Points))
			for i, p := range profile.Points {
				xs[i] = float64(p.Length)
				ys[i] = float64(p.Cost)
			}
			profile.Class = classify.Classify(xs, ys)
			res.Profiles = append(res.Profiles, profile)

			dbg.Log(nil, "pump.Search", "pos=%d len=%d class=%v", pumpPos, pumpLen, profile.Class.Kind)

			if profile.Class.Fastbreak() {
				res.Status = Fastbreak
				return res, nil
			}
		}
	}

	res.Status = Done
	return res, nil
}

// reportPump walks the pump-count ladder at a fixed (pos, len), collecting
// a cost point per rung. The first timeout switches to the short fallback
// ladder, truncated to however many rungs were left; a second timeout on
// the fallback ladder ends the walk early.
func reportPump(ctx context.Context, client *sampler.Client, width int, witness []byte, pos, length int, deadline time.Time) (Profile, error) {
	profile := Profile{PumpPos: pos, PumpLen: length, Status: ProfileFull}

	queue := reversed(ladder)
	usedFallback := false

	for len(queue) > 0 {
		npumps := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if time.Now().After(deadline) {
			profile.Status = ProfilePumpTimeout
			return profile, nil
		}

		pumped := witnessSlice(witness, pos, length, width, npumps)
		cost, err := client.Sample(ctx, pumped)
		if err != nil {
			return profile, err
		}

		if cost != sampler.TimedOut {
			profile.Points = append(profile.Points, Point{Length: len(pumped), Cost: cost})
			continue
		}

		if !usedFallback {
			usedFallback = true
			queue = truncatedFallback(len(queue))
			continue
		}

		profile.Status = ProfilePumpTimeout
		return profile, nil
	}

	return profile, nil
}

// truncatedFallback returns the fallback ladder cut down to at most n
// rungs, reversed so the caller's pop-from-end walk still proceeds
// smallest-multiplier first.
func truncatedFallback(n int) []int {
	if n > len(fallbackLadder) {
		n = len(fallbackLadder)
	}
	return reversed(fallbackLadder[:n])
}

// reversed returns a reversed copy of xs, leaving xs untouched.
func reversed(xs []int) []int {
	out := make([]int, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v
	}
	return out
}
