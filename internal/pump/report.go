package pump

import "github.com/seclab-tools/redosprobe/internal/classify"

// ReportObject is the cross-profile reduction of a [SearchResult] into the
// single winning classification and the witness slice that produced it.
// Regexp and Flags just carry through whatever the caller passed to
// [Aggregate] for identifying the pattern the report is about; Aggregate
// never inspects them.
type ReportObject struct {
	Regexp []byte
	Flags  string
	Class  string
	Prefix []byte
	Pump   []byte
	Suffix []byte
}

// Aggregate reduces res's profiles to one winning classification, applying
// the same priority order the search itself used to decide when to stop
// early: a baseline timeout beats everything, a fastbreak's own profile
// wins outright, a timeout seen mid-search outranks any completed fit, and
// only once none of those apply does the best Polynomial fit (highest
// degree, then highest leading coefficient) get to win. witness and width
// must be the same values passed to the [Search] call that produced res;
// they are sliced at the winning (pos, len) to produce Prefix, Pump, and
// Suffix. regexp and flags identify the pattern res was searched for and
// are copied into the result verbatim.
func Aggregate(res *SearchResult, regexp []byte, flags string, witness []byte, width int) ReportObject {
	base := ReportObject{Regexp: regexp, Flags: flags}

	if res.Status == BaselineTimeout {
		base.Class = "EXPONENTIAL(baseline_fail)"
		return base
	}

	if res.Status == Fastbreak && len(res.Profiles) > 0 {
		last := res.Profiles[len(res.Profiles)-1]
		return sliceReport(base, last.Class.Kind.String(), witness, width, last.PumpPos, last.PumpLen)
	}

	for _, p := range res.Profiles {
		if p.Status == ProfileBasePumpTimeout {
			return sliceReport(base, "EXPONENTIAL(pump_timeout)", witness, width, p.PumpPos, p.PumpLen)
		}
	}
	for _, p := range res.Profiles {
		if p.Status == ProfilePumpTimeout && len(p.Points) < 5 {
			return sliceReport(base, "EXPONENTIAL(pump_timeout)", witness, width, p.PumpPos, p.PumpLen)
		}
	}

	var (
		best             classify.Result
		bestPos, bestLen int
		found            bool
	)
	for _, p := range res.Profiles {
		if p.Class.Kind != classify.Polynomial {
			continue
		}
		better := !found ||
			best.Degree < p.Class.Degree ||
			(best.Degree == p.Class.Degree && best.LeadingCoef < p.Class.LeadingCoef)
		if better {
			best = p.Class
			bestPos, bestLen = p.PumpPos, p.PumpLen
			found = true
		}
	}
	if found {
		return sliceReport(base, best.Kind.String(), witness, width, bestPos, bestLen)
	}

	base.Class = classify.Unknown.String()
	return base
}

// sliceReport fills in base's Class and the witness slice for a winning
// (pos, len) site: the portion left untouched before the pump, the pumped
// region itself, and the portion left untouched after it. pos and len are
// in characters, not bytes.
func sliceReport(base ReportObject, class string, witness []byte, width, pos, length int) ReportObject {
	base.Class = class
	base.Prefix = witness[:pos*width]
	base.Pump = witness[pos*width : (pos+length)*width]
	base.Suffix = witness[(pos+length)*width:]
	return base
}
