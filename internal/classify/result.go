// Package classify fits growth-curve models to (length, cost) sample
// points and labels the dominant shape.
package classify

// Kind tags which growth shape a [Result] represents.
type Kind int

const (
	Unknown Kind = iota
	Linear
	Polynomial
	Exponential
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "LINEAR"
	case Polynomial:
		return "POLYNOMIAL"
	case Exponential:
		return "EXPONENTIAL"
	default:
		return "UNKNOWN"
	}
}

// Result is a tagged classification outcome. Only the fields relevant to
// Kind are meaningful; the rest are left zero.
type Result struct {
	Kind Kind

	// PValue is set for Linear: the p-value of the fitted slope.
	PValue float64

	// RSquared is set for Polynomial and Exponential.
	RSquared float64

	// Degree and LeadingCoef are set for Polynomial.
	Degree      int
	LeadingCoef float64

	// ShouldBreak is set for Polynomial: true when the fit predicts
	// catastrophic cost at a 100,000-character input.
	ShouldBreak bool
}

func linear(p float64) Result { return Result{Kind: Linear, PValue: p} }

func polynomial(r2 float64, degree int, leading float64, shouldBreak bool) Result {
	return Result{Kind: Polynomial, RSquared: r2, Degree: degree, LeadingCoef: leading, ShouldBreak: shouldBreak}
}

func exponential(r2 float64) Result { return Result{Kind: Exponential, RSquared: r2} }

// Fastbreak reports whether this result should trigger the pumper's early
// exit: a strongly exponential shape, or a polynomial fit whose projected
// cost already crosses the catastrophic threshold.
func (r Result) Fastbreak() bool {
	return r.Kind == Exponential || (r.Kind == Polynomial && r.ShouldBreak)
}
