package classify

import "math"

const (
	horizonX          = 100_000.0
	catastropheCost   = 1_000_000_000.0
	exactLinearR2     = 0.9999
	modelAcceptanceR2 = 0.95
)

// Classify fits linear, power/polynomial, and log-linear models to
// (xs, ys) and returns the label that best explains the growth shape.
//
// xs and ys must have equal length; pairs where either coordinate is zero
// are dropped before fitting, since they carry no information about
// multiplicative growth and break the log-based fits.
func Classify(xs, ys []float64) Result {
	fxs, fys := dropZeros(xs, ys)
	if len(fxs) < 4 {
		return Result{Kind: Unknown}
	}

	r2Exp := logLinearFit(fxs, fys)

	var (
		should     bool
		degree     int
		r2Poly     float64
		polyCoeffs []float64
	)
	if a, b, ok := powerFit(fxs, fys); ok {
		yhat := make([]float64, len(fxs))
		for i, x := range fxs {
			yhat[i] = a * math.Pow(x, b)
		}
		r2Power := rSquared(fys, yhat)

		pred1M := a * math.Pow(horizonX, b)
		if pred1M > catastropheCost {
			should = true
		}

		if r2Power > modelAcceptanceR2 {
			degree = int(math.Round(b))
			if degree >= 1 {
				if coeffs, ok := polyFit(fxs, fys, degree); ok {
					polyCoeffs = coeffs
					yhat := make([]float64, len(fxs))
					for i, x := range fxs {
						yhat[i] = evalPoly(coeffs, x)
					}
					r2Poly = rSquared(fys, yhat)
				}
			}
		}
	}

	_, r2Lin, pLin := linearFit(fxs, fys)
	if r2Lin > exactLinearR2 {
		return linear(pLin)
	}

	best := math.Max(r2Lin, math.Max(r2Poly, r2Exp))
	if best > modelAcceptanceR2 {
		switch {
		case r2Exp > modelAcceptanceR2 && r2Exp > r2Poly && r2Exp > r2Lin:
			return exponential(r2Exp)
		case r2Poly > modelAcceptanceR2 && degree > 1 && r2Poly > r2Exp && r2Poly > r2Lin:
			return polynomial(r2Poly, degree, polyCoeffs[len(polyCoeffs)-1], should)
		case r2Exp > modelAcceptanceR2 && r2Lin > r2Exp && r2Lin > r2Poly:
			return linear(pLin)
		default:
			return linear(pLin)
		}
	}

	return Result{Kind: Unknown}
}

func dropZeros(xs, ys []float64) (fxs, fys []float64) {
	for i, x := range xs {
		y := ys[i]
		if x != 0 && y != 0 {
			fxs = append(fxs, x)
			fys = append(fys, y)
		}
	}
	return fxs, fys
}
