package classify

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// linearFit returns the OLS slope, R², and a two-tailed p-value
// for the null hypothesis that the slope is zero.
func linearFit(xs, ys []float64) (slope, r2, pValue float64) {
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 = stat.RSquared(xs, ys, nil, alpha, beta)

	n := float64(len(xs))
	if n < 3 || r2 >= 1 {
		return beta, r2, 0
	}
	df := n - 2
	t := math.Sqrt(r2*df/(1-r2)) * sign(beta)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * (1 - dist.CDF(math.Abs(t)))
	return beta, r2, pValue
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// logLinearFit fits ys = exp(intercept) * exp(slope)^xs by regressing
// log(ys) against xs, then reports R² against the un-logged data. A fit
// whose per-unit growth factor exp(slope) is below 0.001 collapses to zero
// almost at once and is reported as R²=0: it is not meaningfully
// exponential.
func logLinearFit(xs, ys []float64) (r2 float64) {
	logYs := make([]float64, len(ys))
	for i, y := range ys {
		logYs[i] = math.Log(y)
	}
	alpha, beta := stat.LinearRegression(xs, logYs, nil, false)
	if math.Exp(beta) < 0.001 {
		return 0
	}

	yhat := make([]float64, len(xs))
	for i, x := range xs {
		yhat[i] = math.Exp(alpha) * math.Exp(beta*x)
	}
	return rSquared(ys, yhat)
}

// powerFit fits ys = a * xs^b by Gauss-Newton from the initial guess
// (a, b) = (1, 2), returning ok=false if the iteration fails to converge.
func powerFit(xs, ys []float64) (a, b float64, ok bool) {
	a, b = 1, 2
	const iterations = 100
	converged := false

	for iter := 0; iter < iterations; iter++ {
		var jtjA, jtjB, jtjAB, jtrA, jtrB float64
		for i, x := range xs {
			if x <= 0 {
				return 0, 0, false
			}
			xb := math.Pow(x, b)
			lnx := math.Log(x)
			residual := ys[i] - a*xb

			dA := xb
			dB := a * xb * lnx

			jtjA += dA * dA
			jtjB += dB * dB
			jtjAB += dA * dB
			jtrA += dA * residual
			jtrB += dB * residual
		}

		det := jtjA*jtjB - jtjAB*jtjAB
		if math.Abs(det) < 1e-12 {
			return 0, 0, false
		}
		deltaA := (jtrA*jtjB - jtrB*jtjAB) / det
		deltaB := (jtjA*jtrB - jtjAB*jtrA) / det

		a += deltaA
		b += deltaB

		if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
			return 0, 0, false
		}
		if math.Abs(deltaA) < 1e-9 && math.Abs(deltaB) < 1e-9 {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, false
	}

	return a, b, true
}

// polyFit fits an integer-degree polynomial by ordinary least squares over
// the Vandermonde matrix of xs, solved via the normal equations.
func polyFit(xs, ys []float64, degree int) ([]float64, bool) {
	n := len(xs)
	cols := degree + 1
	if n < cols {
		return nil, false
	}

	vData := make([]float64, n*cols)
	vtData := make([]float64, cols*n)
	for i, x := range xs {
		p := 1.0
		for j := 0; j < cols; j++ {
			vData[i*cols+j] = p
			vtData[j*n+i] = p
			p *= x
		}
	}
	v := mat.NewDense(n, cols, vData)
	vt := mat.NewDense(cols, n, vtData)

	var ata mat.Dense
	ata.Mul(vt, v)

	yVec := mat.NewVecDense(n, append([]float64(nil), ys...))
	aty := mat.NewVecDense(cols, nil)
	aty.MulVec(vt, yVec)

	var coeffs mat.VecDense
	if err := coeffs.SolveVec(&ata, aty); err != nil {
		return nil, false
	}

	out := make([]float64, cols)
	for i := range out {
		out[i] = coeffs.AtVec(i)
	}
	return out, true
}

func evalPoly(coeffs []float64, x float64) float64 {
	y := 0.0
	p := 1.0
	for _, c := range coeffs {
		y += c * p
		p *= x
	}
	return y
}

// rSquared computes the coefficient of determination of yhat against ys.
func rSquared(ys, yhat []float64) float64 {
	mean := stat.Mean(ys, nil)

	var ssRes, ssTot float64
	for i, y := range ys {
		ssRes += (y - yhat[i]) * (y - yhat[i])
		ssTot += (y - mean) * (y - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
