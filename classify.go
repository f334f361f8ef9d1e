package redosprobe

import (
	"github.com/seclab-tools/redosprobe/internal/classify"
)

// ClassKind tags which growth shape a [ClassResult] represents.
type ClassKind = classify.Kind

const (
	Unknown     = classify.Unknown
	Linear      = classify.Linear
	Polynomial  = classify.Polynomial
	Exponential = classify.Exponential
)

// ClassResult is a tagged growth-curve classification outcome.
type ClassResult = classify.Result

// Classify fits linear, power/polynomial, and log-linear models to
// (xs, ys) and returns the label that best explains the growth shape.
func Classify(xs, ys []float64) ClassResult {
	return classify.Classify(xs, ys)
}
