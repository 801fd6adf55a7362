// Package easing supplies the timing curves a Plan attaches to a transition.
// A Spec is a small comparable value rather than a raw function, so two
// Plans built from identical inputs remain deep-equal and a cached Plan can
// be compared byte-for-byte across calls.
package easing

import "math"

// Kind selects which curve a Spec evaluates.
type Kind uint8

const (
	Linear Kind = iota
	EaseIn
	EaseOut
	EaseInOut
	CubicBezier
)

// Spec is an easing curve plus, for CubicBezier, its four CSS-style control
// coordinates. The zero Spec is Linear.
type Spec struct {
	Kind           Kind
	X1, Y1, X2, Y2 float64
}

// NewCubicBezier builds a Spec with CSS cubic-bezier(x1, y1, x2, y2) semantics.
func NewCubicBezier(x1, y1, x2, y2 float64) Spec {
	return Spec{Kind: CubicBezier, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Apply evaluates the curve at t, which is expected to already be clamped to
// [0,1] by the caller; out-of-range input is not re-clamped here since the
// interpolator owns NaN/overshoot handling and every curve below is only
// well-defined on [0,1].
func (s Spec) Apply(t float64) float64 {
	switch s.Kind {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2.0 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	case CubicBezier:
		bt := solveBezierT(t, s.X1, s.X2)
		return sampleBezier(bt, s.Y1, s.Y2)
	default:
		return t
	}
}

// solveBezierT recovers the bezier parameter t that produces the given x,
// via a handful of Newton-Raphson iterations, stopping early and returning
// the current estimate if the slope degenerates.
func solveBezierT(x, x1, x2 float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		residual := sampleBezier(t, x1, x2) - x
		if math.Abs(residual) < 1e-6 {
			return t
		}
		slope := bezierDerivative(t, x1, x2)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= residual / slope
	}
	return t
}

// sampleBezier evaluates a cubic bezier whose endpoints are fixed at (0,0)
// and (1,1), with control points p1 and p2 on the given axis.
func sampleBezier(t, p1, p2 float64) float64 {
	t2 := t * t
	t3 := t2 * t
	mt := 1.0 - t
	mt2 := mt * mt

	return 3.0*mt2*t*p1 + 3.0*mt*t2*p2 + t3
}

func bezierDerivative(t, p1, p2 float64) float64 {
	mt := 1.0 - t
	return 3.0*mt*mt*p1 + 6.0*mt*t*(p2-p1) + 3.0*t*t*(1.0-p2)
}
