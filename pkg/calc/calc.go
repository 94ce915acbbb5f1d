// Package calc holds the small numeric helpers used when turning two
// cumulative counter snapshots into a rate: saturating deltas, safe
// division and an exponential moving average for smoothing jittery
// short-interval samples.
package calc

import "math"

// EMA is an exponential moving average. Alpha in (0,1]; the first sample
// passes through unchanged.
type EMA struct {
	alpha, prev float64
	ok          bool
}

func NewEMA(alpha float64) *EMA { return &EMA{alpha: alpha} }

func (e *EMA) Next(v float64) float64 {
	if !e.ok {
		e.prev, e.ok = v, true
		return v
	}
	e.prev = e.alpha*v + (1-e.alpha)*e.prev
	return e.prev
}

// DeltaU64 returns now-prev, saturating at zero when the counter wrapped
// or prev was never set.
func DeltaU64(now, prev uint64) uint64 {
	if now >= prev {
		return now - prev
	}
	return 0
}

// SafeDiv divides n by d, returning zero for a (near-)zero denominator.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// Clamp01 clamps x to [0,1], mapping NaN to zero.
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	if math.IsNaN(x) {
		return 0
	}
	return x
}
