package rng

import "math"

// NormalPolar produces standard-normal variates via the Marsaglia polar
// method. Each accepted rejection-sampling iteration yields two independent
// samples; the second is cached and handed out on the next call, so the
// expected cost per sample is roughly one expensive transform per two calls.
type NormalPolar struct {
	hasSpare bool
	spare    float64
}

// NewNormalPolar creates a sampler with an empty cache.
func NewNormalPolar() *NormalPolar {
	return &NormalPolar{}
}

// NextStandard returns one N(0,1) sample, drawing uniforms from rng as
// needed. Consecutive calls alternate between freshly transformed and cached
// values.
func (n *NormalPolar) NextStandard(rng *XorShift128) float64 {
	if n.hasSpare {
		n.hasSpare = false
		return n.spare
	}
	u, v, _, m := n.accept(rng)
	n.spare = v * m
	n.hasSpare = true
	return u * m
}

// accept runs the rejection loop until (u,v) lands strictly inside the unit
// disk, excluding the origin (s == 0 would divide by zero in the transform).
// Expected acceptance probability is pi/4. Returned for test inspection along
// with the transform multiplier.
func (n *NormalPolar) accept(rng *XorShift128) (u, v, s, m float64) {
	for {
		u = 2.0*rng.NextFloat64() - 1.0
		v = 2.0*rng.NextFloat64() - 1.0
		s = u*u + v*v
		if s > 0.0 && s < 1.0 {
			m = math.Sqrt(-2.0 * math.Log(s) / s)
			return u, v, s, m
		}
	}
}
