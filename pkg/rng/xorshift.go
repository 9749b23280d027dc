package rng

// XorShift128 is Marsaglia's 32-bit xorshift generator with 128 bits of
// state and period 2^128 - 1. The state must never be all-zero: that state
// is a fixed point of the recurrence.
type XorShift128 struct {
	x, y, z, w uint32
}

// NewXorShift128 constructs a generator from a 32-bit seed, expanding it into
// four state words via SplitMix32.
func NewXorShift128(seed uint32) *XorShift128 {
	sm := NewSplitMix32(seed)
	rng := &XorShift128{
		x: sm.Next(),
		y: sm.Next(),
		z: sm.Next(),
		w: sm.Next(),
	}
	if rng.x|rng.y|rng.z|rng.w == 0 {
		rng.w = 1
	}
	return rng
}

// NextUint32 returns the next value of the xorshift128 recurrence.
func (r *XorShift128) NextUint32() uint32 {
	t := r.x ^ (r.x << 11)
	r.x = r.y
	r.y = r.z
	r.z = r.w
	r.w = r.w ^ (r.w >> 19) ^ t ^ (t >> 8)
	return r.w
}

// NextFloat64 returns a uniform double in [0,1) built from 53 bits of
// entropy: the top 27 bits of one draw and the top 26 of another fill the
// full mantissa of an IEEE-754 double. A single u32/2^32 conversion would be
// a lower-precision generator and does not match the other implementations.
func (r *XorShift128) NextFloat64() float64 {
	a := r.NextUint32()
	b := r.NextUint32()
	u := uint64(a>>5)<<26 | uint64(b>>6)
	return float64(u) * (1.0 / 9007199254740992.0) // 2^53
}
