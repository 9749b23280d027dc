package rng

// SplitMix32 expands a single 32-bit seed into a stream of well-mixed words.
// It is used only to fill the initial XorShift128 state; the benchmark never
// draws from it afterward.
type SplitMix32 struct {
	s uint32
}

// NewSplitMix32 creates a seed expander starting from the given seed.
func NewSplitMix32(seed uint32) *SplitMix32 {
	return &SplitMix32{s: seed}
}

// Next returns the next word of the expansion. Arithmetic is modular 32-bit;
// uint32 wraps natively in Go.
func (sm *SplitMix32) Next() uint32 {
	sm.s += 0x9E3779B9
	z := sm.s
	z = (z ^ (z >> 16)) * 0x85EBCA6B
	z = (z ^ (z >> 13)) * 0xC2B2AE35
	return z ^ (z >> 16)
}
