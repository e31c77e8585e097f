package rng

import "math/bits"

// The PCG-XSH-RR constants and the seeding procedure below are part of the
// placement wire contract: two builds that disagree on any of them disagree
// on every placement. Do not change them.
const (
	pcgMultiplier       = 6364136223846793005
	pcgDefaultIncrement = 1442695040888963407
)

// PCG32 is a 32-bit pseudo-random generator with 64-bit internal state
// (PCG-XSH-RR). Placement results observably depend on its exact output
// sequence, so the algorithm is pinned rather than delegated to math/rand,
// whose sequences are not guaranteed stable across Go releases.
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 returns a generator seeded with seed on the default stream.
func NewPCG32(seed uint64) PCG32 {
	gen := PCG32{state: 0, inc: (pcgDefaultIncrement << 1) | 1}
	gen.Uint32()
	gen.state += seed
	gen.Uint32()
	return gen
}

// Uint32 advances the generator and returns the next 32-bit output.
func (gen *PCG32) Uint32() uint32 {
	oldstate := gen.state
	gen.state = oldstate*pcgMultiplier + gen.inc
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := int(oldstate >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// Float32 returns a uniform float32 in [0, 1), quantized to the high 24
// bits of one Uint32 draw over 2^24.
func (gen *PCG32) Float32() float32 {
	return float32(gen.Uint32()>>8) / (1 << 24)
}
