package rng

import "math"

// Generator produces the deterministic sample sequence for one placement
// query. It is seeded with the data key and the exclusive upper bound of
// the placement domain, and yields an infinite sequence of float32 samples
// stratified over the powers of two covering [0, upper).
//
// The sequence depends only on the seed and on ⌈log2 upper⌉, never on upper
// itself. Two generators whose bounds share the same ⌈log2⌉ therefore emit
// identical sequences, and a generator with a larger bound emits a sequence
// whose samples below a smaller power-of-two bound reproduce, in order, the
// smaller generator's sequence. This is what keeps placements stable when
// the domain grows or shrinks.
//
// A Generator is single-use state tied to one query; it must not be shared
// between goroutines.
type Generator struct {
	gens []PCG32
}

// NewGenerator returns a generator for the domain [0, upper), seeded with
// seed. One sub-generator is created per stratum, each seeded with a
// successive 32-bit draw from a primary generator seeded with seed. The
// draw order is part of the wire contract.
func NewGenerator(seed uint64, upper float64) Generator {
	n := numStrata(upper)

	gens := make([]PCG32, n)
	seedGen := NewPCG32(seed)
	for k := range gens {
		gens[k] = NewPCG32(uint64(seedGen.Uint32()))
	}

	return Generator{gens: gens}
}

// NextRand returns the next sample. Strata are scanned top-down: the
// sub-generator for stratum k draws a uniform value in [0, 2^k), which is
// kept if it lands in [2^(k-1), 2^k) and rejected otherwise. A rejection
// falls through to stratum k-1, and stratum 0 always accepts. Each call
// advances exactly one draw per stratum attempted, so acceptance in a high
// stratum leaves every lower sub-generator untouched.
func (gen *Generator) NextRand() float32 {
	n := len(gen.gens)
	for k := n - 1; k >= 1; k-- {
		upper := pow2(k)
		lower := pow2(k - 1)

		v := gen.gens[k].Float32() * upper
		if lower <= v && v < upper {
			return v
		}
	}
	return gen.gens[0].Float32()
}

// numStrata returns the number of power-of-two strata, and therefore
// sub-generators, needed to cover [0, upper). Bounds below one, including
// zero, collapse to the single stratum [0, 1).
func numStrata(upper float64) int {
	if upper < 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(upper))) + 1
}

func pow2(k int) float32 {
	return float32(math.Exp2(float64(k)))
}
