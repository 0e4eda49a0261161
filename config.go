package hashtrie

import "math/bits"

// Configuration describes the current tree shape for a given population
// count: the branching factor of each interior level (root-first) and the
// population at which the shape must next change (§3.1).
type Configuration struct {
	// Fanouts holds the interior-level branching factors, root first.
	// Every entry is a power of two; len(Fanouts) is between 0 and 6.
	// A nil/empty Fanouts means the root is a leaf.
	Fanouts []int

	// NextThreshold is the smallest population at which this
	// configuration must change.
	NextThreshold uint64
}

// canonical configurations for the process-lifetime constants named in
// §4.1 ("deterministic and allocation-free for n < 1024"). These are
// computed once and shared; callers must never mutate the Fanouts slice
// of a Configuration returned by configFor.
var (
	config1   = Configuration{Fanouts: nil, NextThreshold: 16}
	config16  = computeConfig(16)
	config64  = computeConfig(64)
	config256 = computeConfig(256)
)

// configFor is a pure, total function from population count to tree shape
// (§4.1). For any n, configFor(nextThreshold(n)) != configFor(n), and for
// any n' in [n, nextThreshold(n)), configFor(n') == configFor(n).
func configFor(n uint64) Configuration {
	switch {
	case n < 16:
		return config1
	case n < 64:
		return config16
	case n < 256:
		return config64
	case n < 1024:
		return config256
	default:
		return computeConfig(n)
	}
}

// computeConfig implements the exact schedule from §3.1.
func computeConfig(n uint64) Configuration {
	if n < 16 {
		return Configuration{Fanouts: nil, NextThreshold: 16}
	}

	if n < 65536 {
		b := ceilLog2Plus1(n)
		l := min(b, 4)
		k := max(1, ceilDiv(b-l, 2))

		fanouts := make([]int, k)
		for i := range fanouts {
			fanouts[i] = 4
		}
		return Configuration{
			Fanouts:       fanouts,
			NextThreshold: uint64(1) << (4 + 2*k),
		}
	}

	b := ceilLog2Plus1(n)
	l := max(4, b/7)
	s := b - l
	m := s / 6

	fanouts := make([]int, 6)
	for i := range fanouts {
		fanouts[i] = 1 << m
	}

	extra := s - 6*m
	for i := 5; extra > 0; i-- {
		fanouts[i] *= 2
		extra--
	}

	for i, f := range fanouts {
		if f > 256 {
			fanouts[i] = 256
		}
	}

	return Configuration{
		Fanouts:       fanouts,
		NextThreshold: uint64(1) << bits.Len64(n),
	}
}

// ceilLog2Plus1 computes ceil(log2(n+1)) = bits.Len64(n) for n >= 0.
func ceilLog2Plus1(n uint64) int {
	return bits.Len64(n)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
