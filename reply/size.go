// Package reply implements the client side of spec §4.4: iteratively
// decrypting a server's D-dimensional, p-packed reply, and a mock reply
// generator that runs the same folding in reverse for tests and benchmarks.
package reply

import (
	"fmt"

	"github.com/ellipticpir/epir-go/epirerr"
)

// phaseCounts returns, for D folding phases with packing p over an elem_size
// E, the ciphertext count of each phase in encryption order: counts[0] is
// the innermost (first-encrypted) layer, counts[D-1] the outermost layer
// that the server actually transmits (spec §4.4's f(x) = 64*ceil(x/p)
// applied D times, unrolled one layer at a time so RCount can sum them).
func phaseCounts(D int, p int, E int) []uint64 {
	counts := make([]uint64, D)
	n := ceilDiv(uint64(E), uint64(p))
	counts[0] = n
	for t := 1; t < D; t++ {
		n = ceilDiv(n*64, uint64(p))
		counts[t] = n
	}
	return counts
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

// Size returns reply_size(D, p, E), the wire length in bytes of the
// outermost reply layer (spec §3, §8 Scenario E).
func Size(D int, p int, E int) (uint64, error) {
	if err := validateParams(D, p); err != nil {
		return 0, err
	}
	counts := phaseCounts(D, p, E)
	return counts[D-1] * 64, nil
}

// RCount returns the total number of ciphertexts decrypted (or, for Mock,
// encrypted) across all D phases — the sum of each phase's cipher count,
// not just the outermost layer's (spec §8 Scenario E: D=3, p=3, E=32 gives
// r_count=5260, the sum 11+235+5014, not reply_size/64=5014 alone).
func RCount(D int, p int, E int) (uint64, error) {
	if err := validateParams(D, p); err != nil {
		return 0, err
	}
	var sum uint64
	for _, n := range phaseCounts(D, p, E) {
		sum += n
	}
	return sum, nil
}

func validateParams(D int, p int) error {
	if D < 1 || D > 255 {
		return fmt.Errorf("reply: dimension %d out of [1,255]: %w", D, epirerr.ErrInvalidArgument)
	}
	// Spec §6 allows p up to 7 in principle (p*8 < 64), but an mG entry's
	// scalar is a 4-byte uint32 (spec §3), so this implementation follows
	// the spec's own fallback and caps p at 4.
	if p < 1 || p > 4 {
		return fmt.Errorf("reply: packing %d out of [1,4]: %w", p, epirerr.ErrInvalidArgument)
	}
	return nil
}
