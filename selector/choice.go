// Package selector builds the encrypted one-hot selector vector a client
// sends to address a single cell of a multi-dimensional server matrix
// (spec §4.3), along with a prefilled cipher pool ("SelectorFactory") that
// avoids fresh encryption on the request's critical path.
package selector

import (
	"fmt"

	"github.com/ellipticpir/epir-go/epirerr"
)

// IndexCounts is the extents [n0, n1, ..., n_{k-1}] of a k-dimensional
// matrix (spec §3).
type IndexCounts []uint32

// Validate checks the bounds of spec §6: 1 <= k <= 255, every ni >= 1.
func (c IndexCounts) Validate() error {
	if len(c) == 0 || len(c) > 255 {
		return fmt.Errorf("selector: index counts must have 1..255 dimensions: %w", epirerr.ErrInvalidArgument)
	}
	for i, n := range c {
		if n == 0 {
			return fmt.Errorf("selector: index count %d is zero: %w", i, epirerr.ErrInvalidArgument)
		}
	}
	return nil
}

// ElementsCount is the total number of addressable cells, Π ni (spec §3).
func (c IndexCounts) ElementsCount() uint64 {
	p := uint64(1)
	for _, n := range c {
		p *= uint64(n)
	}
	return p
}

// CiphersCount is the size of the selector in ciphertexts, Σ ni (spec §3).
// This is deliberately the sum, not the product: spec §9 resolves the
// source's ambiguity between two historical definitions of
// selector_ciphers_count in favor of the sum (choice-vector length), never
// the product (which is ElementsCount).
func (c IndexCounts) CiphersCount() uint64 {
	s := uint64(0)
	for _, n := range c {
		s += uint64(n)
	}
	return s
}

// Rows decomposes idx into per-dimension row indices by the standard
// mixed-radix decomposition of spec §4.3.1: at step d, prod = Πj>d nj,
// rows[d] = idx/prod, idx -= rows[d]*prod.
func Rows(counts IndexCounts, idx uint64) ([]uint32, error) {
	if err := counts.Validate(); err != nil {
		return nil, err
	}
	if idx >= counts.ElementsCount() {
		return nil, fmt.Errorf("selector: idx %d out of range: %w", idx, epirerr.ErrInvalidArgument)
	}

	rows := make([]uint32, len(counts))
	prod := counts.ElementsCount()
	remaining := idx
	for d, n := range counts {
		prod /= uint64(n)
		rows[d] = uint32(remaining / prod)
		remaining -= uint64(rows[d]) * prod
	}
	return rows, nil
}

// Choices expands idx into the plaintext choice vector of spec §4.3.1: the
// concatenation, for each dimension d, of nd bytes where position rows[d]
// is 1 and every other position is 0.
func Choices(counts IndexCounts, idx uint64) ([]byte, error) {
	rows, err := Rows(counts, idx)
	if err != nil {
		return nil, err
	}

	choices := make([]byte, counts.CiphersCount())
	offset := 0
	for d, n := range counts {
		for r := uint32(0); r < n; r++ {
			if r == rows[d] {
				choices[offset] = 1
			}
			offset++
		}
	}
	return choices, nil
}
