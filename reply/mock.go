package reply

import (
	"fmt"

	"github.com/ellipticpir/epir-go/elgamal"
	"github.com/ellipticpir/epir-go/epirerr"
	"github.com/ellipticpir/epir-go/group"
)

// Mock generates a synthetic server reply for elem, by running the fold of
// spec §4.4 in the forward direction: pack p bytes at a time into an
// integer and encrypt it, D times, each phase's ciphertext stream becoming
// the next phase's plaintext bytes. It is the inverse of Decrypt and exists
// purely for tests and benchmarking (spec §4.4 "mock reply generator").
//
// If randomness is non-nil it must have exactly RCount(D, p, len(elem))
// entries, consumed one per encryption across all phases in order, making
// the output fully deterministic.
func Mock(D int, p int, elem []byte, variant elgamal.Variant, randomness []group.Scalar) ([]byte, error) {
	if err := validateParams(D, p); err != nil {
		return nil, err
	}
	if randomness != nil {
		want, err := RCount(D, p, len(elem))
		if err != nil {
			return nil, err
		}
		if uint64(len(randomness)) != want {
			return nil, fmt.Errorf("reply: mock: randomness length %d != %d: %w", len(randomness), want, epirerr.ErrInvalidArgument)
		}
	}

	buf := elem
	randIdx := 0
	for t := 0; t < D; t++ {
		n := int(ceilDiv(uint64(len(buf)), uint64(p)))
		out := make([]byte, n*elgamal.CipherSize)
		for i := 0; i < n; i++ {
			var v uint64
			for j := 0; j < p; j++ {
				k := i*p + j
				if k < len(buf) {
					v |= uint64(buf[k]) << uint(8*j)
				}
			}

			var r *group.Scalar
			if randomness != nil {
				r = &randomness[randIdx]
			}
			randIdx++

			c, err := variant.Encrypt(v, r)
			if err != nil {
				return nil, fmt.Errorf("reply: mock: phase %d entry %d: %w", t, i, err)
			}
			cb := c.Bytes()
			copy(out[i*elgamal.CipherSize:(i+1)*elgamal.CipherSize], cb[:])
		}
		buf = out
	}
	return buf, nil
}
