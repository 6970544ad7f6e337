package selector

import (
	"fmt"
	"runtime"

	"github.com/ellipticpir/epir-go/elgamal"
	"github.com/ellipticpir/epir-go/epirerr"
	"github.com/ellipticpir/epir-go/group"
	"github.com/ellipticpir/epir-go/utils/concurrency"
)

// Build encrypts the choice vector for (counts, idx) under variant,
// producing a Selector of CiphersCount ciphertexts (spec §4.3.2). Each
// entry is encrypted independently and in parallel, bounded to
// runtime.NumCPU() concurrent encryptions via utils/concurrency.
//
// If randomness is non-nil it must have exactly CiphersCount(counts)
// elements, consumed one per entry in order, making the output
// deterministic; otherwise each entry draws fresh randomness.
func Build(counts IndexCounts, idx uint64, variant elgamal.Variant, randomness []group.Scalar) ([]elgamal.Cipher, error) {
	choices, err := Choices(counts, idx)
	if err != nil {
		return nil, err
	}
	if randomness != nil && len(randomness) != len(choices) {
		return nil, fmt.Errorf("selector: build: randomness length %d != %d: %w", len(randomness), len(choices), epirerr.ErrInvalidArgument)
	}

	ciphers := make([]elgamal.Cipher, len(choices))
	lim := concurrency.NewLimiter(runtime.NumCPU())

	for i := range choices {
		i := i
		lim.Run(func(struct{}) error {
			var r *group.Scalar
			if randomness != nil {
				r = &randomness[i]
			}
			c, err := variant.Encrypt(uint64(choices[i]), r)
			if err != nil {
				return err
			}
			ciphers[i] = c
			return nil
		})
	}

	if err := lim.Wait(); err != nil {
		return nil, fmt.Errorf("selector: build: %w", err)
	}
	return ciphers, nil
}
