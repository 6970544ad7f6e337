package selector

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ellipticpir/epir-go/elgamal"
	"github.com/ellipticpir/epir-go/epirerr"
	"github.com/ellipticpir/epir-go/utils/concurrency"
)

// Factory is a prebuilt pool of encryptions of 0 and of 1 ("SelectorFactory"
// in spec §4.3.3), letting Create draw cached ciphertexts instead of
// encrypting on the request's critical path. Capacities for the two
// plaintexts may differ; both pools are guarded by a single mutex covering
// the cursor and the pool writes, matching spec §5's resource model.
type Factory struct {
	variant elgamal.Variant

	mu         sync.Mutex
	pools      [2][]elgamal.Cipher
	capacities [2]int
}

// NewFactory returns a Factory with the given per-plaintext capacities.
// Pools start empty; call Fill (or FillAsync) before the first Create.
func NewFactory(variant elgamal.Variant, capacityZero, capacityOne int) *Factory {
	return &Factory{
		variant:    variant,
		capacities: [2]int{capacityZero, capacityOne},
	}
}

// Fill encrypts fresh ciphertexts of 0 and of 1 until both pools reach
// capacity, in parallel, bounded to runtime.NumCPU() concurrent
// encryptions. It is safe to call concurrently with Create and with itself;
// a second Fill call only tops pools back up to capacity after Create has
// drained them.
func (f *Factory) Fill(ctx context.Context) error {
	for msg := 0; msg < 2; msg++ {
		f.mu.Lock()
		need := f.capacities[msg] - len(f.pools[msg])
		f.mu.Unlock()
		if need <= 0 {
			continue
		}

		fresh := make([]elgamal.Cipher, need)
		lim := concurrency.NewLimiter(runtime.NumCPU())
		for i := 0; i < need; i++ {
			i := i
			msg := msg
			lim.Run(func(struct{}) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				c, err := f.variant.Encrypt(uint64(msg), nil)
				if err != nil {
					return err
				}
				fresh[i] = c
				return nil
			})
		}
		if err := lim.Wait(); err != nil {
			return fmt.Errorf("selector: factory fill: %w", err)
		}

		f.mu.Lock()
		if room := f.capacities[msg] - len(f.pools[msg]); room < len(fresh) {
			fresh = fresh[:max(room, 0)]
		}
		f.pools[msg] = append(f.pools[msg], fresh...)
		f.mu.Unlock()
	}
	return nil
}

// FillAsync runs Fill in the background, reporting its result on the
// returned channel, mirroring the source's detached background-fill thread
// (epir_selector_factory_fill, as opposed to the blocking fill_sync).
func (f *Factory) FillAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- f.Fill(ctx)
	}()
	return done
}

// Create computes the choice vector for (counts, idx) and, for each choice
// bit, draws one prebuilt cipher of that plaintext from the cache (spec
// §4.3.3). No fresh encryption occurs on this call. It returns
// epirerr.ErrInsufficientCache if either pool underflows partway through —
// the pools are left exactly as drained up to that point, matching the
// source's behavior of returning an error without restoring consumed
// entries.
func (f *Factory) Create(counts IndexCounts, idx uint64) ([]elgamal.Cipher, error) {
	choices, err := Choices(counts, idx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]elgamal.Cipher, len(choices))
	for i, b := range choices {
		pool := f.pools[b]
		if len(pool) == 0 {
			return nil, fmt.Errorf("selector: factory create: %w", epirerr.ErrInsufficientCache)
		}
		out[i] = pool[len(pool)-1]
		f.pools[b] = pool[:len(pool)-1]
	}
	return out, nil
}

// Available reports how many cached ciphertexts remain for plaintext msg
// (0 or 1).
func (f *Factory) Available(msg int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pools[msg])
}
