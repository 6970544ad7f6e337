package reply

import (
	"context"
	"encoding/binary"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ellipticpir/epir-go/elgamal"
	"github.com/ellipticpir/epir-go/epirerr"
	"github.com/ellipticpir/epir-go/mg"
)

// Decrypt runs the D-phase unwrapping of spec §4.4 against buf in place.
// buf must have length Size(D, p, E) for some E the caller is prepared to
// recover (any E works; the returned byte count is the authoritative
// length). On success it returns the number of meaningful bytes at the
// front of buf; any bytes beyond that are padding introduced by the
// server's packing and must be ignored.
//
// Decryption is destructive: buf is mutated phase by phase regardless of
// outcome, and on error its contents are logically undefined — callers
// must not reuse a failed buffer (spec §7).
func Decrypt(ctx context.Context, priv elgamal.PrivateKey, table *mg.Table, D int, p int, buf []byte) (int, error) {
	if err := validateParams(D, p); err != nil {
		return 0, err
	}
	if len(buf)%elgamal.CipherSize != 0 {
		return 0, fmt.Errorf("reply: decrypt: buffer length %d not a multiple of %d: %w", len(buf), elgamal.CipherSize, epirerr.ErrInvalidArgument)
	}

	midCount := len(buf) / elgamal.CipherSize
	workers := runtime.NumCPU()

	for t := 0; t < D; t++ {
		if workers > midCount {
			workers = midCount
		}
		if workers < 1 {
			workers = 1
		}

		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			w := w
			g.Go(func() error {
				for i := w; i < midCount; i += workers {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
					off := i * elgamal.CipherSize
					var cb [elgamal.CipherSize]byte
					copy(cb[:], buf[off:off+elgamal.CipherSize])
					c, err := elgamal.CipherFromBytes(cb)
					if err != nil {
						return err
					}
					v, err := mg.Decrypt(priv, c, table)
					if err != nil {
						return err
					}
					var vb [4]byte
					binary.LittleEndian.PutUint32(vb[:], v)
					copy(buf[off:off+p], vb[:p])
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return 0, fmt.Errorf("reply: decrypt: phase %d: %w", t, err)
		}

		for i := 0; i < midCount; i++ {
			src := i * elgamal.CipherSize
			dst := i * p
			copy(buf[dst:dst+p], buf[src:src+p])
		}

		compacted := midCount * p
		if t < D-1 {
			midCount = compacted / elgamal.CipherSize
		} else {
			return compacted, nil
		}
	}

	panic("reply: decrypt: unreachable, validateParams guarantees D >= 1")
}
