package mg

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ellipticpir/epir-go/epirerr"
	"github.com/ellipticpir/epir-go/group"
)

// Build generates and sorts a Table of mmax entries (spec §4.2.2/§4.2.3).
//
// Generation uses the striped addition chain of group.StripedBase: worker j
// of workers owns indices j, j+workers, j+2*workers, ..., walking them with
// one point addition per step instead of a fresh scalar multiplication.
// workers <= 0 defaults to runtime.NumCPU(); it is clamped to mmax.
//
// progress, if non-nil, is invoked after every point is written with a
// monotonically-increasing counter value. Invocations from the workers are
// serialized under a mutex, so the values arrive in increasing order and the
// final invocation receives mmax (spec §5).
func Build(ctx context.Context, mmax uint32, workers int, progress func(uint32)) (*Table, error) {
	if mmax == 0 {
		return nil, fmt.Errorf("mg: build: %w", epirerr.ErrInvalidArgument)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if uint32(workers) > mmax {
		workers = int(mmax)
	}

	data := make([]byte, int(mmax)*EntrySize)

	sb, initial := group.NewStripedBase(workers)

	var done atomic.Uint32
	var progressMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for j := 0; j < workers; j++ {
		j := j
		g.Go(func() error {
			acc := initial[j]
			for i := uint32(j); i < mmax; i += uint32(workers) {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				writeEntry(data, i, acc.Bytes(), i)
				if progress != nil {
					progressMu.Lock()
					progress(done.Add(1))
					progressMu.Unlock()
				}
				acc = sb.Next(acc)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("mg: build: %w", err)
	}

	t := &Table{data: data, mmax: mmax}
	if err := t.sort(ctx, workers); err != nil {
		return nil, fmt.Errorf("mg: build: %w", err)
	}
	return t, nil
}
