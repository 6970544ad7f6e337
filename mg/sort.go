package mg

import (
	"bytes"
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// entries is a byte slice whose length is a multiple of EntrySize, viewed as
// a sortable sequence of records ordered by their 32-byte point field (spec
// §4.2.3).
type entries []byte

func (e entries) Len() int { return len(e) / EntrySize }

func (e entries) point(i int) []byte {
	off := i * EntrySize
	return e[off : off+32]
}

func (e entries) Less(i, j int) bool {
	return bytes.Compare(e.point(i), e.point(j)) < 0
}

func (e entries) Swap(i, j int) {
	var tmp [EntrySize]byte
	oi, oj := i*EntrySize, j*EntrySize
	copy(tmp[:], e[oi:oi+EntrySize])
	copy(e[oi:oi+EntrySize], e[oj:oj+EntrySize])
	copy(e[oj:oj+EntrySize], tmp[:])
}

// mergeEntries merges sorted a and b into dst, which must have capacity for
// exactly a.Len()+b.Len() records.
func mergeEntries(dst, a, b entries) {
	ai, bi, di := 0, 0, 0
	for ai < a.Len() && bi < b.Len() {
		off := di * EntrySize
		if bytes.Compare(a.point(ai), b.point(bi)) <= 0 {
			copy(dst[off:off+EntrySize], a[ai*EntrySize:(ai+1)*EntrySize])
			ai++
		} else {
			copy(dst[off:off+EntrySize], b[bi*EntrySize:(bi+1)*EntrySize])
			bi++
		}
		di++
	}
	for ai < a.Len() {
		off := di * EntrySize
		copy(dst[off:off+EntrySize], a[ai*EntrySize:(ai+1)*EntrySize])
		ai++
		di++
	}
	for bi < b.Len() {
		off := di * EntrySize
		copy(dst[off:off+EntrySize], b[bi*EntrySize:(bi+1)*EntrySize])
		bi++
		di++
	}
}

// run is a contiguous, already-sorted range of entry indices [lo, hi).
type run struct{ lo, hi int }

// sort implements the two-phase parallel sort of spec §4.2.3: T independent
// range sorts, then barrier-separated pairwise merge passes doubling the run
// length each iteration, using a scratch buffer of the table's full
// capacity that is released once the sort completes.
func (t *Table) sort(ctx context.Context, workers int) error {
	n := int(t.mmax)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers
	runs := make([]run, 0, workers)
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		runs = append(runs, run{lo, hi})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range runs {
		r := r
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			sort.Sort(entries(t.data[r.lo*EntrySize : r.hi*EntrySize]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(runs) <= 1 {
		return nil
	}

	scratch := make([]byte, n*EntrySize)
	cur, other := t.data, scratch

	for len(runs) > 1 {
		next := make([]run, (len(runs)+1)/2)

		mg, mgctx := errgroup.WithContext(ctx)
		for i := range next {
			a := runs[2*i]
			if 2*i+1 >= len(runs) {
				copy(other[a.lo*EntrySize:a.hi*EntrySize], cur[a.lo*EntrySize:a.hi*EntrySize])
				next[i] = a
				continue
			}
			b := runs[2*i+1]
			dst := other[a.lo*EntrySize : b.hi*EntrySize]
			left := entries(cur[a.lo*EntrySize : a.hi*EntrySize])
			right := entries(cur[b.lo*EntrySize : b.hi*EntrySize])
			mg.Go(func() error {
				select {
				case <-mgctx.Done():
					return mgctx.Err()
				default:
				}
				mergeEntries(entries(dst), left, right)
				return nil
			})
			next[i] = run{a.lo, b.hi}
		}
		if err := mg.Wait(); err != nil {
			return err
		}

		cur, other = other, cur
		runs = next
	}

	t.data = cur

	return nil
}
