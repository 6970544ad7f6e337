package group

// StripedBase implements the "striped addition chain" of spec §4.2.2: it
// precomputes 0·G, 1·G, ..., (t-1)·G by repeated addition of G, and holds
// t·G so that a worker owning residue class j mod t can walk its stripe by
// repeatedly adding t·G to a running accumulator instead of performing a
// fresh scalar multiplication per point.
type StripedBase struct {
	stride Point // t·G
}

// NewStripedBase returns the precomputed state for t parallel workers, along
// with the t initial accumulators 0·G, ..., (t-1)·G (worker j starts at
// initial[j]).
func NewStripedBase(t int) (sb StripedBase, initial []Point) {
	if t <= 0 {
		panic("group: NewStripedBase requires t > 0")
	}

	initial = make([]Point, t)
	initial[0] = Identity()
	g := Base()
	for i := 1; i < t; i++ {
		initial[i] = Add(initial[i-1], g)
	}

	sb.stride = Add(initial[t-1], g) // t·G

	return sb, initial
}

// Next advances acc by the stride t·G, returning the new accumulator. Callers
// walk their stripe by repeatedly calling Next on their own accumulator;
// StripedBase itself carries no mutable state and so is safe to share
// read-only across worker goroutines.
func (sb StripedBase) Next(acc Point) Point {
	return Add(acc, sb.stride)
}
