// Package mg implements the discrete-log recovery table used to turn an
// EC-ElGamal decryption (a group element m·G) back into the integer m
// (spec §4.2): parallel table generation, parallel merge sort, headerless
// persistence, and interpolation search.
package mg

import (
	"github.com/ellipticpir/epir-go/internal/wire"
)

// EntrySize is the packed, unpadded size of one mG record: a 32-byte
// compressed point followed by its 4-byte little-endian scalar (spec §3,
// §6). The layout is enforced explicitly through byte-slice offsets rather
// than relying on Go struct alignment, per the spec's design note on
// header-less packed formats.
const EntrySize = 32 + 4

// DefaultMmax is EPIR_DEFAULT_MG_MAX from spec §6: 2^24 entries.
const DefaultMmax uint32 = 1 << 24

// Entry is the decoded form of one mG record.
type Entry struct {
	Point  [32]byte
	Scalar uint32
}

// Table is a read-only-after-construction sequence of mmax entries sorted
// ascending by Point. It is backed by a single contiguous byte slice (spec
// §5 memory discipline) rather than a slice of Entry, so Save/Load round
// trips are bit-identical regardless of Go struct padding, and Search can
// compare raw point windows directly.
type Table struct {
	data []byte
	mmax uint32
}

// Len returns the number of entries in the table (mmax).
func (t *Table) Len() uint32 {
	return t.mmax
}

func (t *Table) entryAt(i uint32) []byte {
	off := int(i) * EntrySize
	return t.data[off : off+EntrySize]
}

func (t *Table) pointAt(i uint32) []byte {
	return t.entryAt(i)[:32]
}

func (t *Table) scalarAt(i uint32) uint32 {
	return wire.Uint32(t.entryAt(i)[32:36])
}

// At decodes the entry at index i.
func (t *Table) At(i uint32) Entry {
	e := t.entryAt(i)
	var p [32]byte
	copy(p[:], e[:32])
	return Entry{Point: p, Scalar: wire.Uint32(e[32:36])}
}

func writeEntry(data []byte, i uint32, point [32]byte, scalar uint32) {
	off := int(i) * EntrySize
	copy(data[off:off+32], point[:])
	wire.PutUint32(data[off+32:off+36], scalar)
}
