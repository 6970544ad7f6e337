package mg

import (
	"bytes"
	"encoding/binary"
)

func leadingUint32(point []byte) uint32 {
	return binary.BigEndian.Uint32(point[:4])
}

// Search performs the interpolation search of spec §4.2.4: treating the
// leading 4 bytes of a point as a big-endian key, it estimates the midpoint
// of the remaining window with a linear model instead of bisecting, which
// converges in O(log log mmax) comparisons on average because table points
// are pseudo-random.
//
// The left >= right early-out and the imid in-bounds check are both load
// bearing: without them the division by (right - left) underflows for
// degenerate small windows (spec §9).
func (t *Table) Search(point [32]byte) (uint32, bool) {
	n := t.mmax
	if n == 0 {
		return 0, false
	}

	imin, imax := 0, int(n)-1
	left := leadingUint32(t.pointAt(uint32(imin)))
	right := leadingUint32(t.pointAt(uint32(imax)))
	my := leadingUint32(point[:])

	for imin <= imax {
		if left >= right {
			return 0, false
		}

		imid := imin + int(uint64(imax-imin)*uint64(my-left)/uint64(right-left))
		if imid < imin || imid > imax {
			return 0, false
		}

		switch bytes.Compare(t.pointAt(uint32(imid)), point[:]) {
		case -1:
			imin = imid + 1
			left = leadingUint32(t.pointAt(uint32(imid)))
		case 1:
			imax = imid - 1
			right = leadingUint32(t.pointAt(uint32(imid)))
		default:
			return t.scalarAt(uint32(imid)), true
		}
	}

	return 0, false
}
