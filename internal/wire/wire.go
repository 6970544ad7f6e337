// Package wire centralizes the packed, headerless binary encodings used by
// epir-go's on-disk and on-wire formats (spec §6): no magic, no version, no
// padding, so every reader/writer pair in the module uses the same
// discipline instead of reimplementing encoding/binary calls ad hoc.
package wire

import (
	"bufio"
	"encoding/binary"
	"io"
)

// PutUint32 writes v little-endian into b, which must be at least 4 bytes.
func PutUint32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

// Uint32 reads a little-endian uint32 from the first 4 bytes of b.
func Uint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// BufferedWriter wraps w in a *bufio.Writer unless it already is one, so
// repeated small writes during bulk serialization don't each hit the
// underlying io.Writer.
func BufferedWriter(w io.Writer) *bufio.Writer {
	if bw, ok := w.(*bufio.Writer); ok {
		return bw
	}
	return bufio.NewWriterSize(w, 1<<16)
}

// BufferedReader wraps r in a *bufio.Reader unless it already is one.
func BufferedReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReaderSize(r, 1<<16)
}
