package mg

import (
	"errors"
	"fmt"
	"io"

	"github.com/ellipticpir/epir-go/epirerr"
	"github.com/ellipticpir/epir-go/internal/wire"
)

// batchEntries is the number of records read per Load batch (spec §4.2.5).
const batchEntries = 1024

// Save writes the table as a bare concatenation of mmax EntrySize-byte
// records: no header, no magic, no version, no checksum (spec §4.2.5, §6).
func (t *Table) Save(w io.Writer) error {
	bw := wire.BufferedWriter(w)
	if _, err := bw.Write(t.data); err != nil {
		return fmt.Errorf("mg: save: %w", err)
	}
	return bw.Flush()
}

// Load reads a Table of exactly mmax entries from r, in batches of 1024
// records, stopping at end of file (spec §4.2.5). It returns
// epirerr.ErrLoadFailure if r yields fewer records than mmax.
func Load(r io.Reader, mmax uint32) (*Table, error) {
	data := make([]byte, int(mmax)*EntrySize)
	br := wire.BufferedReader(r)

	const batchBytes = batchEntries * EntrySize

	var read int
	for read < len(data) {
		end := read + batchBytes
		if end > len(data) {
			end = len(data)
		}
		n, err := io.ReadFull(br, data[read:end])
		read += n
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("mg: load: %w", epirerr.ErrLoadFailure)
		}
	}

	if read != len(data) {
		return nil, fmt.Errorf("mg: load: got %d of %d entries: %w", read/EntrySize, mmax, epirerr.ErrLoadFailure)
	}

	return &Table{data: data, mmax: mmax}, nil
}
