// Package epirerr defines the discriminated error kinds shared by every
// layer of epir-go (spec §7). None of the core is retried internally;
// callers distinguish kinds with errors.Is and wrap with %w at call sites.
package epirerr

import "errors"

var (
	// ErrDecryptionFailure is returned when a decrypted point is absent from
	// the mG table (m ≥ mmax, a tampered ciphertext, or a non-canonical
	// point encoding — the latter folds IntegrityFailure into this kind).
	ErrDecryptionFailure = errors.New("epir: decryption failure")

	// ErrLoadFailure is returned when an mG table file cannot be opened, or
	// returns fewer records than the caller's expected mmax.
	ErrLoadFailure = errors.New("epir: mG load failure")

	// ErrInvalidArgument is returned when inputs violate the constraints of
	// spec §6 (bad lengths, out-of-range index, empty IndexCounts, a
	// non-positive index count, dimension/packing out of bounds, ...).
	ErrInvalidArgument = errors.New("epir: invalid argument")

	// ErrInsufficientCache is returned by SelectorFactory.Create when a pool
	// underflows.
	ErrInsufficientCache = errors.New("epir: insufficient cache")
)
