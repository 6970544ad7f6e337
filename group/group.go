// Package group implements the Ed25519 group arithmetic on which the
// EC-ElGamal scheme used throughout epir-go is built. It is a thin,
// constant-time-where-it-matters wrapper around [filippo.io/edwards25519],
// exposing only the operations the higher layers need.
package group

import (
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"io"

	"filippo.io/edwards25519"
)

// ScalarSize and PointSize are the wire sizes of a Scalar and a Point,
// per spec §3 and §6.
const (
	ScalarSize = 32
	PointSize  = 32
)

// ErrInvalidEncoding is returned when a 32-byte buffer does not decode to a
// canonical scalar or a valid curve point.
var ErrInvalidEncoding = errors.New("group: invalid encoding")

// Scalar is a 32-byte little-endian integer reduced modulo the Ed25519
// group order ℓ.
type Scalar struct {
	s edwards25519.Scalar
}

// Point is a compressed Ed25519 group element.
type Point struct {
	p edwards25519.Point
}

// ScalarFromUint64 places m into the low bytes of a Scalar, little-endian,
// per spec §4.1. m is always small enough (< mmax ≤ 2^32) to be canonical.
func ScalarFromUint64(m uint64) Scalar {
	var buf [ScalarSize]byte
	binary.LittleEndian.PutUint64(buf[:8], m)
	var s Scalar
	if _, err := s.s.SetCanonicalBytes(buf[:]); err != nil {
		// m < 2^64 is always < ℓ, so this cannot fail.
		panic(err)
	}
	return s
}

// RandomScalar draws a uniformly random Scalar in [0, ℓ) from rnd.
func RandomScalar(rnd io.Reader) (Scalar, error) {
	var wide [64]byte
	if _, err := io.ReadFull(rnd, wide[:]); err != nil {
		return Scalar{}, err
	}
	var s Scalar
	if _, err := s.s.SetUniformBytes(wide[:]); err != nil {
		return Scalar{}, err
	}
	return s, nil
}

// ScalarFromCanonicalBytes decodes a Scalar from its 32-byte wire form.
func ScalarFromCanonicalBytes(b [ScalarSize]byte) (Scalar, error) {
	var s Scalar
	if _, err := s.s.SetCanonicalBytes(b[:]); err != nil {
		return Scalar{}, ErrInvalidEncoding
	}
	return s, nil
}

// Bytes returns the little-endian wire encoding of s.
func (s Scalar) Bytes() [ScalarSize]byte {
	var out [ScalarSize]byte
	copy(out[:], s.s.Bytes())
	return out
}

// MulAdd returns s*x + y mod ℓ.
func (s Scalar) MulAdd(x, y Scalar) Scalar {
	var r Scalar
	r.s.MultiplyAdd(&s.s, &x.s, &y.s)
	return r
}

// Identity returns the neutral element of the group.
func Identity() Point {
	var p Point
	p.p.Set(edwards25519.NewIdentityPoint())
	return p
}

// Base returns the canonical base point G.
func Base() Point {
	var p Point
	p.p.Set(edwards25519.NewGeneratorPoint())
	return p
}

// BaseMult computes s·G using the fixed-base (table accelerated) path.
func BaseMult(s Scalar) Point {
	var p Point
	p.p.ScalarBaseMult(&s.s)
	return p
}

// VarMult computes s·P using the variable-base path.
func VarMult(s Scalar, P Point) Point {
	var r Point
	r.p.ScalarMult(&s.s, &P.p)
	return r
}

// DoubleBaseMult computes a·A + b·G in variable time. Both a and A (and the
// resulting point) are assumed to already be public, which is the case on
// every call site in this module (spec §4.1 "encrypt" path).
func DoubleBaseMult(a Scalar, A Point, b Scalar) Point {
	var r Point
	r.p.VarTimeDoubleScalarBaseMult(&a.s, &A.p, &b.s)
	return r
}

// Add returns P + Q.
func Add(P, Q Point) Point {
	var r Point
	r.p.Add(&P.p, &Q.p)
	return r
}

// Sub returns P - Q.
func Sub(P, Q Point) Point {
	var r Point
	r.p.Subtract(&P.p, &Q.p)
	return r
}

// Bytes returns the compressed 32-byte encoding of P.
func (P Point) Bytes() [PointSize]byte {
	var out [PointSize]byte
	copy(out[:], P.p.Bytes())
	return out
}

// Equal reports whether P and Q encode the same group element.
func (P Point) Equal(Q Point) bool {
	return P.p.Equal(&Q.p) == 1
}

// DecodePoint decodes a compressed point, rejecting encodings that do not
// correspond to a valid curve point as well as non-canonical encodings of
// valid points.
func DecodePoint(b [PointSize]byte) (Point, error) {
	var p Point
	if _, err := p.p.SetBytes(b[:]); err != nil {
		return Point{}, ErrInvalidEncoding
	}
	if p.Bytes() != b {
		return Point{}, ErrInvalidEncoding
	}
	return p, nil
}

// hashToWideScalar is kept for callers that need to derive deterministic
// scalars from arbitrary-length seeds (used by tests to build reproducible
// randomness streams). It is not part of the cryptographic core itself.
func hashToWideScalar(seed []byte) Scalar {
	h := sha512.Sum512(seed)
	var s Scalar
	// SetUniformBytes cannot fail on a 64-byte input.
	if _, err := s.s.SetUniformBytes(h[:]); err != nil {
		panic(err)
	}
	return s
}

// DeterministicScalar derives a reproducible Scalar from seed, for use in
// tests and in the mock reply generator (spec §4.4) where an explicit
// randomness array must be derived from a small seed rather than sampled.
func DeterministicScalar(seed []byte) Scalar {
	return hashToWideScalar(seed)
}
