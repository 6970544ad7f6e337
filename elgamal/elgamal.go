// Package elgamal implements the additively-homomorphic EC-ElGamal scheme
// over the Ed25519 group (spec §4.1): key generation, the two encrypt
// variants, and decryption down to a group element. Recovering the integer
// plaintext behind that element is layer mg's job.
package elgamal

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/ellipticpir/epir-go/epirerr"
	"github.com/ellipticpir/epir-go/group"
)

// CipherSize is the wire size of a Cipher: C1 ‖ C2, 32 bytes each (spec §6).
const CipherSize = 2 * group.PointSize

// PrivateKey is the EC-ElGamal secret s.
type PrivateKey struct {
	s group.Scalar
}

// PublicKey is Y = s·G.
type PublicKey struct {
	Y group.Point
}

// Cipher is the ordered pair (C1, C2) of spec §3.
type Cipher struct {
	C1, C2 group.Point
}

// GeneratePrivateKey samples a uniformly random PrivateKey from rnd. Pass
// crypto/rand.Reader for production use.
func GeneratePrivateKey(rnd io.Reader) (PrivateKey, error) {
	s, err := group.RandomScalar(rnd)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("elgamal: generate private key: %w", err)
	}
	return PrivateKey{s: s}, nil
}

// PrivateKeyFromBytes decodes a PrivateKey from its 32-byte scalar encoding.
func PrivateKeyFromBytes(b [group.ScalarSize]byte) (PrivateKey, error) {
	s, err := group.ScalarFromCanonicalBytes(b)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("elgamal: decode private key: %w", err)
	}
	return PrivateKey{s: s}, nil
}

// Bytes returns the 32-byte little-endian encoding of the secret scalar.
func (priv PrivateKey) Bytes() [group.ScalarSize]byte {
	return priv.s.Bytes()
}

// PublicKey derives Y = s·G from priv.
func (priv PrivateKey) PublicKey() PublicKey {
	return PublicKey{Y: group.BaseMult(priv.s)}
}

// PublicKeyFromBytes decodes a PublicKey from its 32-byte point encoding.
func PublicKeyFromBytes(b [group.PointSize]byte) (PublicKey, error) {
	Y, err := group.DecodePoint(b)
	if err != nil {
		return PublicKey{}, fmt.Errorf("elgamal: decode public key: %w", err)
	}
	return PublicKey{Y: Y}, nil
}

// Bytes returns the 32-byte compressed encoding of Y.
func (pub PublicKey) Bytes() [group.PointSize]byte {
	return pub.Y.Bytes()
}

// randomness resolves an explicit r, or samples a fresh one from
// crypto/rand when r is nil (spec §4.1 "If r is absent...").
func randomness(r *group.Scalar) (group.Scalar, error) {
	if r != nil {
		return *r, nil
	}
	return group.RandomScalar(rand.Reader)
}

// Encrypt computes E(m; r) = (r·G, r·Y + m·G) using pub (the "slow",
// public-key path of spec §4.1). If r is nil, fresh randomness is drawn.
func Encrypt(pub PublicKey, m uint64, r *group.Scalar) (Cipher, error) {
	rr, err := randomness(r)
	if err != nil {
		return Cipher{}, fmt.Errorf("elgamal: encrypt: %w", err)
	}
	mm := group.ScalarFromUint64(m)
	c1 := group.BaseMult(rr)
	c2 := group.DoubleBaseMult(rr, pub.Y, mm)
	return Cipher{C1: c1, C2: c2}, nil
}

// EncryptFast computes the same ciphertext distribution as Encrypt using
// the secret priv instead of the public key Y (spec §4.1 "fast" path):
// r' = r·s + m, C2 = r'·G, both fixed-base scalar multiplications. For any
// (s, m, r), EncryptFast(priv, m, r) is byte-identical to
// Encrypt(priv.PublicKey(), m, r).
func EncryptFast(priv PrivateKey, m uint64, r *group.Scalar) (Cipher, error) {
	rr, err := randomness(r)
	if err != nil {
		return Cipher{}, fmt.Errorf("elgamal: encrypt fast: %w", err)
	}
	mm := group.ScalarFromUint64(m)
	c1 := group.BaseMult(rr)
	rPrime := rr.MulAdd(priv.s, mm)
	c2 := group.BaseMult(rPrime)
	return Cipher{C1: c1, C2: c2}, nil
}

// DecryptToPoint computes M = C2 - s·C1, which equals m·G for an honestly
// generated ciphertext under priv.
func (priv PrivateKey) DecryptToPoint(c Cipher) group.Point {
	return group.Sub(c.C2, group.VarMult(priv.s, c.C1))
}

// Bytes returns the 64-byte wire encoding C1 ‖ C2 (spec §6).
func (c Cipher) Bytes() [CipherSize]byte {
	var out [CipherSize]byte
	c1 := c.C1.Bytes()
	c2 := c.C2.Bytes()
	copy(out[:group.PointSize], c1[:])
	copy(out[group.PointSize:], c2[:])
	return out
}

// CipherFromBytes decodes a Cipher from its 64-byte wire form.
func CipherFromBytes(b [CipherSize]byte) (Cipher, error) {
	var c1b, c2b [group.PointSize]byte
	copy(c1b[:], b[:group.PointSize])
	copy(c2b[:], b[group.PointSize:])

	c1, err := group.DecodePoint(c1b)
	if err != nil {
		return Cipher{}, fmt.Errorf("elgamal: decode cipher: %w", epirerr.ErrDecryptionFailure)
	}
	c2, err := group.DecodePoint(c2b)
	if err != nil {
		return Cipher{}, fmt.Errorf("elgamal: decode cipher: %w", epirerr.ErrDecryptionFailure)
	}
	return Cipher{C1: c1, C2: c2}, nil
}
