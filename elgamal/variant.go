package elgamal

import "github.com/ellipticpir/epir-go/group"

// Variant selects between the two encrypt paths of spec §4.1 behind a
// single call shape, so orchestration code (selector construction, the
// mock reply generator) is identical regardless of which key material the
// caller holds. This replaces the function-pointer indirection of the
// source implementation with a small interface, per spec §9's design note.
type Variant interface {
	Encrypt(m uint64, r *group.Scalar) (Cipher, error)
}

// Slow encrypts with the public-key path (Encrypt).
type Slow struct {
	Pub PublicKey
}

// Encrypt implements Variant.
func (v Slow) Encrypt(m uint64, r *group.Scalar) (Cipher, error) {
	return Encrypt(v.Pub, m, r)
}

// Fast encrypts with the private-key path (EncryptFast), byte-identical to
// Slow for the same (s, m, r) but roughly twice as fast since it avoids a
// variable-time double scalar multiplication.
type Fast struct {
	Priv PrivateKey
}

// Encrypt implements Variant.
func (v Fast) Encrypt(m uint64, r *group.Scalar) (Cipher, error) {
	return EncryptFast(v.Priv, m, r)
}
