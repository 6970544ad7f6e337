package mg

import (
	"github.com/ellipticpir/epir-go/elgamal"
	"github.com/ellipticpir/epir-go/epirerr"
)

// Decrypt runs elgamal.PrivateKey.DecryptToPoint and resolves the resulting
// point against the table, implementing the full "decrypt" operation of
// spec §4.1. It returns epirerr.ErrDecryptionFailure when the point is
// absent from the table (m >= mmax, or a tampered ciphertext).
func Decrypt(priv elgamal.PrivateKey, c elgamal.Cipher, t *Table) (uint32, error) {
	point := priv.DecryptToPoint(c).Bytes()
	m, ok := t.Search(point)
	if !ok {
		return 0, epirerr.ErrDecryptionFailure
	}
	return m, nil
}
