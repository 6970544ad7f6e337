package elgamal

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ellipticpir/epir-go/group"
)

func scalarFromHex(t *testing.T, s string) group.Scalar {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	var b [group.ScalarSize]byte
	copy(b[:], raw)
	sc, err := group.ScalarFromCanonicalBytes(b)
	require.NoError(t, err)
	return sc
}

// TestDeterministicEncryption is spec.md §8 Scenario B.
func TestDeterministicEncryption(t *testing.T) {
	s := scalarFromHex(t, "7ef6add2bed59a79ba6edcfba48fde7a5531754af59376346c8b5284eef25207")
	priv := PrivateKey{s: s}

	r := scalarFromHex(t, "42ff2d984ae5a28f7d026987c7109a7b3a1d3658825a0917e1693e83a5715d09")

	const msg = 0x12345678 & (1<<24 - 1)

	c, err := Encrypt(priv.PublicKey(), msg, &r)
	require.NoError(t, err)

	want := "11a94eb718537e947d0ff30cddae16aeab429eac092b220006b19cccb526b430eb7683c0df903a88f6f10952bca4d645284ff7ed95c6a4e967f5e7ae22c933cb"
	gotBytes := c.Bytes()
	require.Equal(t, want, hex.EncodeToString(gotBytes[:]))

	cFast, err := EncryptFast(priv, msg, &r)
	require.NoError(t, err)
	gotFastBytes := cFast.Bytes()
	require.Equal(t, gotBytes, gotFastBytes)
}

func TestEncryptEncryptFastAgree(t *testing.T) {
	priv, err := GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	pub := priv.PublicKey()

	r, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)

	for _, m := range []uint64{0, 1, 42, 1 << 20, (1 << 24) - 1} {
		slow, err := Encrypt(pub, m, &r)
		require.NoError(t, err)
		fast, err := EncryptFast(priv, m, &r)
		require.NoError(t, err)
		require.Equal(t, slow.Bytes(), fast.Bytes())
	}
}

func TestDecryptToPointRecoversMessagePoint(t *testing.T) {
	priv, err := GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	pub := priv.PublicKey()

	const m = 1234
	c, err := Encrypt(pub, m, nil)
	require.NoError(t, err)

	got := priv.DecryptToPoint(c)
	want := group.BaseMult(group.ScalarFromUint64(m))
	require.True(t, got.Equal(want))
}

func TestDecryptToPointWrongKeyDoesNotMatch(t *testing.T) {
	priv, err := GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	other, err := GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)

	const m = 7
	c, err := Encrypt(priv.PublicKey(), m, nil)
	require.NoError(t, err)

	got := other.DecryptToPoint(c)
	want := group.BaseMult(group.ScalarFromUint64(m))
	require.False(t, got.Equal(want))
}

func TestCipherWireRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	c, err := Encrypt(priv.PublicKey(), 99, nil)
	require.NoError(t, err)

	b := c.Bytes()
	back, err := CipherFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, b, back.Bytes())
}

func TestCipherFromBytesRejectsInvalidEncoding(t *testing.T) {
	var b [CipherSize]byte
	for i := range b {
		b[i] = 0xFF
	}
	_, err := CipherFromBytes(b)
	require.Error(t, err)
}
