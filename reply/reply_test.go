package reply

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ellipticpir/epir-go/elgamal"
	"github.com/ellipticpir/epir-go/epirerr"
	"github.com/ellipticpir/epir-go/group"
	"github.com/ellipticpir/epir-go/mg"
)

// TestSizeAndRCount is spec.md §8 Scenario E.
func TestSizeAndRCount(t *testing.T) {
	size, err := Size(3, 3, 32)
	require.NoError(t, err)
	require.EqualValues(t, 320896, size)

	rcount, err := RCount(3, 3, 32)
	require.NoError(t, err)
	require.EqualValues(t, 5260, rcount)
}

func TestValidateParamsRejectsOutOfRange(t *testing.T) {
	_, err := Size(0, 1, 10)
	require.ErrorIs(t, err, epirerr.ErrInvalidArgument)

	_, err = Size(1, 5, 10)
	require.ErrorIs(t, err, epirerr.ErrInvalidArgument)
}

// TestMockDecryptRoundTrip is spec.md §8 Scenario F, generalized: a mock
// reply for any element round-trips through Decrypt to the original bytes
// (with trailing padding beyond the element's length ignored).
func TestMockDecryptRoundTrip(t *testing.T) {
	const mmax = 512 // p=1 packs a single byte, always < 256 < mmax.
	tbl, err := mg.Build(context.Background(), mmax, 4, nil)
	require.NoError(t, err)

	priv, err := elgamal.GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	variant := elgamal.Fast{Priv: priv}

	elem := []byte{0x01, 0x02, 0xfe, 0xff, 0x00, 0x7a}
	const D, p = 3, 1

	wantSize, err := Size(D, p, len(elem))
	require.NoError(t, err)

	buf, err := Mock(D, p, elem, variant, nil)
	require.NoError(t, err)
	require.EqualValues(t, wantSize, len(buf))

	n, err := Decrypt(context.Background(), priv, tbl, D, p, buf)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, len(elem))
	require.Equal(t, elem, buf[:len(elem)])
}

// TestMockDecryptRoundTripPacking2 exercises the p>1 compaction path of
// Decrypt (reply/decrypt.go's multi-byte copy per slot), which p=1 round
// trips never touch since a single byte never straddles a slot boundary.
func TestMockDecryptRoundTripPacking2(t *testing.T) {
	const mmax = 1 << 16 // p=2 packs two bytes, up to 65535 < mmax.
	tbl, err := mg.Build(context.Background(), mmax, 4, nil)
	require.NoError(t, err)

	priv, err := elgamal.GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	variant := elgamal.Fast{Priv: priv}

	elem := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	const D, p = 2, 2

	wantSize, err := Size(D, p, len(elem))
	require.NoError(t, err)

	buf, err := Mock(D, p, elem, variant, nil)
	require.NoError(t, err)
	require.EqualValues(t, wantSize, len(buf))

	n, err := Decrypt(context.Background(), priv, tbl, D, p, buf)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, len(elem))
	require.Equal(t, elem, buf[:len(elem)])
}

func TestMockDeterministicWithExplicitRandomness(t *testing.T) {
	priv, err := elgamal.GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	variant := elgamal.Fast{Priv: priv}

	elem := []byte{0x10, 0x20, 0x30}
	const D, p = 2, 1

	rcount, err := RCount(D, p, len(elem))
	require.NoError(t, err)

	seed := make([]group.Scalar, rcount)
	for i := range seed {
		seed[i] = group.DeterministicScalar([]byte{byte(i)})
	}

	a, err := Mock(D, p, elem, variant, seed)
	require.NoError(t, err)
	b, err := Mock(D, p, elem, variant, seed)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestMockRejectsMismatchedRandomnessLength(t *testing.T) {
	priv, err := elgamal.GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	variant := elgamal.Fast{Priv: priv}

	_, err = Mock(2, 1, []byte{1, 2, 3}, variant, make([]group.Scalar, 1))
	require.ErrorIs(t, err, epirerr.ErrInvalidArgument)
}

func TestDecryptFailsOnTamperedReply(t *testing.T) {
	const mmax = 512
	tbl, err := mg.Build(context.Background(), mmax, 4, nil)
	require.NoError(t, err)

	priv, err := elgamal.GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	variant := elgamal.Fast{Priv: priv}

	elem := []byte{0x11, 0x22, 0x33, 0x44}
	const D, p = 2, 1

	buf, err := Mock(D, p, elem, variant, nil)
	require.NoError(t, err)

	for i := range buf[:32] {
		buf[i] ^= 0xff
	}

	_, err = Decrypt(context.Background(), priv, tbl, D, p, buf)
	require.Error(t, err)
}

func TestDecryptRejectsBufferNotMultipleOfCipherSize(t *testing.T) {
	tbl, err := mg.Build(context.Background(), 64, 4, nil)
	require.NoError(t, err)
	priv, err := elgamal.GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)

	_, err = Decrypt(context.Background(), priv, tbl, 1, 1, make([]byte, 10))
	require.ErrorIs(t, err, epirerr.ErrInvalidArgument)
}
