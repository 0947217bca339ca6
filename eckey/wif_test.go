package eckey

import (
	"math/big"
	"testing"

	"github.com/harningt/atomun-keygen/base58"
	"github.com/stretchr/testify/require"
)

// Well known wallet import format encodings of secret exponent 1.
const (
	wifOneCompressed = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU7" +
		"3sVHnoWn"
	wifOneUncompressed = "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsre" +
		"AnchuDf"
)

func TestExportWIF(t *testing.T) {
	compressed, err := FromSecretExponent(big.NewInt(1), true)
	require.NoError(t, err)
	require.Equal(t, wifOneCompressed, compressed.ExportWIF())

	uncompressed, err := FromSecretExponent(big.NewInt(1), false)
	require.NoError(t, err)
	require.Equal(t, wifOneUncompressed, uncompressed.ExportWIF())
}

func TestImportWIF(t *testing.T) {
	key, err := ImportWIF(wifOneCompressed)
	require.NoError(t, err)
	want, err := FromSecretExponent(big.NewInt(1), true)
	require.NoError(t, err)
	require.True(t, key.IsEqual(want))

	key, err = ImportWIF(wifOneUncompressed)
	require.NoError(t, err)
	want, err = FromSecretExponent(big.NewInt(1), false)
	require.NoError(t, err)
	require.True(t, key.IsEqual(want))
}

func TestWIFRoundTrip(t *testing.T) {
	for _, compressed := range []bool{true, false} {
		key, err := GenerateRandom(compressed)
		require.NoError(t, err)

		decoded, err := ImportWIF(key.ExportWIF())
		require.NoError(t, err)
		require.True(t, key.IsEqual(decoded))
	}
}

func TestImportWIFBadLength(t *testing.T) {
	short := base58.EncodeWithChecksum(make([]byte, 20))
	_, err := ImportWIF(short)
	require.ErrorIs(t, err, ErrInvalidWIFLength)

	long := base58.EncodeWithChecksum(make([]byte, 35))
	_, err = ImportWIF(long)
	require.ErrorIs(t, err, ErrInvalidWIFLength)
}

func TestImportWIFBadMarker(t *testing.T) {
	payload := make([]byte, 34)
	payload[0] = 0x80
	payload[32] = 0x01
	payload[33] = 0x07

	_, err := ImportWIF(base58.EncodeWithChecksum(payload))
	require.ErrorIs(t, err, ErrInvalidWIFMarker)
}

func TestImportWIFBadChecksum(t *testing.T) {
	mutated := []byte(wifOneCompressed)
	if mutated[10] == 'A' {
		mutated[10] = 'B'
	} else {
		mutated[10] = 'A'
	}

	_, err := ImportWIF(string(mutated))
	require.ErrorIs(t, err, base58.ErrChecksumMismatch)
}
