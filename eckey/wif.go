package eckey

import (
	"math/big"

	"github.com/harningt/atomun-keygen/base"
	"github.com/harningt/atomun-keygen/base58"
)

// wifVersion is the private key version byte used by the wallet import
// format.
const wifVersion = 0x80

// wifCompressedMarker is the trailing payload byte signaling that the key
// encodes its public point compressed.
const wifCompressedMarker = 0x01

var (
	// ErrInvalidWIFLength is returned when a WIF payload is neither the
	// plain nor the compressed-marker length.
	ErrInvalidWIFLength = base.NewValidationError(
		"invalid WIF payload length")

	// ErrInvalidWIFMarker is returned when a compressed-length WIF
	// payload does not end with the compression marker byte.
	ErrInvalidWIFMarker = base.NewValidationError(
		"invalid WIF compression marker")
)

// ExportWIF returns the wallet import format encoding of the private key.
// Keys with a compressed encoding preference carry the trailing
// compression marker.
func (k *PrivateKey) ExportWIF() string {
	payload := make([]byte, 0, 34)
	payload = append(payload, wifVersion)
	payload = append(payload, k.priv.Serialize()...)
	if k.compressed {
		payload = append(payload, wifCompressedMarker)
	}
	return base58.EncodeWithChecksum(payload)
}

// ImportWIF decodes a wallet import format string into a private key. The
// compression marker, when present, selects the compressed encoding
// preference for the resulting key.
func ImportWIF(wif string) (*PrivateKey, error) {
	payload, err := base58.DecodeWithChecksum(wif)
	if err != nil {
		return nil, err
	}

	var compressed bool
	switch len(payload) {
	case 33:
	case 34:
		if payload[33] != wifCompressedMarker {
			return nil, ErrInvalidWIFMarker
		}
		compressed = true
	default:
		return nil, ErrInvalidWIFLength
	}

	exponent := new(big.Int).SetBytes(payload[1:33])
	return FromSecretExponent(exponent, compressed)
}
