// Package eckey provides the secp256k1 key capability used by the
// hierarchical derivation code.
//
// Keys come in two concrete forms. PrivateKey holds a secret exponent and
// can sign, export its scalar and strip down to a PublicKey. PublicKey
// holds only a curve point. Both satisfy Key, the read-side capability
// consumed by derivation and serialization, so code that never signs can
// accept either form while signing requires a *PrivateKey at compile
// time.
package eckey

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/harningt/atomun-keygen/base"
	"github.com/harningt/atomun-keygen/internal/hashutil"
)

var (
	// ErrSecretExponentRange is returned when constructing a private key
	// from a secret exponent outside [1, n-1] for curve order n.
	ErrSecretExponentRange = base.NewValidationError(
		"secret exponent outside curve order")

	// ErrInvalidPublicKey is returned when an encoded public key cannot
	// be parsed as a point on the curve.
	ErrInvalidPublicKey = base.NewValidationError(
		"invalid encoded public key")
)

// Key is the capability surface shared by private and public keys.
type Key interface {
	// HasPrivate reports whether the key carries private material.
	HasPrivate() bool

	// ExportPublic returns the SEC encoded public point, compressed or
	// uncompressed per the key's encoding preference.
	ExportPublic() []byte

	// AddressHash returns RIPEMD160(SHA256(ExportPublic())), 20 bytes.
	AddressHash() []byte

	// Public returns a key stripped of private material. Keys that are
	// already public return themselves.
	Public() Key

	// Verify reports whether signature is a valid DER encoded ECDSA
	// signature over hash by this key's public point.
	Verify(hash, signature []byte) bool

	// IsEqual reports structural equality with another key. Keys of
	// different forms are never equal.
	IsEqual(other Key) bool
}

// PrivateKey is a secp256k1 keypair with private material.
type PrivateKey struct {
	priv       *btcec.PrivateKey
	compressed bool
}

// PublicKey is a public-only secp256k1 key.
type PublicKey struct {
	pub        *btcec.PublicKey
	compressed bool
}

// Interface compliance checks.
var _ Key = (*PrivateKey)(nil)
var _ Key = (*PublicKey)(nil)

// FromSecretExponent returns the private key for the given secret
// exponent, which must lie in [1, n-1] for curve order n.
func FromSecretExponent(exponent *big.Int, compressed bool) (*PrivateKey,
	error) {

	if exponent.Sign() <= 0 ||
		exponent.Cmp(btcec.S256().Params().N) >= 0 {

		return nil, ErrSecretExponentRange
	}

	var buf [32]byte
	exponent.FillBytes(buf[:])
	priv, _ := btcec.PrivKeyFromBytes(buf[:])
	return &PrivateKey{
		priv:       priv,
		compressed: compressed,
	}, nil
}

// FromEncodedPublicKey parses a SEC encoded public point into a
// public-only key.
func FromEncodedPublicKey(encoded []byte, compressed bool) (*PublicKey,
	error) {

	pub, err := btcec.ParsePubKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &PublicKey{pub: pub, compressed: compressed}, nil
}

// GenerateRandom returns a fresh keypair drawn from the runtime's secure
// entropy source.
func GenerateRandom(compressed bool) (*PrivateKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{priv: priv, compressed: compressed}, nil
}

// HasPrivate reports whether the key carries private material.
func (k *PrivateKey) HasPrivate() bool {
	return true
}

// ExportPrivate returns the 32-byte big-endian secret exponent,
// zero padded.
func (k *PrivateKey) ExportPrivate() []byte {
	return k.priv.Serialize()
}

// ExportPublic returns the SEC encoded public point.
func (k *PrivateKey) ExportPublic() []byte {
	if k.compressed {
		return k.priv.PubKey().SerializeCompressed()
	}
	return k.priv.PubKey().SerializeUncompressed()
}

// AddressHash returns the 20-byte address hash of the public point.
func (k *PrivateKey) AddressHash() []byte {
	return hashutil.KeyHash(k.ExportPublic())
}

// Public returns the public-only form of the key.
func (k *PrivateKey) Public() Key {
	return &PublicKey{pub: k.priv.PubKey(), compressed: k.compressed}
}

// Sign produces a deterministic (RFC6979) ECDSA signature over hash,
// DER encoded.
func (k *PrivateKey) Sign(hash []byte) ([]byte, error) {
	return ecdsa.Sign(k.priv, hash).Serialize(), nil
}

// Verify reports whether signature is valid over hash for this keypair.
func (k *PrivateKey) Verify(hash, signature []byte) bool {
	return verify(k.priv.PubKey(), hash, signature)
}

// IsEqual reports whether other is a private key with the same secret
// exponent and encoding preference.
func (k *PrivateKey) IsEqual(other Key) bool {
	o, ok := other.(*PrivateKey)
	return ok && k.compressed == o.compressed &&
		bytes.Equal(k.priv.Serialize(), o.priv.Serialize())
}

// HasPrivate reports whether the key carries private material.
func (k *PublicKey) HasPrivate() bool {
	return false
}

// ExportPublic returns the SEC encoded public point.
func (k *PublicKey) ExportPublic() []byte {
	if k.compressed {
		return k.pub.SerializeCompressed()
	}
	return k.pub.SerializeUncompressed()
}

// AddressHash returns the 20-byte address hash of the public point.
func (k *PublicKey) AddressHash() []byte {
	return hashutil.KeyHash(k.ExportPublic())
}

// Public returns the key itself.
func (k *PublicKey) Public() Key {
	return k
}

// Verify reports whether signature is valid over hash for this key.
func (k *PublicKey) Verify(hash, signature []byte) bool {
	return verify(k.pub, hash, signature)
}

// IsEqual reports whether other is a public key for the same point with
// the same encoding preference.
func (k *PublicKey) IsEqual(other Key) bool {
	o, ok := other.(*PublicKey)
	return ok && k.compressed == o.compressed && k.pub.IsEqual(o.pub)
}

func verify(pub *btcec.PublicKey, hash, signature []byte) bool {
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(hash, pub)
}
