// Package keygen assembles deterministic elliptic curve key generators.
//
// A generator is built for one Algorithm from seed material and an
// optional derivation path:
//
//	gen, err := keygen.NewBuilder(keygen.BIP0032).
//		SetSeed(keygen.ByteArraySeed(seed)).
//		SetPath(path).
//		Build()
//
// The BIP0032 algorithm walks any derivation path. BIP0044 constrains
// it to the purpose/coin/account/chain/address layout from hdpath and
// requires the path to reach the chain slot. Generators address
// individual keys by a 32-bit sequence value and serialize to the
// Base58Check extended key format.
package keygen

import "github.com/harningt/atomun-keygen/eckey"

// DeterministicKeyGenerator yields the keys of one derivation tree
// position, addressed by sequence value. Implementations are immutable
// and safe for concurrent use.
type DeterministicKeyGenerator interface {
	// HasPrivate reports whether generated keys carry private
	// material.
	HasPrivate() bool

	// Generate derives the key at the given sequence value.
	Generate(sequence uint32) (eckey.Key, error)

	// GeneratePublic derives the key at the given sequence value,
	// stripped to its public form.
	GeneratePublic(sequence uint32) (eckey.Key, error)

	// Export serializes the generator position as an extended key,
	// private material included when present.
	Export() string

	// ExportPublic serializes the public projection of the generator
	// position.
	ExportPublic() string

	// Public returns a generator for the same position without
	// private material. A public-only generator returns itself.
	Public() DeterministicKeyGenerator

	// IsEqual reports whether both generators wrap the same
	// derivation position.
	IsEqual(other DeterministicKeyGenerator) bool
}
