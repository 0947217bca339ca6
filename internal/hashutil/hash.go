// Package hashutil provides the digest helpers shared by the key
// serialization and address code.
package hashutil

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/ripemd160"
)

// calcHash runs data through the supplied hasher.
func calcHash(data []byte, hasher hash.Hash) []byte {
	hasher.Write(data)
	return hasher.Sum(nil)
}

// Hash returns SHA-256(SHA-256(data)), the checksum digest used by
// Base58Check and related formats. The result is 32 bytes.
func Hash(data []byte) []byte {
	return calcHash(calcHash(data, sha256.New()), sha256.New())
}

// KeyHash returns RIPEMD160(SHA256(data)), the 20-byte address hash of an
// encoded public key.
func KeyHash(data []byte) []byte {
	return calcHash(calcHash(data, sha256.New()), ripemd160.New())
}
