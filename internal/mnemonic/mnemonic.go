// Package mnemonic bridges BIP0039 mnemonic sentences to the seed bytes
// consumed by master node generation.
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/harningt/atomun-keygen/base"
	bip39 "github.com/vcvvvc/go-wallet-sdk/crypto/go-bip39"
)

// ErrInvalidMnemonic is returned when a sentence is empty or fails
// BIP0039 wordlist and checksum validation.
var ErrInvalidMnemonic = base.NewValidationError("invalid mnemonic")

// Canonicalize collapses whitespace and letter case so equivalent
// sentences share a single representation. An empty result is invalid.
func Canonicalize(raw string) (string, error) {
	words := strings.Fields(raw)
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	sentence := strings.Join(words, " ")
	if sentence == "" {
		return "", fmt.Errorf("empty sentence: %w", ErrInvalidMnemonic)
	}
	return sentence, nil
}

// ToSeed canonicalizes the sentence, validates it against the BIP0039
// wordlist and checksum, and stretches it with the passphrase into the
// 64-byte seed used for master node generation.
func ToSeed(sentence, passphrase string) ([]byte, error) {
	canonical, err := Canonicalize(sentence)
	if err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(canonical, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return seed, nil
}
