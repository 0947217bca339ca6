// Package base58 implements the modified Base58 encoding used for
// extended keys and other checksummed key material.
//
// The encoding treats the input as a big-endian unsigned integer written
// in radix 58, with an alphabet that omits the easily confused characters
// 0, O, I and l. Leading zero bytes carry through as leading '1' digits
// since the number form cannot represent them. The checksum variants
// append the first four bytes of the double-SHA256 of the payload before
// encoding, allowing corruption to be detected on decode.
package base58

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/harningt/atomun-keygen/base"
	"github.com/harningt/atomun-keygen/internal/hashutil"
)

// alphabet is the modified Base58 alphabet, in digit-value order.
const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// checksumLength is the number of double-SHA256 bytes appended by the
// checksum variants.
const checksumLength = 4

var (
	// ErrInvalidCharacter is returned when decoding input that contains
	// a byte outside the Base58 alphabet.
	ErrInvalidCharacter = base.NewValidationError(
		"invalid base58 character")

	// ErrMissingChecksum is returned when checksummed input decodes to
	// fewer bytes than the checksum itself occupies.
	ErrMissingChecksum = base.NewValidationError(
		"input too short to contain checksum")

	// ErrChecksumMismatch is returned when the decoded checksum does not
	// match the checksum recomputed over the decoded payload.
	ErrChecksumMismatch = base.NewValidationError("checksum mismatch")
)

var bigRadix = big.NewInt(58)

// decodeTable maps each ASCII byte to its digit value, with 0xff marking
// bytes outside the alphabet.
var decodeTable [256]byte

func init() {
	for i := range decodeTable {
		decodeTable[i] = 0xff
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = byte(i)
	}
}

// Encode returns the Base58 form of input. Empty input encodes to the
// empty string.
func Encode(input []byte) string {
	x := new(big.Int).SetBytes(input)

	// Worst case expansion is log(256)/log(58) ~ 1.37 digits per byte.
	answer := make([]byte, 0, len(input)*137/100+1)
	mod := new(big.Int)
	for x.Sign() > 0 {
		x.DivMod(x, bigRadix, mod)
		answer = append(answer, alphabet[mod.Int64()])
	}

	// Leading zero bytes become leading '1' digits.
	for _, b := range input {
		if b != 0x00 {
			break
		}
		answer = append(answer, alphabet[0])
	}

	// Digits were collected least significant first.
	for i, j := 0, len(answer)-1; i < j; i, j = i+1, j-1 {
		answer[i], answer[j] = answer[j], answer[i]
	}

	return string(answer)
}

// Decode returns the bytes represented by the Base58 string input. The
// empty string decodes to empty bytes.
func Decode(input string) ([]byte, error) {
	answer := big.NewInt(0)
	digit := new(big.Int)

	for i := 0; i < len(input); i++ {
		value := decodeTable[input[i]]
		if value == 0xff {
			return nil, fmt.Errorf("%q at offset %d: %w",
				input[i], i, ErrInvalidCharacter)
		}
		answer.Mul(answer, bigRadix)
		answer.Add(answer, digit.SetInt64(int64(value)))
	}

	decoded := answer.Bytes()

	// Restore one zero byte per leading '1' digit.
	var numZeros int
	for numZeros < len(input) && input[numZeros] == alphabet[0] {
		numZeros++
	}

	out := make([]byte, numZeros+len(decoded))
	copy(out[numZeros:], decoded)
	return out, nil
}

// EncodeWithChecksum appends the checksum of input and returns the Base58
// form of the combined bytes.
func EncodeWithChecksum(input []byte) string {
	data := make([]byte, 0, len(input)+checksumLength)
	data = append(data, input...)
	data = append(data, hashutil.Hash(input)[:checksumLength]...)
	return Encode(data)
}

// DecodeWithChecksum decodes input, splits off the trailing checksum and
// verifies it against the remaining payload, returning the payload on
// success.
func DecodeWithChecksum(input string) ([]byte, error) {
	decoded, err := Decode(input)
	if err != nil {
		return nil, err
	}
	if len(decoded) < checksumLength {
		return nil, ErrMissingChecksum
	}

	split := len(decoded) - checksumLength
	payload, checksum := decoded[:split], decoded[split:]
	if !bytes.Equal(checksum, hashutil.Hash(payload)[:checksumLength]) {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}
