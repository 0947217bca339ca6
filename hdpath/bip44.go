package hdpath

import (
	"fmt"
	"math/bits"

	"github.com/harningt/atomun-keygen/base"
)

// BIP44Purpose is the fixed purpose segment of a BIP0044 path, the
// hardened index 44.
const BIP44Purpose = 44 | HardenedFlag

// Slot positions of the five BIP0044 levels.
const (
	slotPurpose = iota
	slotCoinType
	slotAccount
	slotChain
	slotAddress
	bip44MaxLength
)

var (
	// ErrPathTooLong is returned when a path holds more than the five
	// BIP0044 levels.
	ErrPathTooLong = base.NewValidationError(
		"path exceeds the five BIP0044 levels")

	// ErrPathEmpty is returned when a BIP0044 path holds no segments.
	ErrPathEmpty = base.NewValidationError("path has no segments")

	// ErrWrongPurpose is returned when the first segment is not the
	// hardened purpose index 44.
	ErrWrongPurpose = base.NewValidationError(
		"purpose segment is not 44'")

	// ErrSlotGap is returned when a level is populated while a lower
	// level is not.
	ErrSlotGap = base.NewValidationError(
		"path level set above an unset level")

	// ErrSlotUnset is returned by level accessors when the requested
	// level was never populated.
	ErrSlotUnset = base.NewUsageError("path level not populated")
)

// BIP44Path is a Path restricted to the BIP0044 shape: at most five
// levels, purpose first.
type BIP44Path struct {
	Path
}

// CheckBIP44 verifies that path fits the BIP0044 shape without
// constructing a BIP44Path.
func CheckBIP44(path Path) error {
	switch {
	case path.Len() > bip44MaxLength:
		return fmt.Errorf("%d segments: %w", path.Len(),
			ErrPathTooLong)
	case path.Len() == 0:
		return ErrPathEmpty
	case path.segments[slotPurpose] != BIP44Purpose:
		return fmt.Errorf("%#08x: %w", path.segments[slotPurpose],
			ErrWrongPurpose)
	}
	return nil
}

// BIP44FromPath validates path against the BIP0044 shape and wraps it.
func BIP44FromPath(path Path) (BIP44Path, error) {
	if err := CheckBIP44(path); err != nil {
		return BIP44Path{}, err
	}
	return BIP44Path{Path: path}, nil
}

// HasCoinType reports whether the coin type level is populated.
func (p BIP44Path) HasCoinType() bool {
	return p.Len() > slotCoinType
}

// CoinType returns the raw coin type segment.
func (p BIP44Path) CoinType() (uint32, error) {
	if !p.HasCoinType() {
		return 0, fmt.Errorf("coin type: %w", ErrSlotUnset)
	}
	return p.segments[slotCoinType], nil
}

// HasAccount reports whether the account level is populated.
func (p BIP44Path) HasAccount() bool {
	return p.Len() > slotAccount
}

// Account returns the account index with the hardened flag cleared.
func (p BIP44Path) Account() (uint32, error) {
	if !p.HasAccount() {
		return 0, fmt.Errorf("account: %w", ErrSlotUnset)
	}
	return p.segments[slotAccount] &^ HardenedFlag, nil
}

// HasChain reports whether the chain level is populated.
func (p BIP44Path) HasChain() bool {
	return p.Len() > slotChain
}

// Chain returns the raw chain segment.
func (p BIP44Path) Chain() (uint32, error) {
	if !p.HasChain() {
		return 0, fmt.Errorf("chain: %w", ErrSlotUnset)
	}
	return p.segments[slotChain], nil
}

// HasAddress reports whether the address level is populated.
func (p BIP44Path) HasAddress() bool {
	return p.Len() > slotAddress
}

// Address returns the raw address segment.
func (p BIP44Path) Address() (uint32, error) {
	if !p.HasAddress() {
		return 0, fmt.Errorf("address: %w", ErrSlotUnset)
	}
	return p.segments[slotAddress], nil
}

// BIP44Builder populates the five BIP0044 levels. The purpose level is
// always populated; the others are tracked and must be contiguous from
// the bottom by Build time.
type BIP44Builder struct {
	segments  [bip44MaxLength]uint32
	populated uint8
}

// NewBIP44Builder returns a builder with the purpose level populated.
func NewBIP44Builder() *BIP44Builder {
	b := &BIP44Builder{}
	b.segments[slotPurpose] = BIP44Purpose
	b.populated = 1 << slotPurpose
	return b
}

// SetCoinType stores the raw coin type segment value, hardened flag
// preserved as given.
func (b *BIP44Builder) SetCoinType(coinType uint32) *BIP44Builder {
	b.segments[slotCoinType] = coinType
	b.populated |= 1 << slotCoinType
	return b
}

// SetAccount stores the account index, forcing hardened derivation.
func (b *BIP44Builder) SetAccount(account uint32) *BIP44Builder {
	b.segments[slotAccount] = account | HardenedFlag
	b.populated |= 1 << slotAccount
	return b
}

// SetChain stores the chain index, clearing the hardened flag.
func (b *BIP44Builder) SetChain(chain uint32) *BIP44Builder {
	b.segments[slotChain] = chain &^ HardenedFlag
	b.populated |= 1 << slotChain
	return b
}

// SetAddress stores the address index, clearing the hardened flag.
func (b *BIP44Builder) SetAddress(address uint32) *BIP44Builder {
	b.segments[slotAddress] = address &^ HardenedFlag
	b.populated |= 1 << slotAddress
	return b
}

// Validate reports whether the populated levels are contiguous from the
// bottom.
func (b *BIP44Builder) Validate() error {
	if b.populated&(b.populated+1) != 0 {
		return fmt.Errorf("populated levels %05b: %w", b.populated,
			ErrSlotGap)
	}
	return nil
}

// Build finalizes the populated levels into a BIP44Path.
func (b *BIP44Builder) Build() (BIP44Path, error) {
	if err := b.Validate(); err != nil {
		return BIP44Path{}, err
	}
	length := bits.Len8(b.populated)
	return BIP44Path{Path: FromSegments(b.segments[:length]...)}, nil
}
