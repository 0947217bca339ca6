// Package hdpath models BIP0032 derivation paths.
//
// A Path is an immutable ordered sequence of 32-bit segments. Bit 31 of a
// segment is the hardened flag; the low 31 bits are the index. Paths
// parse from and render to the conventional string grammar m/0'/1/2,
// where an apostrophe suffix marks a hardened segment. BIP44Path narrows
// a Path to the five fixed BIP0044 levels with named accessors.
package hdpath

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/harningt/atomun-keygen/base"
)

// HardenedFlag is bit 31 of a segment, marking it for hardened
// derivation.
const HardenedFlag uint32 = 0x80000000

var (
	// ErrBadPrefix is returned when a path string does not begin with
	// the literal token m.
	ErrBadPrefix = base.NewValidationError("path must begin with m")

	// ErrBadSegment is returned when a path token is not a decimal
	// index in [0, 2^31-1], optionally suffixed with an apostrophe.
	ErrBadSegment = base.NewValidationError("invalid path segment")

	// ErrIndexRange is returned when an index carries bits outside the
	// low 31 before the hardened flag is applied.
	ErrIndexRange = base.NewValidationError(
		"index outside 31-bit range")
)

// Path is an immutable ordered sequence of derivation segments. The zero
// value is the empty path, rendered as m.
type Path struct {
	segments []uint32
}

// FromSegments returns a path over the given raw segment values, with
// hardened flags already embedded.
func FromSegments(segments ...uint32) Path {
	return Path{segments: append([]uint32(nil), segments...)}
}

// Parse interprets input per the BIP0032 grammar: the literal m followed
// by zero or more /index segments, each index a decimal in [0, 2^31-1]
// optionally suffixed with an apostrophe for hardened derivation.
func Parse(input string) (Path, error) {
	tokens := strings.Split(input, "/")
	if tokens[0] != "m" {
		return Path{}, fmt.Errorf("%q: %w", input, ErrBadPrefix)
	}

	segments := make([]uint32, 0, len(tokens)-1)
	for _, token := range tokens[1:] {
		raw, hardened := strings.CutSuffix(token, "'")
		value, err := strconv.ParseUint(raw, 10, 31)
		if err != nil {
			return Path{}, fmt.Errorf("%q: %w", token,
				ErrBadSegment)
		}

		segment := uint32(value)
		if hardened {
			segment |= HardenedFlag
		}
		segments = append(segments, segment)
	}
	return Path{segments: segments}, nil
}

// String renders the canonical string form. It is the exact inverse of
// Parse.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteByte('m')
	for _, segment := range p.segments {
		sb.WriteByte('/')
		sb.WriteString(strconv.FormatUint(
			uint64(segment&^HardenedFlag), 10))
		if segment&HardenedFlag != 0 {
			sb.WriteByte('\'')
		}
	}
	return sb.String()
}

// Segments returns a copy of the raw segment values in derivation order.
func (p Path) Segments() []uint32 {
	return append([]uint32(nil), p.segments...)
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// Equal reports whether both paths hold the same segments in the same
// order.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// Builder accumulates segments for an immutable Path. Mutability stays
// inside the builder; Build finalizes. Input errors stick and surface at
// Build.
type Builder struct {
	segments []uint32
	err      error
}

// NewBuilder returns an empty path builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSegment appends a raw segment value with the hardened flag already
// embedded.
func (b *Builder) AddSegment(segment uint32) *Builder {
	if b.err != nil {
		return b
	}
	b.segments = append(b.segments, segment)
	return b
}

// AddIndex appends an index in [0, 2^31-1], hardened when requested.
func (b *Builder) AddIndex(value uint32, hardened bool) *Builder {
	if b.err != nil {
		return b
	}
	if value&HardenedFlag != 0 {
		b.err = fmt.Errorf("index %d: %w", value, ErrIndexRange)
		return b
	}

	segment := value
	if hardened {
		segment |= HardenedFlag
	}
	b.segments = append(b.segments, segment)
	return b
}

// LoadString parses input per the BIP0032 grammar and appends its
// segments.
func (b *Builder) LoadString(input string) *Builder {
	if b.err != nil {
		return b
	}
	parsed, err := Parse(input)
	if err != nil {
		b.err = err
		return b
	}
	b.segments = append(b.segments, parsed.segments...)
	return b
}

// Build finalizes the accumulated segments, or reports the first input
// error recorded.
func (b *Builder) Build() (Path, error) {
	if b.err != nil {
		return Path{}, b.err
	}
	return FromSegments(b.segments...), nil
}
