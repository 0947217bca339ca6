package hdpath

import (
	"testing"

	"github.com/harningt/atomun-keygen/base"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		str      string
		segments []uint32
	}{
		{"m", nil},
		{"m/0", []uint32{0}},
		{"m/0'", []uint32{HardenedFlag}},
		{"m/1/2'/3", []uint32{1, 2 | HardenedFlag, 3}},
		{
			"m/44'/0'/0'/0/0",
			[]uint32{
				44 | HardenedFlag, HardenedFlag,
				HardenedFlag, 0, 0,
			},
		},
		{"m/2147483647'", []uint32{0xffffffff}},
		{"m/2147483647", []uint32{0x7fffffff}},
	}
	for _, test := range tests {
		t.Run(test.str, func(t *testing.T) {
			path, err := Parse(test.str)
			require.NoError(t, err)
			require.Equal(t, test.segments, path.Segments())
			require.Equal(t, test.str, path.String())

			// The same path built from raw segments renders and
			// compares identically.
			built := FromSegments(test.segments...)
			require.Equal(t, test.str, built.String())
			require.True(t, path.Equal(built))
		})
	}
}

func TestParseErrors(t *testing.T) {
	prefixInputs := []string{"", "n/0", "M/0", "44'/0", "/m"}
	for _, input := range prefixInputs {
		_, err := Parse(input)
		require.ErrorIs(t, err, ErrBadPrefix, "input %q", input)
	}

	segmentInputs := []string{
		"m/", "m//1", "m/x", "m/-1", "m/ 1", "m/1''",
		"m/2147483648", "m/4294967296", "m/0x10",
	}
	for _, input := range segmentInputs {
		_, err := Parse(input)
		require.ErrorIs(t, err, ErrBadSegment, "input %q", input)
		require.True(t, base.IsValidation(err))
	}
}

func TestStringParseRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		segments := rapid.SliceOfN(rapid.Uint32(), 0, 10).
			Draw(t, "segments")
		path := FromSegments(segments...)

		parsed, err := Parse(path.String())
		if err != nil {
			t.Fatalf("reparsing %q: %v", path.String(), err)
		}
		if !path.Equal(parsed) {
			t.Fatalf("round trip mismatch: %q gave %q",
				path.String(), parsed.String())
		}
	})
}

func TestSegmentsCopies(t *testing.T) {
	path := FromSegments(1, 2, 3)

	segments := path.Segments()
	segments[0] = 99
	require.Equal(t, []uint32{1, 2, 3}, path.Segments())

	// The constructor also detaches from its argument slice.
	input := []uint32{7, 8}
	fromInput := FromSegments(input...)
	input[0] = 0
	require.Equal(t, []uint32{7, 8}, fromInput.Segments())
}

func TestEqual(t *testing.T) {
	require.True(t, FromSegments().Equal(Path{}))
	require.True(t, FromSegments(1, 2).Equal(FromSegments(1, 2)))
	require.False(t, FromSegments(1, 2).Equal(FromSegments(1)))
	require.False(t, FromSegments(1).Equal(
		FromSegments(1|HardenedFlag)))
}

func TestBuilder(t *testing.T) {
	path, err := NewBuilder().
		AddSegment(44 | HardenedFlag).
		AddIndex(0, true).
		AddIndex(5, false).
		Build()
	require.NoError(t, err)
	require.Equal(t, "m/44'/0'/5", path.String())
}

func TestBuilderLoadString(t *testing.T) {
	path, err := NewBuilder().
		LoadString("m/1'/2").
		AddIndex(3, false).
		Build()
	require.NoError(t, err)
	require.Equal(t, "m/1'/2/3", path.String())
}

func TestBuilderIndexRange(t *testing.T) {
	_, err := NewBuilder().AddIndex(HardenedFlag|7, true).Build()
	require.ErrorIs(t, err, ErrIndexRange)
}

func TestBuilderStickyError(t *testing.T) {
	b := NewBuilder().LoadString("m/x")

	// Later calls do not mask the recorded error.
	_, err := b.AddIndex(1, false).AddSegment(2).Build()
	require.ErrorIs(t, err, ErrBadSegment)
}

func TestBuilderEmpty(t *testing.T) {
	path, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, "m", path.String())
	require.Zero(t, path.Len())
}
