package keygen

import (
	"testing"

	"github.com/harningt/atomun-keygen/base"
	"github.com/harningt/atomun-keygen/hdpath"
	"github.com/stretchr/testify/require"
)

func testGenerator(t *testing.T) DeterministicKeyGenerator {
	t.Helper()
	gen, err := NewBuilder(BIP0032).
		SetSeed(ByteArraySeed(testSeed(t))).
		SetPath(hdpath.FromSegments(0|hdpath.HardenedFlag, 1)).
		Build()
	require.NoError(t, err)
	return gen
}

func TestGenerateStripsToPublic(t *testing.T) {
	gen := testGenerator(t)

	private, err := gen.Generate(7)
	require.NoError(t, err)
	require.True(t, private.HasPrivate())

	public, err := gen.GeneratePublic(7)
	require.NoError(t, err)
	require.False(t, public.HasPrivate())
	require.True(t, private.Public().IsEqual(public))
}

func TestPublicGeneratorAgrees(t *testing.T) {
	gen := testGenerator(t)
	public := gen.Public()
	require.False(t, public.HasPrivate())

	// Non-hardened generation through the public generator lands on
	// the same key the private generator strips to.
	fromPrivate, err := gen.GeneratePublic(3)
	require.NoError(t, err)
	fromPublic, err := public.Generate(3)
	require.NoError(t, err)
	require.True(t, fromPrivate.IsEqual(fromPublic))

	// Hardened generation requires private material.
	_, err = public.Generate(3 | hdpath.HardenedFlag)
	require.Error(t, err)
	require.True(t, base.IsValidation(err))
}

func TestGeneratorExports(t *testing.T) {
	gen := testGenerator(t)

	require.Equal(t, testChildPriv, gen.Export())
	require.Equal(t, gen.ExportPublic(), gen.Public().Export())

	// A public generator is its own public projection.
	public := gen.Public()
	require.Same(t, public, public.Public())
	require.Equal(t, public.Export(), public.ExportPublic())
}

func TestGeneratorEquality(t *testing.T) {
	gen := testGenerator(t)
	same := testGenerator(t)
	require.True(t, gen.IsEqual(same))
	require.False(t, gen.IsEqual(same.Public()))
	require.False(t, gen.IsEqual(nil))

	other, err := NewBuilder(BIP0032).
		SetSeed(ByteArraySeed(testSeed(t))).
		Build()
	require.NoError(t, err)
	require.False(t, gen.IsEqual(other))
}
