package keygen

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/harningt/atomun-keygen/base"
	"github.com/harningt/atomun-keygen/hdpath"
	"github.com/harningt/atomun-keygen/internal/bip0032"
	"github.com/stretchr/testify/require"
)

// Published master and child serializations for the all-byte test seed.
const (
	testSeedHex = "000102030405060708090a0b0c0d0e0f"

	testMasterPriv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stb" +
		"Py6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yu" +
		"GBxrMPHi"
	testMasterPub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8N" +
		"qtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1" +
		"EGMcet8"
	testChildPriv = "xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniat" +
		"ZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrV" +
		"A1xe8fs"
)

func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := hex.DecodeString(testSeedHex)
	require.NoError(t, err)
	return seed
}

func TestBuilderFromSeed(t *testing.T) {
	gen, err := NewBuilder(BIP0032).
		SetSeed(ByteArraySeed(testSeed(t))).
		Build()
	require.NoError(t, err)

	require.True(t, gen.HasPrivate())
	require.Equal(t, testMasterPriv, gen.Export())
	require.Equal(t, testMasterPub, gen.ExportPublic())
}

func TestBuilderFromSeedWithPath(t *testing.T) {
	path, err := hdpath.Parse("m/0'/1")
	require.NoError(t, err)

	gen, err := NewBuilder(BIP0032).
		SetSeed(ByteArraySeed(testSeed(t))).
		SetPath(path).
		Build()
	require.NoError(t, err)
	require.Equal(t, testChildPriv, gen.Export())
}

func TestBuilderFromSerializedSeed(t *testing.T) {
	gen, err := NewBuilder(BIP0032).
		SetSeed(SerializedSeed(testMasterPriv)).
		Build()
	require.NoError(t, err)
	require.Equal(t, testMasterPriv, gen.Export())

	// A public extended key builds a public-only generator.
	public, err := NewBuilder(BIP0032).
		SetSeed(SerializedSeed(testMasterPub)).
		Build()
	require.NoError(t, err)
	require.False(t, public.HasPrivate())
	require.True(t, public.IsEqual(gen.Public()))
}

func TestBuilderSerializedSeedRejectsPathBelowRoot(t *testing.T) {
	// Deriving a path is only supported from a depth zero node.
	_, err := NewBuilder(BIP0032).
		SetSeed(SerializedSeed(testChildPriv)).
		SetPath(hdpath.FromSegments(0)).
		Build()
	require.ErrorIs(t, err, bip0032.ErrWrongDepth)
	require.True(t, base.IsValidation(err))
}

func TestBuilderRandomRoot(t *testing.T) {
	first, err := NewBuilder(BIP0032).Build()
	require.NoError(t, err)
	second, err := NewBuilder(BIP0032).Build()
	require.NoError(t, err)

	require.True(t, first.HasPrivate())
	require.False(t, first.IsEqual(second))

	// A random root exports and re-imports like any other.
	imported, err := NewBuilder(BIP0032).
		SetSeed(SerializedSeed(first.Export())).
		Build()
	require.NoError(t, err)
	require.True(t, first.IsEqual(imported))
}

func TestBuilderBIP0044(t *testing.T) {
	path, err := hdpath.NewBIP44Builder().
		SetCoinType(0).
		SetAccount(0).
		SetChain(0).
		Build()
	require.NoError(t, err)

	gen, err := NewBuilder(BIP0044).
		SetSeed(ByteArraySeed(testSeed(t))).
		SetPath(path).
		Build()
	require.NoError(t, err)
	require.True(t, gen.HasPrivate())

	// The BIP0032 algorithm walking the identical path lands on the
	// same position.
	plain, err := NewBuilder(BIP0032).
		SetSeed(ByteArraySeed(testSeed(t))).
		SetPath(path).
		Build()
	require.NoError(t, err)
	require.True(t, gen.IsEqual(plain))
}

func TestBuilderBIP0044MissingPath(t *testing.T) {
	_, err := NewBuilder(BIP0044).
		SetSeed(ByteArraySeed(testSeed(t))).
		Build()
	require.ErrorIs(t, err, ErrMissingPath)
	require.True(t, base.IsUsage(err))
}

func TestBuilderBIP0044IncompletePath(t *testing.T) {
	// Purpose, coin type and account alone stop short of the chain
	// slot.
	path := hdpath.FromSegments(hdpath.BIP44Purpose,
		0|hdpath.HardenedFlag, 0|hdpath.HardenedFlag)

	_, err := NewBuilder(BIP0044).
		SetSeed(ByteArraySeed(testSeed(t))).
		SetPath(path).
		Build()
	require.ErrorIs(t, err, ErrIncompletePath)
	require.True(t, base.IsUsage(err))
}

func TestBuilderBIP0044ShapeCheckedOnSet(t *testing.T) {
	tests := []struct {
		name string
		path hdpath.Path
	}{
		{
			name: "wrong purpose",
			path: hdpath.FromSegments(1|hdpath.HardenedFlag, 0, 0, 0),
		},
		{
			name: "unhardened purpose",
			path: hdpath.FromSegments(44, 0, 0, 0),
		},
		{
			name: "too long",
			path: hdpath.FromSegments(hdpath.BIP44Purpose,
				0, 0, 0, 0, 0),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBuilder(BIP0044).
				SetSeed(ByteArraySeed(testSeed(t))).
				SetPath(test.path).
				Build()
			require.Error(t, err)
			require.True(t, base.IsValidation(err))
		})
	}
}

func TestBuilderUnknownAlgorithm(t *testing.T) {
	_, err := NewBuilder(Algorithm("BIP9999")).Build()
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
	require.True(t, base.IsUsage(err))

	// Reset does not clear the algorithm binding failure.
	_, err = NewBuilder(Algorithm("BIP9999")).Reset().Build()
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestBuilderParameterArity(t *testing.T) {
	seed := ByteArraySeed(testSeed(t))
	path := hdpath.FromSegments(0)

	t.Run("duplicate seed", func(t *testing.T) {
		_, err := NewBuilder(BIP0032).
			SetSeed(seed).
			SetSeed(seed).
			Build()
		require.ErrorIs(t, err, ErrDuplicateParameter)
	})

	t.Run("duplicate path", func(t *testing.T) {
		_, err := NewBuilder(BIP0032).
			SetPath(path).
			SetPath(path).
			Build()
		require.ErrorIs(t, err, ErrDuplicateParameter)
	})

	t.Run("duplicate network", func(t *testing.T) {
		_, err := NewBuilder(BIP0032).
			SetNetwork(MainNetParams).
			SetNetwork(TestNet3Params).
			Build()
		require.ErrorIs(t, err, ErrDuplicateParameter)
	})

	t.Run("nil seed", func(t *testing.T) {
		_, err := NewBuilder(BIP0032).SetSeed(nil).Build()
		require.ErrorIs(t, err, ErrNilParameter)
	})

	t.Run("nil path", func(t *testing.T) {
		_, err := NewBuilder(BIP0032).SetPath(nil).Build()
		require.ErrorIs(t, err, ErrNilParameter)
	})

	t.Run("first error sticks", func(t *testing.T) {
		_, err := NewBuilder(BIP0032).
			SetSeed(nil).
			SetPath(path).
			SetSeed(seed).
			Build()
		require.ErrorIs(t, err, ErrNilParameter)
	})
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder(BIP0032)

	_, err := b.SetSeed(nil).Build()
	require.ErrorIs(t, err, ErrNilParameter)

	gen, err := b.Reset().
		SetSeed(ByteArraySeed(testSeed(t))).
		Build()
	require.NoError(t, err)
	require.Equal(t, testMasterPriv, gen.Export())

	// Reset drops the network parameter along with the rest.
	_, err = b.Reset().
		SetNetwork(TestNet3Params).
		SetSeed(ByteArraySeed(testSeed(t))).
		Build()
	require.NoError(t, err)
	gen, err = b.Reset().
		SetSeed(ByteArraySeed(testSeed(t))).
		Build()
	require.NoError(t, err)
	require.Equal(t, testMasterPriv, gen.Export())
}

func TestBuilderNetwork(t *testing.T) {
	gen, err := NewBuilder(BIP0032).
		SetSeed(ByteArraySeed(testSeed(t))).
		SetNetwork(TestNet3Params).
		Build()
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(gen.Export(), "tprv"),
		gen.Export())
	require.True(t, strings.HasPrefix(gen.ExportPublic(), "tpub"),
		gen.ExportPublic())

	// The imported testnet key re-exports under the importer's
	// network.
	imported, err := NewBuilder(BIP0032).
		SetSeed(SerializedSeed(gen.Export())).
		Build()
	require.NoError(t, err)
	require.Equal(t, testMasterPriv, imported.Export())
}
