package keygen

import (
	"fmt"

	"github.com/harningt/atomun-keygen/base"
	"github.com/harningt/atomun-keygen/hdpath"
)

var (
	// ErrUnknownAlgorithm is returned when NewBuilder is given an
	// algorithm identifier outside the supported set.
	ErrUnknownAlgorithm = base.NewUsageError(
		"unknown generation algorithm")

	// ErrNilParameter is returned when a nil seed or path parameter is
	// set.
	ErrNilParameter = base.NewUsageError("nil builder parameter")

	// ErrDuplicateParameter is returned when a parameter slot is set a
	// second time without an intervening Reset.
	ErrDuplicateParameter = base.NewUsageError(
		"builder parameter already set")

	// ErrMissingPath is returned by Build when the algorithm requires
	// a path parameter and none was set.
	ErrMissingPath = base.NewUsageError("path parameter required")

	// ErrIncompletePath is returned by Build when a BIP0044 path stops
	// short of the chain slot.
	ErrIncompletePath = base.NewUsageError(
		"path must be populated through the chain slot")
)

// Builder assembles a DeterministicKeyGenerator for a single algorithm
// from at most one seed, one path and one network parameter. Each
// parameter is checked as soon as it is set; the first error sticks and
// surfaces at Build.
type Builder struct {
	algorithm Algorithm
	factory   generatorFactory

	seed       SeedParameter
	path       hdpath.Path
	hasPath    bool
	network    Network
	hasNetwork bool

	err error
}

// NewBuilder returns a builder scoped to the given algorithm.
func NewBuilder(algorithm Algorithm) *Builder {
	b := &Builder{
		algorithm: algorithm,
		factory:   factories[algorithm],
	}
	if b.factory == nil {
		b.err = fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	return b
}

// SetSeed supplies the seed material, either raw entropy bytes or a
// serialized extended key. Builders without a seed draw a random root.
func (b *Builder) SetSeed(seed SeedParameter) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case seed == nil:
		b.err = fmt.Errorf("seed: %w", ErrNilParameter)
	case b.seed != nil:
		b.err = fmt.Errorf("seed: %w", ErrDuplicateParameter)
	default:
		b.seed = seed
	}
	return b
}

// SetPath supplies the derivation path walked from the root node. For
// the BIP0044 algorithm the path shape is checked here; completeness is
// deferred to Build.
func (b *Builder) SetPath(path PathParameter) *Builder {
	if b.err != nil {
		return b
	}
	if path == nil {
		b.err = fmt.Errorf("path: %w", ErrNilParameter)
		return b
	}
	if b.hasPath {
		b.err = fmt.Errorf("path: %w", ErrDuplicateParameter)
		return b
	}

	resolved := hdpath.FromSegments(path.Segments()...)
	if b.algorithm == BIP0044 {
		if err := hdpath.CheckBIP44(resolved); err != nil {
			b.err = err
			return b
		}
	}

	b.path = resolved
	b.hasPath = true
	return b
}

// SetNetwork selects the serialization network. MainNetParams applies
// when unset.
func (b *Builder) SetNetwork(network Network) *Builder {
	if b.err != nil {
		return b
	}
	if b.hasNetwork {
		b.err = fmt.Errorf("network: %w", ErrDuplicateParameter)
		return b
	}
	b.network = network
	b.hasNetwork = true
	return b
}

// Reset clears all parameters and any recorded parameter error so the
// builder can be reused. The algorithm binding is kept.
func (b *Builder) Reset() *Builder {
	b.seed = nil
	b.path = hdpath.Path{}
	b.hasPath = false
	b.network = Network{}
	b.hasNetwork = false
	if b.factory != nil {
		b.err = nil
	}
	return b
}

// Build assembles the generator, reporting the first parameter error
// recorded.
func (b *Builder) Build() (DeterministicKeyGenerator, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.factory(b)
}

func (b *Builder) networkParams() Network {
	if !b.hasNetwork {
		return MainNetParams
	}
	return b.network
}
