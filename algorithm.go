package keygen

import (
	"fmt"

	"github.com/harningt/atomun-keygen/hdpath"
	"github.com/harningt/atomun-keygen/internal/bip0032"
)

// Algorithm identifies a key generation scheme supported by NewBuilder.
type Algorithm string

// Supported generation algorithms.
const (
	// BIP0032 derives keys along an arbitrary caller-supplied path.
	BIP0032 Algorithm = "BIP0032"

	// BIP0044 restricts the derivation path to the five-slot
	// purpose/coin/account/chain/address layout and requires it to be
	// populated through the chain slot.
	BIP0044 Algorithm = "BIP0044"
)

// generatorFactory assembles a generator from a populated builder.
type generatorFactory func(*Builder) (DeterministicKeyGenerator, error)

// factories binds each algorithm to its assembly strategy. The mapping
// is fixed here and never mutated.
var factories = map[Algorithm]generatorFactory{
	BIP0032: buildBIP0032,
	BIP0044: buildBIP0044,
}

// resolveRoot realizes the builder's seed parameter into the tree root,
// drawing a random node when no seed was supplied.
func resolveRoot(b *Builder, p *bip0032.Processor) (*bip0032.Node,
	error) {

	if b.seed == nil {
		return p.GenerateNode()
	}
	return b.seed.rootNode(p)
}

func buildBIP0032(b *Builder) (DeterministicKeyGenerator, error) {
	p := bip0032.NewProcessor(b.networkParams())
	node, err := resolveRoot(b, p)
	if err != nil {
		return nil, err
	}

	if b.hasPath {
		node, err = p.DerivePath(node, b.path)
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("Assembled %s generator at %s", BIP0032, node)
	return &nodeGenerator{processor: p, node: node}, nil
}

func buildBIP0044(b *Builder) (DeterministicKeyGenerator, error) {
	if !b.hasPath {
		return nil, fmt.Errorf("%s: %w", BIP0044, ErrMissingPath)
	}

	// The shape was checked when the path was set; completeness can
	// only be judged once all parameters are in.
	path, err := hdpath.BIP44FromPath(b.path)
	if err != nil {
		return nil, err
	}
	if !path.HasChain() {
		return nil, fmt.Errorf("%s: %w", BIP0044, ErrIncompletePath)
	}

	p := bip0032.NewProcessor(b.networkParams())
	node, err := resolveRoot(b, p)
	if err != nil {
		return nil, err
	}
	node, err = p.DerivePath(node, path.Path)
	if err != nil {
		return nil, err
	}

	log.Debugf("Assembled %s generator at %s", BIP0044, node)
	return &nodeGenerator{processor: p, node: node}, nil
}
