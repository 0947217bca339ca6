package keygen

import (
	"github.com/harningt/atomun-keygen/eckey"
	"github.com/harningt/atomun-keygen/internal/bip0032"
)

// nodeGenerator adapts a derivation tree node to the
// DeterministicKeyGenerator contract. Both algorithms produce this
// type; they differ only in how the wrapped node is located.
type nodeGenerator struct {
	processor *bip0032.Processor
	node      *bip0032.Node
}

func (g *nodeGenerator) HasPrivate() bool {
	return g.node.HasPrivate()
}

func (g *nodeGenerator) Generate(sequence uint32) (eckey.Key, error) {
	child, err := g.processor.DeriveNode(g.node, sequence)
	if err != nil {
		return nil, err
	}
	return child.Master(), nil
}

func (g *nodeGenerator) GeneratePublic(sequence uint32) (eckey.Key,
	error) {

	child, err := g.processor.DeriveNode(g.node, sequence)
	if err != nil {
		return nil, err
	}
	return child.Master().Public(), nil
}

func (g *nodeGenerator) Export() string {
	return g.processor.ExportNode(g.node)
}

func (g *nodeGenerator) ExportPublic() string {
	return g.processor.ExportNode(g.node.Public())
}

func (g *nodeGenerator) Public() DeterministicKeyGenerator {
	if !g.node.HasPrivate() {
		return g
	}
	return &nodeGenerator{processor: g.processor, node: g.node.Public()}
}

func (g *nodeGenerator) IsEqual(other DeterministicKeyGenerator) bool {
	otherGen, ok := other.(*nodeGenerator)
	if !ok {
		return false
	}
	return g.node.Equal(otherGen.node)
}
