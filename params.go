package keygen

import "github.com/harningt/atomun-keygen/internal/bip0032"

// SeedParameter is the seed input accepted by a Builder. The only
// implementations are the two returned by ByteArraySeed and
// SerializedSeed; the interface is sealed against others.
type SeedParameter interface {
	// rootNode realizes the seed into the derivation tree root.
	rootNode(p *bip0032.Processor) (*bip0032.Node, error)
}

type byteArraySeed struct {
	seed []byte
}

// ByteArraySeed wraps raw entropy bytes as builder seed material. The
// bytes are copied.
func ByteArraySeed(seed []byte) SeedParameter {
	return byteArraySeed{seed: append([]byte(nil), seed...)}
}

func (s byteArraySeed) rootNode(p *bip0032.Processor) (*bip0032.Node,
	error) {

	return p.GenerateNodeFromSeed(s.seed)
}

type serializedSeed struct {
	serialized string
}

// SerializedSeed wraps a Base58Check extended key string as builder
// seed material.
func SerializedSeed(serialized string) SeedParameter {
	return serializedSeed{serialized: serialized}
}

func (s serializedSeed) rootNode(p *bip0032.Processor) (*bip0032.Node,
	error) {

	return p.ImportNode(s.serialized)
}

// PathParameter is any derivation path a Builder can consume. Both
// hdpath.Path and hdpath.BIP44Path satisfy it.
type PathParameter interface {
	Segments() []uint32
}
