package bip0032

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/harningt/atomun-keygen/base"
	"github.com/harningt/atomun-keygen/eckey"
	"github.com/harningt/atomun-keygen/hdpath"
	"github.com/lightninglabs/neutrino/cache"
	"github.com/lightninglabs/neutrino/cache/lru"
)

// masterHMACKey keys the HMAC-SHA512 that turns a seed into the master
// node, per BIP0032.
var masterHMACKey = []byte("Bitcoin seed")

var (
	// ErrInvalidChainValue is returned when the left HMAC half of a
	// derivation step falls outside [1, n-1]. This is cryptographically
	// near-impossible but mandated to be checked.
	ErrInvalidChainValue = base.NewValidationError(
		"invalid chain value generated")

	// ErrInvalidPrivateNode is returned when a derived private scalar
	// reduces to zero.
	ErrInvalidPrivateNode = base.NewValidationError(
		"invalid private node generated")

	// ErrInvalidPublicNode is returned when a derived public point is
	// the point at infinity.
	ErrInvalidPublicNode = base.NewValidationError(
		"invalid public node generated")

	// ErrNeedPrivateKey is returned when hardened derivation is
	// attempted on a public-only node.
	ErrNeedPrivateKey = base.NewValidationError(
		"private key required for hardened derivation")

	// ErrWrongDepth is returned when path derivation starts from a
	// non-root node.
	ErrWrongDepth = base.NewValidationError(
		"path derivation requires a depth zero node")

	// ErrDeriveBeyondMaxDepth is returned when deriving a child of a
	// node already at the maximum representable depth.
	ErrDeriveBeyondMaxDepth = base.NewValidationError(
		"cannot derive beyond the maximum depth of 255")
)

// Processor is the derivation engine. It is stateless apart from its
// bounded derivation cache and is safe for concurrent use.
type Processor struct {
	net   NetworkParams
	cache *lru.Cache[nodeSequence, *cachedNode]
}

// NewProcessor returns a derivation engine that serializes extended keys
// with the given network's version bytes. Every processor owns an
// isolated derivation cache, so tests and independent components do not
// observe each other's entries.
func NewProcessor(net NetworkParams) *Processor {
	return &Processor{
		net: net,
		cache: lru.NewCache[nodeSequence, *cachedNode](
			derivationCacheSize),
	}
}

// GenerateNode creates a root node from fresh cryptographically secure
// randomness.
func (p *Processor) GenerateNode() (*Node, error) {
	var chainCode [chainCodeLength]byte
	if _, err := rand.Read(chainCode[:]); err != nil {
		return nil, err
	}

	master, err := eckey.GenerateRandom(true)
	if err != nil {
		return nil, err
	}

	log.Debugf("generated random master node")
	return newNode(master, chainCode, 0, 0, 0), nil
}

// GenerateNodeFromSeed deterministically creates the master node for the
// given seed bytes.
func (p *Processor) GenerateNodeFromSeed(seed []byte) (*Node, error) {
	mac := hmac.New(sha512.New, masterHMACKey)
	mac.Write(seed)
	i := mac.Sum(nil)
	il, ir := i[:32], i[32:]

	m := new(big.Int).SetBytes(il)
	if err := checkScalar(m); err != nil {
		return nil, err
	}

	master, err := eckey.FromSecretExponent(m, true)
	if err != nil {
		return nil, err
	}

	log.Debugf("generated master node from %d byte seed", len(seed))
	return newNode(master, [chainCodeLength]byte(ir), 0, 0, 0), nil
}

// DeriveNode derives the child of node at the given sequence value. Bit
// 31 of sequence selects hardened derivation, which requires private key
// material. Identical (node, sequence) requests are served from the
// processor's cache when possible; cached and fresh results are
// indistinguishable.
func (p *Processor) DeriveNode(node *Node, sequence uint32) (*Node,
	error) {

	key := nodeSequence{node: node.identity(), sequence: sequence}
	entry, err := p.cache.Get(key)
	switch {
	case err == nil:
		log.Tracef("derivation cache hit: %v sequence=%#x", node,
			sequence)
		return entry.node, nil

	case !errors.Is(err, cache.ErrElementNotFound):
		return nil, err
	}

	hardened := sequence&hdpath.HardenedFlag != 0
	if hardened && !node.HasPrivate() {
		return nil, ErrNeedPrivateKey
	}
	if node.depth == math.MaxUint8 {
		return nil, ErrDeriveBeyondMaxDepth
	}

	i, err := deriveI(node, sequence)
	if err != nil {
		return nil, err
	}
	il, ir := i[:32], i[32:]

	m := new(big.Int).SetBytes(il)
	if err := checkScalar(m); err != nil {
		return nil, err
	}

	var master eckey.Key
	if private, ok := privateMaster(node); ok {
		parentScalar := new(big.Int).SetBytes(
			private.ExportPrivate())
		k := new(big.Int).Add(m, parentScalar)
		k.Mod(k, btcec.S256().Params().N)
		if k.Sign() == 0 {
			return nil, ErrInvalidPrivateNode
		}

		child, err := eckey.FromSecretExponent(k, true)
		if err != nil {
			return nil, err
		}
		master = child
	} else {
		curve := btcec.S256()
		deltaX, deltaY := curve.ScalarBaseMult(il)

		parentPoint, err := btcec.ParsePubKey(
			node.master.ExportPublic())
		if err != nil {
			return nil, err
		}

		childX, childY := curve.Add(deltaX, deltaY,
			parentPoint.X(), parentPoint.Y())
		if childX.Sign() == 0 && childY.Sign() == 0 {
			return nil, ErrInvalidPublicNode
		}

		child, err := eckey.FromEncodedPublicKey(
			serializeCompressed(childX, childY), true)
		if err != nil {
			return nil, err
		}
		master = child
	}

	derived := newNode(master, [chainCodeLength]byte(ir), node.depth+1,
		node.Fingerprint(), sequence)

	if _, err := p.cache.Put(key, &cachedNode{node: derived}); err != nil {
		// A failed insert only costs a recomputation later.
		log.Warnf("derivation cache insert failed: %v", err)
	}

	log.Tracef("derived child: %v", derived)
	return derived, nil
}

// DerivePath derives along every segment of path in order, starting from
// the root node.
func (p *Processor) DerivePath(node *Node, path hdpath.Path) (*Node,
	error) {

	if node.Depth() != 0 {
		return nil, fmt.Errorf("depth %d: %w", node.Depth(),
			ErrWrongDepth)
	}

	current := node
	for _, segment := range path.Segments() {
		child, err := p.DeriveNode(current, segment)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// deriveI computes the 64-byte HMAC-SHA512 of the derivation message for
// the given sequence, keyed by the node's chain code. Hardened sequences
// commit to the private scalar, non-hardened ones to the public point.
func deriveI(node *Node, sequence uint32) ([]byte, error) {
	var ser32 [4]byte
	binary.BigEndian.PutUint32(ser32[:], sequence)

	mac := hmac.New(sha512.New, node.chainCode[:])
	if sequence&hdpath.HardenedFlag != 0 {
		private, ok := privateMaster(node)
		if !ok {
			return nil, ErrNeedPrivateKey
		}
		mac.Write([]byte{0x00})
		mac.Write(private.ExportPrivate())
	} else {
		mac.Write(node.master.ExportPublic())
	}
	mac.Write(ser32[:])
	return mac.Sum(nil), nil
}

// checkScalar enforces the BIP0032 bound 0 < m < n on an intermediate
// derivation scalar.
func checkScalar(m *big.Int) error {
	if m.Sign() == 0 || m.Cmp(btcec.S256().Params().N) >= 0 {
		return ErrInvalidChainValue
	}
	return nil
}

// privateMaster returns the node's key as a private key when it has
// private material.
func privateMaster(n *Node) (*eckey.PrivateKey, bool) {
	private, ok := n.master.(*eckey.PrivateKey)
	return private, ok
}

// serializeCompressed encodes an affine point in 33-byte compressed SEC
// form.
func serializeCompressed(x, y *big.Int) []byte {
	prefix := byte(0x02)
	if y.Bit(0) == 1 {
		prefix = 0x03
	}

	out := make([]byte, 33)
	out[0] = prefix
	x.FillBytes(out[1:])
	return out
}
