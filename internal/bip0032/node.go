// Package bip0032 implements the BIP0032 hierarchical derivation engine:
// master node generation from seeds, hardened and non-hardened child
// derivation, public-only projection and the checksummed extended key
// serialization.
package bip0032

import (
	"encoding/binary"
	"fmt"

	"github.com/harningt/atomun-keygen/eckey"
)

// chainCodeLength is the exact chain code size in bytes.
const chainCodeLength = 32

// Node is an immutable node of a BIP0032 derivation tree: its key
// material plus the chain code and position metadata needed to derive
// children. Nodes are only constructed by a Processor and never mutated,
// so they are safe to share across goroutines.
type Node struct {
	master    eckey.Key
	chainCode [chainCodeLength]byte
	depth     uint8
	parent    uint32
	sequence  uint32
}

func newNode(master eckey.Key, chainCode [chainCodeLength]byte,
	depth uint8, parent, sequence uint32) *Node {

	return &Node{
		master:    master,
		chainCode: chainCode,
		depth:     depth,
		parent:    parent,
		sequence:  sequence,
	}
}

// Master returns the node's key.
func (n *Node) Master() eckey.Key {
	return n.master
}

// ChainCode returns a copy of the 32-byte chain code.
func (n *Node) ChainCode() []byte {
	out := make([]byte, chainCodeLength)
	copy(out, n.chainCode[:])
	return out
}

// Depth returns the node's distance from the tree root.
func (n *Node) Depth() uint8 {
	return n.depth
}

// Parent returns the fingerprint of the node this one was derived from,
// zero for a root.
func (n *Node) Parent() uint32 {
	return n.parent
}

// Sequence returns the segment value used to derive this node from its
// parent, zero for a root.
func (n *Node) Sequence() uint32 {
	return n.sequence
}

// HasPrivate reports whether the node's key carries private material.
func (n *Node) HasPrivate() bool {
	return n.master.HasPrivate()
}

// Public returns a node with the key stripped to its public form. A node
// that is already public-only is returned unchanged.
func (n *Node) Public() *Node {
	if !n.HasPrivate() {
		return n
	}
	return newNode(n.master.Public(), n.chainCode, n.depth, n.parent,
		n.sequence)
}

// Fingerprint returns the big-endian value of the first four address
// hash bytes of the node's key, identifying it as a parent in child
// metadata.
func (n *Node) Fingerprint() uint32 {
	return binary.BigEndian.Uint32(n.master.AddressHash()[:4])
}

// Equal reports structural equality: same key, chain code, depth, parent
// and sequence.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.master.IsEqual(other.master) &&
		n.chainCode == other.chainCode &&
		n.depth == other.depth &&
		n.parent == other.parent &&
		n.sequence == other.sequence
}

// String renders the node's position metadata. Key material and the
// chain code never appear in the output.
func (n *Node) String() string {
	return fmt.Sprintf("node(depth=%d parent=%08x sequence=%#x "+
		"private=%t)", n.depth, n.parent, n.sequence, n.HasPrivate())
}
