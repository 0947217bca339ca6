package bip0032

import (
	"encoding/binary"
)

// derivationCacheSize bounds the per-processor derivation cache. The
// cache only serves to avoid recomputing hot path segments during
// fan-out, so the exact capacity has no correctness impact.
const derivationCacheSize = 16

// nodeIdentityLength is the packed structural identity size: depth,
// parent, sequence, chain code and 33 bytes of key material.
const nodeIdentityLength = 1 + 4 + 4 + chainCodeLength + 33

// nodeSequence keys the derivation cache on the parent node's structural
// identity plus the requested child sequence.
type nodeSequence struct {
	node     [nodeIdentityLength]byte
	sequence uint32
}

// identity packs the node into its cache key form. Private nodes pack a
// zero byte plus the scalar, matching the serialized key material layout,
// so private and public nodes can never collide.
func (n *Node) identity() [nodeIdentityLength]byte {
	var id [nodeIdentityLength]byte
	id[0] = n.depth
	binary.BigEndian.PutUint32(id[1:5], n.parent)
	binary.BigEndian.PutUint32(id[5:9], n.sequence)
	copy(id[9:9+chainCodeLength], n.chainCode[:])

	material := id[9+chainCodeLength:]
	if private, ok := privateMaster(n); ok {
		material[0] = 0x00
		copy(material[1:], private.ExportPrivate())
	} else {
		copy(material, n.master.ExportPublic())
	}
	return id
}

// cachedNode wraps a derived node for cache accounting.
type cachedNode struct {
	node *Node
}

// Size returns 1 so the cache capacity bounds the entry count.
func (c *cachedNode) Size() (uint64, error) {
	return 1, nil
}
