package bip0032

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/harningt/atomun-keygen/base"
	"github.com/harningt/atomun-keygen/base58"
	"github.com/harningt/atomun-keygen/eckey"
)

// Serialized extended key layout. Every field is fixed width; the whole
// payload is Base58Check wrapped.
const (
	versionOffset   = 0
	depthOffset     = 4
	parentOffset    = 5
	sequenceOffset  = 9
	chainCodeOffset = 13
	materialOffset  = chainCodeOffset + chainCodeLength

	// serializedKeyLength is the exact decoded payload size.
	serializedKeyLength = materialOffset + 33
)

var (
	// ErrInvalidKeyLength is returned when a decoded extended key is
	// not exactly the serialized layout size.
	ErrInvalidKeyLength = base.NewValidationError(
		"invalid extended key length")

	// ErrInvalidMagic is returned when an extended key's version bytes
	// match no known network.
	ErrInvalidMagic = base.NewValidationError(
		"invalid extended key magic")
)

// ExportNode serializes node with the processor's network version bytes
// and wraps it in Base58Check.
func (p *Processor) ExportNode(node *Node) string {
	version := p.net.HDPubKeyVersion()
	if node.HasPrivate() {
		version = p.net.HDPrivKeyVersion()
	}

	out := make([]byte, 0, serializedKeyLength)
	out = append(out, version[:]...)
	out = append(out, node.depth)
	out = binary.BigEndian.AppendUint32(out, node.parent)
	out = binary.BigEndian.AppendUint32(out, node.sequence)
	out = append(out, node.chainCode[:]...)
	if private, ok := privateMaster(node); ok {
		out = append(out, 0x00)
		out = append(out, private.ExportPrivate()...)
	} else {
		out = append(out, node.master.ExportPublic()...)
	}

	return base58.EncodeWithChecksum(out)
}

// ImportNode deserializes a Base58Check extended key into a node. All
// known network magics are accepted; re-exporting uses the processor's
// own network.
func (p *Processor) ImportNode(serialized string) (*Node, error) {
	payload, err := base58.DecodeWithChecksum(serialized)
	if err != nil {
		return nil, err
	}
	if len(payload) != serializedKeyLength {
		return nil, fmt.Errorf("%d bytes: %w", len(payload),
			ErrInvalidKeyLength)
	}

	var private bool
	switch [4]byte(payload[versionOffset:depthOffset]) {
	case MainNetPrivKeyID, TestNet3PrivKeyID:
		private = true
	case MainNetPubKeyID, TestNet3PubKeyID:
		private = false
	default:
		return nil, fmt.Errorf("%x: %w", payload[versionOffset:depthOffset],
			ErrInvalidMagic)
	}

	depth := payload[depthOffset]
	parent := binary.BigEndian.Uint32(
		payload[parentOffset:sequenceOffset])
	sequence := binary.BigEndian.Uint32(
		payload[sequenceOffset:chainCodeOffset])
	chainCode := [chainCodeLength]byte(
		payload[chainCodeOffset:materialOffset])
	material := payload[materialOffset:]

	var master eckey.Key
	if private {
		exponent := new(big.Int).SetBytes(material[1:])
		key, err := eckey.FromSecretExponent(exponent, true)
		if err != nil {
			return nil, fmt.Errorf("importing private key: %w",
				err)
		}
		master = key
	} else {
		key, err := eckey.FromEncodedPublicKey(material, true)
		if err != nil {
			return nil, fmt.Errorf("importing public key: %w",
				err)
		}
		master = key
	}

	log.Debugf("imported extended key: depth=%d private=%t", depth,
		private)
	return newNode(master, chainCode, depth, parent, sequence), nil
}
