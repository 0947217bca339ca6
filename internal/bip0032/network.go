package bip0032

// NetworkParams describes the extended key version bytes of a network.
// The processor serializes with whichever network it was configured
// with; deserialization recognizes every known network's magic.
type NetworkParams interface {
	// HDPrivKeyVersion returns the 4-byte magic prefixed to serialized
	// private extended keys.
	HDPrivKeyVersion() [4]byte

	// HDPubKeyVersion returns the 4-byte magic prefixed to serialized
	// public extended keys.
	HDPubKeyVersion() [4]byte
}

// Known extended key version magics.
var (
	// MainNetPrivKeyID yields the xprv encoding prefix.
	MainNetPrivKeyID = [4]byte{0x04, 0x88, 0xad, 0xe4}

	// MainNetPubKeyID yields the xpub encoding prefix.
	MainNetPubKeyID = [4]byte{0x04, 0x88, 0xb2, 0x1e}

	// TestNet3PrivKeyID yields the tprv encoding prefix.
	TestNet3PrivKeyID = [4]byte{0x04, 0x35, 0x83, 0x94}

	// TestNet3PubKeyID yields the tpub encoding prefix.
	TestNet3PubKeyID = [4]byte{0x04, 0x35, 0x87, 0xcf}
)
