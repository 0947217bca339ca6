package keygen

import "github.com/harningt/atomun-keygen/internal/bip0032"

// Network carries the version bytes that select the serialization
// prefix of exported extended keys for one Bitcoin network.
type Network struct {
	// Name distinguishes the network in logs and errors.
	Name string

	// HDPrivateKeyID and HDPublicKeyID are the 4-byte magic prefixes
	// of serialized private and public extended keys.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte
}

// HDPrivKeyVersion returns the private extended key magic.
func (n Network) HDPrivKeyVersion() [4]byte {
	return n.HDPrivateKeyID
}

// HDPubKeyVersion returns the public extended key magic.
func (n Network) HDPubKeyVersion() [4]byte {
	return n.HDPublicKeyID
}

// MainNetParams serializes extended keys with the conventional xprv and
// xpub prefixes. Builders fall back to it when no network is set.
var MainNetParams = Network{
	Name:           "mainnet",
	HDPrivateKeyID: bip0032.MainNetPrivKeyID,
	HDPublicKeyID:  bip0032.MainNetPubKeyID,
}

// TestNet3Params serializes extended keys with the tprv and tpub
// prefixes.
var TestNet3Params = Network{
	Name:           "testnet3",
	HDPrivateKeyID: bip0032.TestNet3PrivKeyID,
	HDPublicKeyID:  bip0032.TestNet3PubKeyID,
}
