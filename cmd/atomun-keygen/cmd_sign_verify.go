package main

import (
	"encoding/hex"
	"fmt"

	"github.com/harningt/atomun-keygen/eckey"
	"github.com/urfave/cli"
)

var signCommand = cli.Command{
	Name:      "sign",
	Category:  "Signing",
	Usage:     "Sign a digest with a derived or imported key.",
	ArgsUsage: "digest",
	Description: `
	Sign a 32 byte digest, given in hex, and print the DER encoded
	signature. The signing key comes either from a wallet import
	format string or from deriving the child at --sequence below a
	serialized extended key with private material.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "digest",
			Usage: "the 32 byte digest to sign, in hex",
		},
		cli.StringFlag{
			Name:  "wif",
			Usage: "the signing key in wallet import format",
		},
		cli.StringFlag{
			Name:  "key",
			Usage: "the serialized extended key to derive from",
		},
		cli.Uint64Flag{
			Name:  "sequence",
			Usage: "the child sequence value",
		},
		cli.BoolFlag{
			Name:  "hardened",
			Usage: "derive a hardened child",
		},
	},
	Action: sign,
}

func sign(ctx *cli.Context) error {
	digest, err := digestArg(ctx)
	if err != nil {
		return err
	}

	var private *eckey.PrivateKey
	switch {
	case ctx.IsSet("wif") && ctx.IsSet("key"):
		return fmt.Errorf("either wif or key should be set, but " +
			"not both")

	case ctx.IsSet("wif"):
		private, err = eckey.ImportWIF(ctx.String("wif"))
		if err != nil {
			return err
		}

	case ctx.IsSet("key"):
		sequence, err := sequenceFromContext(ctx)
		if err != nil {
			return err
		}
		gen, err := generatorFromKey(ctx, ctx.String("key"))
		if err != nil {
			return err
		}
		child, err := gen.Generate(sequence)
		if err != nil {
			return err
		}

		var ok bool
		private, ok = child.(*eckey.PrivateKey)
		if !ok {
			return fmt.Errorf("private material required for " +
				"signing")
		}

	default:
		return fmt.Errorf("wif or key argument missing")
	}

	signature, err := private.Sign(digest)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "%x\n", signature)
	return nil
}

var verifyCommand = cli.Command{
	Name:      "verify",
	Category:  "Signing",
	Usage:     "Verify a signature over a digest.",
	ArgsUsage: "digest signature",
	Description: `
	Check a DER encoded signature, given in hex, against a 32 byte
	digest. The verifying key comes either from a SEC encoded public
	key or from deriving the child at --sequence below a serialized
	extended key.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "digest",
			Usage: "the 32 byte digest that was signed, in hex",
		},
		cli.StringFlag{
			Name:  "signature",
			Usage: "the DER encoded signature, in hex",
		},
		cli.StringFlag{
			Name:  "pubkey",
			Usage: "the SEC encoded public key, in hex",
		},
		cli.StringFlag{
			Name:  "key",
			Usage: "the serialized extended key to derive from",
		},
		cli.Uint64Flag{
			Name:  "sequence",
			Usage: "the child sequence value",
		},
		cli.BoolFlag{
			Name:  "hardened",
			Usage: "derive a hardened child",
		},
	},
	Action: verify,
}

func verify(ctx *cli.Context) error {
	digest, err := digestArg(ctx)
	if err != nil {
		return err
	}

	args := ctx.Args()
	if !ctx.IsSet("digest") && args.Present() {
		args = args.Tail()
	}

	var signatureHex string
	switch {
	case ctx.IsSet("signature"):
		signatureHex = ctx.String("signature")
	case args.Present():
		signatureHex = args.First()
	default:
		return fmt.Errorf("signature argument missing")
	}
	signature, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("unable to decode signature: %v", err)
	}

	var key eckey.Key
	switch {
	case ctx.IsSet("pubkey") && ctx.IsSet("key"):
		return fmt.Errorf("either pubkey or key should be set, " +
			"but not both")

	case ctx.IsSet("pubkey"):
		encoded, err := hex.DecodeString(ctx.String("pubkey"))
		if err != nil {
			return fmt.Errorf("unable to decode pubkey: %v", err)
		}

		// A 33 byte point is SEC compressed, 65 uncompressed.
		key, err = eckey.FromEncodedPublicKey(encoded,
			len(encoded) == 33)
		if err != nil {
			return err
		}

	case ctx.IsSet("key"):
		sequence, err := sequenceFromContext(ctx)
		if err != nil {
			return err
		}
		gen, err := generatorFromKey(ctx, ctx.String("key"))
		if err != nil {
			return err
		}
		key, err = gen.GeneratePublic(sequence)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("pubkey or key argument missing")
	}

	resp := struct {
		Valid bool `json:"valid"`
	}{
		Valid: key.Verify(digest, signature),
	}
	return printRespJSON(ctx, resp)
}

// digestArg reads the hex encoded digest from the digest flag or the
// first positional argument and enforces the 32 byte length signing
// operates on.
func digestArg(ctx *cli.Context) ([]byte, error) {
	var digestHex string
	switch {
	case ctx.IsSet("digest"):
		digestHex = ctx.String("digest")
	case ctx.Args().Present():
		digestHex = ctx.Args().First()
	default:
		return nil, fmt.Errorf("digest argument missing")
	}

	digest, err := hex.DecodeString(digestHex)
	if err != nil {
		return nil, fmt.Errorf("unable to decode digest: %v", err)
	}
	if len(digest) != 32 {
		return nil, fmt.Errorf("digest must be 32 bytes, got %d",
			len(digest))
	}
	return digest, nil
}
