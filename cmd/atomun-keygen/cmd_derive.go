package main

import (
	"fmt"

	"github.com/harningt/atomun-keygen"
	"github.com/harningt/atomun-keygen/eckey"
	"github.com/harningt/atomun-keygen/hdpath"
	"github.com/urfave/cli"
)

var deriveCommand = cli.Command{
	Name:      "derive",
	Category:  "Derivation",
	Usage:     "Derive a child extended key along a path.",
	ArgsUsage: "extended_key",
	Description: `
	Walk the given derivation path from a serialized root key and
	print the extended key it ends on.

	Hardened path segments require the root to carry private
	material, and paths can only be walked from a depth zero key.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "the serialized extended key to derive from",
		},
		cli.StringFlag{
			Name:  "path",
			Usage: "derivation path, e.g. m/44'/0'/0'/0",
		},
		cli.BoolFlag{
			Name:  "public",
			Usage: "print the public extended key",
		},
	},
	Action: derive,
}

func derive(ctx *cli.Context) error {
	key, err := keyArg(ctx)
	if err != nil {
		return err
	}
	if !ctx.IsSet("path") {
		return fmt.Errorf("path argument missing")
	}
	path, err := hdpath.Parse(ctx.String("path"))
	if err != nil {
		return err
	}

	gen, err := generatorFromKey(ctx, key, path)
	if err != nil {
		return err
	}

	if ctx.Bool("public") {
		fmt.Fprintln(ctx.App.Writer, gen.ExportPublic())
	} else {
		fmt.Fprintln(ctx.App.Writer, gen.Export())
	}
	return nil
}

var accountCommand = cli.Command{
	Name:      "account",
	Category:  "Derivation",
	Usage:     "Derive a BIP0044 account chain key.",
	ArgsUsage: "extended_key",
	Description: `
	Derive the extended key for one account chain of the five-slot
	BIP0044 layout m/44'/coin'/account'/chain. With --address the
	path extends to the address slot; otherwise sequence values
	passed to key generation select it.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "the serialized root extended key",
		},
		cli.Uint64Flag{
			Name:  "coin-type",
			Usage: "the registered coin type, hardened implicitly",
		},
		cli.Uint64Flag{
			Name:  "account",
			Usage: "the account index, hardened implicitly",
		},
		cli.Uint64Flag{
			Name: "chain",
			Usage: "the chain index, 0 for external and 1 for " +
				"internal keys",
		},
		cli.Uint64Flag{
			Name:  "address",
			Usage: "optional address index below the chain",
		},
		cli.BoolFlag{
			Name:  "public",
			Usage: "print the public extended key",
		},
	},
	Action: account,
}

func account(ctx *cli.Context) error {
	key, err := keyArg(ctx)
	if err != nil {
		return err
	}

	slots := []struct {
		name  string
		value uint64
	}{
		{"coin-type", ctx.Uint64("coin-type")},
		{"account", ctx.Uint64("account")},
		{"chain", ctx.Uint64("chain")},
		{"address", ctx.Uint64("address")},
	}
	for _, slot := range slots {
		if slot.value >= uint64(hdpath.HardenedFlag) {
			return fmt.Errorf("%s %d outside 31-bit range",
				slot.name, slot.value)
		}
	}

	pathBuilder := hdpath.NewBIP44Builder().
		SetCoinType(uint32(ctx.Uint64("coin-type")) |
			hdpath.HardenedFlag).
		SetAccount(uint32(ctx.Uint64("account"))).
		SetChain(uint32(ctx.Uint64("chain")))
	if ctx.IsSet("address") {
		pathBuilder.SetAddress(uint32(ctx.Uint64("address")))
	}
	path, err := pathBuilder.Build()
	if err != nil {
		return err
	}

	builder := keygen.NewBuilder(keygen.BIP0044).
		SetNetwork(networkFromContext(ctx)).
		SetSeed(keygen.SerializedSeed(key)).
		SetPath(path)
	gen, err := builder.Build()
	if err != nil {
		return err
	}

	if ctx.Bool("public") {
		fmt.Fprintln(ctx.App.Writer, gen.ExportPublic())
	} else {
		fmt.Fprintln(ctx.App.Writer, gen.Export())
	}
	return nil
}

var keyCommand = cli.Command{
	Name:      "key",
	Category:  "Derivation",
	Usage:     "Derive a single child key and print it.",
	ArgsUsage: "extended_key",
	Description: `
	Derive the child key at the given sequence value below a
	serialized extended key. The compressed public key is printed in
	hex form by default; --wif prints the private key in wallet
	import format instead and requires private material.`,
	Flags: []cli.Flag{
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
		cli.BoolFlag{
			Name:  "wif",
			Usage: "print the private key in wallet import format",
		},
	},
	Action: childKey,
}

func childKey(ctx *cli.Context) error {
	key, err := keyArg(ctx)
	if err != nil {
		return err
	}
	sequence, err := sequenceFromContext(ctx)
	if err != nil {
		return err
	}

	gen, err := generatorFromKey(ctx, key)
	if err != nil {
		return err
	}
	child, err := gen.Generate(sequence)
	if err != nil {
		return err
	}

	if ctx.Bool("wif") {
		private, ok := child.(*eckey.PrivateKey)
		if !ok {
			return fmt.Errorf("private material required for " +
				"wallet import format")
		}
		fmt.Fprintln(ctx.App.Writer, private.ExportWIF())
		return nil
	}

	fmt.Fprintf(ctx.App.Writer, "%x\n", child.ExportPublic())
	return nil
}
