package main

import (
	"encoding/hex"
	"fmt"

	"github.com/harningt/atomun-keygen"
	"github.com/harningt/atomun-keygen/internal/mnemonic"
	"github.com/urfave/cli"
)

var masterCommand = cli.Command{
	Name:     "master",
	Category: "Derivation",
	Usage:    "Create a master extended key.",
	Description: `
	Create the extended private key at the root of a derivation tree
	and print its serialized form.

	The root is computed from --seed or --mnemonic when one is given
	and drawn from the system entropy source otherwise.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "seed",
			Usage: "hex encoded seed bytes",
		},
		cli.StringFlag{
			Name:  "mnemonic",
			Usage: "BIP0039 mnemonic sentence",
		},
		cli.StringFlag{
			Name: "passphrase",
			Usage: "optional passphrase stretched into the seed " +
				"together with the mnemonic",
		},
		cli.BoolFlag{
			Name:  "public",
			Usage: "print the public extended key",
		},
	},
	Action: masterKey,
}

func masterKey(ctx *cli.Context) error {
	builder := keygen.NewBuilder(keygen.BIP0032).
		SetNetwork(networkFromContext(ctx))

	switch {
	case ctx.IsSet("seed") && ctx.IsSet("mnemonic"):
		return fmt.Errorf("either seed or mnemonic should be set, " +
			"but not both")

	case ctx.IsSet("seed"):
		seed, err := hex.DecodeString(ctx.String("seed"))
		if err != nil {
			return fmt.Errorf("unable to decode seed: %v", err)
		}
		builder.SetSeed(keygen.ByteArraySeed(seed))

	case ctx.IsSet("mnemonic"):
		seed, err := mnemonic.ToSeed(
			ctx.String("mnemonic"), ctx.String("passphrase"),
		)
		if err != nil {
			return err
		}
		builder.SetSeed(keygen.ByteArraySeed(seed))

	case ctx.IsSet("passphrase"):
		return fmt.Errorf("passphrase requires a mnemonic")
	}

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
