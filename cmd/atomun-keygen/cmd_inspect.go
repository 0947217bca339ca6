package main

import (
	"fmt"

	"github.com/harningt/atomun-keygen/hdpath"
	"github.com/harningt/atomun-keygen/internal/bip0032"
	"github.com/urfave/cli"
)

var neuterCommand = cli.Command{
	Name:      "neuter",
	Category:  "Inspection",
	Usage:     "Strip private material from an extended key.",
	ArgsUsage: "extended_key",
	Description: `
	Print the public extended key for the given serialized key.
	Public keys pass through unchanged.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "the serialized extended key",
		},
	},
	Action: neuter,
}

func neuter(ctx *cli.Context) error {
	key, err := keyArg(ctx)
	if err != nil {
		return err
	}

	gen, err := generatorFromKey(ctx, key)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, gen.ExportPublic())
	return nil
}

var inspectCommand = cli.Command{
	Name:      "inspect",
	Category:  "Inspection",
	Usage:     "Decode an extended key and print its fields.",
	ArgsUsage: "extended_key",
	Description: `
	Decode a serialized extended key and print its position in the
	tree along with the public key material as JSON. Chain codes and
	private material are never printed.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "the serialized extended key",
		},
	},
	Action: inspect,
}

func inspect(ctx *cli.Context) error {
	key, err := keyArg(ctx)
	if err != nil {
		return err
	}

	processor := bip0032.NewProcessor(networkFromContext(ctx))
	node, err := processor.ImportNode(key)
	if err != nil {
		return err
	}

	resp := struct {
		Private           bool   `json:"private"`
		Depth             uint8  `json:"depth"`
		ParentFingerprint string `json:"parent_fingerprint"`
		Index             uint32 `json:"index"`
		Hardened          bool   `json:"hardened"`
		Fingerprint       string `json:"fingerprint"`
		AddressHash       string `json:"address_hash"`
		PublicKey         string `json:"public_key"`
	}{
		Private:           node.HasPrivate(),
		Depth:             node.Depth(),
		ParentFingerprint: fmt.Sprintf("%08x", node.Parent()),
		Index:             node.Sequence() &^ hdpath.HardenedFlag,
		Hardened:          node.Sequence()&hdpath.HardenedFlag != 0,
		Fingerprint:       fmt.Sprintf("%08x", node.Fingerprint()),
		AddressHash: fmt.Sprintf("%x",
			node.Master().AddressHash()),
		PublicKey: fmt.Sprintf("%x", node.Master().ExportPublic()),
	}
	return printRespJSON(ctx, resp)
}
