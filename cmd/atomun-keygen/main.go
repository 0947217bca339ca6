package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/harningt/atomun-keygen"
	"github.com/harningt/atomun-keygen/hdpath"
	"github.com/harningt/atomun-keygen/internal/bip0032"
	"github.com/urfave/cli"
)

const appVersion = "0.1.0"

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[atomun-keygen] %v\n", err)
	os.Exit(1)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "atomun-keygen"
	app.Version = appVersion
	app.Usage = "deterministic key generation for BIP0032 wallets"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name: "testnet",
			Usage: "Serialize extended keys with the testnet " +
				"prefixes.",
		},
		cli.StringFlag{
			Name: "debuglevel",
			Usage: "Logging level for all subsystems {trace, " +
				"debug, info, warn, error, critical}.",
		},
	}
	app.Before = setupLoggers
	app.Commands = []cli.Command{
		masterCommand,
		deriveCommand,
		accountCommand,
		keyCommand,
		neuterCommand,
		inspectCommand,
		signCommand,
		verifyCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

// setupLoggers routes the package loggers to stderr at the requested
// level. Logging stays disabled when no level is given.
func setupLoggers(ctx *cli.Context) error {
	levelName := ctx.GlobalString("debuglevel")
	if levelName == "" {
		return nil
	}
	level, ok := btclog.LevelFromString(levelName)
	if !ok {
		return fmt.Errorf("invalid debug level %q", levelName)
	}

	backend := btclog.NewBackend(os.Stderr)

	keygenLog := backend.Logger("KGEN")
	keygenLog.SetLevel(level)
	keygen.UseLogger(keygenLog)

	derivationLog := backend.Logger("HD32")
	derivationLog.SetLevel(level)
	bip0032.UseLogger(derivationLog)

	return nil
}

func networkFromContext(ctx *cli.Context) keygen.Network {
	if ctx.GlobalBool("testnet") {
		return keygen.TestNet3Params
	}
	return keygen.MainNetParams
}

// keyArg reads the serialized extended key from the key flag or the
// first positional argument.
func keyArg(ctx *cli.Context) (string, error) {
	switch {
	case ctx.IsSet("key"):
		return ctx.String("key"), nil
	case ctx.Args().Present():
		return ctx.Args().First(), nil
	}
	return "", fmt.Errorf("extended key argument missing")
}

// sequenceFromContext composes the child sequence value from the
// sequence and hardened flags.
func sequenceFromContext(ctx *cli.Context) (uint32, error) {
	value := ctx.Uint64("sequence")
	if value >= uint64(hdpath.HardenedFlag) {
		return 0, fmt.Errorf("sequence %d outside 31-bit range",
			value)
	}

	sequence := uint32(value)
	if ctx.Bool("hardened") {
		sequence |= hdpath.HardenedFlag
	}
	return sequence, nil
}

// generatorFromKey builds a BIP0032 generator rooted at the given
// serialized extended key, optionally walking a path below it.
func generatorFromKey(ctx *cli.Context, key string,
	path ...hdpath.Path) (keygen.DeterministicKeyGenerator, error) {

	builder := keygen.NewBuilder(keygen.BIP0032).
		SetNetwork(networkFromContext(ctx)).
		SetSeed(keygen.SerializedSeed(key))
	for _, p := range path {
		builder.SetPath(p)
	}
	return builder.Build()
}

func printRespJSON(ctx *cli.Context, resp interface{}) error {
	encoded, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(encoded))
	return nil
}
