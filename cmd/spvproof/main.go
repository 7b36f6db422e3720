// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jaxnet/spvproof/chainweb"
	"github.com/jaxnet/spvproof/config"
	"github.com/jaxnet/spvproof/corelog"
	"github.com/jaxnet/spvproof/proof"
	"github.com/jaxnet/spvproof/store/badgerstore"
)

const (
	flagConfig  = "config"
	flagDataDir = "data-dir"
	flagTarget  = "target"
	flagSource  = "source"
	flagHeight  = "height"
	flagIndex   = "index"
	flagLeaves  = "leaves"
)

var standardFlags = map[string]cli.Flag{
	flagConfig:  &cli.StringFlag{Name: flagConfig, Usage: "path to spvproof.yaml", EnvVars: []string{"SPVPROOF_CONFIG"}},
	flagDataDir: &cli.StringFlag{Name: flagDataDir, Usage: "overrides config.data_dir"},
	flagTarget:  &cli.StringFlag{Name: flagTarget, Usage: "chain whose current head witnesses the proof", Required: true},
	flagSource:  &cli.StringFlag{Name: flagSource, Usage: "chain the transaction/output actually lives on", Required: true},
	flagHeight:  &cli.Uint64Flag{Name: flagHeight, Usage: "block height on the source chain", Required: true},
	flagIndex:   &cli.IntFlag{Name: flagIndex, Usage: "leaf index within the block's body", Required: true},
	flagLeaves:  &cli.IntFlag{Name: flagLeaves, Usage: "number of fixture transactions/outputs per block", Value: 3},
}

// App holds everything a subcommand needs once the database is open:
// configuration, the badger store, and the ready-to-use proof builder and
// the cut database proofs are verified against.
type App struct {
	config  config.Config
	store   *badgerstore.Store
	builder *proof.Builder
	cut     *badgerstore.CutDB
}

func main() {
	app := &App{}
	cliApp := &cli.App{
		Name:     "spvproof",
		Usage:    "build and verify SPV proofs across a braided chainweb",
		Flags:    []cli.Flag{standardFlags[flagConfig], standardFlags[flagDataDir]},
		Before:   app.init,
		After:    app.close,
		Commands: app.commands(),
	}

	if err := cliApp.Run(os.Args); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func (app *App) init(c *cli.Context) error {
	var err error
	if path := c.String(flagConfig); path != "" {
		app.config, err = config.Load(path)
	} else {
		app.config = config.Default()
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if dir := c.String(flagDataDir); dir != "" {
		app.config.DataDir = dir
	}

	log := corelog.New("spvproof", app.config.LogLevelOrDefault(), app.config.Log)

	app.store, err = badgerstore.Open(app.config.DataDir)
	if err != nil {
		return cli.NewExitError(errors.Wrap(err, "unable to open store"), 1)
	}
	app.cut = badgerstore.NewCutDB(app.store, app.config.ChainIDs())
	app.builder = proof.NewBuilder(app.cut, app.store, app.config.Graph(), log)
	return nil
}

func (app *App) close(*cli.Context) error {
	if app.store == nil {
		return nil
	}
	return app.store.Close()
}

func (app *App) commands() cli.Commands {
	return []*cli.Command{
		{
			Name:   "seed",
			Usage:  "populate the store with a deterministic fixture chainweb",
			Flags:  []cli.Flag{&cli.Uint64Flag{Name: "height", Usage: "highest block height to generate", Value: 10}, standardFlags[flagLeaves]},
			Action: app.seedCmd,
		},
		{
			Name:  "prove",
			Usage: "build and verify an SPV proof",
			Subcommands: cli.Commands{
				{
					Name:   "tx",
					Usage:  "prove a transaction's inclusion",
					Flags:  []cli.Flag{standardFlags[flagTarget], standardFlags[flagSource], standardFlags[flagHeight], standardFlags[flagIndex]},
					Action: app.proveTxCmd,
				},
				{
					Name:   "output",
					Usage:  "prove a transaction output's inclusion",
					Flags:  []cli.Flag{standardFlags[flagTarget], standardFlags[flagSource], standardFlags[flagHeight], standardFlags[flagIndex]},
					Action: app.proveOutputCmd,
				},
			},
		},
		{
			Name:   "inspect",
			Usage:  "print the current head of every configured chain",
			Action: app.inspectCmd,
		},
	}
}

func (app *App) seedCmd(c *cli.Context) error {
	maxHeight := chainweb.Height(c.Uint64("height"))
	leaves := c.Int(flagLeaves)
	chains := app.config.ChainIDs()
	graph := app.config.Graph()

	if err := seedFixture(app.store, graph, chains, maxHeight, leaves); err != nil {
		return cli.NewExitError(errors.Wrap(err, "unable to seed fixture"), 1)
	}
	fmt.Printf("seeded %d chains up to height %d\n", len(chains), maxHeight)
	return nil
}

func (app *App) proveTxCmd(c *cli.Context) error {
	ctx := c.Context
	target := chainweb.ChainID(c.String(flagTarget))
	source := chainweb.ChainID(c.String(flagSource))
	height := chainweb.Height(c.Uint64(flagHeight))
	index := c.Int(flagIndex)

	tp, err := app.builder.CreateTransactionProof(ctx, target, source, height, index)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	tx, err := proof.VerifyTransactionProof(ctx, app.cut, tp)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Printf("proof verified against chain %s: transaction = %q\n", tp.ChainID, tx)
	return nil
}

func (app *App) proveOutputCmd(c *cli.Context) error {
	ctx := c.Context
	target := chainweb.ChainID(c.String(flagTarget))
	source := chainweb.ChainID(c.String(flagSource))
	height := chainweb.Height(c.Uint64(flagHeight))
	index := c.Int(flagIndex)

	op, err := app.builder.CreateTransactionOutputProof(ctx, target, source, height, index)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	out, err := proof.VerifyTransactionOutputProof(ctx, app.cut, op)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Printf("proof verified against chain %s: output = %q\n", op.ChainID, out)
	return nil
}

func (app *App) inspectCmd(c *cli.Context) error {
	ctx := c.Context
	for _, chain := range app.config.ChainIDs() {
		head, err := app.store.Chain(chain).MaxHeader(ctx)
		if err != nil {
			fmt.Printf("chain %s: %s\n", chain, err)
			continue
		}
		fmt.Printf("chain %s: head height=%d hash=%s\n", chain, head.Height, head.BlockHash())
	}
	return nil
}
