package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "policy",
			Aliases:     []string{"p"},
			Description: "diff policy file (yaml or json)",
			Type:        cli.NamedFuncOpt(cfg.policyOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "jot").
		WithSynopsis("jot [opts] command [opts]").
		WithDescription("jot diffs, patches, and transforms JSON documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jotMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			PatchCommand(cfg),
			TransformCommand(cfg),
			ServeCommand(cfg))
}

func jotMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff <origin> <target>").
		WithDescription("compute the delta turning origin into target").
		WithRun(func(cc *cli.Context, args []string) error {
			return diffMain(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [opts] <doc> <delta>").
		WithDescription("apply a delta to a document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchMain(cfg, cc, args)
		})
}

func TransformCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TransformConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Transform, "transform").
		WithAliases("t", "xf").
		WithSynopsis("transform <base> <delta-a> <delta-b>").
		WithDescription("rebase delta-a so it applies after delta-b on base").
		WithRun(func(cc *cli.Context, args []string) error {
			return transformMain(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg, Addr: ":8327"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithAliases("s").
		WithSynopsis("serve [-addr host:port]").
		WithDescription("serve synchronized documents over http and websockets").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serveMain(cfg, cc, args)
		})
}
