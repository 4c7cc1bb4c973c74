package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/jot-format/go-jot/syncd"
)

func serveMain(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: serve takes no arguments", cli.ErrUsage)
	}
	srv, err := syncd.New(&syncd.Spec{
		Policy:      cfg.Policy,
		Diagnostics: cfg.Gops,
	})
	if err != nil {
		return err
	}
	return srv.ListenAndServe(cfg.Addr)
}
