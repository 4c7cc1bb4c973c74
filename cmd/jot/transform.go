package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/jot-format/go-jot"
)

func transformMain(cfg *TransformConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Transform.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: transform takes a base and two deltas", cli.ErrUsage)
	}
	base, err := cfg.readNode(args[0])
	if err != nil {
		return err
	}
	da, err := cfg.readDelta(args[1])
	if err != nil {
		return err
	}
	db, err := cfg.readDelta(args[2])
	if err != nil {
		return err
	}
	res, err := jot.TransformObjectDiff(da, db, base, cfg.Policy)
	if err != nil {
		return err
	}
	return writeWire(cfg.MainConfig, cc, res)
}
