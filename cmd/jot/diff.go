package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/jot-format/go-jot"
)

func diffMain(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes an origin and a target", cli.ErrUsage)
	}
	a, err := cfg.readNode(args[0])
	if err != nil {
		return err
	}
	b, err := cfg.readNode(args[1])
	if err != nil {
		return err
	}
	op := jot.Diff(a, b, cfg.Policy)
	return writeWire(cfg.MainConfig, cc, op)
}

// writeWire prints an operation, or {} for no change.
func writeWire(cfg *MainConfig, cc *cli.Context, v any) error {
	var d []byte
	var err error
	switch {
	case v == nil || isNilOp(v):
		d = []byte("{}")
	case cfg.Compact:
		d, err = json.Marshal(v)
	default:
		d, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}
	d = append(d, '\n')
	_, err = cc.Out.Write(d)
	return err
}

func isNilOp(v any) bool {
	op, ok := v.(*jot.Op)
	return ok && op == nil
}
