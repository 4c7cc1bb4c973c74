package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/jot-format/go-jot"
	"github.com/jot-format/go-jot/encode"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/parse"
)

type MainConfig struct {
	Y       bool `cli:"name=y aliases=yaml desc='parse inputs as yaml'"`
	Color   bool `cli:"name=color desc='encode output with color'"`
	Compact bool `cli:"name=c aliases=compact desc='compact output'"`

	Policy *jot.Policy

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) policyOpt(_ *cli.Context, a string) (any, error) {
	d, err := os.ReadFile(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	pol, err := jot.ParsePolicy(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Policy = pol
	return pol, nil
}

// readNode reads a value from a file, or stdin for "-".
func (cfg *MainConfig) readNode(path string) (*ir.Node, error) {
	var d []byte
	var err error
	if path == "-" {
		d, err = io.ReadAll(os.Stdin)
	} else {
		d, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Y {
		return parse.ParseYAML(d)
	}
	return parse.Parse(d)
}

func (cfg *MainConfig) readDelta(path string) (jot.Delta, error) {
	var d []byte
	var err error
	if path == "-" {
		d, err = io.ReadAll(os.Stdin)
	} else {
		d, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return jot.ParseDelta(d)
}

func (cfg *MainConfig) writeNode(cc *cli.Context, n *ir.Node) error {
	if cfg.useColor(cc) {
		colors := encode.NewColors()
		_, err := io.WriteString(cc.Out, colors.Render(n, "  "))
		return err
	}
	var d []byte
	var err error
	if cfg.Compact {
		d, err = encode.Bytes(n)
	} else {
		d, err = encode.BytesIndent(n, "  ")
	}
	if err != nil {
		return err
	}
	d = append(d, '\n')
	_, err = cc.Out.Write(d)
	return err
}

func (cfg *MainConfig) useColor(cc *cli.Context) bool {
	if cfg.Color {
		return true
	}
	if cfg.Out != "" && cfg.Out != "-" {
		return false
	}
	f, ok := cc.Out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Field   string `cli:"name=field desc='track caret offsets through a text delta on this field'"`
	Offsets string `cli:"name=offsets desc='comma separated caret offsets'"`
	Patch   *cli.Command
}

type TransformConfig struct {
	*MainConfig
	Transform *cli.Command
}

type ServeConfig struct {
	*MainConfig
	Addr string `cli:"name=addr desc='listen address'"`
	Gops bool   `cli:"name=gops desc='start a diagnostics agent'"`

	Serve *cli.Command
}
