package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/jot-format/go-jot"
)

func patchMain(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch takes a document and a delta", cli.ErrUsage)
	}
	doc, err := cfg.readNode(args[0])
	if err != nil {
		return err
	}

	if cfg.Field != "" {
		delta, err := cfg.readDelta(args[1])
		if err != nil {
			return err
		}
		offsets, err := parseOffsets(cfg.Offsets)
		if err != nil {
			return err
		}
		res, err := jot.ApplyObjectDiffWithOffsets(doc, delta, cfg.Field, offsets)
		if err != nil {
			return err
		}
		if err := cfg.writeNode(cc, res); err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "offsets: %v\n", offsets)
		return nil
	}

	op, err := readOpOrDelta(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	res, err := jot.ApplyDiff(doc, op)
	if err != nil {
		return err
	}
	return cfg.writeNode(cc, res)
}

// readOpOrDelta accepts either a single operation or a bare field-keyed
// delta, which it wraps as an object diff.
func readOpOrDelta(cfg *MainConfig, path string) (*jot.Op, error) {
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
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(d, &probe); err != nil {
		return nil, fmt.Errorf("%w: delta is not an object", cli.ErrUsage)
	}
	if o, ok := probe["o"]; ok && len(o) > 0 && o[0] == '"' {
		return jot.ParseOp(d)
	}
	delta, err := jot.ParseDelta(d)
	if err != nil {
		return nil, err
	}
	return &jot.Op{Code: jot.OpObjectDiff, Diff: delta}, nil
}

func parseOffsets(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	res := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: offset %q", cli.ErrUsage, p)
		}
		res[i] = n
	}
	return res, nil
}
