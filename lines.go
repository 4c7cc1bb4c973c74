package jot

import (
	"fmt"
	"strings"

	"github.com/jot-format/go-jot/encode"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/parse"
)

// JoinLines serializes a list one JSON record per line, each line
// newline terminated. JSON escaping keeps embedded newlines out of the
// framing.
func JoinLines(n *ir.Node) string {
	sb := &strings.Builder{}
	for _, v := range n.Values {
		sb.WriteString(encode.MustString(v))
		sb.WriteString("\n")
	}
	return sb.String()
}

// SplitLines parses newline-framed JSON records back into a list.
// Empty lines are skipped.
func SplitLines(text string) (*ir.Node, error) {
	vs := []*ir.Node{}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		v, err := parse.ParseString(line)
		if err != nil {
			return nil, fmt.Errorf("bad record %q: %w", line, err)
		}
		vs = append(vs, v)
	}
	return ir.FromSlice(vs), nil
}
