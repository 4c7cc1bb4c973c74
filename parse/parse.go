// Package parse decodes JSON or YAML documents into IR nodes.
package parse

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jot-format/go-jot/ir"
)

// Parse decodes a JSON document.
func Parse(d []byte) (*ir.Node, error) {
	var v any
	if err := json.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return ir.FromAny(v)
}

// ParseString decodes a JSON document given as a string.
func ParseString(s string) (*ir.Node, error) {
	return Parse([]byte(s))
}

// ParseYAML decodes a YAML document.
func ParseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return ir.FromAny(v)
}

// MustParse is Parse for fixtures; it panics on malformed input.
func MustParse(s string) *ir.Node {
	n, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return n
}
