// Package encode renders IR nodes as JSON text.
package encode

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jot-format/go-jot/ir"
)

// Encode writes the node to w as compact JSON. Object keys are
// emitted in sorted order, so output is deterministic.
func Encode(n *ir.Node, w io.Writer) error {
	d, err := Bytes(n)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// Bytes renders the node as compact JSON.
func Bytes(n *ir.Node) ([]byte, error) {
	d, err := json.Marshal(ir.ToAny(n))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return d, nil
}

// BytesIndent renders the node as indented JSON.
func BytesIndent(n *ir.Node, indent string) ([]byte, error) {
	d, err := json.MarshalIndent(ir.ToAny(n), "", indent)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return d, nil
}

// String renders the node as compact JSON.
func String(n *ir.Node) (string, error) {
	d, err := Bytes(n)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
