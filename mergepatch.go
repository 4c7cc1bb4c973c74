package jot

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/jot-format/go-jot/encode"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/parse"
)

// CreateMergePatch produces an RFC 7386 merge patch turning a into b,
// for interop with consumers that do not speak deltas.
func CreateMergePatch(a, b *ir.Node) ([]byte, error) {
	ad, err := encode.Bytes(a)
	if err != nil {
		return nil, err
	}
	bd, err := encode.Bytes(b)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.CreateMergePatch(ad, bd)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return res, nil
}

// ApplyMergePatch applies an RFC 7386 merge patch to a value.
func ApplyMergePatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	dd, err := encode.Bytes(doc)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.MergePatch(dd, patch)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return parse.Parse(res)
}
