package jot

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/jot-format/go-jot/ir"
)

// OType forces the opcode choice at a location, overriding type-based
// dispatch.
type OType string

const (
	OTypeNone    OType = ""
	OTypeReplace OType = "replace"
	OTypeList    OType = "list"
	OTypeListDMP OType = "list_dmp"
	OTypeInteger OType = "integer"
	OTypeString  OType = "string"
)

// Policy configures how specific locations diff. Attributes descends
// into object fields, Item applies uniformly to list elements. A nil
// policy means "choose by runtime type".
type Policy struct {
	OType      OType              `json:"otype,omitempty" yaml:"otype,omitempty"`
	Attributes map[string]*Policy `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Item       *Policy            `json:"item,omitempty" yaml:"item,omitempty"`

	// KeepNullAdds disables the suppression of object additions whose
	// new value is null.
	KeepNullAdds bool `json:"keepNullAdds,omitempty" yaml:"keepNullAdds,omitempty"`

	// When guards OType with an expression over the values being
	// diffed, bound as "a" and "b". An empty guard always passes; a
	// guard that fails to compile or evaluate disables the override.
	When string `json:"when,omitempty" yaml:"when,omitempty"`

	whenOnce sync.Once
	whenProg *vm.Program
	whenErr  error
}

// Attr resolves the sub-policy for an object field.
func (p *Policy) Attr(key string) *Policy {
	if p == nil {
		return nil
	}
	return p.Attributes[key]
}

// Elem resolves the sub-policy for list elements.
func (p *Policy) Elem() *Policy {
	if p == nil {
		return nil
	}
	return p.Item
}

func (p *Policy) keepNullAdds() bool {
	return p != nil && p.KeepNullAdds
}

func (p *Policy) otypeFor(a, b *ir.Node) OType {
	if p == nil || p.OType == OTypeNone {
		return OTypeNone
	}
	if p.When == "" {
		return p.OType
	}
	p.whenOnce.Do(func() {
		p.whenProg, p.whenErr = expr.Compile(p.When, expr.AsBool())
	})
	if p.whenErr != nil {
		return OTypeNone
	}
	out, err := expr.Run(p.whenProg, map[string]any{
		"a": ir.ToAny(a),
		"b": ir.ToAny(b),
	})
	if err != nil {
		return OTypeNone
	}
	if ok, _ := out.(bool); !ok {
		return OTypeNone
	}
	return p.OType
}

// ParsePolicy decodes a policy from YAML or JSON.
func ParsePolicy(d []byte) (*Policy, error) {
	p := &Policy{}
	if err := yaml.Unmarshal(d, p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	return p, nil
}
