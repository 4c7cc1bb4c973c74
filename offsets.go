package jot

import (
	"fmt"

	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/textdiff"
)

// ApplyObjectDiffWithOffsets applies a field-keyed delta like
// ApplyObjectDiff, but when the named field receives a text delta the
// caller's caret offsets into that field are remapped in place to track
// the edits.
func ApplyObjectDiffWithOffsets(s *ir.Node, d Delta, field string, offsets []int) (*ir.Node, error) {
	if s.Type() != ir.ObjectType {
		return nil, fmt.Errorf("%w: object diff on %v", ErrBadDelta, s.Type())
	}
	res := s.Clone()
	for k, op := range d {
		if k == field && op.Code == OpTextDelta {
			cur := res.Fields[k]
			if cur.Type() != ir.StringType {
				return nil, fmt.Errorf("%w: text delta on %v", ErrBadDelta, cur.Type())
			}
			out, _, err := textdiff.ApplyWithOffsets(cur.Str, op.Text, cur.Str, offsets)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			res.Fields[k] = ir.FromString(out)
			continue
		}
		if op.Code == OpDelete {
			delete(res.Fields, k)
			continue
		}
		v, err := ApplyDiff(res.Fields[k], op)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		res.Fields[k] = v
	}
	return res, nil
}
