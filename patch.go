package jot

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jot-format/go-jot/debug"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/textdiff"
)

// ApplyDiff applies an operation to a value. Inputs are never mutated;
// a nil operation returns a copy of the value. Operations with opcodes
// we do not recognize leave the slot unchanged.
func ApplyDiff(a *ir.Node, op *Op) (*ir.Node, error) {
	if op == nil {
		return a.Clone(), nil
	}
	if debug.Patch() {
		debug.Logf("apply %s to %s\n", op.Code.String(), a)
	}
	switch op.Code {
	case OpInsert, OpReplace:
		return op.Value.Clone(), nil
	case OpDelete:
		return ir.Null(), nil
	case OpIntDelta:
		if a.Type() != ir.NumberType {
			return nil, fmt.Errorf("%w: numeric delta on %v", ErrBadDelta, a.Type())
		}
		return ir.FromFloat(a.Num + op.Num), nil
	case OpObjectDiff:
		return ApplyObjectDiff(a, op.Diff)
	case OpListDiff:
		return ApplyListDiff(a, op.Diff)
	case OpListTextDelta:
		return ApplyListTextDelta(a, op.Text)
	case OpTextDelta:
		if a.Type() != ir.StringType {
			return nil, fmt.Errorf("%w: text delta on %v", ErrBadDelta, a.Type())
		}
		res, err := textdiff.Apply(a.Str, op.Text, a.Str)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDelta, err)
		}
		return ir.FromString(res), nil
	}
	return a.Clone(), nil
}

// ApplyObjectDiff applies a field-keyed delta to an object. Iteration
// order does not matter, fields are independent.
func ApplyObjectDiff(s *ir.Node, d Delta) (*ir.Node, error) {
	if s.Type() != ir.ObjectType {
		return nil, fmt.Errorf("%w: object diff on %v", ErrBadDelta, s.Type())
	}
	res := s.Clone()
	for k, op := range d {
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

// ApplyListDiff applies an index-keyed delta to a list. Keys refer to
// positions in the origin list; earlier deletions shift later keys
// left during application.
func ApplyListDiff(s *ir.Node, d Delta) (*ir.Node, error) {
	if s.Type() != ir.ArrayType {
		return nil, fmt.Errorf("%w: list diff on %v", ErrBadDelta, s.Type())
	}
	res := s.Clone()
	keys, err := sortedIndexKeys(d)
	if err != nil {
		return nil, err
	}
	deleted := []int{}
	for _, i := range keys {
		op := d[strconv.Itoa(i)]
		shift := 0
		for _, p := range deleted {
			if p <= i {
				shift++
			}
		}
		j := i - shift
		switch op.Code {
		case OpInsert:
			if j < 0 || j > len(res.Values) {
				return nil, fmt.Errorf("%w: insert at %d", ErrBadIndex, i)
			}
			res.Values = slices.Insert(res.Values, j, op.Value.Clone())
		case OpDelete:
			if j < 0 || j >= len(res.Values) {
				return nil, fmt.Errorf("%w: delete at %d", ErrBadIndex, i)
			}
			res.Values = slices.Delete(res.Values, j, j+1)
			deleted = append(deleted, j)
		default:
			if j < 0 || j >= len(res.Values) {
				return nil, fmt.Errorf("%w: edit at %d", ErrBadIndex, i)
			}
			v, err := ApplyDiff(res.Values[j], op)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			res.Values[j] = v
		}
	}
	return res, nil
}

// ApplyListTextDelta applies a line-mode text delta to a list by way of
// its newline serialization.
func ApplyListTextDelta(s *ir.Node, delta string) (*ir.Node, error) {
	if s.Type() != ir.ArrayType {
		return nil, fmt.Errorf("%w: list text delta on %v", ErrBadDelta, s.Type())
	}
	if delta == "" {
		return s.Clone(), nil
	}
	text := JoinLines(s)
	res, err := textdiff.Apply(text, delta, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDelta, err)
	}
	return SplitLines(res)
}

// sortedIndexKeys parses a list delta's keys as indices in ascending
// numeric order. Lexicographic order would misplace edits past index 9.
func sortedIndexKeys(d Delta) ([]int, error) {
	keys := make([]int, 0, len(d))
	for k := range d {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q", ErrBadIndex, k)
		}
		keys = append(keys, i)
	}
	slices.Sort(keys)
	return keys, nil
}
