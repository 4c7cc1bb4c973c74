package jot

import (
	"fmt"
	"strconv"

	"github.com/jot-format/go-jot/debug"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/textdiff"
)

// TransformObjectDiff rewrites da so it can apply after db on a
// document both were diffed against s. Keys present only in da pass
// through unchanged.
func TransformObjectDiff(da, db Delta, s *ir.Node, pol *Policy) (Delta, error) {
	res := da.Clone()
	for k, aop := range da {
		bop, ok := db[k]
		if !ok {
			continue
		}
		if debug.Transform() {
			debug.Logf("transform %q: %s over %s\n",
				k, aop.Code.String(), bop.Code.String())
		}
		out, drop, err := transformOps(aop, bop, ir.Get(s, k), pol.Attr(k))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		switch {
		case drop:
			delete(res, k)
		case out != nil:
			res[k] = out
		}
	}
	return res, nil
}

// transformOps resolves one pair of concurrent operations on the same
// slot. It returns the rewritten A-op, or drop=true when A's intent is
// already covered by B. A nil op with drop=false keeps A's op as-is.
func transformOps(aop, bop *Op, s *ir.Node, pol *Policy) (*Op, bool, error) {
	switch {
	case aop.Code == OpInsert && bop.Code == OpInsert:
		if ir.Equal(aop.Value, bop.Value) {
			return nil, true, nil
		}
		op := Diff(bop.Value, aop.Value, pol)
		if op == nil {
			return nil, true, nil
		}
		return op, false, nil
	case aop.Code == OpDelete && bop.Code == OpDelete:
		return nil, true, nil
	case bop.Code == OpDelete && editsInPlace(aop.Code):
		// A edited a slot B deleted; reinstate with A's final value.
		v, err := ApplyDiff(s, aop)
		if err != nil {
			return nil, false, err
		}
		return &Op{Code: OpInsert, Value: v}, false, nil
	case aop.Code == OpObjectDiff && bop.Code == OpObjectDiff:
		nd, err := TransformObjectDiff(aop.Diff, bop.Diff, s, pol)
		if err != nil {
			return nil, false, err
		}
		if len(nd) == 0 {
			return nil, true, nil
		}
		return &Op{Code: OpObjectDiff, Diff: nd}, false, nil
	case aop.Code == OpListDiff && bop.Code == OpListDiff:
		nd, err := TransformListDiff(aop.Diff, bop.Diff, s, pol)
		if err != nil {
			return nil, false, err
		}
		if len(nd) == 0 {
			return nil, true, nil
		}
		return &Op{Code: OpListDiff, Diff: nd}, false, nil
	case aop.Code == OpListTextDelta && bop.Code == OpListTextDelta:
		nd, err := TransformListTextDelta(aop.Text, bop.Text, s)
		if err != nil {
			return nil, false, err
		}
		if nd == "" {
			return nil, true, nil
		}
		return &Op{Code: OpListTextDelta, Text: nd}, false, nil
	case aop.Code == OpTextDelta && bop.Code == OpTextDelta:
		if s.Type() != ir.StringType {
			return nil, false, fmt.Errorf("%w: text delta on %v", ErrBadDelta, s.Type())
		}
		nd, drop, err := rebaseText(aop.Text, bop.Text, s.Str)
		if err != nil {
			return nil, false, err
		}
		if drop {
			return nil, true, nil
		}
		return &Op{Code: OpTextDelta, Text: nd}, false, nil
	}
	return nil, false, nil
}

// editsInPlace reports whether the opcode edits an existing slot rather
// than inserting or deleting it.
func editsInPlace(c Opcode) bool {
	switch c {
	case OpReplace, OpIntDelta, OpObjectDiff, OpListDiff, OpListTextDelta, OpTextDelta:
		return true
	}
	return false
}

// rebaseText rewrites text delta da, rooted at base, so it applies
// after db. drop is true when B's edits subsume A's.
func rebaseText(da, db, base string) (string, bool, error) {
	bText, err := textdiff.Apply(base, db, base)
	if err != nil {
		return "", false, err
	}
	abText, err := textdiff.Apply(base, da, bText)
	if err != nil {
		return "", false, err
	}
	if abText == bText {
		return "", true, nil
	}
	nd, ok := textdiff.Rediff(bText, abText)
	if !ok {
		return "", true, nil
	}
	return nd, false, nil
}

// TransformListDiff rewrites list delta da so it applies after db.
// B's inserts push A's indices right, B's deletes pull them left.
func TransformListDiff(da, db Delta, s *ir.Node, pol *Policy) (Delta, error) {
	aKeys, err := sortedIndexKeys(da)
	if err != nil {
		return nil, err
	}
	bKeys, err := sortedIndexKeys(db)
	if err != nil {
		return nil, err
	}
	bInserts, bDeletes := []int{}, []int{}
	for _, i := range bKeys {
		switch db[strconv.Itoa(i)].Code {
		case OpInsert:
			bInserts = append(bInserts, i)
		case OpDelete:
			bDeletes = append(bDeletes, i)
		}
	}
	res := Delta{}
	lastIndex := -2
	lastShift := 0
	for _, i := range aKeys {
		aop := da[strconv.Itoa(i)]
		shiftR := countBelow(bInserts, i)
		shiftL := countBelow(bDeletes, i)
		shift := shiftR - shiftL
		// A contiguous run of A-edits rides on the shift of its head,
		// keeping the run intact through B's edits.
		if i == lastIndex+1 {
			shift = lastShift
		}
		ip := i + shift
		key := strconv.Itoa(ip)
		if bop, ok := db[key]; ok {
			out, err := transformListCollision(aop, bop, s, pol, i, key)
			if err != nil {
				return nil, err
			}
			if out != nil {
				res[key] = out
			}
		} else {
			res[key] = aop.Clone()
		}
		lastIndex = ip
		lastShift = shiftR - shiftL
	}
	return res, nil
}

// transformListCollision resolves an adjusted A-index landing on a slot
// Db also touches, by running the object-level table over singleton
// wrappers.
func transformListCollision(aop, bop *Op, s *ir.Node, pol *Policy, i int, key string) (*Op, error) {
	var elem *ir.Node
	if s.Type() == ir.ArrayType && i >= 0 && i < len(s.Values) {
		elem = s.Values[i]
	}
	wrapS := ir.FromMap(map[string]*ir.Node{key: elem})
	wrapPol := &Policy{Attributes: map[string]*Policy{key: pol.Elem()}}
	out, err := TransformObjectDiff(Delta{key: aop}, Delta{key: bop}, wrapS, wrapPol)
	if err != nil {
		return nil, err
	}
	return out[key], nil
}

// TransformListTextDelta rewrites line-mode delta da so it applies
// after db, both rooted at the newline serialization of s. Empty string
// means A's edits are subsumed.
func TransformListTextDelta(da, db string, s *ir.Node) (string, error) {
	if s.Type() != ir.ArrayType {
		return "", fmt.Errorf("%w: list text delta on %v", ErrBadDelta, s.Type())
	}
	nd, _, err := rebaseText(da, db, JoinLines(s))
	if err != nil {
		return "", err
	}
	return nd, nil
}

// countBelow counts sorted positions strictly below i.
func countBelow(sorted []int, i int) int {
	n := 0
	for _, p := range sorted {
		if p >= i {
			break
		}
		n++
	}
	return n
}
