package jot

import (
	"strconv"

	"github.com/jot-format/go-jot/debug"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/textdiff"
)

// Diff computes the operation turning a into b, or nil when they are
// equal. Arrays replace whole unless the policy opts into list diffing.
func Diff(a, b *ir.Node, pol *Policy) *Op {
	if ir.Equal(a, b) {
		return nil
	}
	if debug.Diff() {
		debug.Logf("diff %s -> %s\n", a, b)
	}
	switch pol.otypeFor(a, b) {
	case OTypeReplace:
		return &Op{Code: OpReplace, Value: b.Clone()}
	case OTypeList:
		return &Op{Code: OpListDiff, Diff: ListDiff(a, b, pol)}
	case OTypeListDMP:
		return &Op{Code: OpListTextDelta, Text: ListTextDelta(a, b)}
	case OTypeInteger:
		return &Op{Code: OpIntDelta, Num: b.Num - a.Num}
	case OTypeString:
		return stringDiff(a.Str, b.Str)
	}
	if a.Type() != b.Type() {
		return &Op{Code: OpReplace, Value: b.Clone()}
	}
	switch a.Type() {
	case ir.ObjectType:
		return &Op{Code: OpObjectDiff, Diff: ObjectDiff(a, b, pol)}
	case ir.StringType:
		return stringDiff(a.Str, b.Str)
	default:
		return &Op{Code: OpReplace, Value: b.Clone()}
	}
}

func stringDiff(a, b string) *Op {
	delta, ok := textdiff.Delta(a, b)
	if !ok {
		return nil
	}
	return &Op{Code: OpTextDelta, Text: delta}
}

// ObjectDiff computes a field-keyed delta between two objects. New
// fields whose value is null are suppressed unless the policy keeps
// them.
func ObjectDiff(a, b *ir.Node, pol *Policy) Delta {
	res := Delta{}
	for k, av := range a.Fields {
		bv, ok := b.Fields[k]
		if !ok {
			res[k] = &Op{Code: OpDelete}
			continue
		}
		if ir.Equal(av, bv) {
			continue
		}
		if op := Diff(av, bv, pol.Attr(k)); op != nil {
			res[k] = op
		}
	}
	for k, bv := range b.Fields {
		if _, ok := a.Fields[k]; ok {
			continue
		}
		if bv.Type() == ir.NullType && !pol.keepNullAdds() {
			continue
		}
		res[k] = &Op{Code: OpInsert, Value: bv.Clone()}
	}
	return res
}

// ListDiff computes an index-keyed delta between two lists. The common
// prefix and suffix are trimmed first; keys index into the origin list.
func ListDiff(a, b *ir.Node, pol *Policy) Delta {
	av, bv := a.Values, b.Values
	pfx := 0
	for pfx < len(av) && pfx < len(bv) && ir.Equal(av[pfx], bv[pfx]) {
		pfx++
	}
	sfx := 0
	for sfx < len(av)-pfx && sfx < len(bv)-pfx &&
		ir.Equal(av[len(av)-1-sfx], bv[len(bv)-1-sfx]) {
		sfx++
	}
	ta := av[pfx : len(av)-sfx]
	tb := bv[pfx : len(bv)-sfx]
	res := Delta{}
	for i := 0; i < max(len(ta), len(tb)); i++ {
		key := strconv.Itoa(pfx + i)
		switch {
		case i < len(ta) && i < len(tb):
			if ir.Equal(ta[i], tb[i]) {
				continue
			}
			if op := Diff(ta[i], tb[i], pol.Elem()); op != nil {
				res[key] = op
			}
		case i < len(ta):
			res[key] = &Op{Code: OpDelete}
		default:
			res[key] = &Op{Code: OpInsert, Value: tb[i].Clone()}
		}
	}
	return res
}

// ListTextDelta computes a line-mode text delta between the newline
// serializations of two lists. Empty string means no change.
func ListTextDelta(a, b *ir.Node) string {
	delta, ok := textdiff.LineDelta(JoinLines(a), JoinLines(b))
	if !ok {
		return ""
	}
	return delta
}
