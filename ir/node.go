package ir

// Node is a JSON value: one of null, boolean, number, string, array or
// object. The Kind tag selects which of the payload fields is meaningful.
// A nil *Node reads as null everywhere in this package.
type Node struct {
	Kind Type

	Bool   bool
	Num    float64
	Str    string
	Values []*Node
	Fields map[string]*Node
}

// Type returns the value kind; nil nodes are null.
func (n *Node) Type() Type {
	if n == nil {
		return NullType
	}
	return n.Kind
}

func Null() *Node {
	return &Node{Kind: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Kind: BoolType, Bool: v}
}

func FromFloat(v float64) *Node {
	return &Node{Kind: NumberType, Num: v}
}

func FromInt(v int64) *Node {
	return &Node{Kind: NumberType, Num: float64(v)}
}

func FromString(v string) *Node {
	return &Node{Kind: StringType, Str: v}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Kind: ArrayType, Values: make([]*Node, len(vs))}
	for i, v := range vs {
		if v == nil {
			v = Null()
		}
		res.Values[i] = v
	}
	return res
}

func FromMap(m map[string]*Node) *Node {
	res := &Node{Kind: ObjectType, Fields: make(map[string]*Node, len(m))}
	for k, v := range m {
		if v == nil {
			v = Null()
		}
		res.Fields[k] = v
	}
	return res
}

// Get returns the named field of an object node, or nil.
func Get(n *Node, field string) *Node {
	if n.Type() != ObjectType {
		return nil
	}
	return n.Fields[field]
}

// Clone deep-copies a node.
func (n *Node) Clone() *Node {
	if n == nil {
		return Null()
	}
	res := &Node{
		Kind: n.Kind,
		Bool: n.Bool,
		Num:  n.Num,
		Str:  n.Str,
	}
	if n.Values != nil {
		res.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			res.Values[i] = v.Clone()
		}
	}
	if n.Fields != nil {
		res.Fields = make(map[string]*Node, len(n.Fields))
		for k, v := range n.Fields {
			res.Fields[k] = v.Clone()
		}
	}
	return res
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
		for _, v := range n.Fields {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}
