package ir

import (
	"encoding/json"
	"fmt"
)

// FromAny converts a decoded JSON value (the shapes produced by
// encoding/json and friends) into a Node.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case float64:
		return FromFloat(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		return FromFloat(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", x, err)
		}
		return FromFloat(f), nil
	case string:
		return FromString(x), nil
	case []any:
		vs := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return FromMap(m), nil
	case map[any]any:
		m := make(map[string]*Node, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string object key %v", k)
			}
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			m[ks] = n
		}
		return FromMap(m), nil
	}
	return nil, fmt.Errorf("unsupported value %T", v)
}

// ToAny converts a Node to the shapes encoding/json marshals naturally.
func ToAny(n *Node) any {
	switch n.Type() {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case NumberType:
		return n.Num
	case StringType:
		return n.Str
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(n.Fields))
		for k, v := range n.Fields {
			res[k] = ToAny(v)
		}
		return res
	}
	return nil
}
