package jot

import (
	"encoding/json"
	"fmt"

	"github.com/jot-format/go-jot/ir"
)

// Opcode identifies what an operation does to the value at its slot.
type Opcode int

const (
	OpUnknown Opcode = iota
	OpInsert
	OpDelete
	OpReplace
	OpIntDelta
	OpObjectDiff
	OpListDiff
	OpListTextDelta
	OpTextDelta
)

var opcodeNames = map[Opcode]string{
	OpInsert:        "+",
	OpDelete:        "-",
	OpReplace:       "r",
	OpIntDelta:      "I",
	OpObjectDiff:    "O",
	OpListDiff:      "L",
	OpListTextDelta: "dL",
	OpTextDelta:     "d",
}

var opcodeByName = map[string]Opcode{}

func init() {
	for c, n := range opcodeNames {
		opcodeByName[n] = c
	}
}

func (c Opcode) String() string {
	s, ok := opcodeNames[c]
	if !ok {
		return "<unknown opcode>"
	}
	return s
}

// Op is one delta operation. Which payload field is meaningful depends
// on Code: Value for inserts and replaces, Num for numeric deltas, Diff
// for nested object and list deltas, Text for text deltas.
type Op struct {
	Code  Opcode
	Value *ir.Node
	Num   float64
	Diff  Delta
	Text  string

	// raw holds the original encoding of an operation whose opcode we
	// do not recognize, so it survives a round trip.
	raw json.RawMessage
}

// Delta maps object field names, or stringified list indices, to
// operations. An empty delta means no change.
type Delta map[string]*Op

func (o *Op) Clone() *Op {
	if o == nil {
		return nil
	}
	res := &Op{Code: o.Code, Num: o.Num, Text: o.Text, raw: o.raw}
	if o.Value != nil {
		res.Value = o.Value.Clone()
	}
	if o.Diff != nil {
		res.Diff = o.Diff.Clone()
	}
	return res
}

func (d Delta) Clone() Delta {
	if d == nil {
		return nil
	}
	res := make(Delta, len(d))
	for k, op := range d {
		res[k] = op.Clone()
	}
	return res
}

type wireOp struct {
	O string `json:"o"`
	V any    `json:"v,omitempty"`
}

func (o *Op) MarshalJSON() ([]byte, error) {
	if o.Code == OpUnknown {
		if len(o.raw) != 0 {
			return o.raw, nil
		}
		return nil, fmt.Errorf("%w: unencodable operation", ErrBadDelta)
	}
	w := wireOp{O: o.Code.String()}
	switch o.Code {
	case OpInsert, OpReplace:
		w.V = wireValue{o.Value}
	case OpIntDelta:
		w.V = o.Num
	case OpObjectDiff, OpListDiff:
		w.V = o.Diff
	case OpTextDelta, OpListTextDelta:
		w.V = o.Text
	}
	return json.Marshal(w)
}

// wireValue marshals a node payload, keeping explicit nulls that
// omitempty would otherwise drop.
type wireValue struct {
	n *ir.Node
}

func (w wireValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(ir.ToAny(w.n))
}

func (o *Op) UnmarshalJSON(d []byte) error {
	var w struct {
		O string          `json:"o"`
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(d, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrBadDelta, err)
	}
	code, ok := opcodeByName[w.O]
	if !ok {
		// Unknown opcodes pass through and apply as no-ops.
		o.Code = OpUnknown
		o.raw = append(json.RawMessage(nil), d...)
		return nil
	}
	o.Code = code
	switch code {
	case OpInsert, OpReplace:
		var v any
		if len(w.V) != 0 {
			if err := json.Unmarshal(w.V, &v); err != nil {
				return fmt.Errorf("%w: payload: %v", ErrBadDelta, err)
			}
		}
		n, err := ir.FromAny(v)
		if err != nil {
			return fmt.Errorf("%w: payload: %v", ErrBadDelta, err)
		}
		o.Value = n
	case OpDelete:
	case OpIntDelta:
		if err := json.Unmarshal(w.V, &o.Num); err != nil {
			return fmt.Errorf("%w: numeric payload: %v", ErrBadDelta, err)
		}
	case OpObjectDiff, OpListDiff:
		if err := json.Unmarshal(w.V, &o.Diff); err != nil {
			return fmt.Errorf("%w: nested delta: %v", ErrBadDelta, err)
		}
		if o.Diff == nil {
			o.Diff = Delta{}
		}
	case OpTextDelta, OpListTextDelta:
		if err := json.Unmarshal(w.V, &o.Text); err != nil {
			return fmt.Errorf("%w: text payload: %v", ErrBadDelta, err)
		}
	}
	return nil
}

// ParseDelta decodes a delta from its JSON wire form.
func ParseDelta(d []byte) (Delta, error) {
	res := Delta{}
	if err := json.Unmarshal(d, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDelta, err)
	}
	return res, nil
}

// ParseOp decodes a single operation from its JSON wire form.
func ParseOp(d []byte) (*Op, error) {
	res := &Op{}
	if err := json.Unmarshal(d, res); err != nil {
		return nil, err
	}
	return res, nil
}
