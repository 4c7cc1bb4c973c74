package parse

import (
	"testing"

	"github.com/jot-format/go-jot/ir"
)

func TestParseOK(t *testing.T) {
	for _, in := range []string{
		`null`,
		`true`,
		`false`,
		`22`,
		`1e14`,
		`-3.25`,
		`"hi"`,
		`""`,
		`[]`,
		`[1,[2,[3]]]`,
		`{}`,
		`{"x":{"y":[null,true,"z"]}}`,
	} {
		if _, err := ParseString(in); err != nil {
			t.Errorf("Parse(%s): %v", in, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		``,
		`{`,
		`[1,2`,
		`{"x":}`,
		`tru`,
	} {
		if _, err := ParseString(in); err == nil {
			t.Errorf("Parse(%s) succeeded", in)
		}
	}
}

func TestParseTypes(t *testing.T) {
	for _, tst := range []struct {
		in   string
		want ir.Type
	}{
		{`null`, ir.NullType},
		{`true`, ir.BoolType},
		{`3.5`, ir.NumberType},
		{`"s"`, ir.StringType},
		{`[1]`, ir.ArrayType},
		{`{"k":1}`, ir.ObjectType},
	} {
		n, err := ParseString(tst.in)
		if err != nil {
			t.Fatal(err)
		}
		if n.Type() != tst.want {
			t.Errorf("Parse(%s).Type() = %v, want %v", tst.in, n.Type(), tst.want)
		}
	}
}

func TestParseYAML(t *testing.T) {
	n, err := ParseYAML([]byte("x: 1\nys:\n  - a\n  - b\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := MustParse(`{"x":1,"ys":["a","b"]}`)
	if !ir.Equal(n, want) {
		t.Errorf("yaml and json forms differ")
	}
}

func TestParseYAMLAcceptsJSON(t *testing.T) {
	n, err := ParseYAML([]byte(`{"x": [1, 2]}`))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(n, MustParse(`{"x":[1,2]}`)) {
		t.Errorf("json-as-yaml parse differs")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic")
		}
	}()
	MustParse(`{`)
}
