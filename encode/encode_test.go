package encode

import (
	"strings"
	"testing"

	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/parse"
)

func TestEncodeSortsKeys(t *testing.T) {
	n := parse.MustParse(`{"zeta":1,"alpha":{"m":2,"a":3},"mid":[1,2]}`)
	got := MustString(n)
	want := `{"alpha":{"a":3,"m":2},"mid":[1,2],"zeta":1}`
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, in := range []string{
		`null`,
		`true`,
		`-2.5`,
		`"with \"quotes\""`,
		`[1,[2,{"x":null}]]`,
		`{"k":["a",false]}`,
	} {
		n := parse.MustParse(in)
		d, err := Bytes(n)
		if err != nil {
			t.Fatal(err)
		}
		back, err := parse.Parse(d)
		if err != nil {
			t.Fatal(err)
		}
		if !ir.Equal(n, back) {
			t.Errorf("round trip of %s gave %s", in, d)
		}
	}
}

func TestBytesIndent(t *testing.T) {
	n := parse.MustParse(`{"x":1}`)
	d, err := BytesIndent(n, "  ")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(d), "\n  \"x\": 1") {
		t.Errorf("indent form: %s", d)
	}
}

func TestEncodeNilNodeIsNull(t *testing.T) {
	d, err := Bytes(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "null" {
		t.Errorf("got %s", d)
	}
}

func TestRenderPlainStructure(t *testing.T) {
	c := NewColors()
	out := c.Render(parse.MustParse(`{"x":[1,"two"]}`), "  ")
	for _, frag := range []string{`"x"`, "1", `"two"`} {
		if !strings.Contains(out, frag) {
			t.Errorf("render missing %s: %q", frag, out)
		}
	}
}
