package jot

import (
	"testing"

	"github.com/jot-format/go-jot/encode"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/parse"
)

func TestMergePatchRoundTrip(t *testing.T) {
	a := parse.MustParse(`{"title":"old","tags":["x"],"drop":1}`)
	b := parse.MustParse(`{"title":"new","tags":["x","y"]}`)
	patch, err := CreateMergePatch(a, b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ApplyMergePatch(a, patch)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, b) {
		t.Errorf("got %s want %s", encode.MustString(got), encode.MustString(b))
	}
}

func TestApplyMergePatchNullDeletes(t *testing.T) {
	doc := parse.MustParse(`{"keep":1,"drop":2}`)
	got, err := ApplyMergePatch(doc, []byte(`{"drop":null}`))
	if err != nil {
		t.Fatal(err)
	}
	want := parse.MustParse(`{"keep":1}`)
	if !ir.Equal(got, want) {
		t.Errorf("got %s want %s", encode.MustString(got), encode.MustString(want))
	}
}

func TestApplyMergePatchBadPatch(t *testing.T) {
	doc := parse.MustParse(`{"x":1}`)
	if _, err := ApplyMergePatch(doc, []byte(`{"broken"`)); err == nil {
		t.Error("expected error for malformed patch")
	}
}
