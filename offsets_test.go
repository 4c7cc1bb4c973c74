package jot

import (
	"testing"

	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/parse"
)

func textFieldDelta(t *testing.T, field, from, to string) Delta {
	t.Helper()
	op := Diff(ir.FromString(from), ir.FromString(to), nil)
	if op == nil || op.Code != OpTextDelta {
		t.Fatalf("op %v, want text delta", op)
	}
	return Delta{field: op}
}

func TestOffsetsInsertShiftsLaterCarets(t *testing.T) {
	s := parse.MustParse(`{"body":"hello world"}`)
	d := textFieldDelta(t, "body", "hello world", "hello brave world")
	offsets := []int{0, 6, 11}
	got, err := ApplyObjectDiffWithOffsets(s, d, "body", offsets)
	if err != nil {
		t.Fatal(err)
	}
	if got.Fields["body"].Str != "hello brave world" {
		t.Errorf("body %q", got.Fields["body"].Str)
	}
	want := []int{0, 6, 17}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("offsets %v, want %v", offsets, want)
			break
		}
	}
}

func TestOffsetsDeleteClampsInsideSpan(t *testing.T) {
	s := parse.MustParse(`{"body":"hello brave world"}`)
	d := textFieldDelta(t, "body", "hello brave world", "hello world")
	offsets := []int{0, 8, 13}
	got, err := ApplyObjectDiffWithOffsets(s, d, "body", offsets)
	if err != nil {
		t.Fatal(err)
	}
	if got.Fields["body"].Str != "hello world" {
		t.Errorf("body %q", got.Fields["body"].Str)
	}
	want := []int{0, 6, 7}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("offsets %v, want %v", offsets, want)
			break
		}
	}
}

func TestOffsetsOtherFieldsStillApply(t *testing.T) {
	s := parse.MustParse(`{"body":"abc","n":1}`)
	d := mustDelta(t, `{"n":{"o":"r","v":2}}`)
	offsets := []int{1}
	got, err := ApplyObjectDiffWithOffsets(s, d, "body", offsets)
	if err != nil {
		t.Fatal(err)
	}
	if got.Fields["n"].Num != 2 {
		t.Errorf("n = %v", got.Fields["n"].Num)
	}
	if offsets[0] != 1 {
		t.Errorf("offsets touched: %v", offsets)
	}
}

func TestOffsetsTextDeltaOnNonString(t *testing.T) {
	s := parse.MustParse(`{"body":7}`)
	d := Delta{"body": &Op{Code: OpTextDelta, Text: "=1"}}
	if _, err := ApplyObjectDiffWithOffsets(s, d, "body", nil); err == nil {
		t.Error("expected error for text delta on number")
	}
}
