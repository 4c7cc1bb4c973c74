package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Diff      bool
	Patch     bool
	Transform bool
	Offsets   bool
	Sync      bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("JOT_DEBUG_DIFF")
	d.Patch = boolEnv("JOT_DEBUG_PATCH")
	d.Transform = boolEnv("JOT_DEBUG_TRANSFORM")
	d.Offsets = boolEnv("JOT_DEBUG_OFFSETS")
	d.Sync = boolEnv("JOT_DEBUG_SYNC")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Transform() bool {
	return d.Transform
}
func Offsets() bool {
	return d.Offsets
}
func Sync() bool {
	return d.Sync
}
