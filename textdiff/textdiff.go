// Package textdiff wraps diff-match-patch for string values. Deltas use
// the compact delta encoding, so they are cheap to ship over the wire
// and can be replayed against a drifted base with fuzzy matching.
package textdiff

import (
	"fmt"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	dmpOnce sync.Once
	dmp     *diffmatchpatch.DiffMatchPatch
)

// DMP returns the process-wide diff-match-patch instance every helper
// in this package runs on. Matching and patching tunables (MatchDistance,
// MatchThreshold, PatchDeleteThreshold, ...) are fields on it; callers
// that adjust them share the fields with all concurrent users.
func DMP() *diffmatchpatch.DiffMatchPatch {
	dmpOnce.Do(func() { dmp = diffmatchpatch.New() })
	return dmp
}

// Delta computes the edits from a to b in compact delta form. The
// second result is false when a and b are equal.
func Delta(a, b string) (string, bool) {
	dmp := DMP()
	diffs := dmp.DiffMain(a, b, true)
	if !HasEdits(diffs) {
		return "", false
	}
	return dmp.DiffToDelta(diffs), true
}

// LineDelta computes the edits from a to b at line granularity. Inputs
// are expected to be newline terminated on every line.
func LineDelta(a, b string) (string, bool) {
	dmp := DMP()
	c1, c2, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(c1, c2, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	diffs = dmp.DiffCleanupEfficiency(diffs)
	if !HasEdits(diffs) {
		return "", false
	}
	return dmp.DiffToDelta(diffs), true
}

// HasEdits reports whether any diff is an insert or delete.
func HasEdits(diffs []diffmatchpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}

// Apply replays delta against text. The delta is decoded against base;
// text may have drifted from base, in which case application is fuzzy.
func Apply(base, delta, text string) (string, error) {
	dmp := DMP()
	diffs, err := dmp.DiffFromDelta(base, delta)
	if err != nil {
		return "", fmt.Errorf("bad text delta %q: %w", delta, err)
	}
	patches := dmp.PatchMake(base, diffs)
	res, _ := dmp.PatchApply(patches, text)
	return res, nil
}

// Rediff computes a fresh delta from base to target, or returns ok=false
// when they are equal. Unlike Delta it runs without the line-level
// speedup and applies efficiency cleanup to the diff.
func Rediff(base, target string) (string, bool) {
	dmp := DMP()
	diffs := dmp.DiffMain(base, target, false)
	diffs = dmp.DiffCleanupEfficiency(diffs)
	if !HasEdits(diffs) {
		return "", false
	}
	return dmp.DiffToDelta(diffs), true
}
