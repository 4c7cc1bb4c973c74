package textdiff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jot-format/go-jot/debug"
)

// ApplyWithOffsets decodes delta against base and applies it to text,
// remapping offsets (caret positions into text) in place so they track
// the edited document. Returns the edited text and per-hunk success.
func ApplyWithOffsets(base, delta, text string, offsets []int) (string, []bool, error) {
	dmp := DMP()
	diffs, err := dmp.DiffFromDelta(base, delta)
	if err != nil {
		return "", nil, fmt.Errorf("bad text delta %q: %w", delta, err)
	}
	patches := dmp.PatchMake(base, diffs)
	res, applied := PatchApplyWithOffsets(patches, text, offsets)
	return res, applied, nil
}

// PatchApplyWithOffsets is PatchApply with offset bookkeeping: patches
// are padded, split, and located exactly as the library does it, but as
// each hunk's edits land the offsets are adjusted in place. Offsets
// strictly past an insertion point slide right; offsets inside a deleted
// span clamp to its start. A hunk that cannot be located leaves offsets
// untouched.
func PatchApplyWithOffsets(patches []diffmatchpatch.Patch, text string, offsets []int) (string, []bool) {
	if len(patches) == 0 {
		return text, []bool{}
	}
	dmp := DMP()
	patches = dmp.PatchDeepCopy(patches)

	nullPadding := dmp.PatchAddPadding(patches)
	padLen := len(nullPadding)
	text = nullPadding + text + nullPadding
	patches = dmp.PatchSplitMax(patches)

	delta := 0
	applies := make([]bool, len(patches))
	for x, patch := range patches {
		expectedLoc := patch.Start2 + delta
		text1 := dmp.DiffText1(patch.Diffs)
		var startLoc int
		endLoc := -1
		if len(text1) > dmp.MatchMaxBits {
			startLoc = dmp.MatchMain(text, text1[:dmp.MatchMaxBits], expectedLoc)
			if startLoc != -1 {
				endLoc = dmp.MatchMain(text,
					text1[len(text1)-dmp.MatchMaxBits:], expectedLoc+len(text1)-dmp.MatchMaxBits)
				if endLoc == -1 || startLoc >= endLoc {
					startLoc = -1
				}
			}
		} else {
			startLoc = dmp.MatchMain(text, text1, expectedLoc)
		}
		if startLoc == -1 {
			applies[x] = false
			delta -= patch.Length2 - patch.Length1
			if debug.Offsets() {
				debug.Logf("hunk %d missed near %d\n", x, expectedLoc)
			}
			continue
		}
		applies[x] = true
		delta = startLoc - expectedLoc
		var text2 string
		if endLoc == -1 {
			text2 = text[startLoc:min(startLoc+len(text1), len(text))]
		} else {
			text2 = text[startLoc:min(endLoc+dmp.MatchMaxBits, len(text))]
		}
		diffs := dmp.DiffMain(text1, text2, false)
		if len(text1) > dmp.MatchMaxBits &&
			float64(dmp.DiffLevenshtein(diffs))/float64(len(text1)) > dmp.PatchDeleteThreshold {
			applies[x] = false
			continue
		}
		diffs = dmp.DiffCleanupSemanticLossless(diffs)
		index1 := 0
		for _, d := range patch.Diffs {
			if d.Type != diffmatchpatch.DiffEqual {
				index2 := dmp.DiffXIndex(diffs, index1)
				switch d.Type {
				case diffmatchpatch.DiffInsert:
					at := startLoc + index2
					text = text[:at] + d.Text + text[at:]
					for i, o := range offsets {
						if o+padLen > at {
							offsets[i] = o + len(d.Text)
						}
					}
				case diffmatchpatch.DiffDelete:
					end2 := dmp.DiffXIndex(diffs, index1+len(d.Text))
					at := startLoc + index2
					n := end2 - index2
					text = text[:at] + text[at+n:]
					for i, o := range offsets {
						switch {
						case o+padLen >= at+n:
							offsets[i] = o - n
						case o+padLen > at:
							offsets[i] = at - padLen
						}
					}
				}
			}
			if d.Type != diffmatchpatch.DiffDelete {
				index1 += len(d.Text)
			}
		}
	}
	text = text[padLen : len(text)-padLen]
	return text, applies
}
