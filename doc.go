// Package jot computes, applies, and transforms structural deltas
// between JSON-shaped values.
//
// A delta maps object fields or stringified list indices to operations.
// Diff produces deltas, ApplyDiff consumes them, and the Transform
// functions rebase one delta over a concurrent one so collaborative
// edits converge.
//
// String values diff at character level through the textdiff package;
// lists can opt into positional or line-mode diffing via Policy.
package jot
