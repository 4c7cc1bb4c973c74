// Package ir is the in-memory representation of JSON values shared by
// the diff, patch and transform engines. Nodes are plain data; the
// engines never mutate their inputs and return fresh nodes instead.
package ir
