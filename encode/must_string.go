package encode

import (
	"strings"

	"github.com/jot-format/go-jot/ir"
)

func MustString(n *ir.Node) string {
	s, err := String(n)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(s)
}
