// Package encode encodes IR nodes to JSON text.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// Indented, colored output for terminals
//	colors := encode.NewColors()
//	s := colors.Render(node, "  ")
//
// # Related Packages
//
//   - github.com/jot-format/go-jot/ir - IR representation
//   - github.com/jot-format/go-jot/parse - decoding
package encode
