package encode

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/jot-format/go-jot/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		able := Colorable{
			Type: t,
			Attr: SepColor,
		}
		colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = ir.NumberType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString

	able.Type = ir.ObjectType
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()

	able.Type = ir.StringType
	able.Attr = ValueColor
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

// Render produces indented JSON with terminal colors. Object keys come
// out sorted, matching Encode.
func (c *Colors) Render(n *ir.Node, indent string) string {
	sb := &strings.Builder{}
	c.render(n, sb, indent, 0)
	sb.WriteString("\n")
	return sb.String()
}

func (c *Colors) render(n *ir.Node, sb *strings.Builder, indent string, depth int) {
	t := n.Type()
	switch t {
	case ir.NullType:
		sb.WriteString(c.Color(t, ValueColor, "null"))
	case ir.BoolType:
		sb.WriteString(c.Color(t, ValueColor, strconv.FormatBool(n.Bool)))
	case ir.NumberType:
		d, _ := json.Marshal(n.Num)
		sb.WriteString(c.Color(t, ValueColor, string(d)))
	case ir.StringType:
		d, _ := json.Marshal(n.Str)
		sb.WriteString(c.Color(t, ValueColor, string(d)))
	case ir.ArrayType:
		if len(n.Values) == 0 {
			sb.WriteString(c.Color(t, SepColor, "[]"))
			return
		}
		sb.WriteString(c.Color(t, SepColor, "["))
		for i, v := range n.Values {
			if i > 0 {
				sb.WriteString(c.Color(t, SepColor, ","))
			}
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(indent, depth+1))
			c.render(v, sb, indent, depth+1)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(indent, depth))
		sb.WriteString(c.Color(t, SepColor, "]"))
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			sb.WriteString(c.Color(t, SepColor, "{}"))
			return
		}
		keys := make([]string, 0, len(n.Fields))
		for k := range n.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(c.Color(t, SepColor, "{"))
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(c.Color(t, SepColor, ","))
			}
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(indent, depth+1))
			d, _ := json.Marshal(k)
			sb.WriteString(c.Color(t, FieldColor, string(d)))
			sb.WriteString(c.Color(t, SepColor, ": "))
			c.render(n.Fields[k], sb, indent, depth+1)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(indent, depth))
		sb.WriteString(c.Color(t, SepColor, "}"))
	}
}
