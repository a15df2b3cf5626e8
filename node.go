package xlsxgen

import "strings"

// Attr is a single XML attribute. Values are written verbatim.
type Attr struct {
	Key   string
	Value string
}

// Node is an XML element. Children are serialized before Text.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []Node
	Text     string
}

// Build serializes n. Elements without children and text are self-closing.
func Build(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteByte('"')
	}
	if len(n.Children) == 0 && n.Text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString(n.Text)
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five XML special characters with entity references.
func Escape(s string) string {
	return escaper.Replace(s)
}
