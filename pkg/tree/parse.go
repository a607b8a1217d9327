// parse.go builds a Tree from goldmark's AST.
package tree

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// mdParser is a goldmark instance with the GFM table and strikethrough
// extensions enabled.
var mdParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
)

// Parse parses Markdown source into a new Tree.
func Parse(source []byte) *Tree {
	doc := mdParser.Parser().Parse(text.NewReader(source))

	b := &builder{
		t:      New(),
		source: source,
		lines:  lineStarts(source),
	}
	b.t.nodes[b.t.root].Pos = b.span(doc)
	b.children(b.t.root, doc)
	return b.t
}

// builder holds state while converting the goldmark AST.
type builder struct {
	t      *Tree
	source []byte
	lines  []int
}

func (b *builder) children(parent NodeID, n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		b.convert(parent, child)
	}
}

// add allocates a node of kind for n, attaches it to parent and returns it.
func (b *builder) add(parent NodeID, kind Kind, n ast.Node) NodeID {
	id := b.t.NewNode(kind)
	b.t.nodes[id].Pos = b.span(n)
	b.t.AppendChild(parent, id)
	return id
}

func (b *builder) convert(parent NodeID, n ast.Node) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		id := b.add(parent, Paragraph, node)
		b.children(id, node)

	case *ast.Heading:
		id := b.add(parent, Heading, node)
		b.t.nodes[id].Level = node.Level
		b.children(id, node)

	case *ast.Blockquote:
		id := b.add(parent, BlockQuote, node)
		b.children(id, node)

	case *ast.List:
		id := b.add(parent, List, node)
		l := &b.t.nodes[id]
		l.Ordered = node.IsOrdered()
		l.Start = node.Start
		l.Tight = node.IsTight
		l.Delimiter = node.Marker
		b.children(id, node)

	case *ast.ListItem:
		id := b.add(parent, Item, node)
		b.children(id, node)

	case *ast.FencedCodeBlock:
		id := b.add(parent, CodeBlock, node)
		b.t.nodes[id].Literal = b.lineText(node)
		if node.Info != nil {
			b.t.nodes[id].Info = string(node.Info.Segment.Value(b.source))
		}

	case *ast.CodeBlock:
		id := b.add(parent, CodeBlock, node)
		b.t.nodes[id].Literal = b.lineText(node)

	case *ast.HTMLBlock:
		id := b.add(parent, HTMLBlock, node)
		literal := b.lineText(node)
		if node.HasClosure() {
			literal += string(node.ClosureLine.Value(b.source))
		}
		b.t.nodes[id].Literal = strings.TrimRight(literal, "\n")

	case *ast.ThematicBreak:
		b.add(parent, ThematicBreak, node)

	case *extast.Table:
		id := b.add(parent, Table, node)
		b.children(id, node)

	case *extast.TableHeader:
		id := b.add(parent, TableHeader, node)
		b.children(id, node)

	case *extast.TableRow:
		id := b.add(parent, TableRow, node)
		b.children(id, node)

	case *extast.TableCell:
		id := b.add(parent, TableCell, node)
		_, header := node.Parent().(*extast.TableHeader)
		b.t.nodes[id].Header = header
		b.t.nodes[id].Align = convertAlign(node.Alignment)
		b.children(id, node)

	case *ast.Text:
		b.text(parent, node)

	case *ast.String:
		id := b.add(parent, Text, node)
		if node.IsCode() || node.IsRaw() {
			b.t.nodes[id].Literal = string(node.Value)
		} else {
			b.t.nodes[id].Literal = resolveText(node.Value)
		}

	case *ast.CodeSpan:
		id := b.add(parent, Code, node)
		var buf bytes.Buffer
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				value := t.Segment.Value(b.source)
				if bytes.HasSuffix(value, []byte("\n")) {
					buf.Write(value[:len(value)-1])
					buf.WriteByte(' ')
				} else {
					buf.Write(value)
				}
			}
		}
		b.t.nodes[id].Literal = buf.String()

	case *ast.Emphasis:
		kind := Emph
		if node.Level == 2 {
			kind = Strong
		}
		id := b.add(parent, kind, node)
		b.children(id, node)

	case *extast.Strikethrough:
		id := b.add(parent, Strikethrough, node)
		b.children(id, node)

	case *ast.Link:
		id := b.add(parent, Link, node)
		b.t.nodes[id].Destination = string(util.URLEscape(node.Destination, true))
		b.t.nodes[id].Title = resolveText(node.Title)
		b.children(id, node)

	case *ast.Image:
		id := b.add(parent, Image, node)
		b.t.nodes[id].Destination = string(util.URLEscape(node.Destination, true))
		b.t.nodes[id].Title = resolveText(node.Title)
		b.children(id, node)

	case *ast.AutoLink:
		url := node.URL(b.source)
		if node.AutoLinkType == ast.AutoLinkEmail &&
			!bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		id := b.add(parent, Link, node)
		b.t.nodes[id].Destination = string(util.URLEscape(url, false))
		label := b.t.NewText(string(node.Label(b.source)))
		b.t.nodes[label].Pos = b.t.nodes[id].Pos
		b.t.AppendChild(id, label)

	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			buf.Write(seg.Value(b.source))
		}
		id := b.add(parent, HTMLInline, node)
		b.t.nodes[id].Literal = buf.String()

	default:
		// Unknown extension nodes keep their content.
		b.children(parent, n)
	}
}

// text converts a goldmark text segment, splitting off its trailing line
// break into a separate node.
func (b *builder) text(parent NodeID, node *ast.Text) {
	value := node.Segment.Value(b.source)
	if len(value) > 0 {
		id := b.add(parent, Text, node)
		if node.IsRaw() {
			b.t.nodes[id].Literal = string(value)
		} else {
			b.t.nodes[id].Literal = resolveText(value)
		}
	}
	switch {
	case node.HardLineBreak():
		b.add(parent, LineBreak, node)
	case node.SoftLineBreak():
		b.add(parent, SoftBreak, node)
	}
}

func (b *builder) lineText(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(b.source))
	}
	return buf.String()
}

// resolveText undoes backslash escapes and character references.
func resolveText(v []byte) string {
	if len(v) == 0 {
		return ""
	}
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}

func convertAlign(a extast.Alignment) Align {
	switch a {
	case extast.AlignLeft:
		return AlignLeft
	case extast.AlignCenter:
		return AlignCenter
	case extast.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}

// span returns the source range of n, taken from its own lines or segment,
// or from its first and last descendants that have one.
func (b *builder) span(n ast.Node) Span {
	start, ok := firstOffset(n)
	if !ok {
		return Span{}
	}
	end, _ := lastOffset(n)
	return Span{Start: b.position(start), End: b.position(end)}
}

func firstOffset(n ast.Node) (int, bool) {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := firstOffset(c); ok {
			return off, true
		}
	}
	return 0, false
}

func lastOffset(n ast.Node) (int, bool) {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Stop, true
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(n.Lines().Len() - 1).Stop, true
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if off, ok := lastOffset(c); ok {
			return off, true
		}
	}
	return 0, false
}

func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (b *builder) position(offset int) Pos {
	line := sort.Search(len(b.lines), func(i int) bool { return b.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Pos{Line: line + 1, Column: offset - b.lines[line] + 1}
}
