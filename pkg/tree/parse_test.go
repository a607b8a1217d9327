package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstOf returns the first node of kind in document order.
func firstOf(t *Tree, kind Kind) NodeID {
	w := NewWalker(t, t.Root())
	for ev, ok := w.Next(); ok; ev, ok = w.Next() {
		if t.Kind(ev.Node) == kind {
			return ev.Node
		}
	}
	return Nil
}

func TestParse_Structure(t *testing.T) {
	tr := Parse([]byte("# Title\n\nSome *emphasis* and a [link](/x).\n"))

	blocks := tr.Children(tr.Root())
	require.Len(t, blocks, 2)
	assert.Equal(t, Heading, tr.Kind(blocks[0]))
	assert.Equal(t, 1, tr.Node(blocks[0]).Level)
	assert.Equal(t, Paragraph, tr.Kind(blocks[1]))

	var kinds []Kind
	for _, id := range tr.Children(blocks[1]) {
		kinds = append(kinds, tr.Kind(id))
	}
	assert.Equal(t, []Kind{Text, Emph, Text, Link, Text}, kinds)
}

func TestParse_Positions(t *testing.T) {
	tr := Parse([]byte("# Title\n\nSecond para"))

	blocks := tr.Children(tr.Root())
	require.Len(t, blocks, 2)
	assert.Equal(t, Pos{Line: 3, Column: 1}, tr.Node(blocks[1]).Pos.Start)

	text := tr.FirstChild(blocks[1])
	assert.Equal(t, Pos{Line: 3, Column: 1}, tr.Node(text).Pos.Start)
	assert.Equal(t, Pos{Line: 3, Column: 12}, tr.Node(text).Pos.End)
}

func TestParse_List(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		ordered   bool
		start     int
		tight     bool
		delimiter byte
	}{
		{"bullet", "- a\n- b\n", false, 0, true, '-'},
		{"star bullet", "* a\n* b\n", false, 0, true, '*'},
		{"ordered", "2. a\n3. b\n", true, 2, true, '.'},
		{"ordered paren", "1) a\n2) b\n", true, 1, true, ')'},
		{"loose", "- a\n\n- b\n", false, 0, false, '-'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Parse([]byte(tt.input))
			list := firstOf(tr, List)
			require.NotEqual(t, Nil, list)

			n := tr.Node(list)
			assert.Equal(t, tt.ordered, n.Ordered)
			assert.Equal(t, tt.tight, n.Tight)
			assert.Equal(t, tt.delimiter, n.Delimiter)
			if tt.ordered {
				assert.Equal(t, tt.start, n.Start)
			}
			assert.Len(t, tr.Children(list), 2)
		})
	}
}

func TestParse_CodeBlockInfo(t *testing.T) {
	tr := Parse([]byte("```js title=x\nlet a;\n```\n"))

	code := firstOf(tr, CodeBlock)
	require.NotEqual(t, Nil, code)
	assert.Equal(t, "js title=x", tr.Node(code).Info)
	assert.Equal(t, "let a;\n", tr.Node(code).Literal)
}

func TestParse_IndentedCodeBlock(t *testing.T) {
	tr := Parse([]byte("    indented\n"))

	code := firstOf(tr, CodeBlock)
	require.NotEqual(t, Nil, code)
	assert.Equal(t, "indented\n", tr.Node(code).Literal)
	assert.Empty(t, tr.Node(code).Info)
}

func TestParse_LinkAttributes(t *testing.T) {
	tr := Parse([]byte(`[a](/path with\ space "A &amp; B")`))

	// The space makes this plain text rather than a link.
	assert.Equal(t, Nil, firstOf(tr, Link))

	tr = Parse([]byte(`[a](</path with space> "A &amp; B")`))
	link := firstOf(tr, Link)
	require.NotEqual(t, Nil, link)
	assert.Equal(t, "/path%20with%20space", tr.Node(link).Destination)
	assert.Equal(t, "A & B", tr.Node(link).Title)
	assert.Equal(t, "a", tr.TextContent(link))
}

func TestParse_ImageHasAltChildren(t *testing.T) {
	tr := Parse([]byte("![alt *text*](img.png \"T\")"))

	img := firstOf(tr, Image)
	require.NotEqual(t, Nil, img)
	assert.Equal(t, "img.png", tr.Node(img).Destination)
	assert.Equal(t, "T", tr.Node(img).Title)
	assert.Equal(t, "alt text", tr.TextContent(img))
}

func TestParse_Breaks(t *testing.T) {
	tr := Parse([]byte("a\nb  \nc"))

	p := firstOf(tr, Paragraph)
	var kinds []Kind
	for _, id := range tr.Children(p) {
		kinds = append(kinds, tr.Kind(id))
	}
	assert.Equal(t, []Kind{Text, SoftBreak, Text, LineBreak, Text}, kinds)
}

func TestParse_TableCells(t *testing.T) {
	tr := Parse([]byte("| h1 | h2 |\n|:--|--:|\n| c1 | c2 |\n"))

	table := firstOf(tr, Table)
	require.NotEqual(t, Nil, table)

	parts := tr.Children(table)
	require.Len(t, parts, 2)
	assert.Equal(t, TableHeader, tr.Kind(parts[0]))
	assert.Equal(t, TableRow, tr.Kind(parts[1]))

	header := tr.Children(parts[0])
	require.Len(t, header, 2)
	assert.True(t, tr.Node(header[0]).Header)
	assert.Equal(t, AlignLeft, tr.Node(header[0]).Align)
	assert.Equal(t, AlignRight, tr.Node(header[1]).Align)

	row := tr.Children(parts[1])
	require.Len(t, row, 2)
	assert.False(t, tr.Node(row[0]).Header)
	assert.Equal(t, "c2", tr.TextContent(row[1]))
}

func TestParse_RawHTML(t *testing.T) {
	tr := Parse([]byte("x <b class=\"y\">z</b>"))

	assert.Equal(t, 2, tr.Count(tr.Root(), HTMLInline))
	assert.Equal(t, `<b class="y">`, tr.Node(firstOf(tr, HTMLInline)).Literal)
}
