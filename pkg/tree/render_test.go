package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Markdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "basic paragraph",
			input:    "Hello world",
			expected: "<p>Hello world</p>\n",
		},
		{
			name:     "multiple paragraphs",
			input:    "First paragraph.\n\nSecond paragraph.",
			expected: "<p>First paragraph.</p>\n<p>Second paragraph.</p>\n",
		},
		{
			name:     "h1 header",
			input:    "# Title",
			expected: "<h1>Title</h1>\n",
		},
		{
			name:     "h3 header",
			input:    "### Section",
			expected: "<h3>Section</h3>\n",
		},
		{
			name:     "bold and italic",
			input:    "**bold** and *italic*",
			expected: "<p><strong>bold</strong> and <em>italic</em></p>\n",
		},
		{
			name:     "strikethrough",
			input:    "~~gone~~",
			expected: "<p><del>gone</del></p>\n",
		},
		{
			name:     "unordered list",
			input:    "- Item 1\n- Item 2\n- Item 3",
			expected: "<ul>\n<li>Item 1</li>\n<li>Item 2</li>\n<li>Item 3</li>\n</ul>\n",
		},
		{
			name:     "ordered list",
			input:    "1. First\n2. Second",
			expected: "<ol>\n<li>First</li>\n<li>Second</li>\n</ol>\n",
		},
		{
			name:     "ordered list with start",
			input:    "3. Third\n4. Fourth",
			expected: "<ol start=\"3\">\n<li>Third</li>\n<li>Fourth</li>\n</ol>\n",
		},
		{
			name:     "inline code",
			input:    "Use `code` here",
			expected: "<p>Use <code>code</code> here</p>\n",
		},
		{
			name:     "code block",
			input:    "```\ncode here\n```",
			expected: "<pre><code>code here\n</code></pre>\n",
		},
		{
			name:     "code block with language",
			input:    "```go\nx := 1 < 2\n```",
			expected: "<pre><code class=\"language-go\">x := 1 &lt; 2\n</code></pre>\n",
		},
		{
			name:     "link",
			input:    "[Go](https://go.dev)",
			expected: "<p><a href=\"https://go.dev\">Go</a></p>\n",
		},
		{
			name:     "link with title",
			input:    "[Go](/go \"The Go site\")",
			expected: "<p><a href=\"/go\" title=\"The Go site\">Go</a></p>\n",
		},
		{
			name:     "image",
			input:    "![A cat](cat.png)",
			expected: "<p><img src=\"cat.png\" alt=\"A cat\" /></p>\n",
		},
		{
			name:     "autolink",
			input:    "<https://example.com>",
			expected: "<p><a href=\"https://example.com\">https://example.com</a></p>\n",
		},
		{
			name:     "email autolink",
			input:    "<me@example.com>",
			expected: "<p><a href=\"mailto:me@example.com\">me@example.com</a></p>\n",
		},
		{
			name:     "blockquote",
			input:    "> quoted",
			expected: "<blockquote>\n<p>quoted</p>\n</blockquote>\n",
		},
		{
			name:     "horizontal rule",
			input:    "---",
			expected: "<hr />\n",
		},
		{
			name:     "escaped punctuation",
			input:    `a \* b`,
			expected: "<p>a * b</p>\n",
		},
		{
			name:     "entities",
			input:    "&amp; &lt; &#65;",
			expected: "<p>&amp; &lt; A</p>\n",
		},
		{
			name:     "inline html",
			input:    "a <span>b</span>",
			expected: "<p>a <span>b</span></p>\n",
		},
		{
			name:     "html block",
			input:    "<div>\nraw\n</div>",
			expected: "<div>\nraw\n</div>\n",
		},
		{
			name:     "hard line break",
			input:    "a  \nb",
			expected: "<p>a<br />\nb</p>\n",
		},
		{
			name:     "table",
			input:    "| a | b |\n|---|:-:|\n| 1 | 2 |",
			expected: "<table>\n<thead>\n<tr>\n<th>a</th>\n<th align=\"center\">b</th>\n</tr>\n</thead>\n" +
				"<tbody>\n<tr>\n<td>1</td>\n<td align=\"center\">2</td>\n</tr>\n</tbody>\n</table>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Parse([]byte(tt.input))
			assert.Equal(t, tt.expected, Render(tr, tr.Root(), RenderOptions{}))
		})
	}
}

func TestRender_SoftBreakOption(t *testing.T) {
	tr := Parse([]byte("one\ntwo"))

	assert.Equal(t, "<p>one\ntwo</p>\n", Render(tr, tr.Root(), RenderOptions{}))
	assert.Equal(t, "<p>one<br/>two</p>\n", Render(tr, tr.Root(), RenderOptions{SoftBreak: "<br/>"}))
}

func TestRender_Subtree(t *testing.T) {
	tr := Parse([]byte("see [the **docs**](/docs) now"))

	var link NodeID
	w := NewWalker(tr, tr.Root())
	for ev, ok := w.Next(); ok; ev, ok = w.Next() {
		if tr.Kind(ev.Node) == Link {
			link = ev.Node
			break
		}
	}
	require.NotEqual(t, Nil, link)

	assert.Equal(t, `<a href="/docs">the <strong>docs</strong></a>`, Render(tr, link, RenderOptions{}))
}

func TestRender_HTMLInlineIsVerbatim(t *testing.T) {
	tr := New()
	p := tr.AppendChild(tr.Root(), tr.NewNode(Paragraph))
	tr.AppendChild(p, tr.NewText("a < b"))
	tr.AppendChild(p, tr.NewHTMLInline(`<span class="x">`, Span{}))

	assert.Equal(t, "<p>a &lt; b<span class=\"x\"></p>\n", Render(tr, tr.Root(), RenderOptions{}))
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;&amp;", EscapeHTML(`<a href="x">&`))
}

func TestDump(t *testing.T) {
	tr := New()
	p := tr.AppendChild(tr.Root(), tr.NewNode(Paragraph))
	tr.AppendChild(p, tr.NewText("line\nbreak"))
	em := tr.AppendChild(p, tr.NewNode(Emph))
	tr.AppendChild(em, tr.NewText("x"))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, tr, tr.Root()))

	assert.Equal(t, "document: \n  paragraph: \n    text: line\\nbreak\n    emph: \n      text: x\n", buf.String())
}
