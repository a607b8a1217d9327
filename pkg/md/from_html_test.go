package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTML(t *testing.T) {
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
			input:    "<p>Hello world</p>",
			expected: "Hello world",
		},
		{
			name:     "multiple paragraphs",
			input:    "<p>First paragraph.</p><p>Second paragraph.</p>",
			expected: "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:     "h1 header",
			input:    "<h1>Title</h1>",
			expected: "# Title",
		},
		{
			name:     "bold text",
			input:    "<p>This is <strong>bold</strong> text</p>",
			expected: "This is **bold** text",
		},
		{
			name:     "unordered list",
			input:    "<ul><li>Item 1</li><li>Item 2</li></ul>",
			expected: "- Item 1\n- Item 2",
		},
		{
			name:     "scripts and styles removed",
			input:    "<html><head><style>p{}</style></head><body><p>Kept</p><script>alert(1)</script></body></html>",
			expected: "Kept",
		},
		{
			name:     "target blank dropped",
			input:    `<p><a target="_blank" href="https://go.dev">Go</a></p>`,
			expected: "[Go](https://go.dev)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHTML(tt.input, ImportOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromHTML_Selector(t *testing.T) {
	page := `<html><body>
<nav><a href="/">Home</a></nav>
<main id="content"><h2>Inside</h2><p>Body text</p></main>
<footer>Footer</footer>
</body></html>`

	got, err := FromHTML(page, ImportOptions{Selector: "#content"})
	require.NoError(t, err)
	assert.Equal(t, "## Inside\n\nBody text", got)

	_, err = FromHTML(page, ImportOptions{Selector: ".missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `selector ".missing" matched nothing`)
}

func TestFromHTML_StripsDecoration(t *testing.T) {
	compiled := `<p>See <a target="_blank" href="https://go.dev">Go<sup>↗</sup></a>.</p>`

	got, err := FromHTML(compiled, ImportOptions{Decoration: "<sup>↗</sup>"})
	require.NoError(t, err)
	assert.Equal(t, "See [Go](https://go.dev).", got)
}
