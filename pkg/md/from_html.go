package md

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// ImportOptions configures the HTML to markdown conversion.
type ImportOptions struct {
	// Selector picks the element whose content is converted. Empty means
	// the whole body.
	Selector string

	// Decoration is external link markup to remove, so that a page compiled
	// by snap converts back to its source text.
	Decoration string
}

// FromHTML converts an HTML page to Markdown suitable for a snap source file.
// Scripts and styles are dropped, and anchors lose the
// target="_blank" that the compiler adds to external links.
func FromHTML(html string, opts ImportOptions) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	if opts.Decoration != "" {
		html = strings.ReplaceAll(html, opts.Decoration, "")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find(`a[target="_blank"]`).RemoveAttr("target")

	root := doc.Find("body")
	if opts.Selector != "" {
		root = doc.Find(opts.Selector).First()
		if root.Length() == 0 {
			return "", fmt.Errorf("selector %q matched nothing", opts.Selector)
		}
	}

	content, err := root.Html()
	if err != nil {
		return "", fmt.Errorf("extracting content: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(markdown), nil
}
