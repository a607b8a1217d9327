// format.go post-processes generated pages: minify uses tdewolff/minify,
// prettify the x/net/html tokenizer.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	tdminify "github.com/tdewolff/minify/v2"
	tdhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"

	"github.com/open-cli-collective/snap/internal/config"
)

const prettyIndent = "    "

// blockElements start on their own line when prettified.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "caption": true, "dd": true, "details": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"header": true, "hr": true, "html": true, "legend": true, "li": true,
	"link": true, "main": true, "meta": true, "nav": true, "noscript": true,
	"ol": true, "p": true, "pre": true, "script": true, "section": true,
	"style": true, "summary": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "title": true, "tr": true,
	"ul": true,
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// rawElements hold text that is copied unchanged.
var rawElements = map[string]bool{
	"pre": true, "script": true, "style": true, "textarea": true,
}

// Format applies a project outputFormat to a generated page.
func Format(page, format string) (string, error) {
	switch format {
	case "", config.FormatNone:
		return page, nil
	case config.FormatMinify:
		return minify(page)
	case config.FormatPrettify:
		return prettify(page)
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// collapseSpace replaces each run of HTML whitespace with a single space.
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
			space = true
		default:
			if space {
				sb.WriteByte(' ')
				space = false
			}
			sb.WriteByte(s[i])
		}
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

func tokenizerDone(z *html.Tokenizer) error {
	if err := z.Err(); !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// minify drops comments and collapses whitespace outside pre, textarea,
// script and style. Document and end tags and attribute quotes are kept so
// the page stays readable as plain HTML.
func minify(page string) (string, error) {
	m := tdminify.New()
	m.Add("text/html", &tdhtml.Minifier{
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
	out, err := m.String("text/html", page)
	if err != nil {
		return "", fmt.Errorf("failed to minify page: %w", err)
	}
	return strings.TrimSpace(out), nil
}

type openElement struct {
	name  string
	lines int
}

// prettyPrinter puts block elements on their own indented lines and keeps
// inline content on the line of its enclosing block.
type prettyPrinter struct {
	out         []byte
	lines       int
	open        []openElement
	raw         int
	atLineStart bool
}

func (p *prettyPrinter) newline() {
	if len(p.out) > 0 {
		p.out = bytes.TrimRight(p.out, " ")
		p.out = append(p.out, '\n')
		p.lines++
	}
	p.out = append(p.out, strings.Repeat(prettyIndent, len(p.open))...)
	p.atLineStart = true
}

func (p *prettyPrinter) write(s []byte) {
	if len(s) == 0 {
		return
	}
	p.out = append(p.out, s...)
	p.atLineStart = false
}

func (p *prettyPrinter) text(s []byte) {
	if p.raw > 0 {
		p.write(s)
		return
	}
	text := collapseSpace(string(s))
	if p.atLineStart {
		text = strings.TrimLeft(text, " ")
	}
	p.write([]byte(text))
}

func (p *prettyPrinter) start(name string, raw []byte, selfClosing bool) {
	if p.raw > 0 {
		p.write(raw)
		if rawElements[name] && !selfClosing {
			p.raw++
		}
		return
	}
	if !blockElements[name] {
		p.write(raw)
		if rawElements[name] && !selfClosing {
			p.raw++
		}
		return
	}

	p.newline()
	p.write(raw)
	if selfClosing || voidElements[name] {
		return
	}
	p.open = append(p.open, openElement{name: name, lines: p.lines})
	if rawElements[name] {
		p.raw++
	}
}

func (p *prettyPrinter) end(name string, raw []byte) {
	if rawElements[name] && p.raw > 0 {
		p.raw--
	}
	if p.raw > 0 || !blockElements[name] {
		p.write(raw)
		return
	}

	i := len(p.open) - 1
	for i >= 0 && p.open[i].name != name {
		i--
	}
	if i < 0 {
		p.write(raw)
		return
	}
	el := p.open[i]
	p.open = p.open[:i]
	if p.lines != el.lines && !rawElements[name] {
		p.newline()
	}
	p.write(raw)
}

// prettify indents block elements. Text inside pre, script, style and
// textarea is left alone.
func prettify(page string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(page))
	p := &prettyPrinter{atLineStart: true}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := tokenizerDone(z); err != nil {
				return "", err
			}
			return string(bytes.TrimSpace(p.out)) + "\n", nil

		case html.DoctypeToken:
			p.newline()
			p.write(z.Raw())

		case html.CommentToken:
			if p.raw == 0 && p.atLineStart {
				p.newline()
			}
			p.write(z.Raw())

		case html.TextToken:
			p.text(z.Raw())

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := append([]byte(nil), z.Raw()...)
			name, _ := z.TagName()
			p.start(string(name), raw, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			raw := append([]byte(nil), z.Raw()...)
			name, _ := z.TagName()
			p.end(string(name), raw)
		}
	}
}
