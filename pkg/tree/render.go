// render.go serializes a Tree to HTML.
package tree

import (
	"strconv"
	"strings"
)

// RenderOptions configures HTML output.
type RenderOptions struct {
	// SoftBreak is written for a soft line break. Defaults to "\n".
	SoftBreak string
}

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes text for use in HTML content or a quoted attribute.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Render returns the HTML for id and its descendants.
func Render(t *Tree, id NodeID, opts RenderOptions) string {
	if opts.SoftBreak == "" {
		opts.SoftBreak = "\n"
	}
	r := &htmlRenderer{t: t, opts: opts}
	w := NewWalker(t, id)
	for ev, ok := w.Next(); ok; ev, ok = w.Next() {
		if skip := r.render(ev); skip {
			w.ResumeAt(ev.Node, false)
		}
	}
	return r.sb.String()
}

type htmlRenderer struct {
	t    *Tree
	opts RenderOptions
	sb   strings.Builder
	last byte
}

func (r *htmlRenderer) lit(s string) {
	if s == "" {
		return
	}
	r.sb.WriteString(s)
	r.last = s[len(s)-1]
}

func (r *htmlRenderer) out(s string) {
	r.lit(EscapeHTML(s))
}

// cr starts a new line unless output is empty or already at one.
func (r *htmlRenderer) cr() {
	if r.sb.Len() > 0 && r.last != '\n' {
		r.lit("\n")
	}
}

// inTightList reports whether paragraph id is rendered without <p> tags.
func (r *htmlRenderer) inTightList(id NodeID) bool {
	item := r.t.Parent(id)
	if item == Nil || r.t.Kind(item) != Item {
		return false
	}
	list := r.t.Parent(item)
	return list != Nil && r.t.Kind(list) == List && r.t.nodes[list].Tight
}

// render writes one event. It returns true when the children of an entered
// container have already been written and must be skipped.
func (r *htmlRenderer) render(ev Event) bool {
	n := &r.t.nodes[ev.Node]
	switch n.Kind {
	case Document:

	case Paragraph:
		if r.inTightList(ev.Node) {
			break
		}
		if ev.Entering {
			r.cr()
			r.lit("<p>")
		} else {
			r.lit("</p>")
			r.cr()
		}

	case Heading:
		tag := "h" + strconv.Itoa(n.Level)
		if ev.Entering {
			r.cr()
			r.lit("<" + tag + ">")
		} else {
			r.lit("</" + tag + ">")
			r.cr()
		}

	case BlockQuote:
		r.cr()
		if ev.Entering {
			r.lit("<blockquote>")
			r.cr()
		} else {
			r.lit("</blockquote>")
			r.cr()
		}

	case List:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		r.cr()
		if ev.Entering {
			if n.Ordered && n.Start != 1 {
				r.lit("<ol start=\"" + strconv.Itoa(n.Start) + "\">")
			} else {
				r.lit("<" + tag + ">")
			}
			r.cr()
		} else {
			r.lit("</" + tag + ">")
			r.cr()
		}

	case Item:
		if ev.Entering {
			r.cr()
			r.lit("<li>")
		} else {
			r.lit("</li>")
			r.cr()
		}

	case CodeBlock:
		r.cr()
		if lang := infoLanguage(n.Info); lang != "" {
			r.lit(`<pre><code class="language-` + EscapeHTML(lang) + `">`)
		} else {
			r.lit("<pre><code>")
		}
		r.out(n.Literal)
		r.lit("</code></pre>")
		r.cr()

	case HTMLBlock:
		r.cr()
		r.lit(n.Literal)
		r.cr()

	case ThematicBreak:
		r.cr()
		r.lit("<hr />")
		r.cr()

	case Table:
		r.cr()
		if ev.Entering {
			r.lit("<table>")
		} else {
			if r.t.LastChild(ev.Node) != r.t.FirstChild(ev.Node) {
				r.cr()
				r.lit("</tbody>")
			}
			r.cr()
			r.lit("</table>")
		}
		r.cr()

	case TableHeader:
		r.cr()
		if ev.Entering {
			r.lit("<thead>")
			r.cr()
			r.lit("<tr>")
		} else {
			r.lit("</tr>")
			r.cr()
			r.lit("</thead>")
			r.cr()
			if r.t.Next(ev.Node) != Nil {
				r.lit("<tbody>")
			}
		}
		r.cr()

	case TableRow:
		r.cr()
		if ev.Entering {
			r.lit("<tr>")
		} else {
			r.lit("</tr>")
		}
		r.cr()

	case TableCell:
		tag := "td"
		if n.Header {
			tag = "th"
		}
		if ev.Entering {
			r.cr()
			if n.Align != AlignNone {
				r.lit("<" + tag + ` align="` + n.Align.String() + `">`)
			} else {
				r.lit("<" + tag + ">")
			}
		} else {
			r.lit("</" + tag + ">")
			r.cr()
		}

	case Text:
		r.out(n.Literal)

	case SoftBreak:
		r.lit(r.opts.SoftBreak)

	case LineBreak:
		r.lit("<br />")
		r.cr()

	case Code:
		r.lit("<code>")
		r.out(n.Literal)
		r.lit("</code>")

	case Emph:
		r.tag("em", ev.Entering)

	case Strong:
		r.tag("strong", ev.Entering)

	case Strikethrough:
		r.tag("del", ev.Entering)

	case Link:
		if ev.Entering {
			r.lit(`<a href="` + EscapeHTML(n.Destination) + `"`)
			if n.Title != "" {
				r.lit(` title="` + EscapeHTML(n.Title) + `"`)
			}
			r.lit(">")
		} else {
			r.lit("</a>")
		}

	case Image:
		if !ev.Entering {
			break
		}
		r.lit(`<img src="` + EscapeHTML(n.Destination) + `" alt="`)
		r.out(r.t.TextContent(ev.Node))
		r.lit(`"`)
		if n.Title != "" {
			r.lit(` title="` + EscapeHTML(n.Title) + `"`)
		}
		r.lit(" />")
		return true

	case HTMLInline:
		r.lit(n.Literal)

	case Invalid:
	}
	return false
}

func (r *htmlRenderer) tag(name string, entering bool) {
	if entering {
		r.lit("<" + name + ">")
	} else {
		r.lit("</" + name + ">")
	}
}

// infoLanguage returns the first word of a fenced code info string.
func infoLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
