// rewrite.go replaces link and image nodes with explicit inline markup.
package md

import (
	"fmt"
	"strings"

	"github.com/open-cli-collective/snap/pkg/tree"
)

// RewriteConfig configures the link and image rewrite pass.
type RewriteConfig struct {
	// Path names the file being rewritten, for error messages.
	Path string

	// ExternalHTML is markup added inside every external link.
	ExternalHTML string

	// Prepend places ExternalHTML before the link text instead of after it.
	Prepend bool

	// Render returns the HTML of a subtree. Defaults to tree.Render.
	Render func(t *tree.Tree, id tree.NodeID) string
}

func (c RewriteConfig) render(t *tree.Tree, id tree.NodeID) string {
	if c.Render != nil {
		return c.Render(t, id)
	}
	return tree.Render(t, id, tree.RenderOptions{})
}

// externalSchemes are the link schemes opened in a new window.
var externalSchemes = []string{"http:", "https:", "mailto:"}

// IsExternalLink reports whether dest points outside the site: the text
// before its first '/' starts with http:, https: or mailto:, ignoring case.
func IsExternalLink(dest string) bool {
	head := dest
	if i := strings.IndexByte(dest, '/'); i >= 0 {
		head = dest[:i]
	}
	head = strings.ToLower(head)
	for _, scheme := range externalSchemes {
		if strings.HasPrefix(head, scheme) {
			return true
		}
	}
	return false
}

// Rewrite walks t and replaces every link and image with an HTML inline
// node holding the equivalent markup. External links open in a new window
// and carry cfg.ExternalHTML. When Rewrite returns nil the tree contains no
// link or image nodes.
func Rewrite(t *tree.Tree, cfg RewriteConfig) error {
	w := tree.NewWalker(t, t.Root())
	for ev, ok := w.Next(); ok; ev, ok = w.Next() {
		var err error
		switch t.Kind(ev.Node) {
		case tree.Image:
			err = rewriteImage(t, w, ev, cfg)
		case tree.Link:
			err = rewriteLink(t, w, ev, cfg)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func misuse(t *tree.Tree, id tree.NodeID, path, routine string) error {
	return &FileError{
		Path: path,
		Pos:  t.Node(id).Pos.Start,
		Err:  fmt.Errorf("%w: %s received a %s node", ErrStructuralMisuse, routine, t.Kind(id)),
	}
}

// rewriteImage replaces an image with an <img> tag that repeats the alt text
// as its title, so it shows on mouseover.
func rewriteImage(t *tree.Tree, w *tree.Walker, ev tree.Event, cfg RewriteConfig) error {
	if t.Kind(ev.Node) != tree.Image {
		return misuse(t, ev.Node, cfg.Path, "image rewrite")
	}

	img := t.Node(ev.Node)
	dest, pos := img.Destination, img.Pos

	alt := ""
	if first := t.FirstChild(ev.Node); t.Kind(first) == tree.Text {
		alt = t.Node(first).Literal
		t.Unlink(first)
	}

	markup := fmt.Sprintf(`<img src="%s" alt="%s" title="%s">`,
		tree.EscapeHTML(dest), tree.EscapeHTML(alt), tree.EscapeHTML(alt))
	repl := t.Replace(ev.Node, t.NewHTMLInline(markup, pos))
	w.ResumeAt(repl, true)
	return nil
}

// rewriteLink handles both visits of a link. External links get the
// decoration on entry and become a target="_blank" anchor on exit. Internal
// links become an anchor identical to the rendered link.
func rewriteLink(t *tree.Tree, w *tree.Walker, ev tree.Event, cfg RewriteConfig) error {
	if t.Kind(ev.Node) != tree.Link {
		return misuse(t, ev.Node, cfg.Path, "link rewrite")
	}

	link := t.Node(ev.Node)
	dest, pos := link.Destination, link.Pos

	if !IsExternalLink(dest) {
		if !ev.Entering {
			t.Replace(ev.Node, t.NewHTMLInline(cfg.render(t, ev.Node), pos))
		}
		return nil
	}

	if ev.Entering {
		if cfg.ExternalHTML == "" {
			return nil
		}
		deco := t.NewHTMLInline(cfg.ExternalHTML, pos)
		if cfg.Prepend {
			t.PrependChild(ev.Node, deco)
			w.ResumeAt(deco, true)
		} else {
			t.AppendChild(ev.Node, deco)
		}
		return nil
	}

	inner := anchorContent(cfg.render(t, ev.Node))
	markup := `<a target="_blank" href="` + tree.EscapeHTML(dest) + `">` + inner + `</a>`
	t.Replace(ev.Node, t.NewHTMLInline(markup, pos))
	return nil
}

// anchorContent strips the opening tag, up to its first '>', and the closing
// </a> from a rendered anchor.
func anchorContent(html string) string {
	i := strings.IndexByte(html, '>')
	if i < 0 {
		return html
	}
	return strings.TrimSuffix(html[i+1:], "</a>")
}
