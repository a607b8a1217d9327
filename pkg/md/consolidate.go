package md

import "github.com/open-cli-collective/snap/pkg/tree"

// Consolidate merges runs of adjacent text nodes into the first node of each
// run. The parser splits text at punctuation and entity boundaries; merging
// lets later passes see a sentence as one literal.
func Consolidate(t *tree.Tree) {
	prev := tree.Nil
	w := tree.NewWalker(t, t.Root())
	for ev, ok := w.Next(); ok; ev, ok = w.Next() {
		if t.Kind(ev.Node) == tree.Text && t.Kind(prev) == tree.Text {
			t.Node(prev).Literal += t.Node(ev.Node).Literal
			t.Unlink(ev.Node)
			continue
		}
		prev = ev.Node
	}
}
