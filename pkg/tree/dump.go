package tree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the subtree at id, one "kind: literal"
// line per node. It shows structure only and is meant for debugging.
func Dump(w io.Writer, t *Tree, id NodeID) error {
	indent := 0
	walker := NewWalker(t, id)
	for ev, ok := walker.Next(); ok; ev, ok = walker.Next() {
		n := t.Node(ev.Node)
		container := n.Kind.IsContainer()
		if container && !ev.Entering {
			indent--
		}
		if !container || ev.Entering {
			literal := strings.ReplaceAll(n.Literal, "\n", `\n`)
			if _, err := fmt.Fprintf(w, "%s%s: %s\n", strings.Repeat("  ", indent), n.Kind, literal); err != nil {
				return err
			}
		}
		if container && ev.Entering {
			indent++
		}
	}
	return nil
}
