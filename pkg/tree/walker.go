// walker.go implements depth-first traversal that tolerates edits to the
// tree while it is running.
package tree

// Event is one step of a walk: a node being entered or left. Leaf nodes are
// only ever entered.
type Event struct {
	Node     NodeID
	Entering bool
}

// Walker iterates over a subtree as a sequence of enter/exit events.
//
// Next computes the following position before it returns, so the node of the
// returned event may be unlinked or replaced by the caller. After inserting
// nodes the caller can reposition the walker with ResumeAt.
type Walker struct {
	t        *Tree
	root     NodeID
	current  NodeID
	entering bool
}

// NewWalker returns a walker over root and its descendants.
func NewWalker(t *Tree, root NodeID) *Walker {
	return &Walker{t: t, root: root, current: root, entering: true}
}

// Next returns the next event, or false once the walk is finished.
func (w *Walker) Next() (Event, bool) {
	cur := w.current
	entering := w.entering
	if cur == Nil {
		return Event{}, false
	}

	n := &w.t.nodes[cur]
	switch {
	case entering && n.Kind.IsContainer():
		if n.first != Nil {
			w.current = n.first
			w.entering = true
		} else {
			w.entering = false
		}
	case cur == w.root:
		w.current = Nil
	case n.next == Nil:
		w.current = n.parent
		w.entering = false
	default:
		w.current = n.next
		w.entering = true
	}
	return Event{Node: cur, Entering: entering}, true
}

// ResumeAt makes id, in the given phase, the next event returned by Next.
func (w *Walker) ResumeAt(id NodeID, entering bool) {
	w.current = id
	w.entering = entering
}
