// Package tree provides the parse tree that snap rewrites between parsing and
// HTML emission.
//
// Nodes are stored in a flat table owned by a Tree and addressed by stable
// NodeID handles. Parent, child and sibling links are handles too, so a node
// can be unlinked or re-inserted while a Walker is iterating without any
// dangling references.
package tree

// NodeID is a stable handle to a node inside a Tree. The zero value, Nil,
// never refers to a node.
type NodeID int32

// Nil is the absent node.
const Nil NodeID = 0

// Pos is a 1-based line and column in the source the tree was parsed from.
type Pos struct {
	Line   int
	Column int
}

// IsZero reports whether the position is unknown.
func (p Pos) IsZero() bool {
	return p.Line == 0
}

// Span is the source range a node was parsed from.
type Span struct {
	Start Pos
	End   Pos
}

// Align is the text alignment of a table cell.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// Node holds the payload of a single tree node. Which fields are meaningful
// depends on Kind.
type Node struct {
	Kind Kind

	Literal     string // Text, Code, CodeBlock, HTMLBlock, HTMLInline
	Destination string // Link, Image
	Title       string // Link, Image
	Info        string // CodeBlock (fenced info string)
	Level       int    // Heading

	Ordered   bool // List
	Start     int  // List
	Tight     bool // List
	Delimiter byte // List

	Header bool  // TableCell
	Align  Align // TableCell

	Pos Span

	parent NodeID
	first  NodeID
	last   NodeID
	prev   NodeID
	next   NodeID
}

// Tree owns a set of nodes. The first node allocated by New is the Document
// root.
type Tree struct {
	nodes []Node
	root  NodeID
}

// New returns a tree containing only an empty Document root.
func New() *Tree {
	t := &Tree{nodes: make([]Node, 1, 64)}
	t.root = t.NewNode(Document)
	return t
}

// Root returns the Document node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes ever allocated, attached or not.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// NewNode allocates a detached node of the given kind.
func (t *Tree) NewNode(kind Kind) NodeID {
	t.nodes = append(t.nodes, Node{Kind: kind})
	return NodeID(len(t.nodes) - 1)
}

// NewText allocates a detached Text node.
func (t *Tree) NewText(literal string) NodeID {
	id := t.NewNode(Text)
	t.nodes[id].Literal = literal
	return id
}

// NewHTMLInline allocates a detached literal-markup node.
func (t *Tree) NewHTMLInline(literal string, pos Span) NodeID {
	id := t.NewNode(HTMLInline)
	t.nodes[id].Literal = literal
	t.nodes[id].Pos = pos
	return id
}

// NewLink allocates a detached Link node.
func (t *Tree) NewLink(destination, title string) NodeID {
	id := t.NewNode(Link)
	t.nodes[id].Destination = destination
	t.nodes[id].Title = title
	return id
}

// NewImage allocates a detached Image node.
func (t *Tree) NewImage(destination, title string) NodeID {
	id := t.NewNode(Image)
	t.nodes[id].Destination = destination
	t.nodes[id].Title = title
	return id
}

// Node returns the payload of id. The pointer is invalidated by the next
// allocation on t, so it must not be held across NewNode calls.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Kind returns the kind of id, or Invalid for Nil.
func (t *Tree) Kind(id NodeID) Kind {
	if id == Nil {
		return Invalid
	}
	return t.nodes[id].Kind
}

func (t *Tree) Parent(id NodeID) NodeID     { return t.nodes[id].parent }
func (t *Tree) FirstChild(id NodeID) NodeID { return t.nodes[id].first }
func (t *Tree) LastChild(id NodeID) NodeID  { return t.nodes[id].last }
func (t *Tree) Prev(id NodeID) NodeID       { return t.nodes[id].prev }
func (t *Tree) Next(id NodeID) NodeID       { return t.nodes[id].next }

// Children returns the direct children of id in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.nodes[id].first; c != Nil; c = t.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// AppendChild unlinks child and attaches it as the last child of parent.
func (t *Tree) AppendChild(parent, child NodeID) NodeID {
	t.Unlink(child)
	p := &t.nodes[parent]
	c := &t.nodes[child]
	c.parent = parent
	if p.last != Nil {
		t.nodes[p.last].next = child
		c.prev = p.last
	} else {
		p.first = child
	}
	p.last = child
	return child
}

// PrependChild unlinks child and attaches it as the first child of parent.
func (t *Tree) PrependChild(parent, child NodeID) NodeID {
	t.Unlink(child)
	p := &t.nodes[parent]
	c := &t.nodes[child]
	c.parent = parent
	if p.first != Nil {
		t.nodes[p.first].prev = child
		c.next = p.first
	} else {
		p.last = child
	}
	p.first = child
	return child
}

// InsertBefore unlinks node and attaches it as the previous sibling of
// sibling. It returns node, which is where a walker should resume after
// replacing sibling.
func (t *Tree) InsertBefore(sibling, node NodeID) NodeID {
	t.Unlink(node)
	s := &t.nodes[sibling]
	n := &t.nodes[node]
	n.parent = s.parent
	n.next = sibling
	n.prev = s.prev
	if s.prev != Nil {
		t.nodes[s.prev].next = node
	} else if s.parent != Nil {
		t.nodes[s.parent].first = node
	}
	s.prev = node
	return node
}

// InsertAfter unlinks node and attaches it as the next sibling of sibling.
func (t *Tree) InsertAfter(sibling, node NodeID) NodeID {
	t.Unlink(node)
	s := &t.nodes[sibling]
	n := &t.nodes[node]
	n.parent = s.parent
	n.prev = sibling
	n.next = s.next
	if s.next != Nil {
		t.nodes[s.next].prev = node
	} else if s.parent != Nil {
		t.nodes[s.parent].last = node
	}
	s.next = node
	return node
}

// Unlink detaches id from its parent and siblings. The node keeps its own
// children. It returns the former next sibling, or Nil.
func (t *Tree) Unlink(id NodeID) NodeID {
	n := &t.nodes[id]
	next := n.next
	if n.prev != Nil {
		t.nodes[n.prev].next = n.next
	} else if n.parent != Nil {
		t.nodes[n.parent].first = n.next
	}
	if n.next != Nil {
		t.nodes[n.next].prev = n.prev
	} else if n.parent != Nil {
		t.nodes[n.parent].last = n.prev
	}
	n.parent, n.prev, n.next = Nil, Nil, Nil
	return next
}

// Replace puts node where old was and unlinks old. It returns node.
func (t *Tree) Replace(old, node NodeID) NodeID {
	t.InsertBefore(old, node)
	t.Unlink(old)
	return node
}

// Count returns how many nodes of kind are reachable from id, id included.
func (t *Tree) Count(id NodeID, kind Kind) int {
	n := 0
	w := NewWalker(t, id)
	for ev, ok := w.Next(); ok; ev, ok = w.Next() {
		if ev.Entering && t.Kind(ev.Node) == kind {
			n++
		}
	}
	return n
}

// TextContent concatenates the literals of every Text and Code node below id.
func (t *Tree) TextContent(id NodeID) string {
	var buf []byte
	w := NewWalker(t, id)
	for ev, ok := w.Next(); ok; ev, ok = w.Next() {
		switch t.Kind(ev.Node) {
		case Text, Code:
			buf = append(buf, t.nodes[ev.Node].Literal...)
		}
	}
	return string(buf)
}
