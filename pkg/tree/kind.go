package tree

// Kind identifies the variant of a node. The set is closed: every switch over
// Kind in this module handles all of them.
type Kind uint8

const (
	Invalid Kind = iota

	// blocks
	Document
	Paragraph
	Heading
	BlockQuote
	List
	Item
	CodeBlock
	HTMLBlock
	ThematicBreak
	Table
	TableHeader
	TableRow
	TableCell

	// inlines
	Text
	SoftBreak
	LineBreak
	Code
	Emph
	Strong
	Strikethrough
	Link
	Image
	HTMLInline
)

var kindNames = [...]string{
	Invalid:       "invalid",
	Document:      "document",
	Paragraph:     "paragraph",
	Heading:       "heading",
	BlockQuote:    "block_quote",
	List:          "list",
	Item:          "item",
	CodeBlock:     "code_block",
	HTMLBlock:     "html_block",
	ThematicBreak: "thematic_break",
	Table:         "table",
	TableHeader:   "table_header",
	TableRow:      "table_row",
	TableCell:     "table_cell",
	Text:          "text",
	SoftBreak:     "softbreak",
	LineBreak:     "linebreak",
	Code:          "code",
	Emph:          "emph",
	Strong:        "strong",
	Strikethrough: "strikethrough",
	Link:          "link",
	Image:         "image",
	HTMLInline:    "html_inline",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsContainer reports whether nodes of this kind may hold children. A walker
// visits containers twice, on enter and on exit, and leaves once.
func (k Kind) IsContainer() bool {
	switch k {
	case Document, Paragraph, Heading, BlockQuote, List, Item,
		Table, TableHeader, TableRow, TableCell,
		Emph, Strong, Strikethrough, Link, Image:
		return true
	default:
		return false
	}
}

// IsBlock reports whether the kind is a block-level node.
func (k Kind) IsBlock() bool {
	return k >= Document && k <= TableCell
}
