package doctree

// Kind classifies a Block for line layout.
type Kind int

const (
	Paragraph Kind = iota // Reflowable prose
	Heading               // Section title; Level is 1-6
	Code                  // Preformatted, kept line for line
	Item                  // List item
	Row                   // Table or CSV record, already joined
	Break                 // Vertical separator
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Item:
		return "item"
	case Row:
		return "row"
	case Break:
		return "break"
	}
	return "unknown"
}

// Text is a parsed source document, flattened into blocks in reading order.
type Text struct {
	Title  string  // Document title (from metadata or filename)
	Blocks []Block // Content in reading order
}

// Block is one unit of source content.
type Block struct {
	Kind  Kind
	Level int    // Heading depth, 0 for other kinds
	Text  string // May contain newlines for Code and Paragraph
}

// Add appends a block, dropping empty non-break blocks.
func (t *Text) Add(b Block) {
	if b.Kind != Break && b.Text == "" {
		return
	}
	t.Blocks = append(t.Blocks, b)
}
