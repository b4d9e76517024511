// Package outline holds the document outline structure: a nested heading
// tree plus the flat (level, text, page) form used by the JSON contract.
package outline

// Entry is one heading in the flat interchange form.
type Entry struct {
	Level string `json:"level"` // "H1", "H2" or "H3"
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Node is one heading in the nested form. A node owns its children
// exclusively; the structure is a tree.
type Node struct {
	Level    string
	Text     string
	Page     int
	Children []*Node
}

// Outline is the per-document result: a detected title (possibly empty)
// and the heading tree in document order.
type Outline struct {
	Title string
	Nodes []*Node
}

// Document is the external JSON contract for one processed PDF.
type Document struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Flatten walks the tree depth-first in document order, reproducing the
// flat interchange form.
func (o *Outline) Flatten() []Entry {
	entries := []Entry{}
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			entries = append(entries, Entry{Level: n.Level, Text: n.Text, Page: n.Page})
			walk(n.Children)
		}
	}
	walk(o.Nodes)
	return entries
}

// Contract converts the outline to the external JSON form. The outline
// array is always present, never null.
func (o *Outline) Contract() Document {
	return Document{
		Title:   o.Title,
		Outline: o.Flatten(),
	}
}

// depthOf maps a level spelling to its 1-based depth (0 for anything
// outside H1..H3).
func depthOf(level string) int {
	switch level {
	case "H1":
		return 1
	case "H2":
		return 2
	case "H3":
		return 3
	default:
		return 0
	}
}

// levelOf is the inverse of depthOf.
func levelOf(depth int) string {
	switch depth {
	case 1:
		return "H1"
	case 2:
		return "H2"
	default:
		return "H3"
	}
}
