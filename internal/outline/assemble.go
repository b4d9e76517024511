package outline

import (
	"sort"

	"github.com/docrill/pdfoutliner/internal/layout"
)

// Assemble orders heading candidates by document position and builds the
// outline tree. Title candidates are expected to have been stripped by the
// classifier; any that remain are skipped.
func Assemble(title string, cands []layout.Candidate) *Outline {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Line.Page != cands[j].Line.Page {
			return cands[i].Line.Page < cands[j].Line.Page
		}
		return cands[i].Line.Y > cands[j].Line.Y // higher on page first
	})

	entries := make([]Entry, 0, len(cands))
	for _, c := range cands {
		if c.Level.Depth() == 0 {
			continue
		}
		entries = append(entries, Entry{
			Level: c.Level.String(),
			Text:  c.Text,
			Page:  c.Line.Page,
		})
	}
	return FromEntries(title, entries)
}

// FromEntries builds the nested outline from flat entries in document
// order, normalizing the level sequence: a heading's depth may exceed the
// previous heading's depth by at most one. Deeper jumps are demoted rather
// than padded with fabricated intermediate levels, preserving a valid tree.
//
// Tree construction is a bounded stack machine: stack[d-1] is the current
// ancestor at depth d, and each heading becomes a child of the most recent
// heading with strictly lower depth, or a root if there is none.
func FromEntries(title string, entries []Entry) *Outline {
	o := &Outline{Title: title}

	var stack [3]*Node
	prevDepth := 0

	for _, e := range entries {
		d := depthOf(e.Level)
		if d == 0 {
			continue
		}
		if d > prevDepth+1 {
			d = prevDepth + 1
		}

		node := &Node{Level: levelOf(d), Text: e.Text, Page: e.Page}
		if d == 1 {
			o.Nodes = append(o.Nodes, node)
		} else {
			parent := stack[d-2]
			parent.Children = append(parent.Children, node)
		}
		stack[d-1] = node
		for i := d; i < len(stack); i++ {
			stack[i] = nil
		}
		prevDepth = d
	}

	return o
}
