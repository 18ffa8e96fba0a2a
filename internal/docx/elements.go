package docx

import "encoding/xml"

const (
	wordNS    = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relAttrNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	xmlNS     = "xml"
)

// Paragraph wraps a w:p element.
type Paragraph struct {
	node *node
}

// Text returns the full rendered text of the paragraph, including text
// inside hyperlink runs.
func (p Paragraph) Text() string {
	var out []byte
	for _, t := range p.node.descendants("t") {
		out = append(out, t.text()...)
	}
	return string(out)
}

// SetText replaces the paragraph content with a single run carrying s.
// Paragraph properties are kept; runs, hyperlinks and field codes are
// dropped, which mirrors how word processors rewrite a paragraph.
func (p Paragraph) SetText(s string) {
	kept := p.node.Children[:0]
	for _, c := range p.node.Children {
		if c.isElement() && c.is("pPr") {
			kept = append(kept, c)
		}
	}
	p.node.Children = kept
	p.node.Children = append(p.node.Children, newRunNode(s))
}

// Runs returns the direct text runs of the paragraph (runs nested in
// hyperlinks are reached through Hyperlinks).
func (p Paragraph) Runs() []Run {
	var out []Run
	for _, n := range p.node.childElements("r") {
		out = append(out, Run{node: n})
	}
	return out
}

// Hyperlinks returns the relationship-based hyperlink references of the
// paragraph.
func (p Paragraph) Hyperlinks() []Hyperlink {
	var out []Hyperlink
	for _, n := range p.node.childElements("hyperlink") {
		out = append(out, Hyperlink{node: n})
	}
	return out
}

// FieldInstructions returns the field instruction text nodes of the
// paragraph (w:instrText), used by legacy field-code hyperlinks.
func (p Paragraph) FieldInstructions() []FieldInstruction {
	var out []FieldInstruction
	for _, n := range p.node.descendants("instrText") {
		out = append(out, FieldInstruction{node: n})
	}
	return out
}

// Run wraps a w:r element.
type Run struct {
	node *node
}

// Text returns the text carried by the run's w:t elements.
func (r Run) Text() string {
	var out []byte
	for _, t := range r.node.childElements("t") {
		out = append(out, t.text()...)
	}
	return string(out)
}

// SetText replaces the run text in place, preserving run properties and
// run boundaries. Extra w:t elements are collapsed into the first.
func (r Run) SetText(s string) {
	ts := r.node.childElements("t")
	if len(ts) == 0 {
		r.node.Children = append(r.node.Children, newTextNode(s))
		return
	}
	first := ts[0]
	first.setCharData(s)
	first.setAttr(xmlNS, "space", "preserve")
	if len(ts) > 1 {
		drop := make(map[*node]bool, len(ts)-1)
		for _, extra := range ts[1:] {
			drop[extra] = true
		}
		kept := r.node.Children[:0]
		for _, c := range r.node.Children {
			if !drop[c] {
				kept = append(kept, c)
			}
		}
		r.node.Children = kept
	}
}

// Hyperlink wraps a w:hyperlink reference element.
type Hyperlink struct {
	node *node
}

// RelID returns the relationship identifier the reference points at.
func (h Hyperlink) RelID() string {
	id, _ := h.node.attr(relAttrNS, "id")
	return id
}

// SetRelID repoints the reference at another relationship.
func (h Hyperlink) SetRelID(id string) {
	h.node.setAttr(relAttrNS, "id", id)
}

// Text returns the visible link text: the concatenation of all literal
// text nested under the reference.
func (h Hyperlink) Text() string {
	var out []byte
	for _, t := range h.node.descendants("t") {
		out = append(out, t.text()...)
	}
	return string(out)
}

// Runs returns every text run nested under the reference, at any
// depth, so replacement reaches the same text Text reads.
func (h Hyperlink) Runs() []Run {
	var out []Run
	for _, n := range h.node.descendants("r") {
		out = append(out, Run{node: n})
	}
	return out
}

// FieldInstruction wraps a w:instrText element.
type FieldInstruction struct {
	node *node
}

// Text returns the raw field instruction text.
func (f FieldInstruction) Text() string { return f.node.text() }

// SetText rewrites the field instruction text.
func (f FieldInstruction) SetText(s string) {
	f.node.setCharData(s)
	f.node.setAttr(xmlNS, "space", "preserve")
}

// Table wraps a w:tbl element.
type Table struct {
	node *node
}

// Rows returns the table rows.
func (t Table) Rows() []TableRow {
	var out []TableRow
	for _, n := range t.node.childElements("tr") {
		out = append(out, TableRow{node: n})
	}
	return out
}

// TableRow wraps a w:tr element.
type TableRow struct {
	node *node
}

// Cells returns the row cells.
func (r TableRow) Cells() []TableCell {
	var out []TableCell
	for _, n := range r.node.childElements("tc") {
		out = append(out, TableCell{node: n})
	}
	return out
}

// TableCell wraps a w:tc element.
type TableCell struct {
	node *node
}

// Paragraphs returns the cell's direct paragraphs.
func (c TableCell) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, n := range c.node.childElements("p") {
		out = append(out, Paragraph{node: n})
	}
	return out
}

// Tables returns tables nested directly inside the cell.
func (c TableCell) Tables() []Table {
	var out []Table
	for _, n := range c.node.childElements("tbl") {
		out = append(out, Table{node: n})
	}
	return out
}

func newTextNode(s string) *node {
	t := &node{Name: xml.Name{Space: wordNS, Local: "t"}}
	t.setAttr(xmlNS, "space", "preserve")
	t.Children = append(t.Children, &node{Text: s})
	return t
}

func newRunNode(s string) *node {
	r := &node{Name: xml.Name{Space: wordNS, Local: "r"}}
	r.Children = append(r.Children, newTextNode(s))
	return r
}
