// Package docx reads and mutates WordprocessingML (.docx) containers.
// It exposes only the capabilities the engines need: body paragraphs,
// tables, text runs, hyperlink relationships, the track-changes
// settings flag, and persistence. Parts the package does not
// understand are carried through byte-for-byte on save.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const (
	documentPartName = "word/document.xml"
	settingsPartName = "word/settings.xml"
)

type part struct {
	name string
	data []byte
}

// Document is an open .docx container. A Document is owned by the call
// that opened it: open, scan, mutate, save, release.
type Document struct {
	path     string
	parts    []part
	body     *node
	root     *node
	prefixes map[string]string
	rels     *relationshipTable
	settings []byte
}

// Open reads the container at path. It fails with *OpenError when the
// file is unreadable or not a valid WordprocessingML package.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	doc := &Document{path: path}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &OpenError{Path: path, Err: err}
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &OpenError{Path: path, Err: err}
		}
		doc.parts = append(doc.parts, part{name: f.Name, data: content})
	}

	raw, ok := doc.part(documentPartName)
	if !ok {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("missing %s", documentPartName)}
	}
	root, err := parseXML(raw)
	if err != nil {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("%s: %w", documentPartName, err)}
	}
	doc.root = root
	doc.prefixes = nsPrefixes(root)
	bodies := root.childElements("body")
	if len(bodies) == 0 {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("%s: no body element", documentPartName)}
	}
	doc.body = bodies[0]

	if relsRaw, ok := doc.part(relsPartName); ok {
		rels, err := parseRelationships(relsRaw)
		if err != nil {
			return nil, &OpenError{Path: path, Err: fmt.Errorf("%s: %w", relsPartName, err)}
		}
		doc.rels = rels
	} else {
		doc.rels = &relationshipTable{Xmlns: packageRelsNS}
	}

	if settingsRaw, ok := doc.part(settingsPartName); ok {
		doc.settings = settingsRaw
	}
	return doc, nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string { return d.path }

func (d *Document) part(name string) ([]byte, bool) {
	for _, p := range d.parts {
		if p.name == name {
			return p.data, true
		}
	}
	return nil, false
}

// Paragraphs returns the top-level body paragraphs in document order.
func (d *Document) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, n := range d.body.childElements("p") {
		out = append(out, Paragraph{node: n})
	}
	return out
}

// Tables returns the top-level body tables in document order.
func (d *Document) Tables() []Table {
	var out []Table
	for _, n := range d.body.childElements("tbl") {
		out = append(out, Table{node: n})
	}
	return out
}

// Relationship looks up a relationship by its rId.
func (d *Document) Relationship(id string) (Relationship, bool) {
	return d.rels.byID(id)
}

// HyperlinkRelationships maps rIds to hyperlink relationship entries.
func (d *Document) HyperlinkRelationships() map[string]Relationship {
	out := make(map[string]Relationship)
	for _, r := range d.rels.Rels {
		if r.Type == HyperlinkRelType {
			out[r.ID] = r
		}
	}
	return out
}

// AddHyperlinkRelationship creates a new hyperlink relationship for the
// given target and returns its rId.
func (d *Document) AddHyperlinkRelationship(target string, external bool) string {
	rel := d.rels.add(HyperlinkRelType, target, external)
	return rel.ID
}

// TrackChangesEnabled reports whether settings.xml declares the
// trackRevisions flag.
func (d *Document) TrackChangesEnabled() bool {
	if d.settings == nil {
		return false
	}
	dec := xml.NewDecoder(bytes.NewReader(d.settings))
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "trackRevisions" {
			return true
		}
	}
}

// Save writes the container to path, replacing the document and
// relationship parts with their current state and copying everything
// else through untouched.
func (d *Document) Save(path string) error {
	relsData, err := d.rels.serialize()
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	docData := serializeXML(d.root, d.prefixes)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	wroteRels := false
	for _, p := range d.parts {
		content := p.data
		switch p.name {
		case documentPartName:
			content = docData
		case relsPartName:
			content = relsData
			wroteRels = true
		}
		w, err := zw.Create(p.name)
		if err != nil {
			return &SaveError{Path: path, Err: err}
		}
		if _, err := w.Write(content); err != nil {
			return &SaveError{Path: path, Err: err}
		}
	}
	if !wroteRels {
		w, err := zw.Create(relsPartName)
		if err != nil {
			return &SaveError{Path: path, Err: err}
		}
		if _, err := w.Write(relsData); err != nil {
			return &SaveError{Path: path, Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}
