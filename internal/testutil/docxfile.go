// Package testutil builds minimal .docx fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LinkSpec describes a relationship-based hyperlink inside a paragraph.
type LinkSpec struct {
	Text     string
	Target   string
	Internal bool // internal relationships omit TargetMode="External"
	Nested   bool // wrap the text run in a smartTag element
}

// FieldSpec describes a legacy field-code hyperlink.
type FieldSpec struct {
	URL   string
	Text  string
	Quote string // `"`, `'`, or "" for an unquoted URL
}

// ParagraphSpec describes one paragraph of a fixture document.
type ParagraphSpec struct {
	Text  string
	Runs  []string // explicit run split; overrides Text when set
	Links []LinkSpec
	Field *FieldSpec
}

// DocSpec describes a fixture document.
type DocSpec struct {
	Paragraphs   []ParagraphSpec
	Tables       [][][]ParagraphSpec // tables, each rows then cells, one paragraph per cell
	TrackChanges bool
}

// WriteDocx writes a .docx container described by spec to path,
// creating parent directories as needed.
func WriteDocx(path string, spec DocSpec) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var rels []relEntry
	nextID := 0
	newRelID := func(target string, external bool) string {
		nextID++
		id := fmt.Sprintf("rId%d", nextID)
		rels = append(rels, relEntry{id: id, target: target, external: external})
		return id
	}

	var body strings.Builder
	for _, p := range spec.Paragraphs {
		body.WriteString(paragraphXML(p, newRelID))
	}
	for _, table := range spec.Tables {
		body.WriteString("<w:tbl>")
		for _, row := range table {
			body.WriteString("<w:tr>")
			for _, cell := range row {
				body.WriteString("<w:tc>")
				body.WriteString(paragraphXML(cell, newRelID))
				body.WriteString("</w:tc>")
			}
			body.WriteString("</w:tr>")
		}
		body.WriteString("</w:tbl>")
	}

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	var relsXML strings.Builder
	relsXML.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n")
	relsXML.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		relsXML.WriteString(`<Relationship Id="` + r.id + `"` +
			` Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"` +
			` Target="` + escapeXML(r.target) + `"`)
		if r.external {
			relsXML.WriteString(` TargetMode="External"`)
		}
		relsXML.WriteString(`/>`)
	}
	relsXML.WriteString(`</Relationships>`)

	settings := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
		`<w:settings xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`
	if spec.TrackChanges {
		settings += `<w:trackRevisions/>`
	}
	settings += `</w:settings>`

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/word/settings.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"/>` +
		`</Types>`

	rootRels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct{ name, data string }{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rootRels},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", relsXML.String()},
		{"word/settings.xml", settings},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte(e.data)); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

type relEntry struct {
	id       string
	target   string
	external bool
}

func paragraphXML(p ParagraphSpec, newRelID func(target string, external bool) string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	if p.Field != nil {
		f := p.Field
		url := f.URL
		if f.Quote != "" {
			url = f.Quote + url + f.Quote
		}
		b.WriteString(`<w:r><w:fldChar w:fldCharType="begin"/></w:r>`)
		b.WriteString(`<w:r><w:instrText xml:space="preserve"> HYPERLINK ` + escapeXML(url) + ` </w:instrText></w:r>`)
		b.WriteString(`<w:r><w:fldChar w:fldCharType="separate"/></w:r>`)
		b.WriteString(runXML(f.Text))
		b.WriteString(`<w:r><w:fldChar w:fldCharType="end"/></w:r>`)
	} else if len(p.Runs) > 0 {
		for _, r := range p.Runs {
			b.WriteString(runXML(r))
		}
	} else if p.Text != "" {
		b.WriteString(runXML(p.Text))
	}
	for _, l := range p.Links {
		id := newRelID(l.Target, !l.Internal)
		run := runXML(l.Text)
		if l.Nested {
			run = `<w:smartTag>` + run + `</w:smartTag>`
		}
		b.WriteString(`<w:hyperlink r:id="` + id + `">` + run + `</w:hyperlink>`)
	}
	b.WriteString("</w:p>")
	return b.String()
}

func runXML(text string) string {
	return `<w:r><w:t xml:space="preserve">` + escapeXML(text) + `</w:t></w:r>`
}

func escapeXML(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
