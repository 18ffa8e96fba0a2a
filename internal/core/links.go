package core

import (
	"path/filepath"

	"docaudit/internal/docx"
)

// imageObjectText stands in for hyperlinks whose visible content is not
// literal text (images, embedded objects).
const imageObjectText = "[Image/Object]"

// Link is one extracted hyperlink. Links are produced fresh on every
// scan and never cached across calls.
type Link struct {
	Text       string   `json:"text"`
	URL        string   `json:"url"`
	Normalized string   `json:"normalized"`
	Raw        string   `json:"raw"`
	Type       LinkType `json:"type"`
}

// FileLinks holds the links extracted from one file, or the error that
// prevented extraction.
type FileLinks struct {
	Path  string `json:"path"`
	Links []Link `json:"links"`
	Error string `json:"error,omitempty"`
}

// ExtractLinks returns every relationship hyperlink reachable from the
// document body, classified against the containing document's location
// and the base directory.
func ExtractLinks(doc *docx.Document, docPath, baseDir string, cls Classifier) []Link {
	rels := doc.HyperlinkRelationships()
	var links []Link

	collect := func(p docx.Paragraph) {
		for _, h := range p.Hyperlinks() {
			rel, ok := rels[h.RelID()]
			if !ok {
				continue
			}
			text := h.Text()
			if text == "" {
				text = imageObjectText
			}
			linkType, normalized := cls.Classify(rel.Target, docPath, baseDir)
			links = append(links, Link{
				Text:       text,
				URL:        normalized,
				Normalized: normalized,
				Raw:        rel.Target,
				Type:       linkType,
			})
		}
	}

	forEachParagraph(doc, collect)
	return links
}

// CollectLinks extracts links from every file, recording per-file
// failures without aborting the batch. An empty baseDir resolves each
// file against its own directory.
func CollectLinks(files []string, baseDir string, cls Classifier) []FileLinks {
	results := make([]FileLinks, 0, len(files))
	for _, path := range files {
		dir := baseDir
		if dir == "" {
			dir = filepath.Dir(path)
		}
		doc, err := docx.Open(path)
		if err != nil {
			results = append(results, FileLinks{Path: path, Links: []Link{}, Error: err.Error()})
			continue
		}
		results = append(results, FileLinks{Path: path, Links: ExtractLinks(doc, path, dir, cls)})
	}
	return results
}

// forEachParagraph visits every paragraph reachable from the document
// body: top-level paragraphs, then table cells, recursing into nested
// tables.
func forEachParagraph(doc *docx.Document, fn func(docx.Paragraph)) {
	for _, p := range doc.Paragraphs() {
		fn(p)
	}
	for _, t := range doc.Tables() {
		forEachTableParagraph(t, fn)
	}
}

func forEachTableParagraph(t docx.Table, fn func(docx.Paragraph)) {
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			for _, p := range cell.Paragraphs() {
				fn(p)
			}
			for _, nested := range cell.Tables() {
				forEachTableParagraph(nested, fn)
			}
		}
	}
}
