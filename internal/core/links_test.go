package core

import (
	"path/filepath"
	"testing"

	"docaudit/internal/docx"
	"docaudit/internal/testutil"
)

func TestExtractLinks(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Links: []testutil.LinkSpec{
				{Text: "web", Target: "https://example.com/page"},
				{Text: "mail", Target: "mailto:ops@example.com"},
			}},
		},
		Tables: [][][]testutil.ParagraphSpec{
			{
				{{Links: []testutil.LinkSpec{{Text: "in table", Target: "https://example.com/t"}}}},
			},
		},
	})
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	links := ExtractLinks(doc, path, root, testClassifier())
	if len(links) != 3 {
		t.Fatalf("got %d links, want 3: %+v", len(links), links)
	}
	if links[0].Type != LinkExternal || links[0].Text != "web" {
		t.Errorf("link 0 = %+v", links[0])
	}
	if links[1].Type != LinkEmail {
		t.Errorf("link 1 = %+v", links[1])
	}
	if links[2].Text != "in table" {
		t.Errorf("link 2 = %+v", links[2])
	}
}

func TestExtractLinksImageObjectText(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Links: []testutil.LinkSpec{{Text: "", Target: "https://example.com/"}}},
		},
	})
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	links := ExtractLinks(doc, path, root, testClassifier())
	if len(links) != 1 || links[0].Text != imageObjectText {
		t.Errorf("links = %+v", links)
	}
}

func TestCollectLinksErrorIsolation(t *testing.T) {
	root := t.TempDir()
	good := writeDoc(t, root, "good.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Links: []testutil.LinkSpec{{Text: "web", Target: "https://example.com/"}}},
		},
	})
	bad := filepath.Join(root, "bad.docx")
	touch(t, bad)

	results := CollectLinks([]string{good, bad}, root, testClassifier())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Error != "" || len(results[0].Links) != 1 {
		t.Errorf("good result = %+v", results[0])
	}
	if results[1].Error == "" {
		t.Errorf("bad result carries no error: %+v", results[1])
	}
	if len(results[1].Links) != 0 {
		t.Errorf("bad result has links: %+v", results[1])
	}
}
