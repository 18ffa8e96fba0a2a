package docx_test

import (
	"errors"
	"path/filepath"
	"testing"

	"docaudit/internal/docx"
	"docaudit/internal/testutil"
)

func writeDoc(t *testing.T, name string, spec testutil.DocSpec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := testutil.WriteDocx(path, spec); err != nil {
		t.Fatalf("WriteDocx: %v", err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	_, err := docx.Open(filepath.Join(t.TempDir(), "nope.docx"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var openErr *docx.OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *OpenError, got %T", err)
	}
}

func TestParagraphText(t *testing.T) {
	path := writeDoc(t, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Text: "hello world"},
			{Runs: []string{"split ", "across ", "runs"}},
		},
	})
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	paras := doc.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	if got := paras[0].Text(); got != "hello world" {
		t.Errorf("paragraph 0 text = %q", got)
	}
	if got := paras[1].Text(); got != "split across runs" {
		t.Errorf("paragraph 1 text = %q", got)
	}
}

func TestTableCells(t *testing.T) {
	path := writeDoc(t, "a.docx", testutil.DocSpec{
		Tables: [][][]testutil.ParagraphSpec{
			{
				{{Text: "cell one"}, {Text: "cell two"}},
			},
		},
	})
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tables := doc.Tables()
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	rows := tables[0].Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	cells := rows[0].Cells()
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if got := cells[1].Paragraphs()[0].Text(); got != "cell two" {
		t.Errorf("cell text = %q", got)
	}
}

func TestHyperlinkRelationships(t *testing.T) {
	path := writeDoc(t, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Links: []testutil.LinkSpec{{Text: "example", Target: "https://example.com/"}}},
		},
	})
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	links := doc.Paragraphs()[0].Hyperlinks()
	if len(links) != 1 {
		t.Fatalf("got %d hyperlinks, want 1", len(links))
	}
	h := links[0]
	if got := h.Text(); got != "example" {
		t.Errorf("link text = %q", got)
	}
	rel, ok := doc.Relationship(h.RelID())
	if !ok {
		t.Fatalf("relationship %q not found", h.RelID())
	}
	if rel.Target != "https://example.com/" {
		t.Errorf("target = %q", rel.Target)
	}
	if !rel.External() {
		t.Error("expected external relationship")
	}
	if len(doc.HyperlinkRelationships()) != 1 {
		t.Errorf("HyperlinkRelationships = %d entries", len(doc.HyperlinkRelationships()))
	}
}

func TestAddHyperlinkRelationship(t *testing.T) {
	path := writeDoc(t, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Links: []testutil.LinkSpec{{Text: "old", Target: "https://old.example.com/"}}},
		},
	})
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id := doc.AddHyperlinkRelationship("https://new.example.com/", true)
	if id == "" {
		t.Fatal("empty rId")
	}
	rel, ok := doc.Relationship(id)
	if !ok {
		t.Fatalf("new relationship %q not found", id)
	}
	if rel.Target != "https://new.example.com/" || !rel.External() {
		t.Errorf("new relationship = %+v", rel)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeDoc(t, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Text: "before"},
			{Links: []testutil.LinkSpec{{Text: "example", Target: "https://example.com/"}}},
		},
		Tables: [][][]testutil.ParagraphSpec{
			{{{Text: "in a cell"}}},
		},
	})
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	doc.Paragraphs()[0].SetText("after")
	newID := doc.AddHyperlinkRelationship("https://new.example.com/", true)
	doc.Paragraphs()[1].Hyperlinks()[0].SetRelID(newID)
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	re, err := docx.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := re.Paragraphs()[0].Text(); got != "after" {
		t.Errorf("paragraph text after save = %q", got)
	}
	h := re.Paragraphs()[1].Hyperlinks()[0]
	rel, ok := re.Relationship(h.RelID())
	if !ok {
		t.Fatalf("relationship %q not found after save", h.RelID())
	}
	if rel.Target != "https://new.example.com/" {
		t.Errorf("target after save = %q", rel.Target)
	}
	if got := h.Text(); got != "example" {
		t.Errorf("link text after save = %q", got)
	}
	cell := re.Tables()[0].Rows()[0].Cells()[0]
	if got := cell.Paragraphs()[0].Text(); got != "in a cell" {
		t.Errorf("cell text after save = %q", got)
	}
}

func TestTrackChanges(t *testing.T) {
	on := writeDoc(t, "on.docx", testutil.DocSpec{
		Paragraphs:   []testutil.ParagraphSpec{{Text: "x"}},
		TrackChanges: true,
	})
	off := writeDoc(t, "off.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{{Text: "x"}},
	})
	docOn, err := docx.Open(on)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !docOn.TrackChangesEnabled() {
		t.Error("expected track changes enabled")
	}
	docOff, err := docx.Open(off)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if docOff.TrackChangesEnabled() {
		t.Error("expected track changes disabled")
	}
}

func TestFieldInstructions(t *testing.T) {
	path := writeDoc(t, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Field: &testutil.FieldSpec{URL: "https://example.com/x", Text: "visible", Quote: `"`}},
		},
	})
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p := doc.Paragraphs()[0]
	instrs := p.FieldInstructions()
	if len(instrs) != 1 {
		t.Fatalf("got %d field instructions, want 1", len(instrs))
	}
	want := ` HYPERLINK "https://example.com/x" `
	if got := instrs[0].Text(); got != want {
		t.Errorf("instruction = %q, want %q", got, want)
	}
	if got := p.Text(); got != "visible" {
		t.Errorf("paragraph text = %q", got)
	}

	instrs[0].SetText(` HYPERLINK "https://new.example.com/" `)
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	re, err := docx.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := re.Paragraphs()[0].FieldInstructions()[0].Text(); got != ` HYPERLINK "https://new.example.com/" ` {
		t.Errorf("instruction after save = %q", got)
	}
}
