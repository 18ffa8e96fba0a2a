package core

import (
	"path/filepath"
	"testing"

	"docaudit/internal/testutil"
)

func TestAnalyzeFile(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Links: []testutil.LinkSpec{{Text: "web", Target: "https://example.com/"}}},
		},
		TrackChanges: true,
	})
	report, err := AnalyzeFile(path, testClassifier())
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if report.Path != path {
		t.Errorf("path = %q", report.Path)
	}
	if !report.TrackedChanges {
		t.Error("expected tracked changes")
	}
	if len(report.Links) != 1 || report.Links[0].Type != LinkExternal {
		t.Errorf("links = %+v", report.Links)
	}
}

func TestAnalyzeFileError(t *testing.T) {
	if _, err := AnalyzeFile(filepath.Join(t.TempDir(), "absent.docx"), testClassifier()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
