package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"docaudit/internal/core"
	"docaudit/internal/docx"
	"docaudit/internal/testutil"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, dir, name string, spec testutil.DocSpec) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := testutil.WriteDocx(path, spec); err != nil {
		t.Fatalf("WriteDocx: %v", err)
	}
	return path
}

func TestScanCommand(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{{Text: "x"}},
	})
	out, err := runCommand(t, "scan", root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "a.docx") {
		t.Errorf("output missing file:\n%s", out)
	}
}

func TestLinksCommandJSON(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Links: []testutil.LinkSpec{{Text: "web", Target: "https://example.com/"}}},
		},
	})
	out, err := runCommand(t, "links", root, "--json", "--deps")
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	var report struct {
		Files        []core.FileLinks        `json:"files"`
		TotalLinks   int                     `json:"total_links"`
		Dependencies []core.DependencyRecord `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if report.TotalLinks != 1 || len(report.Files) != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Dependencies) != 1 {
		t.Errorf("dependencies = %+v", report.Dependencies)
	}
}

func TestReplaceCommand(t *testing.T) {
	root := t.TempDir()
	path := writeFixture(t, root, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{{Text: "needle here"}},
	})
	out, err := runCommand(t, "replace", root,
		"--find", "needle", "--replace", "pin", "--save-copies=false", "--json")
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	var res core.BulkResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if res.TotalMatches != 1 || res.Mode != "replace" {
		t.Errorf("result = %+v", res)
	}
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := doc.Paragraphs()[0].Text(); got != "pin here" {
		t.Errorf("text after replace = %q", got)
	}
}

func TestReplaceRequiresFind(t *testing.T) {
	if _, err := runCommand(t, "replace", t.TempDir()); err == nil {
		t.Fatal("expected error without --find")
	}
}

func TestReplaceLinksInvalidTarget(t *testing.T) {
	_, err := runCommand(t, "replace-links", t.TempDir(),
		"--find", "x", "--target", "bogus")
	if err == nil {
		t.Fatal("expected error for invalid target scope")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	root := t.TempDir()
	path := writeFixture(t, root, "a.docx", testutil.DocSpec{
		Paragraphs: []testutil.ParagraphSpec{
			{Links: []testutil.LinkSpec{{Text: "web", Target: "https://example.com/"}}},
		},
		TrackChanges: true,
	})
	out, err := runCommand(t, "analyze", path, "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var report core.FileReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if !report.TrackedChanges || len(report.Links) != 1 {
		t.Errorf("report = %+v", report)
	}
}
