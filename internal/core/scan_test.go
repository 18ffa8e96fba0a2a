package core

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEligibleDocument(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report.docx", true},
		{"REPORT.DOCX", true},
		{"~$report.docx", false},
		{"notes.txt", false},
		{"archive.docx.zip", false},
	}
	for _, tc := range tests {
		if got := eligibleDocument(tc.name); got != tc.want {
			t.Errorf("eligibleDocument(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestListDocuments(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.docx"))
	touch(t, filepath.Join(root, "~$a.docx"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "b.docx"))
	touch(t, filepath.Join(root, "sub", "deep", "c.docx"))

	files := ListDocuments(root)
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f) != ".docx" {
			t.Errorf("unexpected file %s", f)
		}
	}
}

func TestScanTree(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.docx"))
	touch(t, filepath.Join(root, "skip.txt"))
	touch(t, filepath.Join(root, "sub", "b.docx"))

	tree := ScanTree(root)
	if tree.Type != "folder" || tree.Path != root {
		t.Fatalf("root node = %+v", tree)
	}
	var fileNames, folderNames []string
	for _, c := range tree.Children {
		switch c.Type {
		case "file":
			fileNames = append(fileNames, c.Name)
		case "folder":
			folderNames = append(folderNames, c.Name)
		}
	}
	if len(fileNames) != 1 || fileNames[0] != "a.docx" {
		t.Errorf("files = %v", fileNames)
	}
	if len(folderNames) != 1 || folderNames[0] != "sub" {
		t.Errorf("folders = %v", folderNames)
	}
	for _, c := range tree.Children {
		if c.Type == "folder" && len(c.Children) != 1 {
			t.Errorf("sub children = %+v", c.Children)
		}
	}
}
