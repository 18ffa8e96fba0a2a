package core

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	documentExt = ".docx"
	// lockPrefix marks the temporary owner files word processors leave
	// next to an open document.
	lockPrefix = "~$"
)

// eligibleDocument reports whether a file name is a scannable document.
func eligibleDocument(name string) bool {
	return strings.EqualFold(filepath.Ext(name), documentExt) &&
		!strings.HasPrefix(name, lockPrefix)
}

// TreeNode is one entry of the directory tree returned by ScanTree.
type TreeNode struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"` // "folder" or "file"
	Path     string     `json:"path"`
	Children []TreeNode `json:"children,omitempty"`
}

// ScanTree builds the folder/document tree under root. Unreadable
// directories become leaf folder nodes; the rest of the scan proceeds.
func ScanTree(root string) TreeNode {
	node := TreeNode{
		Name: filepath.Base(root),
		Type: "folder",
		Path: root,
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return node
	}
	for _, e := range entries {
		p := filepath.Join(root, e.Name())
		if e.IsDir() {
			node.Children = append(node.Children, ScanTree(p))
			continue
		}
		if eligibleDocument(e.Name()) {
			node.Children = append(node.Children, TreeNode{
				Name: e.Name(),
				Type: "file",
				Path: p,
			})
		}
	}
	return node
}

// ListDocuments returns every eligible document under root,
// depth-first in directory order. Unreadable subdirectories are
// skipped.
func ListDocuments(root string) []string {
	var files []string
	entries, err := os.ReadDir(root)
	if err != nil {
		return files
	}
	for _, e := range entries {
		p := filepath.Join(root, e.Name())
		if e.IsDir() {
			files = append(files, ListDocuments(p)...)
			continue
		}
		if eligibleDocument(e.Name()) {
			files = append(files, p)
		}
	}
	return files
}
