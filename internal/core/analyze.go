package core

import (
	"path/filepath"

	"docaudit/internal/docx"
)

// FileReport is the per-document summary returned by AnalyzeFile.
type FileReport struct {
	Path           string `json:"path"`
	TrackedChanges bool   `json:"tracked_changes"`
	Links          []Link `json:"links"`
}

// AnalyzeFile opens one document and reports whether track changes is
// enabled plus all extracted links, resolved against the file's own
// directory.
func AnalyzeFile(path string, cls Classifier) (FileReport, error) {
	doc, err := docx.Open(path)
	if err != nil {
		return FileReport{}, err
	}
	return FileReport{
		Path:           path,
		TrackedChanges: doc.TrackChangesEnabled(),
		Links:          ExtractLinks(doc, path, filepath.Dir(path), cls),
	}, nil
}
