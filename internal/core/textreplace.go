package core

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"docaudit/internal/docx"
)

// Find/replace statuses reported per file.
const (
	StatusFound      = "Found"
	StatusReplaced   = "Replaced & Saved"
	StatusNoFindText = "No find_text provided"
	StatusError      = "error"
)

// Result is the outcome of one find/replace invocation on one file.
type Result struct {
	Path       string   `json:"path,omitempty"`
	Matches    int      `json:"matches"`
	Status     string   `json:"status"`
	Snippets   []string `json:"snippets"`
	CopyPath   string   `json:"copy_path,omitempty"`
	FoundURLs  []string `json:"found_urls,omitempty"`
	FoundTexts []string `json:"found_texts,omitempty"`
	DidReplace bool     `json:"did_replace"`
	Error      string   `json:"error,omitempty"`
}

// FindReplace scans body text (paragraphs and table cells, nested
// tables included) for case-insensitive literal occurrences of
// findText. With a non-nil replace it rewrites every match and saves
// the document in place; the original casing of matched substrings is
// not preserved. When matches were found and backupPath is non-empty,
// the pristine file is copied there before any save, including on
// find-only calls. Backup failures are swallowed: the result simply
// carries no copy path.
func FindReplace(path, findText string, replace *string, backupPath string) (Result, error) {
	if findText == "" {
		return Result{Status: StatusNoFindText, Snippets: []string{}}, nil
	}

	doc, err := docx.Open(path)
	if err != nil {
		return Result{}, err
	}

	pattern := compileLiteral(findText)
	matches := 0
	snippets := []string{}

	forEachParagraph(doc, func(p docx.Paragraph) {
		text := p.Text()
		found := pattern.FindAllStringIndex(text, -1)
		if len(found) == 0 {
			return
		}
		matches += len(found)
		snippets = append(snippets, contextSnippet(text, pattern))
		if replace != nil {
			p.SetText(pattern.ReplaceAllLiteralString(text, *replace))
		}
	})

	copyPath := ""
	if matches > 0 && backupPath != "" {
		if err := copyFile(path, backupPath); err == nil {
			copyPath = backupPath
		}
	}

	status := StatusFound
	if replace != nil && matches > 0 {
		if err := doc.Save(path); err != nil {
			return Result{}, err
		}
		status = StatusReplaced
	}

	return Result{
		Matches:  matches,
		Status:   status,
		Snippets: snippets,
		CopyPath: copyPath,
	}, nil
}

// contextSnippet builds a human-readable excerpt around the first
// match. Long paragraphs are truncated to a 40-character window on
// each side of the match. Windows are measured in runes so multibyte
// text is never cut mid-character.
func contextSnippet(text string, pattern *regexp.Regexp) string {
	snippet := strings.TrimSpace(text)
	runes := []rune(snippet)
	if len(runes) <= 100 {
		return snippet
	}
	matchStart, matchEnd := 0, 0
	if loc := pattern.FindStringIndex(snippet); loc != nil {
		matchStart = utf8.RuneCountInString(snippet[:loc[0]])
		matchEnd = utf8.RuneCountInString(snippet[:loc[1]])
	}
	start := matchStart - 40
	if start < 0 {
		start = 0
	}
	end := matchEnd + 40
	if end > len(runes) {
		end = len(runes)
	}
	return "..." + string(runes[start:end]) + "..."
}
