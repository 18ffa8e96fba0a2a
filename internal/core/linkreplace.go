package core

import (
	"fmt"
	"regexp"
	"strings"

	"docaudit/internal/docx"
)

// Scope selects which side of a hyperlink the link engine targets.
type Scope string

const (
	ScopeName Scope = "name" // display text only
	ScopeURL  Scope = "url"  // link target only
	ScopeBoth Scope = "both"
)

func (s Scope) includesName() bool { return s == ScopeName || s == ScopeBoth }
func (s Scope) includesURL() bool  { return s == ScopeURL || s == ScopeBoth }

// Field instruction URL forms, tried in order: double-quoted,
// single-quoted, bare.
var (
	fieldURLDouble = regexp.MustCompile(`HYPERLINK\s+"([^"]+)"`)
	fieldURLSingle = regexp.MustCompile(`HYPERLINK\s+'([^']+)'`)
	fieldURLBare   = regexp.MustCompile(`HYPERLINK\s+(\S+)`)
)

// LinkFindReplace scans only hyperlink constructs: relationship-based
// references and legacy field-code hyperlinks. Display-text matches
// are replaced within each contributing run, preserving run
// boundaries. URL matches are replaced by substituting the entire
// target with the replacement string: relationship hyperlinks get a
// fresh relationship entry (external flag preserved) and the reference
// is repointed; field hyperlinks get the literal URL rewritten inside
// the instruction text. A reference whose relationship id resolves to
// no table entry carries no URL and is never matched.
// Backup and save semantics match FindReplace.
func LinkFindReplace(path, findText string, replace *string, scope Scope, backupPath string) (Result, error) {
	if findText == "" {
		return Result{Status: StatusNoFindText, Snippets: []string{}}, nil
	}

	doc, err := docx.Open(path)
	if err != nil {
		return Result{}, err
	}

	state := &linkReplaceState{
		doc:        doc,
		pattern:    compileLiteral(findText),
		replace:    replace,
		scope:      scope,
		snippets:   []string{},
		foundURLs:  newOrderedSet(),
		foundTexts: newOrderedSet(),
	}

	forEachParagraph(doc, func(p docx.Paragraph) {
		state.processFieldHyperlinks(p)
		for _, h := range p.Hyperlinks() {
			state.processHyperlink(h)
		}
	})

	copyPath := ""
	if state.matches > 0 && backupPath != "" {
		if err := copyFile(path, backupPath); err == nil {
			copyPath = backupPath
		}
	}

	status := StatusFound
	didReplace := false
	if replace != nil && state.matches > 0 {
		if err := doc.Save(path); err != nil {
			return Result{}, err
		}
		status = StatusReplaced
		didReplace = true
	}

	return Result{
		Matches:    state.matches,
		Status:     status,
		Snippets:   state.snippets,
		CopyPath:   copyPath,
		FoundURLs:  state.foundURLs.values(),
		FoundTexts: state.foundTexts.values(),
		DidReplace: didReplace,
	}, nil
}

type linkReplaceState struct {
	doc        *docx.Document
	pattern    *regexp.Regexp
	replace    *string
	scope      Scope
	matches    int
	snippets   []string
	foundURLs  *orderedSet
	foundTexts *orderedSet
}

// processHyperlink handles a relationship-based hyperlink reference.
func (s *linkReplaceState) processHyperlink(h docx.Hyperlink) {
	rel, relOK := s.doc.Relationship(h.RelID())
	url := ""
	if relOK {
		url = rel.Target
	}
	linkText := h.Text()

	if s.scope.includesName() && linkText != "" && s.pattern.MatchString(linkText) {
		s.matches += len(s.pattern.FindAllString(linkText, -1))
		s.snippets = append(s.snippets, "text: "+linkText)
		s.foundTexts.add(linkText)
		if s.replace != nil {
			for _, run := range h.Runs() {
				if t := run.Text(); t != "" {
					run.SetText(s.pattern.ReplaceAllLiteralString(t, *s.replace))
				}
			}
		}
	}

	if s.scope.includesURL() && url != "" && s.pattern.MatchString(url) {
		s.matches += len(s.pattern.FindAllString(url, -1))
		s.snippets = append(s.snippets, "url: "+url)
		s.foundURLs.add(url)
		if s.replace != nil {
			// The whole URL is substituted, not just the matched part.
			newTarget := *s.replace
			newID := s.doc.AddHyperlinkRelationship(newTarget, rel.External())
			h.SetRelID(newID)
			s.snippets = append(s.snippets, fmt.Sprintf("replaced-url: %s -> %s (rId=%s)", url, newTarget, newID))
		}
	}
}

// processFieldHyperlinks handles legacy HYPERLINK field instructions in
// a paragraph. The visible text of a field hyperlink is the rendered
// paragraph text, independent of the instruction.
func (s *linkReplaceState) processFieldHyperlinks(p docx.Paragraph) {
	for _, instr := range p.FieldInstructions() {
		instrText := instr.Text()
		if !strings.Contains(instrText, "HYPERLINK") {
			continue
		}
		url := parseFieldURL(instrText)
		linkText := p.Text()

		if s.scope.includesURL() && url != "" && s.pattern.MatchString(url) {
			s.matches += len(s.pattern.FindAllString(url, -1))
			s.snippets = append(s.snippets, "field-url: "+url)
			s.foundURLs.add(url)
			if s.replace != nil {
				newTarget := *s.replace
				instr.SetText(strings.ReplaceAll(instrText, url, newTarget))
				s.snippets = append(s.snippets, fmt.Sprintf("replaced-field-url: %s -> %s", url, newTarget))
			}
		}

		if s.scope.includesName() && linkText != "" && s.pattern.MatchString(linkText) {
			s.matches += len(s.pattern.FindAllString(linkText, -1))
			s.snippets = append(s.snippets, "field-text: "+linkText)
			s.foundTexts.add(linkText)
			if s.replace != nil {
				for _, run := range p.Runs() {
					if t := run.Text(); t != "" {
						run.SetText(s.pattern.ReplaceAllLiteralString(t, *s.replace))
					}
				}
			}
		}
	}
}

// parseFieldURL extracts the URL from a HYPERLINK field instruction.
func parseFieldURL(instrText string) string {
	for _, re := range []*regexp.Regexp{fieldURLDouble, fieldURLSingle, fieldURLBare} {
		if m := re.FindStringSubmatch(instrText); m != nil {
			return m[1]
		}
	}
	return ""
}
