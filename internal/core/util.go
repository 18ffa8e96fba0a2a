package core

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// compileLiteral builds a case-insensitive matcher for a literal search
// string. The search text is always escaped; callers never supply
// regular expressions.
func compileLiteral(findText string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(findText))
}

// orderedSet deduplicates strings while preserving first-seen order.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

func (s *orderedSet) values() []string { return s.items }

// copyFile copies src to dst, creating dst's parent directories.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// pathWithin reports whether p lives under root (or equals it). The
// comparison is case-insensitive and separator-normalized so that
// backup trees written on other systems are still recognized.
func pathWithin(p, root string) bool {
	absP, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	cp := strings.ToLower(filepath.ToSlash(absP))
	cr := strings.ToLower(filepath.ToSlash(absRoot))
	return cp == cr || strings.HasPrefix(cp, cr+"/")
}
