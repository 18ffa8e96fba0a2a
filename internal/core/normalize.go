package core

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// LinkType classifies an extracted hyperlink target.
type LinkType string

const (
	LinkEmail    LinkType = "email"
	LinkInternal LinkType = "internal"
	LinkDocument LinkType = "document"
	LinkExternal LinkType = "external"
	LinkUnknown  LinkType = "unknown"
)

// drivePathRe matches Windows drive-letter absolute paths like `C:\x`
// or `C:/x`.
var drivePathRe = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// Classifier classifies raw hyperlink targets. HubDomains are
// collaboration-hub host tokens whose links count as internal (or
// document, when the URL mentions one); Keywords are organization
// tokens that mark a link internal regardless of scheme.
type Classifier struct {
	HubDomains []string
	Keywords   []string
}

// Classify maps a raw target string to a link type and a normalized
// representation. docPath is the containing document (may be empty);
// baseDir is the directory relative paths are computed against.
//
// Rules are checked in order and the first match wins. The token
// checks deliberately run before the scheme checks: hub links use
// https URLs and would otherwise classify as external. The flip side
// is that an unrelated URL containing a keyword substring also
// classifies as internal.
func (c Classifier) Classify(raw, docPath, baseDir string) (LinkType, string) {
	lower := strings.ToLower(raw)

	if strings.HasPrefix(lower, "mailto:") || strings.Contains(lower, "mailto:") {
		return LinkEmail, raw
	}

	for _, domain := range c.HubDomains {
		if domain == "" || !strings.Contains(lower, strings.ToLower(domain)) {
			continue
		}
		if strings.Contains(lower, "document") {
			return LinkDocument, raw
		}
		return LinkInternal, raw
	}

	for _, kw := range c.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return LinkInternal, raw
		}
	}

	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "ftp://") || strings.HasPrefix(raw, "//") {
		return LinkExternal, raw
	}

	if strings.HasPrefix(lower, "file:") {
		p := strings.TrimPrefix(raw[len("file:"):], "//")
		if dec, err := url.PathUnescape(p); err == nil {
			p = dec
		}
		p = stripDriveSlash(p)
		return LinkInternal, relativizeTarget(p, baseDir)
	}

	if isDrivePath(raw) {
		return LinkInternal, relativizeTarget(raw, baseDir)
	}

	if docPath != "" {
		resolved := filepath.Join(filepath.Dir(docPath), filepath.FromSlash(normalizeSlash(raw)))
		return LinkInternal, relativizeTarget(resolved, baseDir)
	}

	return LinkUnknown, raw
}

// stripDriveSlash removes the leading slash that file URLs put in
// front of Windows drive paths, as in /C:/docs/a.docx.
func stripDriveSlash(p string) string {
	if len(p) >= 3 && p[0] == '/' && drivePathRe.MatchString(p[1:]) {
		return p[1:]
	}
	return p
}

// isDrivePath reports whether the string looks like a Windows
// drive-letter absolute path. Checked on every platform because the
// corpus regularly carries links authored on Windows machines.
func isDrivePath(s string) bool {
	return drivePathRe.MatchString(s)
}

// relativizeTarget normalizes separators and computes the path
// relative to baseDir, falling back to the cleaned absolute form when
// no base is supplied or the computation fails.
func relativizeTarget(p, baseDir string) string {
	cleaned := path.Clean(normalizeSlash(p))
	if baseDir == "" {
		return cleaned
	}
	rel, err := filepath.Rel(baseDir, filepath.FromSlash(cleaned))
	if err != nil {
		return cleaned
	}
	return filepath.ToSlash(rel)
}

// normalizeSlash converts backslashes to forward slashes.
func normalizeSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
