package core

import (
	"database/sql"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DependencyDetail is one provenance record of a dependency edge.
type DependencyDetail struct {
	From   string `json:"from,omitempty"`   // incoming: source rel path
	Text   string `json:"text"`             // link display text
	Href   string `json:"href"`             // raw target
	Target string `json:"target,omitempty"` // outgoing: target rel path
}

// DependencyRecord aggregates the edges of one document.
type DependencyRecord struct {
	Path            string             `json:"path"`
	RelPath         string             `json:"rel_path"`
	OutgoingFiles   int                `json:"outgoing_files"`
	IncomingFiles   int                `json:"incoming_files"`
	OutgoingDetails []DependencyDetail `json:"outgoing_details"`
	IncomingDetails []DependencyDetail `json:"incoming_details"`
}

// BuildDependencies derives the directed dependency graph between the
// given files from their extracted links, using an in-memory SQLite
// database as the working store. Only internal/document links form
// edges; a link matches a target document by its normalized
// root-relative path or, case-insensitively, by display text equal to
// a file's basename without extension (all candidates when basenames
// collide). Self-edges are discarded. Counts are distinct-neighbor
// cardinalities; details keep every link occurrence in order.
func BuildDependencies(rootPath string, files []string, linkData []FileLinks) ([]DependencyRecord, error) {
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE docs (
			id   INTEGER PRIMARY KEY,
			path TEXT NOT NULL UNIQUE,
			rel  TEXT NOT NULL,
			base TEXT NOT NULL
		);`,
		`CREATE INDEX idx_docs_rel ON docs(rel);`,
		`CREATE INDEX idx_docs_base ON docs(base);`,
		`CREATE TABLE edges (
			id        INTEGER PRIMARY KEY,
			source_id INTEGER NOT NULL,
			target_id INTEGER NOT NULL,
			text      TEXT,
			href      TEXT,
			FOREIGN KEY(source_id) REFERENCES docs(id),
			FOREIGN KEY(target_id) REFERENCES docs(id)
		);`,
		`CREATE INDEX idx_edges_source ON edges(source_id);`,
		`CREATE INDEX idx_edges_target ON edges(target_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return nil, err
		}
	}

	pathToID := make(map[string]int64, len(files))
	for i, path := range files {
		rel := rootRelative(path, rootPath)
		base := strings.ToLower(strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel)))
		id := int64(i + 1)
		if _, err := db.Exec(
			`INSERT INTO docs (id, path, rel, base) VALUES (?, ?, ?, ?)`,
			id, path, rel, base,
		); err != nil {
			return nil, err
		}
		pathToID[path] = id
	}

	for _, item := range linkData {
		srcID, ok := pathToID[item.Path]
		if !ok {
			continue
		}
		for _, link := range item.Links {
			if link.Type != LinkInternal && link.Type != LinkDocument {
				continue
			}
			targets, err := matchTargets(db, link, rootPath)
			if err != nil {
				return nil, err
			}
			href := link.Raw
			if href == "" {
				href = link.URL
			}
			for _, tgtID := range targets {
				if tgtID == srcID {
					continue
				}
				if _, err := db.Exec(
					`INSERT INTO edges (source_id, target_id, text, href) VALUES (?, ?, ?, ?)`,
					srcID, tgtID, link.Text, href,
				); err != nil {
					return nil, err
				}
			}
		}
	}

	return collectDependencies(db)
}

// matchTargets returns the candidate document ids a link points at:
// exact normalized-path matches plus case-insensitive basename matches
// on the display text.
func matchTargets(db *sql.DB, link Link, rootPath string) ([]int64, error) {
	ids := make(map[int64]bool)

	normalized := link.Normalized
	if normalized == "" {
		normalized = link.URL
	}
	if rel := relTargetUnderRoot(normalized, rootPath); rel != "" {
		rows, err := db.Query(`SELECT id FROM docs WHERE rel = ?`, rel)
		if err != nil {
			return nil, err
		}
		if err := scanIDs(rows, ids); err != nil {
			return nil, err
		}
	}

	text := strings.ToLower(strings.TrimSpace(link.Text))
	if text != "" {
		rows, err := db.Query(`SELECT id FROM docs WHERE base = ?`, text)
		if err != nil {
			return nil, err
		}
		if err := scanIDs(rows, ids); err != nil {
			return nil, err
		}
	}

	out := make([]int64, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out, nil
}

func scanIDs(rows *sql.Rows, into map[int64]bool) error {
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		into[id] = true
	}
	return rows.Err()
}

func collectDependencies(db *sql.DB) ([]DependencyRecord, error) {
	rows, err := db.Query(`SELECT id, path, rel FROM docs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type docRow struct {
		id   int64
		path string
		rel  string
	}
	var docs []docRow
	for rows.Next() {
		var d docRow
		if err := rows.Scan(&d.id, &d.path, &d.rel); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]DependencyRecord, 0, len(docs))
	for _, d := range docs {
		rec := DependencyRecord{
			Path:            d.path,
			RelPath:         d.rel,
			OutgoingDetails: []DependencyDetail{},
			IncomingDetails: []DependencyDetail{},
		}

		row := db.QueryRow(`SELECT COUNT(DISTINCT target_id) FROM edges WHERE source_id = ?`, d.id)
		if err := row.Scan(&rec.OutgoingFiles); err != nil {
			return nil, err
		}
		row = db.QueryRow(`SELECT COUNT(DISTINCT source_id) FROM edges WHERE target_id = ?`, d.id)
		if err := row.Scan(&rec.IncomingFiles); err != nil {
			return nil, err
		}

		outRows, err := db.Query(`
			SELECT e.text, e.href, t.rel
			FROM edges e JOIN docs t ON t.id = e.target_id
			WHERE e.source_id = ? ORDER BY e.id`, d.id)
		if err != nil {
			return nil, err
		}
		for outRows.Next() {
			var det DependencyDetail
			if err := outRows.Scan(&det.Text, &det.Href, &det.Target); err != nil {
				outRows.Close()
				return nil, err
			}
			rec.OutgoingDetails = append(rec.OutgoingDetails, det)
		}
		if err := outRows.Err(); err != nil {
			outRows.Close()
			return nil, err
		}
		outRows.Close()

		inRows, err := db.Query(`
			SELECT s.rel, e.text, e.href
			FROM edges e JOIN docs s ON s.id = e.source_id
			WHERE e.target_id = ? ORDER BY e.id`, d.id)
		if err != nil {
			return nil, err
		}
		for inRows.Next() {
			var det DependencyDetail
			if err := inRows.Scan(&det.From, &det.Text, &det.Href); err != nil {
				inRows.Close()
				return nil, err
			}
			rec.IncomingDetails = append(rec.IncomingDetails, det)
		}
		if err := inRows.Err(); err != nil {
			inRows.Close()
			return nil, err
		}
		inRows.Close()

		records = append(records, rec)
	}
	return records, nil
}

// rootRelative returns path relative to root with forward slashes,
// falling back to the path itself when it does not resolve under root.
func rootRelative(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// relTargetUnderRoot normalizes a link target to a root-relative path
// when the target resolves inside the root. Absolute targets are
// re-relativized; relative ones are joined against the root. Targets
// escaping the root come back unchanged so that exact-path matching
// simply misses.
func relTargetUnderRoot(normalized, root string) string {
	if normalized == "" {
		return ""
	}
	val := normalizeSlash(normalized)
	if filepath.IsAbs(val) {
		if rel, err := filepath.Rel(root, val); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	candidate := filepath.Clean(filepath.Join(root, val))
	if rel, err := filepath.Rel(root, candidate); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return val
}
