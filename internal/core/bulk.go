package core

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// BulkOptions configures a bulk find/replace run. Backup state is
// passed explicitly on every call; the engines hold no shared state
// between invocations.
type BulkOptions struct {
	// BackupRoot is where pre-mutation copies are mirrored. Empty
	// disables backups.
	BackupRoot string
	// BaseDir is the scan root; backup paths mirror each file's path
	// relative to it.
	BaseDir string
	// Logger receives per-file progress. Nil means no logging.
	Logger *zap.Logger
}

func (o BulkOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// BulkResult aggregates per-file results of a bulk run.
type BulkResult struct {
	TotalMatches int      `json:"total_matches"`
	Files        []Result `json:"files"`
	Mode         string   `json:"mode"` // "find" or "replace"
	Target       Scope    `json:"target,omitempty"`
	SaveRoot     string   `json:"save_root,omitempty"`
}

// ResolveBackupRoot picks the directory backups are mirrored under: a
// subfolder on the user's desktop when one exists, otherwise a
// subfolder under the scan root.
func ResolveBackupRoot(root, dirName string) string {
	if home, err := os.UserHomeDir(); err == nil {
		desktop := filepath.Join(home, "Desktop")
		if info, err := os.Stat(desktop); err == nil && info.IsDir() {
			return filepath.Join(desktop, dirName)
		}
	}
	return filepath.Join(root, dirName)
}

// ExcludeBackupTree filters out files living under the backup root when
// it nests inside the scan root. Without this, repeated runs would
// reprocess previously saved copies.
func ExcludeBackupTree(files []string, root, backupRoot string) []string {
	if backupRoot == "" || !pathWithin(backupRoot, root) {
		return files
	}
	kept := make([]string, 0, len(files))
	for _, f := range files {
		if pathWithin(f, backupRoot) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// backupPathFor mirrors a file's scan-root-relative path under the
// backup root.
func backupPathFor(path string, opts BulkOptions) string {
	if opts.BackupRoot == "" {
		return ""
	}
	rel, err := filepath.Rel(opts.BaseDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.Join(opts.BackupRoot, rel)
}

// FindReplaceBulk runs the body-text engine over every file,
// aggregating totals. Per-file failures are recorded on that file's
// result and the batch continues.
func FindReplaceBulk(files []string, findText string, replace *string, opts BulkOptions) BulkResult {
	log := opts.logger()
	out := BulkResult{Mode: bulkMode(replace), Files: []Result{}}
	for _, path := range files {
		res, err := FindReplace(path, findText, replace, backupPathFor(path, opts))
		if err != nil {
			log.Warn("file failed", zap.String("path", path), zap.Error(err))
			out.Files = append(out.Files, errorResult(path, err))
			continue
		}
		res.Path = path
		out.TotalMatches += res.Matches
		out.Files = append(out.Files, res)
		log.Debug("file processed", zap.String("path", path), zap.Int("matches", res.Matches))
	}
	return out
}

// LinkFindReplaceBulk runs the hyperlink engine over every file. Files
// under the backup root are skipped. To avoid producing a backup when
// nothing will be written, each file first gets a detection-only pass;
// the mutating pass (with backup path) runs only when a replacement
// was requested and the detection found matches.
func LinkFindReplaceBulk(files []string, findText string, replace *string, scope Scope, opts BulkOptions) BulkResult {
	log := opts.logger()
	out := BulkResult{Mode: bulkMode(replace), Target: scope, Files: []Result{}}
	for _, path := range files {
		if opts.BackupRoot != "" && pathWithin(path, opts.BackupRoot) {
			continue
		}
		detect, err := LinkFindReplace(path, findText, nil, scope, "")
		if err != nil {
			log.Warn("file failed", zap.String("path", path), zap.Error(err))
			out.Files = append(out.Files, errorResult(path, err))
			continue
		}
		res := detect
		if detect.Matches > 0 && replace != nil {
			res, err = LinkFindReplace(path, findText, replace, scope, backupPathFor(path, opts))
			if err != nil {
				log.Warn("file failed", zap.String("path", path), zap.Error(err))
				out.Files = append(out.Files, errorResult(path, err))
				continue
			}
		}
		res.Path = path
		out.TotalMatches += res.Matches
		out.Files = append(out.Files, res)
		log.Debug("file processed", zap.String("path", path), zap.Int("matches", res.Matches))
	}
	return out
}

func bulkMode(replace *string) string {
	if replace != nil {
		return "replace"
	}
	return "find"
}

func errorResult(path string, err error) Result {
	return Result{
		Path:     path,
		Status:   StatusError,
		Snippets: []string{},
		Error:    err.Error(),
	}
}
