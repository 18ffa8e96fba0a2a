package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docaudit/internal/core"
)

// rootArg resolves the optional positional root argument, defaulting to
// the current directory, and verifies it is a directory.
func rootArg(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newLogger builds the command logger. Verbose runs get a development
// logger on stderr; otherwise logging is disabled.
func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// replaceArg returns the replacement pointer for find/replace commands:
// nil when the flag was not set, so the engines run in find-only mode.
func replaceArg(cmd *cobra.Command) *string {
	if !cmd.Flags().Changed("replace") {
		return nil
	}
	v, _ := cmd.Flags().GetString("replace")
	return &v
}

// targetFiles resolves the file-or-root argument of the replace
// commands into a file list and the base directory backup paths mirror.
func targetFiles(arg string) (files []string, baseDir string, err error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return nil, "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, "", err
	}
	if info.IsDir() {
		return core.ListDocuments(abs), abs, nil
	}
	return []string{abs}, filepath.Dir(abs), nil
}

// bulkOptions assembles backup and logging options for a replace run.
// The backup root comes from the per-root config; files already under
// it are excluded from processing.
func bulkOptions(cmd *cobra.Command, files []string, baseDir string) ([]string, core.BulkOptions, error) {
	cfg, err := core.LoadConfig(baseDir)
	if err != nil {
		return nil, core.BulkOptions{}, err
	}
	opts := core.BulkOptions{BaseDir: baseDir, Logger: newLogger(cmd)}
	saveCopies, _ := cmd.Flags().GetBool("save-copies")
	if saveCopies {
		opts.BackupRoot = core.ResolveBackupRoot(baseDir, cfg.BackupDirName())
		files = core.ExcludeBackupTree(files, baseDir, opts.BackupRoot)
	}
	return files, opts, nil
}

func printBulkResult(cmd *cobra.Command, res core.BulkResult) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(cmd, res)
	}
	out := cmd.OutOrStdout()
	for _, f := range res.Files {
		if f.Error != "" {
			fmt.Fprintf(out, "%s: %s (%s)\n", f.Path, f.Status, f.Error)
			continue
		}
		fmt.Fprintf(out, "%s: %s (%d matches)\n", f.Path, f.Status, f.Matches)
		for _, s := range f.Snippets {
			fmt.Fprintf(out, "  %s\n", s)
		}
		if f.CopyPath != "" {
			fmt.Fprintf(out, "  copy: %s\n", f.CopyPath)
		}
	}
	fmt.Fprintf(out, "total: %d matches across %d files\n", res.TotalMatches, len(res.Files))
	return nil
}
