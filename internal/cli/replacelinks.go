package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docaudit/internal/core"
)

func RunReplaceLinks(cmd *cobra.Command, args []string) error {
	findText, _ := cmd.Flags().GetString("find")
	if findText == "" {
		return fmt.Errorf("--find is required")
	}
	scopeStr, _ := cmd.Flags().GetString("target")
	scope := core.Scope(scopeStr)
	switch scope {
	case core.ScopeName, core.ScopeURL, core.ScopeBoth:
	default:
		return fmt.Errorf("invalid --target %q: want name, url, or both", scopeStr)
	}

	files, baseDir, err := targetFiles(args[0])
	if err != nil {
		return err
	}
	files, opts, err := bulkOptions(cmd, files, baseDir)
	if err != nil {
		return err
	}
	res := core.LinkFindReplaceBulk(files, findText, replaceArg(cmd), scope, opts)
	if opts.BackupRoot != "" {
		res.SaveRoot = opts.BackupRoot
	}
	return printBulkResult(cmd, res)
}
