package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docaudit/internal/core"
)

func RunReplace(cmd *cobra.Command, args []string) error {
	findText, _ := cmd.Flags().GetString("find")
	if findText == "" {
		return fmt.Errorf("--find is required")
	}
	files, baseDir, err := targetFiles(args[0])
	if err != nil {
		return err
	}
	files, opts, err := bulkOptions(cmd, files, baseDir)
	if err != nil {
		return err
	}
	res := core.FindReplaceBulk(files, findText, replaceArg(cmd), opts)
	if opts.BackupRoot != "" {
		res.SaveRoot = opts.BackupRoot
	}
	return printBulkResult(cmd, res)
}
