package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docaudit/internal/core"
)

func RunExport(cmd *cobra.Command, args []string) error {
	root, err := rootArg(args)
	if err != nil {
		return err
	}
	cfg, err := core.LoadConfig(root)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("out")

	files := core.ListDocuments(root)
	linkData := core.CollectLinks(files, root, cfg.Classifier())
	rows := core.LinkRows(linkData)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := core.WriteLinksXLSX(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d link rows to %s\n", len(rows), outPath)
	return nil
}
