package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docaudit/internal/core"
)

func RunAnalyze(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	cfg, err := core.LoadConfig(filepath.Dir(path))
	if err != nil {
		return err
	}
	report, err := core.AnalyzeFile(path, cfg.Classifier())
	if err != nil {
		return err
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(cmd, report)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", report.Path)
	fmt.Fprintf(out, "track changes: %v\n", report.TrackedChanges)
	fmt.Fprintf(out, "links: %d\n", len(report.Links))
	for _, l := range report.Links {
		fmt.Fprintf(out, "  [%s] %s -> %s\n", l.Type, l.Text, l.URL)
	}
	return nil
}
