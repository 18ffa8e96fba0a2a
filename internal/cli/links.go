package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docaudit/internal/core"
)

// linksReport is the aggregate output of the links command.
type linksReport struct {
	Files        []core.FileLinks        `json:"files"`
	TotalLinks   int                     `json:"total_links"`
	Dependencies []core.DependencyRecord `json:"dependencies,omitempty"`
}

func RunLinks(cmd *cobra.Command, args []string) error {
	root, err := rootArg(args)
	if err != nil {
		return err
	}
	cfg, err := core.LoadConfig(root)
	if err != nil {
		return err
	}
	log := newLogger(cmd)

	files := core.ListDocuments(root)
	log.Debug("scanning", zap.String("root", root), zap.Int("files", len(files)))
	linkData := core.CollectLinks(files, root, cfg.Classifier())

	report := linksReport{Files: linkData}
	for _, f := range linkData {
		report.TotalLinks += len(f.Links)
	}

	if withDeps, _ := cmd.Flags().GetBool("deps"); withDeps {
		deps, err := core.BuildDependencies(root, files, linkData)
		if err != nil {
			return err
		}
		report.Dependencies = deps
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(cmd, report)
	}

	out := cmd.OutOrStdout()
	for _, f := range report.Files {
		if f.Error != "" {
			fmt.Fprintf(out, "%s: error: %s\n", f.Path, f.Error)
			continue
		}
		fmt.Fprintf(out, "%s: %d links\n", f.Path, len(f.Links))
		for _, l := range f.Links {
			fmt.Fprintf(out, "  [%s] %s -> %s\n", l.Type, l.Text, l.URL)
		}
	}
	for _, d := range report.Dependencies {
		fmt.Fprintf(out, "%s: %d outgoing, %d incoming\n", d.RelPath, d.OutgoingFiles, d.IncomingFiles)
	}
	fmt.Fprintf(out, "total: %d links in %d files\n", report.TotalLinks, len(report.Files))
	return nil
}
