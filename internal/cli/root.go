// Package cli wires the docaudit commands.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docaudit",
		Short: "Audit and bulk-edit hyperlinks in .docx document trees",
		Long: `Docaudit scans a directory tree of .docx documents, extracts and
classifies their hyperlinks, derives the dependency graph between
documents, and performs literal case-insensitive find/replace over
body text and hyperlink text/targets with pre-mutation backups.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Show the folder/document tree under a root",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunScan,
	}
	scanCmd.Flags().Bool("json", false, "Print machine-readable tree")

	linksCmd := &cobra.Command{
		Use:   "links [root]",
		Short: "Extract and classify hyperlinks from every document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunLinks,
	}
	linksCmd.Flags().Bool("json", false, "Print machine-readable link listing")
	linksCmd.Flags().Bool("deps", false, "Include the document dependency graph")
	linksCmd.Flags().Bool("verbose", false, "Log per-file progress")

	exportCmd := &cobra.Command{
		Use:   "export [root]",
		Short: "Export the link listing as an xlsx workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunExport,
	}
	exportCmd.Flags().StringP("out", "o", "links.xlsx", "Output workbook path")

	replaceCmd := &cobra.Command{
		Use:   "replace <file-or-root>",
		Short: "Find or replace literal text in document bodies",
		Args:  cobra.ExactArgs(1),
		RunE:  RunReplace,
	}
	replaceCmd.Flags().String("find", "", "Literal text to search for (case-insensitive)")
	replaceCmd.Flags().String("replace", "", "Replacement text; omit the flag for find-only")
	replaceCmd.Flags().Bool("save-copies", true, "Copy originals to the backup root before saving")
	replaceCmd.Flags().Bool("json", false, "Print machine-readable results")
	replaceCmd.Flags().Bool("verbose", false, "Log per-file progress")

	replaceLinksCmd := &cobra.Command{
		Use:   "replace-links <file-or-root>",
		Short: "Find or replace text in hyperlink names and targets",
		Args:  cobra.ExactArgs(1),
		RunE:  RunReplaceLinks,
	}
	replaceLinksCmd.Flags().String("find", "", "Literal text to search for (case-insensitive)")
	replaceLinksCmd.Flags().String("replace", "", "Replacement; a matched URL is replaced whole")
	replaceLinksCmd.Flags().String("target", "both", "Scope: name, url, or both")
	replaceLinksCmd.Flags().Bool("save-copies", true, "Copy originals to the backup root before saving")
	replaceLinksCmd.Flags().Bool("json", false, "Print machine-readable results")
	replaceLinksCmd.Flags().Bool("verbose", false, "Log per-file progress")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Report track-changes state and links of one document",
		Args:  cobra.ExactArgs(1),
		RunE:  RunAnalyze,
	}
	analyzeCmd.Flags().Bool("json", false, "Print machine-readable report")

	rootCmd.AddCommand(scanCmd, linksCmd, exportCmd, replaceCmd, replaceLinksCmd, analyzeCmd)
	return rootCmd
}
