package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docaudit/internal/core"
)

func RunScan(cmd *cobra.Command, args []string) error {
	root, err := rootArg(args)
	if err != nil {
		return err
	}
	tree := core.ScanTree(root)
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(cmd, tree)
	}
	printTree(cmd, tree, 0)
	return nil
}

func printTree(cmd *cobra.Command, node core.TreeNode, depth int) {
	marker := ""
	if node.Type == "folder" {
		marker = "/"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s\n", strings.Repeat("  ", depth), node.Name, marker)
	for _, child := range node.Children {
		printTree(cmd, child, depth+1)
	}
}
