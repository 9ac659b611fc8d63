// Link and unlink commands for the omebridge CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link <type1> <id1> <type2> <id2>",
	Short: "Link two objects",
	Long: `Link connects two objects: an annotation to a repository object, a
dataset into a project, or an image into a dataset. The two sides may
come in either order.

Example:
  omebridge link tag 7 dataset 3
  omebridge link project 1 dataset 3`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("link", err)
		}
		defer closeBridge()

		if err := b.Link(ctx, args[0], parseID(args[1]), args[2], parseID(args[3])); err != nil {
			fail("link", err)
		}

		printResult(fmt.Sprintf("Linked %s %s and %s %s", args[0], args[1], args[2], args[3]), true)
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <type1> <id1> <type2> <id2>",
	Short: "Remove the link between two objects",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("unlink", err)
		}
		defer closeBridge()

		if err := b.Unlink(ctx, args[0], parseID(args[1]), args[2], parseID(args[3])); err != nil {
			fail("unlink", err)
		}

		printResult(fmt.Sprintf("Unlinked %s %s and %s %s", args[0], args[1], args[2], args[3]), true)
	},
}
