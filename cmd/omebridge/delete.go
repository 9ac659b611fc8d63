// Delete command for the omebridge CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <type> <id>",
	Short: "Delete an object of any kind",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("delete", err)
		}
		defer closeBridge()

		id := parseID(args[1])
		if err := b.Delete(ctx, args[0], id); err != nil {
			fail("delete", err)
		}

		printResult(fmt.Sprintf("Deleted %s %d", args[0], id), id)
	},
}
