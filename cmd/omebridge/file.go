// File attachment commands for the omebridge CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fileAttachCmd = &cobra.Command{
	Use:   "file-attach <type> <id> <path>",
	Short: "Attach a file to a repository object",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("file-attach", err)
		}
		defer closeBridge()

		fileID, err := b.AttachFile(ctx, args[0], parseID(args[1]), args[2])
		if err != nil {
			fail("file-attach", err)
		}

		printResult(fmt.Sprintf("Attached file: %d", fileID), fileID)
	},
}

var fileDeleteCmd = &cobra.Command{
	Use:   "file-delete <file-id>",
	Short: "Delete an attached file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("file-delete", err)
		}
		defer closeBridge()

		id := parseID(args[0])
		if err := b.DeleteFile(ctx, id); err != nil {
			fail("file-delete", err)
		}

		printResult(fmt.Sprintf("Deleted file %d", id), id)
	},
}
