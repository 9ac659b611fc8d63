// Name command prints the display name of any object.
package main

import (
	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name <type> <id>",
	Short: "Print the name of an object",
	Long: `Name prints the display name of an object of any kind. For kv-pairs
the key-value content is printed as tab-separated lines.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("name", err)
		}
		defer closeBridge()

		name, err := b.GetName(ctx, args[0], parseID(args[1]))
		if err != nil {
			fail("name", err)
		}

		printResult(name, name)
	},
}
