// Key-value commands for the omebridge CLI.
package main

import (
	"github.com/spf13/cobra"
)

var kvSeparator string

var kvCmd = &cobra.Command{
	Use:   "kv <type> <id>",
	Short: "Print the key-value content attached to an object",
	Long: `Kv aggregates the content of every key-value pair attached to a
repository object and prints it as one separator-joined line.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("kv", err)
		}
		defer closeBridge()

		joined, err := b.KeyValuePairs(ctx, args[0], parseID(args[1]), kvSeparator)
		if err != nil {
			fail("kv", err)
		}

		printResult(joined, joined)
	},
}

var valueDefault string

var valueCmd = &cobra.Command{
	Use:   "value <type> <id> <key>",
	Short: "Print the value stored under a key on an object",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("value", err)
		}
		defer closeBridge()

		var def *string
		if cmd.Flags().Changed("default") {
			def = &valueDefault
		}
		value, err := b.GetValue(ctx, args[0], parseID(args[1]), args[2], def)
		if err != nil {
			fail("value", err)
		}

		printResult(value, value)
	},
}

func init() {
	kvCmd.Flags().StringVar(&kvSeparator, "separator", "", "separator between keys and values (default tab)")
	valueCmd.Flags().StringVar(&valueDefault, "default", "", "value to print when the key is absent")
}
