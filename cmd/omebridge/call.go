// Call command exposes the scripting surface: one macro invocation per
// run, printing exactly what a macro would receive.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <macro> [args...]",
	Short: "Invoke a macro operation by name",
	Long: `Call dispatches one macro operation and prints its result string.
Failures never change the result shape: errors go to the log and the
macro's neutral value is printed instead.

Example:
  omebridge call list datasets
  omebridge call createProject screening "march run"
  omebridge call getValue image 3 stain unknown`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("call", err)
		}
		defer closeBridge()

		result := b.Call(ctx, args[0], args[1:]...)
		if flagJSON {
			printResult(result, result)
			return
		}
		fmt.Println(result)
	},
}
