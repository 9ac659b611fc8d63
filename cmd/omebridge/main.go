// Package main provides the omebridge CLI, a command-line front end to
// the image repository bridge. Every command connects to the configured
// backend, performs one operation and disconnects.
package main

import (
	"context"
	"fmt"
	"os"

	"pkt.systems/pslog"
)

func main() {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx := pslog.ContextWithLogger(context.Background(), logger)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
