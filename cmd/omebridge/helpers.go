// Shared helpers for omebridge CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lumigraph/omebridge/internal/sqlite"
	"github.com/lumigraph/omebridge/pkg/bridge"
	"github.com/lumigraph/omebridge/pkg/types"
)

// connectBridge resolves the data directory, connects a SQLite-backed
// bridge and returns it. The caller must defer the returned close
// function.
func connectBridge(ctx context.Context) (*bridge.Bridge, func(), error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:  types.BackendSQLite,
		DataDir:  dataDir,
		Username: resolveUsername(),
	}

	b := bridge.New(sqlite.New())
	if err := b.Connect(ctx, cfg); err != nil {
		return nil, nil, err
	}

	return b, func() { b.Disconnect(ctx) }, nil
}

// parseID parses a positional id argument, exiting on garbage.
func parseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid id %q\n", raw)
		os.Exit(exitUserError)
	}
	return id
}

// printResult writes a value as JSON or in its plain form depending on
// the --json flag.
func printResult(plain string, value any) {
	if !flagJSON {
		fmt.Println(plain)
		return
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal JSON:", err)
		os.Exit(exitSysError)
	}
	fmt.Println(string(out))
}

// joinIDs renders ids the way the scripting surface does.
func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// fail prints an error and exits with the user-error code.
func fail(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
	os.Exit(exitUserError)
}

// failSys prints an error and exits with the system-error code.
func failSys(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
	os.Exit(exitSysError)
}
