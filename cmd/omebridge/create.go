// Create command for the omebridge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var createProjectID string

var createCmd = &cobra.Command{
	Use:   "create <type> <name> [description]",
	Short: "Create a project, dataset, tag or key-value pair",
	Long: `Create makes a new object and prints its id.

Creatable kinds: project, dataset, tag, kv-pair. For datasets --project
links the new dataset under a project. For kv-pairs the name and
description arguments carry the key and the value.

Example:
  omebridge create project screening "march run"
  omebridge create dataset plate1 --project 4
  omebridge create kv-pair stain DAPI`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("create", err)
		}
		defer closeBridge()

		name := args[1]
		description := ""
		if len(args) > 2 {
			description = args[2]
		}

		var id int64
		switch args[0] {
		case "project":
			id, err = b.CreateProject(ctx, name, description)
		case "dataset":
			var projectID *int64
			if createProjectID != "" {
				pid := parseID(createProjectID)
				projectID = &pid
			}
			id, err = b.CreateDataset(ctx, name, description, projectID)
		case "tag":
			id, err = b.CreateTag(ctx, name, description)
		case "kv-pair":
			id, err = b.CreateKeyValuePair(ctx, name, description)
		default:
			fmt.Fprintf(os.Stderr, "cannot create %q (valid: project, dataset, tag, kv-pair)\n", args[0])
			os.Exit(exitUserError)
		}
		if err != nil {
			fail("create", err)
		}

		printResult(fmt.Sprintf("Created %s: %d", args[0], id), id)
	},
}

func init() {
	createCmd.Flags().StringVar(&createProjectID, "project", "", "project id to create the dataset under")
}
