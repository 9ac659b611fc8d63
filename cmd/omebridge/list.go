// List command enumerates objects of one kind, optionally by name or
// inside a container.
package main

import (
	"github.com/spf13/cobra"
)

var (
	listName       string
	listParentType string
	listParentID   string
)

var listCmd = &cobra.Command{
	Use:   "list <type>",
	Short: "List objects of a kind",
	Long: `List enumerates the ids of all objects of the given kind.

With --name only objects with that exact name are listed. With
--parent-type and --parent-id only objects inside that container are
listed; for tag and kv-pair parents this lists the objects the
annotation is attached to.

Example:
  omebridge list datasets
  omebridge list images --name sample.tif
  omebridge list images --parent-type dataset --parent-id 3`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("list", err)
		}
		defer closeBridge()

		var ids []int64
		switch {
		case listParentType != "":
			ids, err = b.ListIn(ctx, args[0], listParentType, parseID(listParentID))
		case listName != "":
			ids, err = b.ListByName(ctx, args[0], listName)
		default:
			ids, err = b.List(ctx, args[0])
		}
		if err != nil {
			fail("list", err)
		}

		printResult(joinIDs(ids), ids)
	},
}

func init() {
	listCmd.Flags().StringVar(&listName, "name", "", "exact name to match")
	listCmd.Flags().StringVar(&listParentType, "parent-type", "", "container or annotation kind to list inside")
	listCmd.Flags().StringVar(&listParentID, "parent-id", "", "container or annotation id")
	listCmd.MarkFlagsRequiredTogether("parent-type", "parent-id")
}
