// Image commands for the omebridge CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var imageImportCmd = &cobra.Command{
	Use:   "image-import <dataset-id> <path>",
	Short: "Import an image file into a dataset",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("image-import", err)
		}
		defer closeBridge()

		ids, err := b.ImportImages(ctx, parseID(args[0]), args[1])
		if err != nil {
			fail("image-import", err)
		}

		printResult(joinIDs(ids), ids)
	},
}

var imageDownloadCmd = &cobra.Command{
	Use:   "image-download <image-id> <dir>",
	Short: "Download the original file of an image",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("image-download", err)
		}
		defer closeBridge()

		paths, err := b.DownloadImage(ctx, parseID(args[0]), args[1])
		if err != nil {
			fail("image-download", err)
		}

		printResult(strings.Join(paths, "\n"), paths)
	},
}

var roiClearCmd = &cobra.Command{
	Use:   "roi-clear <image-id>",
	Short: "Remove all ROIs of an image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, closeBridge, err := connectBridge(ctx)
		if err != nil {
			failSys("roi-clear", err)
		}
		defer closeBridge()

		n, err := b.RemoveROIs(ctx, parseID(args[0]))
		if err != nil {
			fail("roi-clear", err)
		}

		printResult(fmt.Sprintf("Removed %d ROIs", n), n)
	},
}
