package bridge

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lumigraph/omebridge/pkg/types"
)

// GetImage resolves an image region. The spec argument selects what to
// fetch: empty for the whole image, a numeric ROI id for the region
// covered by that ROI, anything else is parsed as XYCZT bounds (where
// an unparseable string degrades to the whole extent).
func (b *Bridge) GetImage(ctx context.Context, id int64, spec string) (types.Region, error) {
	var (
		region types.Region
		err    error
	)
	switch {
	case spec == "":
		region, err = b.client.ImageRegion(ctx, id, types.WholeImage)
	default:
		if roiID, perr := strconv.ParseInt(spec, 10, 64); perr == nil {
			region, err = b.client.ROIRegion(ctx, id, roiID)
		} else {
			region, err = b.client.ImageRegion(ctx, id, types.ParseBounds(spec))
		}
	}
	if err != nil {
		return types.Region{}, fmt.Errorf("retrieve image %d: %w", id, err)
	}
	return region, nil
}

// ImportImages imports the image file(s) at path into a dataset and
// returns the new image ids.
func (b *Bridge) ImportImages(ctx context.Context, datasetID int64, path string) ([]int64, error) {
	ids, err := b.client.ImportImages(ctx, datasetID, path)
	if err != nil {
		return nil, fmt.Errorf("import image into dataset %d: %w", datasetID, err)
	}
	return ids, nil
}

// DownloadImage fetches the original file(s) of an image into dir.
func (b *Bridge) DownloadImage(ctx context.Context, id int64, dir string) ([]string, error) {
	paths, err := b.client.DownloadImage(ctx, id, dir)
	if err != nil {
		return nil, fmt.Errorf("download image %d: %w", id, err)
	}
	return paths, nil
}

// RemoveROIs deletes all ROIs of an image and returns the count.
func (b *Bridge) RemoveROIs(ctx context.Context, imageID int64) (int, error) {
	n, err := b.client.RemoveROIs(ctx, imageID)
	if err != nil {
		return 0, fmt.Errorf("remove ROIs of image %d: %w", imageID, err)
	}
	return n, nil
}
