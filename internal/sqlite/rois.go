// Image regions and ROI handling. Requested bounds are clamped to the
// image's stored extents; an end of -1 snaps to the last index.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumigraph/omebridge/pkg/types"
)

// extents holds the per-axis sizes of one image.
type extents struct {
	x, y, c, z, t int
}

// ImageRegion resolves a sub-region of an image, clamping the requested
// bounds to the stored extents.
func (b *Backend) ImageRegion(ctx context.Context, imageID int64, bounds types.Bounds) (types.Region, error) {
	if b.db == nil {
		return types.Region{}, types.ErrNotConnected
	}
	ext, err := b.imageExtents(ctx, imageID)
	if err != nil {
		return types.Region{}, err
	}
	return types.Region{ImageID: imageID, Bounds: clampBounds(bounds, ext)}, nil
}

// ROIRegion resolves the region covered by one of the image's ROIs.
func (b *Backend) ROIRegion(ctx context.Context, imageID, roiID int64) (types.Region, error) {
	if b.db == nil {
		return types.Region{}, types.ErrNotConnected
	}
	var bounds types.Bounds
	row := b.db.QueryRowContext(ctx,
		`SELECT x0, y0, c0, z0, t0, x1, y1, c1, z1, t1
		 FROM rois WHERE id = ? AND image_id = ?`, roiID, imageID)
	err := row.Scan(
		&bounds.Start.X, &bounds.Start.Y, &bounds.Start.C, &bounds.Start.Z, &bounds.Start.T,
		&bounds.End.X, &bounds.End.Y, &bounds.End.C, &bounds.End.Z, &bounds.End.T)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Region{}, fmt.Errorf("%w: roi %d of image %d", types.ErrNotFound, roiID, imageID)
		}
		return types.Region{}, err
	}
	ext, err := b.imageExtents(ctx, imageID)
	if err != nil {
		return types.Region{}, err
	}
	return types.Region{ImageID: imageID, Bounds: clampBounds(bounds, ext)}, nil
}

// RemoveROIs deletes all ROIs of an image and returns the count.
func (b *Backend) RemoveROIs(ctx context.Context, imageID int64) (int, error) {
	if b.db == nil {
		return 0, types.ErrNotConnected
	}
	if err := b.mustExist(ctx, types.TypedID{Kind: types.TypeImage, ID: imageID}); err != nil {
		return 0, err
	}
	res, err := b.db.ExecContext(ctx, "DELETE FROM rois WHERE image_id = ?", imageID)
	if err != nil {
		return 0, fmt.Errorf("remove rois of image %d: %w", imageID, err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// AddROI stores a ROI covering the given bounds and returns its id.
// The remote service grows ROIs from measurement tools; the local
// backend takes them directly.
func (b *Backend) AddROI(ctx context.Context, imageID int64, bounds types.Bounds) (int64, error) {
	if b.db == nil {
		return -1, types.ErrNotConnected
	}
	if err := b.mustExist(ctx, types.TypedID{Kind: types.TypeImage, ID: imageID}); err != nil {
		return -1, err
	}
	res, err := b.db.ExecContext(ctx,
		`INSERT INTO rois (image_id, x0, y0, c0, z0, t0, x1, y1, c1, z1, t1)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		imageID,
		bounds.Start.X, bounds.Start.Y, bounds.Start.C, bounds.Start.Z, bounds.Start.T,
		bounds.End.X, bounds.End.Y, bounds.End.C, bounds.End.Z, bounds.End.T)
	if err != nil {
		return -1, fmt.Errorf("add roi to image %d: %w", imageID, err)
	}
	return res.LastInsertId()
}

// imageExtents loads the stored sizes of one image.
func (b *Backend) imageExtents(ctx context.Context, imageID int64) (extents, error) {
	var ext extents
	row := b.db.QueryRowContext(ctx,
		"SELECT size_x, size_y, size_c, size_z, size_t FROM images WHERE object_id = ?", imageID)
	if err := row.Scan(&ext.x, &ext.y, &ext.c, &ext.z, &ext.t); err != nil {
		if err == sql.ErrNoRows {
			return extents{}, fmt.Errorf("%w: image %d", types.ErrNotFound, imageID)
		}
		return extents{}, err
	}
	return ext, nil
}

// clampBounds resolves -1 ends to the last index and clips every axis
// to the image extents.
func clampBounds(b types.Bounds, ext extents) types.Bounds {
	clampAxis(&b.Start.X, &b.End.X, ext.x)
	clampAxis(&b.Start.Y, &b.End.Y, ext.y)
	clampAxis(&b.Start.C, &b.End.C, ext.c)
	clampAxis(&b.Start.Z, &b.End.Z, ext.z)
	clampAxis(&b.Start.T, &b.End.T, ext.t)
	return b
}

func clampAxis(start, end *int, size int) {
	last := size - 1
	if *start < 0 {
		*start = 0
	}
	if *start > last {
		*start = last
	}
	if *end < 0 || *end > last {
		*end = last
	}
	if *end < *start {
		*end = *start
	}
}
