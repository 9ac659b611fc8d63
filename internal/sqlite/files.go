// File attachment, image import and original-file download against the
// local data directory. Attachments live under <dataDir>/attachments
// keyed by a fresh UUID so uploads with equal names never collide.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lumigraph/omebridge/pkg/types"
)

const attachmentsDir = "attachments"

// AttachFile copies the file at path into the attachment store and
// records it against the target object.
func (b *Backend) AttachFile(ctx context.Context, target types.TypedID, path string) (int64, error) {
	if b.db == nil {
		return -1, types.ErrNotConnected
	}
	if err := b.mustExist(ctx, target); err != nil {
		return -1, err
	}

	storageName := uuid.NewString() + filepath.Ext(path)
	dir := filepath.Join(b.dataDir, attachmentsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return -1, err
	}
	if err := copyFile(path, filepath.Join(dir, storageName)); err != nil {
		return -1, fmt.Errorf("store attachment: %w", err)
	}

	res, err := b.db.ExecContext(ctx,
		`INSERT INTO files (object_kind, object_id, name, storage_name, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		string(target.Kind), target.ID, filepath.Base(path), storageName, now())
	if err != nil {
		return -1, fmt.Errorf("record attachment: %w", err)
	}
	return res.LastInsertId()
}

// DeleteFile removes an attachment and its stored copy.
func (b *Backend) DeleteFile(ctx context.Context, id int64) error {
	if b.db == nil {
		return types.ErrNotConnected
	}
	var storageName string
	row := b.db.QueryRowContext(ctx, "SELECT storage_name FROM files WHERE id = ?", id)
	if err := row.Scan(&storageName); err != nil {
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		return err
	}
	if _, err := b.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(b.dataDir, attachmentsDir, storageName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ImportImages registers the image file at path as a new image in the
// dataset, keeping the source path so the original can be downloaded
// again.
func (b *Backend) ImportImages(ctx context.Context, datasetID int64, path string) ([]int64, error) {
	if b.db == nil {
		return nil, types.ErrNotConnected
	}
	dataset := types.TypedID{Kind: types.TypeDataset, ID: datasetID}
	if err := b.mustExist(ctx, dataset); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	id, err := b.Create(ctx, types.TypeImage, filepath.Base(path), "", nil)
	if err != nil {
		return nil, err
	}
	if _, err := b.db.ExecContext(ctx,
		"UPDATE images SET source_path = ? WHERE object_id = ?", path, id); err != nil {
		return nil, err
	}
	if err := b.insertLink(ctx, dataset, types.TypedID{Kind: types.TypeImage, ID: id}); err != nil {
		return nil, err
	}
	return []int64{id}, nil
}

// DownloadImage copies the image's original file into dir and returns
// the written paths. Images created without a source file have nothing
// to download.
func (b *Backend) DownloadImage(ctx context.Context, imageID int64, dir string) ([]string, error) {
	if b.db == nil {
		return nil, types.ErrNotConnected
	}
	var sourcePath string
	row := b.db.QueryRowContext(ctx,
		"SELECT source_path FROM images WHERE object_id = ?", imageID)
	if err := row.Scan(&sourcePath); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if sourcePath == "" {
		return nil, fmt.Errorf("image %d has no original file", imageID)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	dest := filepath.Join(dir, filepath.Base(sourcePath))
	if err := copyFile(sourcePath, dest); err != nil {
		return nil, fmt.Errorf("download image %d: %w", imageID, err)
	}
	return []string{dest}, nil
}

// copyFile copies src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
