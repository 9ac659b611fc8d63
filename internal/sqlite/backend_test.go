package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumigraph/omebridge/pkg/types"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := New()
	cfg := types.Config{
		Backend:  types.BackendSQLite,
		DataDir:  t.TempDir(),
		Username: "tester",
	}
	require.NoError(t, b.Connect(context.Background(), cfg))
	t.Cleanup(func() { b.Close(context.Background()) })
	return b
}

func mustCreate(t *testing.T, b *Backend, kind types.ObjectType, name string) int64 {
	t.Helper()
	id, err := b.Create(context.Background(), kind, name, "", nil)
	require.NoError(t, err)
	return id
}

func mustLink(t *testing.T, b *Backend, a, c types.TypedID) {
	t.Helper()
	plan, err := types.PlanLink(a, c)
	require.NoError(t, err)
	require.NoError(t, b.Link(context.Background(), plan))
}

func TestConnectIsIdempotent(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.Connect(context.Background(), types.Config{Backend: "bogus"}))
	assert.Equal(t, "tester", b.User().Username)
	assert.NotEmpty(t, b.SessionID())
}

func TestConnectRejectsBadConfig(t *testing.T) {
	b := New()
	err := b.Connect(context.Background(), types.Config{})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)
}

func TestCreateAndFetch(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	id, err := b.Create(ctx, types.TypeProject, "screening", "march run", nil)
	require.NoError(t, err)

	obj, err := b.RepositoryObject(ctx, types.TypeProject, id)
	require.NoError(t, err)
	assert.Equal(t, "screening", obj.Name)
	assert.Equal(t, "march run", obj.Description)
	assert.Equal(t, b.User().ID, obj.OwnerID)

	_, err = b.RepositoryObject(ctx, types.TypeProject, id+1)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.RepositoryObject(ctx, types.TypeTag, id)
	assert.ErrorIs(t, err, types.ErrUnknownType)
}

func TestCreateDatasetUnderProject(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	projectID := mustCreate(t, b, types.TypeProject, "p")
	datasetID, err := b.Create(ctx, types.TypeDataset, "d", "", &projectID)
	require.NoError(t, err)

	refs, err := b.ListChildren(ctx,
		types.TypedID{Kind: types.TypeProject, ID: projectID}, types.TypeDataset)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, datasetID, refs[0].ID)
}

func TestKVPairAnnotation(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	id, err := b.Create(ctx, types.TypeKVPair, "stain", "DAPI", nil)
	require.NoError(t, err)

	ann, err := b.Annotation(ctx, types.TypeKVPair, id)
	require.NoError(t, err)
	require.Len(t, ann.Pairs, 1)
	assert.Equal(t, types.Pair{Key: "stain", Value: "DAPI"}, ann.Pairs[0])
}

func TestListRefsByName(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	mustCreate(t, b, types.TypeDataset, "alpha")
	want := mustCreate(t, b, types.TypeDataset, "beta")
	mustCreate(t, b, types.TypeDataset, "alpha")

	refs, err := b.ListRefs(ctx, types.TypeDataset, "beta")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, want, refs[0].ID)

	refs, err = b.ListRefs(ctx, types.TypeDataset, "")
	require.NoError(t, err)
	assert.Len(t, refs, 3)
}

func TestListChildrenTransitive(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	projectID := mustCreate(t, b, types.TypeProject, "p")
	datasetID := mustCreate(t, b, types.TypeDataset, "d")
	imageID := mustCreate(t, b, types.TypeImage, "i")

	mustLink(t, b,
		types.TypedID{Kind: types.TypeProject, ID: projectID},
		types.TypedID{Kind: types.TypeDataset, ID: datasetID})
	mustLink(t, b,
		types.TypedID{Kind: types.TypeDataset, ID: datasetID},
		types.TypedID{Kind: types.TypeImage, ID: imageID})

	// Images are reachable from the project through its datasets.
	refs, err := b.ListChildren(ctx,
		types.TypedID{Kind: types.TypeProject, ID: projectID}, types.TypeImage)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, imageID, refs[0].ID)
}

func TestAnnotationAttachBothDirections(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	datasetID := mustCreate(t, b, types.TypeDataset, "d")
	tagID := mustCreate(t, b, types.TypeTag, "validated")

	mustLink(t, b,
		types.TypedID{Kind: types.TypeTag, ID: tagID},
		types.TypedID{Kind: types.TypeDataset, ID: datasetID})

	tags, err := b.ListChildren(ctx,
		types.TypedID{Kind: types.TypeDataset, ID: datasetID}, types.TypeTag)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, tagID, tags[0].ID)

	datasets, err := b.ListChildren(ctx,
		types.TypedID{Kind: types.TypeTag, ID: tagID}, types.TypeDataset)
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	assert.Equal(t, datasetID, datasets[0].ID)
}

func TestUnlinkRemovesAttachment(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	datasetID := mustCreate(t, b, types.TypeDataset, "d")
	tagID := mustCreate(t, b, types.TypeTag, "t")

	plan, err := types.PlanLink(
		types.TypedID{Kind: types.TypeTag, ID: tagID},
		types.TypedID{Kind: types.TypeDataset, ID: datasetID})
	require.NoError(t, err)
	require.NoError(t, b.Link(ctx, plan))
	require.NoError(t, b.Unlink(ctx, plan))
	// Unlinking again stays quiet.
	require.NoError(t, b.Unlink(ctx, plan))

	tags, err := b.ListChildren(ctx,
		types.TypedID{Kind: types.TypeDataset, ID: datasetID}, types.TypeTag)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestLinkRequiresBothEndpoints(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	datasetID := mustCreate(t, b, types.TypeDataset, "d")

	plan, err := types.PlanLink(
		types.TypedID{Kind: types.TypeTag, ID: 99},
		types.TypedID{Kind: types.TypeDataset, ID: datasetID})
	require.NoError(t, err)
	assert.ErrorIs(t, b.Link(ctx, plan), types.ErrNotFound)
}

func TestDeleteDropsLinks(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	datasetID := mustCreate(t, b, types.TypeDataset, "d")
	imageID := mustCreate(t, b, types.TypeImage, "i")
	mustLink(t, b,
		types.TypedID{Kind: types.TypeDataset, ID: datasetID},
		types.TypedID{Kind: types.TypeImage, ID: imageID})

	require.NoError(t, b.Delete(ctx, types.TypedID{Kind: types.TypeImage, ID: imageID}))

	refs, err := b.ListChildren(ctx,
		types.TypedID{Kind: types.TypeDataset, ID: datasetID}, types.TypeImage)
	require.NoError(t, err)
	assert.Empty(t, refs)

	err = b.Delete(ctx, types.TypedID{Kind: types.TypeImage, ID: imageID})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestKeyValuePairsAggregate(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	imageID := mustCreate(t, b, types.TypeImage, "i")
	kv1, err := b.Create(ctx, types.TypeKVPair, "stain", "DAPI", nil)
	require.NoError(t, err)
	kv2, err := b.Create(ctx, types.TypeKVPair, "objective", "40x", nil)
	require.NoError(t, err)

	image := types.TypedID{Kind: types.TypeImage, ID: imageID}
	mustLink(t, b, types.TypedID{Kind: types.TypeKVPair, ID: kv1}, image)
	mustLink(t, b, types.TypedID{Kind: types.TypeKVPair, ID: kv2}, image)

	pairs, err := b.KeyValuePairs(ctx, image)
	require.NoError(t, err)
	assert.Equal(t, []types.Pair{
		{Key: "stain", Value: "DAPI"},
		{Key: "objective", Value: "40x"},
	}, pairs)
}

func TestAttachAndDeleteFile(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	datasetID := mustCreate(t, b, types.TypeDataset, "d")

	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	fileID, err := b.AttachFile(ctx,
		types.TypedID{Kind: types.TypeDataset, ID: datasetID}, src)
	require.NoError(t, err)
	assert.Positive(t, fileID)

	require.NoError(t, b.DeleteFile(ctx, fileID))
	assert.ErrorIs(t, b.DeleteFile(ctx, fileID), types.ErrNotFound)
}

func TestImportAndDownloadImage(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	datasetID := mustCreate(t, b, types.TypeDataset, "d")

	src := filepath.Join(t.TempDir(), "cells.tif")
	require.NoError(t, os.WriteFile(src, []byte("pixels"), 0o644))

	ids, err := b.ImportImages(ctx, datasetID, src)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	// The import links the image into the dataset.
	refs, err := b.ListChildren(ctx,
		types.TypedID{Kind: types.TypeDataset, ID: datasetID}, types.TypeImage)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "cells.tif", refs[0].Name)

	outDir := t.TempDir()
	paths, err := b.DownloadImage(ctx, ids[0], outDir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestDownloadImageWithoutSource(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	imageID := mustCreate(t, b, types.TypeImage, "i")

	_, err := b.DownloadImage(ctx, imageID, t.TempDir())
	assert.Error(t, err)
}

func TestImageRegionClamps(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	imageID := mustCreate(t, b, types.TypeImage, "i")

	// Defaults are 512x512 with single C/Z/T planes.
	region, err := b.ImageRegion(ctx, imageID, types.WholeImage)
	require.NoError(t, err)
	assert.Equal(t, 511, region.Bounds.End.X)
	assert.Equal(t, 511, region.Bounds.End.Y)
	assert.Equal(t, 0, region.Bounds.End.Z)

	over := types.ParseBounds("x:100:9999 z:5")
	region, err = b.ImageRegion(ctx, imageID, over)
	require.NoError(t, err)
	assert.Equal(t, 100, region.Bounds.Start.X)
	assert.Equal(t, 511, region.Bounds.End.X)
	assert.Equal(t, 0, region.Bounds.Start.Z, "start clips to the last plane")
}

func TestROILifecycle(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	imageID := mustCreate(t, b, types.TypeImage, "i")

	roiID, err := b.AddROI(ctx, imageID, types.ParseBounds("x:10:20 y:10:20"))
	require.NoError(t, err)

	region, err := b.ROIRegion(ctx, imageID, roiID)
	require.NoError(t, err)
	assert.Equal(t, 10, region.Bounds.Start.X)
	assert.Equal(t, 19, region.Bounds.End.X)

	n, err := b.RemoveROIs(ctx, imageID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = b.ROIRegion(ctx, imageID, roiID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddTable(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	datasetID := mustCreate(t, b, types.TypeDataset, "d")

	table, err := types.NewTableData("results", []string{"Area"}, [][]string{{"12"}}, nil, "")
	require.NoError(t, err)
	id, err := b.AddTable(ctx,
		types.TypedID{Kind: types.TypeDataset, ID: datasetID}, table)
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = b.AddTable(ctx, types.TypedID{Kind: types.TypeDataset, ID: 99}, table)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSudoActsAsOtherUser(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	_, err := ensureUser(ctx, b.db, "alice")
	require.NoError(t, err)

	sudo, err := b.Sudo(ctx, "alice")
	require.NoError(t, err)

	id, err := sudo.Create(ctx, types.TypeProject, "hers", "", nil)
	require.NoError(t, err)

	obj, err := b.RepositoryObject(ctx, types.TypeProject, id)
	require.NoError(t, err)
	alice, err := b.FindUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, obj.OwnerID)

	// Closing the derived client leaves the root session open.
	require.NoError(t, sudo.Close(ctx))
	_, err = b.ListRefs(ctx, types.TypeProject, "")
	assert.NoError(t, err)
}

func TestSudoUnknownUser(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.Sudo(context.Background(), "nobody")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
