package bridge

import (
	"context"

	"github.com/lumigraph/omebridge/pkg/types"
)

// Compile-time interface check.
var _ types.Client = (*fakeClient)(nil)

// fakeClient implements types.Client with overridable function fields.
// Unset fields report ErrNotFound or succeed with zero values, so each
// test only wires the calls it cares about.
type fakeClient struct {
	name string // distinguishes sessions in sudo tests

	connectFn          func(ctx context.Context, cfg types.Config) error
	findUserFn         func(ctx context.Context, username string) (types.Experimenter, error)
	sudoFn             func(ctx context.Context, username string) (types.Client, error)
	repositoryObjectFn func(ctx context.Context, kind types.ObjectType, id int64) (types.RepositoryObject, error)
	annotationFn       func(ctx context.Context, kind types.ObjectType, id int64) (types.Annotation, error)
	listRefsFn         func(ctx context.Context, kind types.ObjectType, name string) ([]types.Ref, error)
	listChildrenFn     func(ctx context.Context, parent types.TypedID, child types.ObjectType) ([]types.Ref, error)
	createFn           func(ctx context.Context, kind types.ObjectType, name, detail string, parent *int64) (int64, error)
	deleteFn           func(ctx context.Context, ref types.TypedID) error
	linkFn             func(ctx context.Context, plan types.LinkPlan) error
	unlinkFn           func(ctx context.Context, plan types.LinkPlan) error
	keyValuePairsFn    func(ctx context.Context, target types.TypedID) ([]types.Pair, error)
	addTableFn         func(ctx context.Context, target types.TypedID, table *types.TableData) (int64, error)
	imageRegionFn      func(ctx context.Context, imageID int64, bounds types.Bounds) (types.Region, error)
	roiRegionFn        func(ctx context.Context, imageID, roiID int64) (types.Region, error)
}

func (f *fakeClient) Connect(ctx context.Context, cfg types.Config) error {
	if f.connectFn != nil {
		return f.connectFn(ctx, cfg)
	}
	return nil
}

func (f *fakeClient) Close(ctx context.Context) error { return nil }

func (f *fakeClient) SwitchGroup(ctx context.Context, groupID int64) (int64, error) {
	return groupID, nil
}

func (f *fakeClient) FindUser(ctx context.Context, username string) (types.Experimenter, error) {
	if f.findUserFn != nil {
		return f.findUserFn(ctx, username)
	}
	return types.Experimenter{}, types.ErrNotFound
}

func (f *fakeClient) Sudo(ctx context.Context, username string) (types.Client, error) {
	if f.sudoFn != nil {
		return f.sudoFn(ctx, username)
	}
	return &fakeClient{name: f.name + "/" + username}, nil
}

func (f *fakeClient) RepositoryObject(ctx context.Context, kind types.ObjectType, id int64) (types.RepositoryObject, error) {
	if f.repositoryObjectFn != nil {
		return f.repositoryObjectFn(ctx, kind, id)
	}
	return types.RepositoryObject{Kind: kind, ID: id}, nil
}

func (f *fakeClient) Annotation(ctx context.Context, kind types.ObjectType, id int64) (types.Annotation, error) {
	if f.annotationFn != nil {
		return f.annotationFn(ctx, kind, id)
	}
	return types.Annotation{Kind: kind, ID: id}, nil
}

func (f *fakeClient) ListRefs(ctx context.Context, kind types.ObjectType, name string) ([]types.Ref, error) {
	if f.listRefsFn != nil {
		return f.listRefsFn(ctx, kind, name)
	}
	return nil, nil
}

func (f *fakeClient) ListChildren(ctx context.Context, parent types.TypedID, child types.ObjectType) ([]types.Ref, error) {
	if f.listChildrenFn != nil {
		return f.listChildrenFn(ctx, parent, child)
	}
	return nil, nil
}

func (f *fakeClient) Create(ctx context.Context, kind types.ObjectType, name, detail string, parent *int64) (int64, error) {
	if f.createFn != nil {
		return f.createFn(ctx, kind, name, detail, parent)
	}
	return 1, nil
}

func (f *fakeClient) Delete(ctx context.Context, ref types.TypedID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, ref)
	}
	return nil
}

func (f *fakeClient) Link(ctx context.Context, plan types.LinkPlan) error {
	if f.linkFn != nil {
		return f.linkFn(ctx, plan)
	}
	return nil
}

func (f *fakeClient) Unlink(ctx context.Context, plan types.LinkPlan) error {
	if f.unlinkFn != nil {
		return f.unlinkFn(ctx, plan)
	}
	return nil
}

func (f *fakeClient) KeyValuePairs(ctx context.Context, target types.TypedID) ([]types.Pair, error) {
	if f.keyValuePairsFn != nil {
		return f.keyValuePairsFn(ctx, target)
	}
	return nil, nil
}

func (f *fakeClient) AttachFile(ctx context.Context, target types.TypedID, path string) (int64, error) {
	return 1, nil
}

func (f *fakeClient) DeleteFile(ctx context.Context, id int64) error { return nil }

func (f *fakeClient) AddTable(ctx context.Context, target types.TypedID, table *types.TableData) (int64, error) {
	if f.addTableFn != nil {
		return f.addTableFn(ctx, target, table)
	}
	return 1, nil
}

func (f *fakeClient) ImageRegion(ctx context.Context, imageID int64, bounds types.Bounds) (types.Region, error) {
	if f.imageRegionFn != nil {
		return f.imageRegionFn(ctx, imageID, bounds)
	}
	return types.Region{ImageID: imageID, Bounds: bounds}, nil
}

func (f *fakeClient) ROIRegion(ctx context.Context, imageID, roiID int64) (types.Region, error) {
	if f.roiRegionFn != nil {
		return f.roiRegionFn(ctx, imageID, roiID)
	}
	return types.Region{ImageID: imageID}, nil
}

func (f *fakeClient) RemoveROIs(ctx context.Context, imageID int64) (int, error) { return 0, nil }

func (f *fakeClient) ImportImages(ctx context.Context, datasetID int64, path string) ([]int64, error) {
	return nil, nil
}

func (f *fakeClient) DownloadImage(ctx context.Context, imageID int64, dir string) ([]string, error) {
	return nil, nil
}
