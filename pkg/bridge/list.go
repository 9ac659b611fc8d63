package bridge

import (
	"context"
	"fmt"

	"github.com/lumigraph/omebridge/pkg/types"
)

// childKinds maps each parent kind to the child kinds that can be
// enumerated inside it. Annotation parents enumerate the repository
// objects they are attached to.
var childKinds = map[types.ObjectType][]types.ObjectType{
	types.TypeProject: {types.TypeDataset, types.TypeImage, types.TypeTag, types.TypeKVPair},
	types.TypeDataset: {types.TypeImage, types.TypeTag, types.TypeKVPair},
	types.TypeScreen:  {types.TypePlate, types.TypeWell, types.TypeImage, types.TypeTag, types.TypeKVPair},
	types.TypePlate:   {types.TypeWell, types.TypeImage, types.TypeTag, types.TypeKVPair},
	types.TypeWell:    {types.TypeImage, types.TypeTag, types.TypeKVPair},
	types.TypeImage:   {types.TypeTag},
	types.TypeTag:     {types.TypeProject, types.TypeDataset, types.TypeImage, types.TypeScreen, types.TypePlate, types.TypeWell},
	types.TypeKVPair:  {types.TypeProject, types.TypeDataset, types.TypeImage, types.TypeScreen, types.TypePlate, types.TypeWell},
}

// List enumerates all objects of a kind, honoring the user filter.
func (b *Bridge) List(ctx context.Context, rawType string) ([]int64, error) {
	return b.ListByName(ctx, rawType, "")
}

// ListByName enumerates the objects of a kind with an exact name; an
// empty name lists everything. Honors the user filter.
func (b *Bridge) ListByName(ctx context.Context, rawType, name string) ([]int64, error) {
	kind, err := parseTypeIn(rawType, types.AllTypes)
	if err != nil {
		return nil, err
	}
	refs, err := b.client.ListRefs(ctx, kind, name)
	if err != nil {
		return nil, fmt.Errorf("retrieve %ss: %w", kind, err)
	}
	return refIDs(b.filterRefs(refs)), nil
}

// ListIn enumerates the objects of one kind inside a container, or the
// objects an annotation is attached to. The accepted child kinds
// depend on the parent kind.
func (b *Bridge) ListIn(ctx context.Context, rawType, rawParent string, parentID int64) ([]int64, error) {
	parent, err := parseTypeIn(rawParent, types.AllTypes)
	if err != nil {
		return nil, err
	}
	child, err := parseTypeIn(rawType, childKinds[parent])
	if err != nil {
		return nil, err
	}
	refs, err := b.client.ListChildren(ctx, types.TypedID{Kind: parent, ID: parentID}, child)
	if err != nil {
		return nil, fmt.Errorf("retrieve %ss in %s %d: %w", child, parent, parentID, err)
	}
	return refIDs(b.filterRefs(refs)), nil
}

// refIDs projects listing results onto their numeric ids.
func refIDs(refs []types.Ref) []int64 {
	ids := make([]int64, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	return ids
}
