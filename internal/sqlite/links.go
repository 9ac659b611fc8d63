// Link storage and traversal. Annotation attachments are stored with
// the repository object as parent and the annotation as child, so both
// directions of ListChildren read the same rows.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumigraph/omebridge/pkg/types"
)

// containmentHops names the intermediate kinds between a container and
// a transitively reachable child kind. Absent pairs are direct.
var containmentHops = map[types.ObjectType]map[types.ObjectType][]types.ObjectType{
	types.TypeProject: {
		types.TypeImage: {types.TypeDataset},
	},
	types.TypeScreen: {
		types.TypeWell:  {types.TypePlate},
		types.TypeImage: {types.TypePlate, types.TypeWell},
	},
	types.TypePlate: {
		types.TypeImage: {types.TypeWell},
	},
}

// Link applies a validated plan.
func (b *Backend) Link(ctx context.Context, plan types.LinkPlan) error {
	if b.db == nil {
		return types.ErrNotConnected
	}
	parent, child := planEndpoints(plan)
	if err := b.mustExist(ctx, parent); err != nil {
		return err
	}
	if err := b.mustExist(ctx, child); err != nil {
		return err
	}
	return b.insertLink(ctx, parent, child)
}

// Unlink removes the planned link. Removing an absent link is not an
// error.
func (b *Backend) Unlink(ctx context.Context, plan types.LinkPlan) error {
	if b.db == nil {
		return types.ErrNotConnected
	}
	parent, child := planEndpoints(plan)
	_, err := b.db.ExecContext(ctx,
		`DELETE FROM links
		 WHERE parent_kind = ? AND parent_id = ? AND child_kind = ? AND child_id = ?`,
		string(parent.Kind), parent.ID, string(child.Kind), child.ID)
	return err
}

// ListChildren enumerates children of one kind inside a parent. An
// annotation parent yields the objects it is attached to; container
// parents follow the containment hierarchy, hopping through
// intermediate kinds where the child is not a direct member.
func (b *Backend) ListChildren(ctx context.Context, parent types.TypedID, child types.ObjectType) ([]types.Ref, error) {
	if b.db == nil {
		return nil, types.ErrNotConnected
	}

	if parent.Kind.IsAnnotation() {
		// Attachments store the object as parent, so walk the rows
		// backwards.
		return b.queryRefs(ctx, child,
			`SELECT o.id, o.name, o.owner_id FROM objects o
			 JOIN links l ON l.parent_kind = o.kind AND l.parent_id = o.id
			 WHERE l.child_kind = ? AND l.child_id = ? AND o.kind = ?
			 ORDER BY o.id`,
			string(parent.Kind), parent.ID, string(child))
	}

	ids := []int64{parent.ID}
	kinds := append(containmentHops[parent.Kind][child], child)
	fromKind := parent.Kind
	for _, hop := range kinds {
		var err error
		ids, err = b.childIDs(ctx, fromKind, ids, hop)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
		fromKind = hop
	}

	return b.queryRefs(ctx, child,
		fmt.Sprintf(`SELECT id, name, owner_id FROM objects
		 WHERE kind = ? AND id IN (%s) ORDER BY id`, placeholders(len(ids))),
		append([]any{string(child)}, toAny(ids)...)...)
}

// childIDs returns the ids of children of one kind under any of the
// given parents.
func (b *Backend) childIDs(ctx context.Context, parentKind types.ObjectType, parentIDs []int64, childKind types.ObjectType) ([]int64, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT child_id FROM links
		 WHERE parent_kind = ? AND child_kind = ? AND parent_id IN (%s)`,
		placeholders(len(parentIDs)))
	args := append([]any{string(parentKind), string(childKind)}, toAny(parentIDs)...)

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("walk %s children: %w", childKind, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// insertLink stores one parent-child row, ignoring duplicates.
func (b *Backend) insertLink(ctx context.Context, parent, child types.TypedID) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO links (parent_kind, parent_id, child_kind, child_id)
		 VALUES (?, ?, ?, ?)`,
		string(parent.Kind), parent.ID, string(child.Kind), child.ID)
	if err != nil {
		return fmt.Errorf("link %s to %s: %w", child, parent, err)
	}
	return nil
}

// mustExist verifies the addressed object is present.
func (b *Backend) mustExist(ctx context.Context, ref types.TypedID) error {
	var one int
	row := b.db.QueryRowContext(ctx,
		"SELECT 1 FROM objects WHERE id = ? AND kind = ?", ref.ID, string(ref.Kind))
	if err := row.Scan(&one); err != nil {
		return fmt.Errorf("%w: %s", types.ErrNotFound, ref)
	}
	return nil
}

// planEndpoints maps a plan to the stored (parent, child) pair.
func planEndpoints(plan types.LinkPlan) (parent, child types.TypedID) {
	if plan.Kind == types.LinkAnnotationAttach {
		return plan.Object, plan.Annotation
	}
	return plan.Parent, plan.Child
}

// placeholders builds "?, ?, ..." for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// toAny widens int64 ids to query arguments.
func toAny(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
