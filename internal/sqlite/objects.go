// Object CRUD for the local backend: fetch by kind and id, listing,
// creation and deletion across the eight-kind vocabulary.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumigraph/omebridge/pkg/types"
)

// RepositoryObject fetches one of the six repository kinds by id.
func (b *Backend) RepositoryObject(ctx context.Context, kind types.ObjectType, id int64) (types.RepositoryObject, error) {
	if b.db == nil {
		return types.RepositoryObject{}, types.ErrNotConnected
	}
	if !kind.IsRepository() {
		return types.RepositoryObject{}, fmt.Errorf("%w: %q", types.ErrUnknownType, kind)
	}
	row := b.db.QueryRowContext(ctx,
		"SELECT id, name, description, owner_id FROM objects WHERE id = ? AND kind = ?",
		id, string(kind))
	obj := types.RepositoryObject{Kind: kind}
	if err := row.Scan(&obj.ID, &obj.Name, &obj.Description, &obj.OwnerID); err != nil {
		if err == sql.ErrNoRows {
			return types.RepositoryObject{}, types.ErrNotFound
		}
		return types.RepositoryObject{}, fmt.Errorf("query %s %d: %w", kind, id, err)
	}
	return obj, nil
}

// Annotation fetches a tag or kv-pair by id, hydrating kv content.
func (b *Backend) Annotation(ctx context.Context, kind types.ObjectType, id int64) (types.Annotation, error) {
	if b.db == nil {
		return types.Annotation{}, types.ErrNotConnected
	}
	if !kind.IsAnnotation() {
		return types.Annotation{}, fmt.Errorf("%w: %q", types.ErrUnknownType, kind)
	}
	row := b.db.QueryRowContext(ctx,
		"SELECT id, name, owner_id FROM objects WHERE id = ? AND kind = ?",
		id, string(kind))
	ann := types.Annotation{Kind: kind}
	if err := row.Scan(&ann.ID, &ann.Name, &ann.OwnerID); err != nil {
		if err == sql.ErrNoRows {
			return types.Annotation{}, types.ErrNotFound
		}
		return types.Annotation{}, fmt.Errorf("query %s %d: %w", kind, id, err)
	}
	if kind == types.TypeKVPair {
		pairs, err := b.pairsOf(ctx, ann.ID)
		if err != nil {
			return types.Annotation{}, err
		}
		ann.Pairs = pairs
	}
	return ann, nil
}

// ListRefs enumerates objects of one kind, optionally by exact name.
func (b *Backend) ListRefs(ctx context.Context, kind types.ObjectType, name string) ([]types.Ref, error) {
	if b.db == nil {
		return nil, types.ErrNotConnected
	}
	query := "SELECT id, name, owner_id FROM objects WHERE kind = ?"
	args := []any{string(kind)}
	if name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}
	query += " ORDER BY id"
	return b.queryRefs(ctx, kind, query, args...)
}

// Create inserts a new object owned by the acting user. Datasets may
// name a parent project; kv-pairs store name and detail as their
// key-value content.
func (b *Backend) Create(ctx context.Context, kind types.ObjectType, name, detail string, parent *int64) (int64, error) {
	if b.db == nil {
		return -1, types.ErrNotConnected
	}
	res, err := b.db.ExecContext(ctx,
		"INSERT INTO objects (kind, name, description, owner_id, created_at) VALUES (?, ?, ?, ?, ?)",
		string(kind), name, detail, b.user.ID, now())
	if err != nil {
		return -1, fmt.Errorf("create %s: %w", kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return -1, err
	}

	switch kind {
	case types.TypeKVPair:
		if _, err := b.db.ExecContext(ctx,
			"INSERT INTO kv_content (annotation_id, key, value) VALUES (?, ?, ?)",
			id, name, detail); err != nil {
			return -1, fmt.Errorf("store kv content: %w", err)
		}
	case types.TypeImage:
		if _, err := b.db.ExecContext(ctx,
			"INSERT INTO images (object_id) VALUES (?)", id); err != nil {
			return -1, fmt.Errorf("store image extents: %w", err)
		}
	case types.TypeDataset:
		if parent != nil {
			if err := b.insertLink(ctx, types.TypedID{Kind: types.TypeProject, ID: *parent},
				types.TypedID{Kind: types.TypeDataset, ID: id}); err != nil {
				return -1, err
			}
		}
	}
	return id, nil
}

// Delete removes an object; links, kv content, extents and ROIs go
// with it.
func (b *Backend) Delete(ctx context.Context, ref types.TypedID) error {
	if b.db == nil {
		return types.ErrNotConnected
	}
	res, err := b.db.ExecContext(ctx,
		"DELETE FROM objects WHERE id = ? AND kind = ?", ref.ID, string(ref.Kind))
	if err != nil {
		return fmt.Errorf("delete %s: %w", ref, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	// Links are not covered by foreign keys on the polymorphic pair.
	_, err = b.db.ExecContext(ctx,
		`DELETE FROM links
		 WHERE (parent_kind = ? AND parent_id = ?) OR (child_kind = ? AND child_id = ?)`,
		string(ref.Kind), ref.ID, string(ref.Kind), ref.ID)
	return err
}

// queryRefs runs a query yielding (id, name, owner_id) rows.
func (b *Backend) queryRefs(ctx context.Context, kind types.ObjectType, query string, args ...any) ([]types.Ref, error) {
	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", kind, err)
	}
	defer rows.Close()

	var refs []types.Ref
	for rows.Next() {
		ref := types.Ref{Kind: kind}
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.OwnerID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// pairsOf loads the key-value content of one annotation.
func (b *Backend) pairsOf(ctx context.Context, annotationID int64) ([]types.Pair, error) {
	rows, err := b.db.QueryContext(ctx,
		"SELECT key, value FROM kv_content WHERE annotation_id = ? ORDER BY rowid", annotationID)
	if err != nil {
		return nil, fmt.Errorf("query kv content: %w", err)
	}
	defer rows.Close()

	var pairs []types.Pair
	for rows.Next() {
		var p types.Pair
		if err := rows.Scan(&p.Key, &p.Value); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
