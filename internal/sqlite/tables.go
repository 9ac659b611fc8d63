// Stored tables and aggregated annotation content.
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lumigraph/omebridge/pkg/types"
)

// AddTable persists a table against a repository object. Header and
// rows are stored as JSON; the table keeps whatever name the caller
// gave it.
func (b *Backend) AddTable(ctx context.Context, target types.TypedID, table *types.TableData) (int64, error) {
	if b.db == nil {
		return -1, types.ErrNotConnected
	}
	if err := b.mustExist(ctx, target); err != nil {
		return -1, err
	}

	header, err := json.Marshal(table.Columns)
	if err != nil {
		return -1, fmt.Errorf("encode table header: %w", err)
	}
	rows, err := json.Marshal(table.Rows)
	if err != nil {
		return -1, fmt.Errorf("encode table rows: %w", err)
	}

	res, err := b.db.ExecContext(ctx,
		`INSERT INTO saved_tables (object_kind, object_id, name, header, rows, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(target.Kind), target.ID, table.Name, string(header), string(rows), now())
	if err != nil {
		return -1, fmt.Errorf("store table %q: %w", table.Name, err)
	}
	return res.LastInsertId()
}

// KeyValuePairs aggregates the content of every kv-pair annotation
// attached to the target, in attachment order.
func (b *Backend) KeyValuePairs(ctx context.Context, target types.TypedID) ([]types.Pair, error) {
	if b.db == nil {
		return nil, types.ErrNotConnected
	}
	if err := b.mustExist(ctx, target); err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT c.key, c.value FROM links l
		 JOIN kv_content c ON c.annotation_id = l.child_id
		 WHERE l.parent_kind = ? AND l.parent_id = ? AND l.child_kind = ?
		 ORDER BY l.rowid, c.rowid`,
		string(target.Kind), target.ID, string(types.TypeKVPair))
	if err != nil {
		return nil, fmt.Errorf("aggregate kv content of %s: %w", target, err)
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
