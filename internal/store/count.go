package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// Count runs a single-value query, typically SELECT COUNT(*), and returns the
// first column of the first row. A NULL value or an empty result reads as 0.
// Placeholders are written as ? for every dialect.
func (b *Backend) Count(ctx context.Context, query string, args ...any) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrBackendDetached
	}

	var n sql.NullInt64
	err := b.db.QueryRowContext(ctx, b.dialect.rebind(query), args...).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("running count query: %w", err)
	}
	return n.Int64, nil
}

// PositionIDs resolves a field designation such as "Goalkeeper" to the ids
// of every position in that field.
func (b *Backend) PositionIDs(ctx context.Context, designation string) ([]int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	rows, err := b.db.QueryContext(ctx, b.dialect.rebind(
		`SELECT p.position_id FROM tbl_positions p
		 JOIN tbl_fieldnames f ON p.posfield_id = f.posfield_id
		 WHERE f.posfield_name = ?
		 ORDER BY p.position_id`), designation)
	if err != nil {
		return nil, fmt.Errorf("looking up positions for %q: %w", designation, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning position id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
