package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// catalogSeed describes the rows inserted into an empty catalog table.
type catalogSeed struct {
	table   string
	columns []string
	rows    [][]any
}

// builtInCatalogs are seeded on first attach. The field names give the
// goalkeeper lookup its designation; the positions hang off them.
var builtInCatalogs = []catalogSeed{
	{
		table:   types.TableFieldNames,
		columns: []string{"posfield_id", "posfield_name"},
		rows: [][]any{
			{1, types.DefaultGoalkeeperDesignation},
			{2, "Defender"},
			{3, "Midfielder"},
			{4, "Forward"},
		},
	},
	{
		table:   types.TableFlankNames,
		columns: []string{"posflank_id", "posflank_name"},
		rows: [][]any{
			{1, "Left"},
			{2, "Central"},
			{3, "Right"},
		},
	},
	{
		table:   types.TablePositions,
		columns: []string{"position_id", "posfield_id", "posflank_id"},
		rows: [][]any{
			{1, 1, nil},
			{2, 2, 1},
			{3, 2, 2},
			{4, 2, 3},
			{5, 3, 1},
			{6, 3, 2},
			{7, 3, 3},
			{8, 4, 1},
			{9, 4, 2},
			{10, 4, 3},
		},
	},
	{
		table:   types.TableCards,
		columns: []string{"card_id", "card_type"},
		rows: [][]any{
			{1, "Yellow"},
			{2, "Yellow/Red"},
			{3, "Red"},
		},
	},
}

// seedCatalogs fills each built-in catalog that is still empty. Seeding is
// idempotent: a table that already holds rows is left untouched.
func seedCatalogs(ctx context.Context, db *sql.DB, d dialect) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range builtInCatalogs {
		var count int64
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(&count); err != nil {
			return fmt.Errorf("counting %s: %w", c.table, err)
		}
		if count > 0 {
			continue
		}

		stmt := d.rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			c.table, joinColumns(c.columns), placeholders(len(c.columns))))
		for _, row := range c.rows {
			if _, err := tx.ExecContext(ctx, stmt, row...); err != nil {
				return fmt.Errorf("seeding %s: %w", c.table, err)
			}
		}
	}

	return tx.Commit()
}
