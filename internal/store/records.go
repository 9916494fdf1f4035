package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// List returns every record of the entity ordered by id.
func (b *Backend) List(ctx context.Context, spec types.EntitySpec) ([]types.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	cols := append([]string{spec.IDColumn}, spec.Columns...)
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", joinColumns(cols), spec.Table, spec.IDColumn)
	rows, err := b.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", spec.Name, err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		rec, err := scanRecord(rows, len(spec.Columns))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", spec.Name, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns the record with the given id or ErrNotFound.
func (b *Backend) Get(ctx context.Context, spec types.EntitySpec, id int64) (types.Record, error) {
	if err := spec.Validate(); err != nil {
		return types.Record{}, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Record{}, types.ErrBackendDetached
	}

	cols := append([]string{spec.IDColumn}, spec.Columns...)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", joinColumns(cols), spec.Table, spec.IDColumn)
	rows, err := b.db.QueryContext(ctx, b.dialect.rebind(query), id)
	if err != nil {
		return types.Record{}, fmt.Errorf("getting %s %d: %w", spec.Name, id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return types.Record{}, err
		}
		return types.Record{}, types.ErrNotFound
	}
	return scanRecord(rows, len(spec.Columns))
}

// NextID returns MAX(id)+1 for the entity, or spec.MinID when the table is
// empty.
func (b *Backend) NextID(ctx context.Context, spec types.EntitySpec) (int64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrBackendDetached
	}

	var maxID sql.NullInt64
	query := fmt.Sprintf("SELECT MAX(%s) FROM %s", spec.IDColumn, spec.Table)
	if err := b.db.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("reading max id of %s: %w", spec.Name, err)
	}
	if !maxID.Valid || maxID.Int64 < spec.MinID {
		return spec.MinID, nil
	}
	return maxID.Int64 + 1, nil
}

// Insert writes a new record. Empty values are stored as NULL.
func (b *Backend) Insert(ctx context.Context, spec types.EntitySpec, rec types.Record) error {
	if err := checkRecord(spec, rec); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}

	cols := append([]string{spec.IDColumn}, spec.Columns...)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", spec.Table, joinColumns(cols), placeholders(len(cols)))
	args := append([]any{rec.ID}, valueArgs(rec.Values)...)
	if _, err := b.db.ExecContext(ctx, b.dialect.rebind(query), args...); err != nil {
		return fmt.Errorf("inserting %s %d: %w", spec.Name, rec.ID, err)
	}
	return nil
}

// Update overwrites the editable columns of an existing record.
// Returns ErrNotFound if no row has the record's id.
func (b *Backend) Update(ctx context.Context, spec types.EntitySpec, rec types.Record) error {
	if err := checkRecord(spec, rec); err != nil {
		return err
	}
	if len(spec.Columns) == 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}

	sets := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		sets[i] = c + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", spec.Table, strings.Join(sets, ", "), spec.IDColumn)
	args := append(valueArgs(rec.Values), rec.ID)
	res, err := b.db.ExecContext(ctx, b.dialect.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("updating %s %d: %w", spec.Name, rec.ID, err)
	}
	return requireAffected(res)
}

// Delete removes the record with the given id.
// Returns ErrNotFound if no row has that id.
func (b *Backend) Delete(ctx context.Context, spec types.EntitySpec, id int64) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", spec.Table, spec.IDColumn)
	res, err := b.db.ExecContext(ctx, b.dialect.rebind(query), id)
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", spec.Name, id, err)
	}
	return requireAffected(res)
}

// CountDuplicates counts rows other than excludeID whose unique column equals
// value. It returns 0 when the entity has no unique column.
func (b *Backend) CountDuplicates(ctx context.Context, spec types.EntitySpec, value string, excludeID int64) (int64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if spec.UniqueColumn == "" {
		return 0, nil
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ? AND %s <> ?",
		spec.Table, spec.UniqueColumn, spec.IDColumn)
	return b.Count(ctx, query, value, excludeID)
}

func checkRecord(spec types.EntitySpec, rec types.Record) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if rec.ID <= 0 {
		return types.ErrInvalidID
	}
	if len(rec.Values) != len(spec.Columns) {
		return fmt.Errorf("%w: %s expects %d values, got %d",
			types.ErrInvalidData, spec.Name, len(spec.Columns), len(rec.Values))
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner, ncols int) (types.Record, error) {
	var rec types.Record
	vals := make([]sql.NullString, ncols)
	dest := make([]any, 0, ncols+1)
	dest = append(dest, &rec.ID)
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	if err := s.Scan(dest...); err != nil {
		return types.Record{}, err
	}
	rec.Values = make([]string, ncols)
	for i, v := range vals {
		rec.Values[i] = v.String
	}
	return rec, nil
}

func valueArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		if v == "" {
			args[i] = nil
			continue
		}
		args[i] = v
	}
	return args
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
