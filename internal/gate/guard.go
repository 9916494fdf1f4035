package gate

import (
	"context"
	"log/slog"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// Guard decides whether a parent record may be deleted without orphaning
// rows in its declared child tables.
type Guard struct {
	exec     Executor
	registry types.Registry
	logger   *slog.Logger
}

// NewGuard returns a Guard over exec. Every registry entry is validated;
// a malformed entry is a configuration error.
func NewGuard(exec Executor, registry types.Registry, logger *slog.Logger) (*Guard, error) {
	if exec == nil {
		return nil, ErrNoExecutor
	}
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{exec: exec, registry: registry, logger: logger}, nil
}

// HasDependentRecords reports whether any of childTables holds a row whose
// keyField equals keyValue. Tables are scanned in order and the scan stops at
// the first match. A table that cannot be counted is treated as referencing
// the record, so the result blocks deletion.
func (g *Guard) HasDependentRecords(ctx context.Context, childTables []string, keyField string, keyValue any) bool {
	for _, table := range childTables {
		n, err := countRows(ctx, g.exec, table, Eq(keyField, keyValue))
		if err != nil {
			g.logger.Warn("dependent count failed, blocking delete",
				slog.String("table", table),
				slog.String("key_field", keyField),
				slog.Any("error", err),
			)
			return true
		}
		if n > 0 {
			return true
		}
	}
	return false
}

// CanDelete looks up the entity's child tables and key field and reports
// whether the record identified by keyValue may be deleted. An unknown entity
// is a configuration error.
func (g *Guard) CanDelete(ctx context.Context, entity string, keyValue any) (bool, error) {
	spec, err := g.registry.Lookup(entity)
	if err != nil {
		return false, err
	}
	return !g.HasDependentRecords(ctx, spec.ChildTables, spec.KeyField, keyValue), nil
}

// Blockers lists every child table of the entity that references keyValue,
// or that could not be checked. Unlike HasDependentRecords it scans all
// tables, so callers can name them in a guidance message.
func (g *Guard) Blockers(ctx context.Context, entity string, keyValue any) ([]string, error) {
	spec, err := g.registry.Lookup(entity)
	if err != nil {
		return nil, err
	}
	var blockers []string
	for _, table := range spec.ChildTables {
		n, err := countRows(ctx, g.exec, table, Eq(spec.KeyField, keyValue))
		if err != nil || n > 0 {
			blockers = append(blockers, table)
		}
	}
	return blockers, nil
}
