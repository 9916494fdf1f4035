package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// ErrNoExecutor is returned by the constructors when no executor is given.
var ErrNoExecutor = errors.New("gate: executor must not be nil")

// Executor runs a single-value query and returns the integer in the first
// column of the first row. Queries use ? placeholders.
type Executor interface {
	Count(ctx context.Context, query string, args ...any) (int64, error)
}

// Catalog resolves a position field designation to its position ids.
type Catalog interface {
	PositionIDs(ctx context.Context, designation string) ([]int64, error)
}

// countRows issues SELECT COUNT(*) against table with the filter applied.
func countRows(ctx context.Context, exec Executor, table string, f Filter) (int64, error) {
	if !types.ValidIdentifier(table) {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidIdentifier, table)
	}
	where, args, err := f.where()
	if err != nil {
		return 0, err
	}
	n, err := exec.Count(ctx, "SELECT COUNT(*) FROM "+table+where, args...)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}
