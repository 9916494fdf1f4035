package gate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fmrd/internal/store"
	"github.com/mesh-intelligence/fmrd/pkg/types"
)

var errStoreDown = errors.New("store unavailable")

// Position ids from the seeded catalog.
const (
	goalkeeperPosition = 1
	midfieldPosition   = 6
)

func newBackend(t *testing.T) *store.Backend {
	t.Helper()
	b := store.NewBackend(nil)
	require.NoError(t, b.Attach(context.Background(), types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func newGate(t *testing.T, b *store.Backend) *Gate {
	t.Helper()
	g, err := New(b, b, types.DefaultGateConfig(), nil)
	require.NoError(t, err)
	return g
}

func exec(t *testing.T, b *store.Backend, query string, args ...any) {
	t.Helper()
	_, err := b.Exec(context.Background(), query, args...)
	require.NoError(t, err)
}

// addCatalogRows inserts n rows into a catalog table whose first two columns
// are an integer id and a required name.
func addCatalogRows(t *testing.T, b *store.Backend, table, idCol, nameCol string, start, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		exec(t, b, "INSERT INTO "+table+" ("+idCol+", "+nameCol+") VALUES (?, ?)", start+i, "row")
	}
}

type lineupFixture struct {
	b      *store.Backend
	nextID int64
}

func (f *lineupFixture) add(t *testing.T, matchID, teamID int64, position int, starting, captain bool) {
	t.Helper()
	f.nextID++
	exec(t, f.b,
		"INSERT INTO tbl_lineups (lineup_id, match_id, team_id, player_id, position_id, lp_starting, lp_captain) VALUES (?, ?, ?, ?, ?, ?, ?)",
		f.nextID, matchID, teamID, 100000+f.nextID, position, starting, captain)
}

// addStarters adds n non-captain outfield starters.
func (f *lineupFixture) addStarters(t *testing.T, matchID, teamID int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		f.add(t, matchID, teamID, midfieldPosition, true, false)
	}
}

// fixedExecutor answers every count with n.
type fixedExecutor struct{ n int64 }

func (e fixedExecutor) Count(context.Context, string, ...any) (int64, error) {
	return e.n, nil
}

// failingExecutor fails every query.
type failingExecutor struct{}

func (failingExecutor) Count(context.Context, string, ...any) (int64, error) {
	return 0, errStoreDown
}

// tableExecutor answers by table name and records every query. Tables listed
// in fail return an error.
type tableExecutor struct {
	counts  map[string]int64
	fail    map[string]bool
	queries []string
}

func (e *tableExecutor) Count(_ context.Context, query string, _ ...any) (int64, error) {
	e.queries = append(e.queries, query)
	table := strings.Fields(query)[3]
	if e.fail[table] {
		return 0, errStoreDown
	}
	return e.counts[table], nil
}

// countingCatalog wraps a Catalog and counts lookups.
type countingCatalog struct {
	inner Catalog
	err   error
	calls int
}

func (c *countingCatalog) PositionIDs(ctx context.Context, designation string) ([]int64, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.inner.PositionIDs(ctx, designation)
}
