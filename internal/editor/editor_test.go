package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fmrd/internal/gate"
	"github.com/mesh-intelligence/fmrd/internal/store"
	"github.com/mesh-intelligence/fmrd/pkg/types"
)

func setupBackend(t *testing.T) *store.Backend {
	t.Helper()
	b := store.NewBackend(nil)
	require.NoError(t, b.Attach(context.Background(), types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func openEditor(t *testing.T, b *store.Backend, entity string) *Editor {
	t.Helper()
	registry := types.DefaultRegistry()
	guard, err := gate.NewGuard(b, registry, nil)
	require.NoError(t, err)
	spec, err := registry.Lookup(entity)
	require.NoError(t, err)
	e, err := New(context.Background(), b, guard, spec)
	require.NoError(t, err)
	return e
}

// stubGuard answers every CanDelete with ok and err.
type stubGuard struct {
	ok  bool
	err error
}

func (g stubGuard) CanDelete(context.Context, string, any) (bool, error) {
	return g.ok, g.err
}

func TestNew_Errors(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	spec, err := types.DefaultRegistry().Lookup("cards")
	require.NoError(t, err)

	_, err = New(ctx, nil, stubGuard{}, spec)
	assert.ErrorIs(t, err, ErrNoStore)

	_, err = New(ctx, b, nil, spec)
	assert.ErrorIs(t, err, ErrNoGuard)

	spec.Table = "tbl cards"
	_, err = New(ctx, b, stubGuard{}, spec)
	assert.ErrorIs(t, err, types.ErrInvalidIdentifier)

	require.NoError(t, b.Detach())
	spec.Table = types.TableCards
	_, err = New(ctx, b, stubGuard{}, spec)
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}

func TestEditor_Navigation(t *testing.T) {
	ctx := context.Background()
	e := openEditor(t, setupBackend(t), "cards")
	require.Equal(t, 3, e.Len())
	require.Equal(t, 0, e.Position())

	steps := []struct {
		name   string
		move   func(context.Context) (types.Record, error)
		wantID int64
	}{
		{"prev at first stays", e.Prev, 1},
		{"next", e.Next, 2},
		{"next again", e.Next, 3},
		{"next at last stays", e.Next, 3},
		{"first", e.First, 1},
		{"last", e.Last, 3},
		{"prev", e.Prev, 2},
	}

	for _, s := range steps {
		rec, err := s.move(ctx)
		require.NoError(t, err, s.name)
		assert.Equal(t, s.wantID, rec.ID, s.name)
	}
}

func TestEditor_EmptyTable(t *testing.T) {
	ctx := context.Background()
	e := openEditor(t, setupBackend(t), "competitions")

	assert.Equal(t, 0, e.Len())
	assert.Equal(t, -1, e.Position())
	assert.False(t, e.Dirty())

	_, err := e.Current()
	assert.ErrorIs(t, err, types.ErrNoCurrentRecord)
	_, err = e.Next(ctx)
	assert.ErrorIs(t, err, types.ErrNoCurrentRecord)
	assert.ErrorIs(t, e.Set("Premier League"), types.ErrNoCurrentRecord)
	assert.ErrorIs(t, e.Delete(ctx), types.ErrNoCurrentRecord)
}

func TestEditor_AddAllocatesIDs(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	e := openEditor(t, b, "competitions")

	rec, err := e.Add(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), rec.ID, "empty table starts at MinID")
	assert.True(t, e.Dirty())

	require.NoError(t, e.Set("Premier League"))
	rec, err = e.Add(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(101), rec.ID, "MAX+1 once a row exists")
	require.NoError(t, e.Set("La Liga"))
	require.NoError(t, e.Save(ctx))

	stored, err := b.List(ctx, e.Spec())
	require.NoError(t, err)
	assert.Equal(t, []types.Record{
		{ID: 100, Values: []string{"Premier League"}},
		{ID: 101, Values: []string{"La Liga"}},
	}, stored)
	assert.False(t, e.Dirty())
}

func TestEditor_AddAfterSeededRows(t *testing.T) {
	e := openEditor(t, setupBackend(t), "cards")
	rec, err := e.Add(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), rec.ID)
	assert.Equal(t, []string{""}, rec.Values)
	assert.Equal(t, 3, e.Position())
}

func TestEditor_SetAndDirty(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	e := openEditor(t, b, "cards")

	require.NoError(t, e.Set("Yellow"))
	assert.False(t, e.Dirty(), "same values are not an edit")

	require.NoError(t, e.Set("Caution"))
	assert.True(t, e.Dirty())
	cur, err := e.Current()
	require.NoError(t, err)
	assert.Equal(t, "Caution", cur.Values[0])

	assert.ErrorIs(t, e.Set("a", "b"), types.ErrInvalidData)

	_, err = e.Next(ctx)
	require.NoError(t, err)
	assert.False(t, e.Dirty())

	got, err := b.Get(ctx, e.Spec(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Caution", got.Values[0], "navigation saves the edit")
}

func TestEditor_DuplicateBlocksNavigation(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	e := openEditor(t, b, "cards")

	require.NoError(t, e.Set("Red"))
	_, err := e.Next(ctx)
	assert.ErrorIs(t, err, types.ErrDuplicateRecord)

	assert.Equal(t, 0, e.Position(), "cursor does not move")
	assert.False(t, e.Dirty(), "edit is reverted")
	cur, err := e.Current()
	require.NoError(t, err)
	assert.Equal(t, "Yellow", cur.Values[0])

	got, err := b.Get(ctx, e.Spec(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Yellow", got.Values[0])
}

func TestEditor_DuplicateNewRecordIsDropped(t *testing.T) {
	ctx := context.Background()
	e := openEditor(t, setupBackend(t), "cards")

	_, err := e.Add(ctx)
	require.NoError(t, err)
	require.NoError(t, e.Set("Yellow"))

	assert.ErrorIs(t, e.Save(ctx), types.ErrDuplicateRecord)
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, 2, e.Position())
	assert.False(t, e.Dirty())
}

func TestEditor_SaveRequiresDescription(t *testing.T) {
	ctx := context.Background()
	e := openEditor(t, setupBackend(t), "cards")

	_, err := e.Add(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, e.Save(ctx), types.ErrInvalidData)
	assert.True(t, e.Dirty(), "the new record stays for editing")

	require.NoError(t, e.Set("Second Yellow"))
	require.NoError(t, e.Save(ctx))
	assert.False(t, e.Dirty())
}

func TestEditor_SaveRequiresColumns(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)

	tests := []struct {
		entity string
		blank  []string
		filled []string
	}{
		{"players", []string{"Alan", "", "", ""}, []string{"Alan", "Shearer", "", ""}},
		{"players", []string{"Alan", "  ", "", ""}, []string{"", "Shearer", "", ""}},
		{"managers", []string{"Bobby", "", ""}, []string{"Bobby", "Robson", ""}},
		{"referees", []string{"Pierluigi", "", ""}, []string{"Pierluigi", "Collina", ""}},
		{"positions", []string{"", "2"}, []string{"3", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			e := openEditor(t, b, tt.entity)
			before := e.Len()
			_, err := e.Add(ctx)
			require.NoError(t, err)
			require.NoError(t, e.Set(tt.blank...))
			assert.ErrorIs(t, e.Save(ctx), types.ErrInvalidData)
			assert.True(t, e.Dirty())

			require.NoError(t, e.Set(tt.filled...))
			require.NoError(t, e.Save(ctx))
			assert.Equal(t, before+1, e.Len())
		})
	}
}

func TestEditor_DeleteGuarded(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	e := openEditor(t, b, "cards")

	_, err := b.Exec(ctx, "INSERT INTO tbl_offenses (offense_id, lineup_id, card_id) VALUES (?, ?, ?)", 1, 1, 2)
	require.NoError(t, err)

	_, err = e.Seek(ctx, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, e.Delete(ctx), types.ErrHasDependents)
	assert.Equal(t, 3, e.Len())

	_, err = e.Seek(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, e.Delete(ctx))
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 1, e.Position(), "cursor clamps to the last row")

	cur, err := e.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(2), cur.ID)

	_, err = b.Get(ctx, e.Spec(), 3)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestEditor_DeleteKeepsRowIndex(t *testing.T) {
	ctx := context.Background()
	e := openEditor(t, setupBackend(t), "cards")

	_, err := e.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, e.Delete(ctx))

	assert.Equal(t, 1, e.Position())
	cur, err := e.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(3), cur.ID)
}

func TestEditor_DeletePendingRecord(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	spec, err := types.DefaultRegistry().Lookup("cards")
	require.NoError(t, err)
	e, err := New(ctx, b, stubGuard{err: errors.New("must not be called")}, spec)
	require.NoError(t, err)

	_, err = e.Add(ctx)
	require.NoError(t, err)
	require.NoError(t, e.Delete(ctx))
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, 2, e.Position())
}

func TestEditor_DeleteGuardError(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	spec, err := types.DefaultRegistry().Lookup("cards")
	require.NoError(t, err)
	guardErr := errors.New("guard failed")
	e, err := New(ctx, b, stubGuard{err: guardErr}, spec)
	require.NoError(t, err)

	assert.ErrorIs(t, e.Delete(ctx), guardErr)
	assert.Equal(t, 3, e.Len())
}

func TestEditor_DeleteLastRecord(t *testing.T) {
	ctx := context.Background()
	e := openEditor(t, setupBackend(t), "competitions")

	_, err := e.Add(ctx)
	require.NoError(t, err)
	require.NoError(t, e.Set("Serie A"))
	require.NoError(t, e.Save(ctx))

	require.NoError(t, e.Delete(ctx))
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, -1, e.Position())
}

func TestEditor_SeekUnknown(t *testing.T) {
	e := openEditor(t, setupBackend(t), "cards")
	_, err := e.Seek(context.Background(), 99)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestEditor_PositionsHaveNoDuplicateCheck(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	e := openEditor(t, b, "positions")

	rec, err := e.Add(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), rec.ID)
	require.NoError(t, e.Set("3", "2"))
	require.NoError(t, e.Save(ctx))

	got, err := b.Get(ctx, e.Spec(), 11)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2"}, got.Values)
}
