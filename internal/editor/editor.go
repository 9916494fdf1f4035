package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// Editor construction errors.
var (
	ErrNoStore = errors.New("editor: record store must not be nil")
	ErrNoGuard = errors.New("editor: delete guard must not be nil")
)

// RecordStore persists the rows of one entity table.
type RecordStore interface {
	List(ctx context.Context, spec types.EntitySpec) ([]types.Record, error)
	NextID(ctx context.Context, spec types.EntitySpec) (int64, error)
	Insert(ctx context.Context, spec types.EntitySpec, rec types.Record) error
	Update(ctx context.Context, spec types.EntitySpec, rec types.Record) error
	Delete(ctx context.Context, spec types.EntitySpec, id int64) error
	CountDuplicates(ctx context.Context, spec types.EntitySpec, value string, excludeID int64) (int64, error)
}

// DeleteGuard decides whether a record may be deleted.
type DeleteGuard interface {
	CanDelete(ctx context.Context, entity string, keyValue any) (bool, error)
}

// Editor is a cursor over the records of one entity. It is not safe for
// concurrent use.
type Editor struct {
	store RecordStore
	guard DeleteGuard
	spec  types.EntitySpec

	records []types.Record // as persisted
	pos     int            // -1 when empty

	// edit holds unsaved values for the current record; nil when clean.
	edit *types.Record
	// pending marks the current record as added but not yet inserted.
	pending bool
}

// New loads the entity table ordered by id and places the cursor on the
// first record.
func New(ctx context.Context, store RecordStore, guard DeleteGuard, spec types.EntitySpec) (*Editor, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if guard == nil {
		return nil, ErrNoGuard
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	records, err := store.List(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", spec.Name, err)
	}
	e := &Editor{store: store, guard: guard, spec: spec, records: records, pos: -1}
	if len(records) > 0 {
		e.pos = 0
	}
	return e, nil
}

// Spec returns the entity the editor works on.
func (e *Editor) Spec() types.EntitySpec {
	return e.spec
}

// Len returns the number of records, including an unsaved new one.
func (e *Editor) Len() int {
	return len(e.records)
}

// Position returns the cursor index, or -1 when the table is empty.
func (e *Editor) Position() int {
	return e.pos
}

// Dirty reports whether the current record differs from what is stored.
func (e *Editor) Dirty() bool {
	if e.pos < 0 {
		return false
	}
	if e.pending {
		return true
	}
	return e.edit != nil && !e.edit.Equal(e.records[e.pos])
}

// Current returns the current record with any unsaved edits applied.
func (e *Editor) Current() (types.Record, error) {
	if e.pos < 0 {
		return types.Record{}, types.ErrNoCurrentRecord
	}
	if e.edit != nil {
		return cloneRecord(*e.edit), nil
	}
	return cloneRecord(e.records[e.pos]), nil
}

// Set replaces the values of the current record. One value is required per
// entity column.
func (e *Editor) Set(values ...string) error {
	if e.pos < 0 {
		return types.ErrNoCurrentRecord
	}
	if len(values) != len(e.spec.Columns) {
		return fmt.Errorf("%w: %s takes %d values, got %d",
			types.ErrInvalidData, e.spec.Name, len(e.spec.Columns), len(values))
	}
	rec := types.Record{ID: e.records[e.pos].ID, Values: append([]string(nil), values...)}
	e.edit = &rec
	return nil
}

// Save persists the current record when it is dirty. A blank required
// column returns ErrInvalidData and keeps the edit. A description that
// duplicates another row returns ErrDuplicateRecord and reverts the edit;
// an unsaved new record is dropped.
func (e *Editor) Save(ctx context.Context) error {
	if !e.Dirty() {
		e.edit = nil
		return nil
	}
	rec := e.records[e.pos]
	if e.edit != nil {
		rec = *e.edit
	}

	for _, col := range e.spec.RequiredColumns() {
		if strings.TrimSpace(e.value(rec, col)) == "" {
			return fmt.Errorf("%w: %s requires %s", types.ErrInvalidData, e.spec.Name, col)
		}
	}
	dup, err := e.duplicate(ctx, rec)
	if err != nil {
		return err
	}
	if dup {
		e.revert()
		return fmt.Errorf("%w: %s %q", types.ErrDuplicateRecord, e.spec.Name, e.uniqueValue(rec))
	}

	if e.pending {
		err = e.store.Insert(ctx, e.spec, rec)
	} else {
		err = e.store.Update(ctx, e.spec, rec)
	}
	if err != nil {
		return fmt.Errorf("saving %s %d: %w", e.spec.Name, rec.ID, err)
	}
	e.records[e.pos] = rec
	e.edit = nil
	e.pending = false
	return nil
}

// First saves the current record and moves to the first row.
func (e *Editor) First(ctx context.Context) (types.Record, error) {
	return e.move(ctx, func(int) int { return 0 })
}

// Prev saves the current record and moves back one row, stopping at the
// first.
func (e *Editor) Prev(ctx context.Context) (types.Record, error) {
	return e.move(ctx, func(p int) int { return p - 1 })
}

// Next saves the current record and moves forward one row, stopping at the
// last.
func (e *Editor) Next(ctx context.Context) (types.Record, error) {
	return e.move(ctx, func(p int) int { return p + 1 })
}

// Last saves the current record and moves to the last row.
func (e *Editor) Last(ctx context.Context) (types.Record, error) {
	return e.move(ctx, func(int) int { return len(e.records) - 1 })
}

// Seek saves the current record and moves to the record with the given id.
func (e *Editor) Seek(ctx context.Context, id int64) (types.Record, error) {
	if err := e.Save(ctx); err != nil {
		return types.Record{}, err
	}
	for i, r := range e.records {
		if r.ID == id {
			e.pos = i
			return e.Current()
		}
	}
	return types.Record{}, fmt.Errorf("%w: %s %d", types.ErrNotFound, e.spec.Name, id)
}

func (e *Editor) move(ctx context.Context, target func(int) int) (types.Record, error) {
	if e.pos < 0 {
		return types.Record{}, types.ErrNoCurrentRecord
	}
	if err := e.Save(ctx); err != nil {
		return types.Record{}, err
	}
	e.pos = clamp(target(e.pos), len(e.records))
	return e.Current()
}

// Add saves the current record and appends a new, unsaved record with blank
// values. Its id is one past the largest stored id, or MinID for an empty
// table.
func (e *Editor) Add(ctx context.Context) (types.Record, error) {
	if err := e.Save(ctx); err != nil {
		return types.Record{}, err
	}
	id, err := e.store.NextID(ctx, e.spec)
	if err != nil {
		return types.Record{}, fmt.Errorf("allocating %s id: %w", e.spec.Name, err)
	}
	rec := types.Record{ID: id, Values: make([]string, len(e.spec.Columns))}
	e.records = append(e.records, rec)
	e.pos = len(e.records) - 1
	e.pending = true
	e.edit = nil
	return cloneRecord(rec), nil
}

// Delete removes the current record unless the guard reports dependent rows,
// in which case ErrHasDependents is returned and nothing changes. The cursor
// stays on the same row index, clamped to the new last row.
func (e *Editor) Delete(ctx context.Context) error {
	if e.pos < 0 {
		return types.ErrNoCurrentRecord
	}
	rec := e.records[e.pos]
	if !e.pending {
		ok, err := e.guard.CanDelete(ctx, e.spec.Name, rec.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s %d", types.ErrHasDependents, e.spec.Name, rec.ID)
		}
		if err := e.store.Delete(ctx, e.spec, rec.ID); err != nil {
			return fmt.Errorf("deleting %s %d: %w", e.spec.Name, rec.ID, err)
		}
	}
	e.remove()
	return nil
}

// revert discards unsaved edits. A pending new record is dropped.
func (e *Editor) revert() {
	e.edit = nil
	if e.pending {
		e.remove()
	}
}

func (e *Editor) remove() {
	e.records = append(e.records[:e.pos], e.records[e.pos+1:]...)
	e.pos = clamp(e.pos, len(e.records))
	e.edit = nil
	e.pending = false
}

func (e *Editor) duplicate(ctx context.Context, rec types.Record) (bool, error) {
	if e.spec.UniqueColumn == "" {
		return false, nil
	}
	n, err := e.store.CountDuplicates(ctx, e.spec, e.uniqueValue(rec), rec.ID)
	if err != nil {
		return false, fmt.Errorf("checking %s duplicates: %w", e.spec.Name, err)
	}
	return n > 0, nil
}

func (e *Editor) uniqueValue(rec types.Record) string {
	return e.value(rec, e.spec.UniqueColumn)
}

func (e *Editor) value(rec types.Record, col string) string {
	for i, c := range e.spec.Columns {
		if c == col && i < len(rec.Values) {
			return rec.Values[i]
		}
	}
	return ""
}

func clamp(pos, n int) int {
	if n == 0 {
		return -1
	}
	if pos < 0 {
		return 0
	}
	if pos >= n {
		return n - 1
	}
	return pos
}

func cloneRecord(r types.Record) types.Record {
	return types.Record{ID: r.ID, Values: append([]string(nil), r.Values...)}
}
