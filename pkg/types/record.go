package types

import "errors"

// Record is one row of an entity table as seen by the record editor.
// Values line up with EntitySpec.Columns.
type Record struct {
	ID     int64    `json:"id"`
	Values []string `json:"values"`
}

// Equal reports whether two records hold the same id and values.
func (r Record) Equal(o Record) bool {
	if r.ID != o.ID || len(r.Values) != len(o.Values) {
		return false
	}
	for i := range r.Values {
		if r.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

// Record operation errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidID       = errors.New("invalid record ID")
	ErrInvalidData     = errors.New("invalid record data")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrHasDependents   = errors.New("record is referenced by dependent tables")
	ErrNoCurrentRecord = errors.New("no current record")
)

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)
