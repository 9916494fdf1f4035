package gate

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// Filter is a conjunction of predicates rendered into a WHERE clause. The
// zero Filter matches every row.
type Filter struct {
	clauses []string
	args    []any
	err     error
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Filter {
	return predicate(column, column+" = ?", value)
}

// IsTrue matches rows where the boolean column is set.
func IsTrue(column string) Filter {
	return predicate(column, column)
}

// IsFalse matches rows where the boolean column is not set.
func IsFalse(column string) Filter {
	return predicate(column, "NOT "+column)
}

// In matches rows whose column is one of ids. An empty set matches nothing.
func In(column string, ids []int64) Filter {
	if len(ids) == 0 {
		return predicate(column, "1 = 0")
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return predicate(column, column+" IN ("+marks+")", args...)
}

// All joins filters with AND.
func All(filters ...Filter) Filter {
	var out Filter
	for _, f := range filters {
		if f.err != nil && out.err == nil {
			out.err = f.err
		}
		out.clauses = append(out.clauses, f.clauses...)
		out.args = append(out.args, f.args...)
	}
	return out
}

func predicate(column, clause string, args ...any) Filter {
	if !types.ValidIdentifier(column) {
		return Filter{err: fmt.Errorf("%w: %q", types.ErrInvalidIdentifier, column)}
	}
	return Filter{clauses: []string{clause}, args: args}
}

// where renders the filter as " WHERE ..." (or "") plus its bind arguments.
func (f Filter) where() (string, []any, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	if len(f.clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(f.clauses, " AND "), f.args, nil
}
