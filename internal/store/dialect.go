package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// dialect captures the differences between the supported SQL engines. All
// statements in this module are written with ? placeholders.
type dialect struct {
	name   string
	driver string
	// numbered rewrites ? placeholders to $1, $2, ... for PostgreSQL.
	numbered bool
}

var dialects = map[string]dialect{
	types.BackendSQLite:   {name: types.BackendSQLite, driver: "sqlite"},
	types.BackendPostgres: {name: types.BackendPostgres, driver: "pgx", numbered: true},
}

func dialectFor(backend string) (dialect, error) {
	d, ok := dialects[backend]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", types.ErrBackendUnknown, backend)
	}
	return d, nil
}

// rebind rewrites placeholders for the dialect. Question marks inside
// single-quoted literals are left alone.
func (d dialect) rebind(query string) string {
	if !d.numbered || !strings.Contains(query, "?") {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			sb.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// placeholders returns n comma-separated ? markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
