package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

func TestFilter_Where(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		wantSQL  string
		wantArgs []any
	}{
		{"zero filter", Filter{}, "", nil},
		{"eq", Eq("card_id", 3), " WHERE card_id = ?", []any{3}},
		{"true", IsTrue("lp_starting"), " WHERE lp_starting", nil},
		{"false", IsFalse("lp_starting"), " WHERE NOT lp_starting", nil},
		{"in", In("position_id", []int64{1, 2}), " WHERE position_id IN (?, ?)", []any{int64(1), int64(2)}},
		{"empty in", In("position_id", nil), " WHERE 1 = 0", nil},
		{
			"all",
			All(Eq("match_id", 1), Eq("team_id", 2), IsTrue("lp_captain")),
			" WHERE match_id = ? AND team_id = ? AND lp_captain",
			[]any{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.filter.where()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilter_InvalidColumn(t *testing.T) {
	_, _, err := All(Eq("match_id", 1), IsTrue("1=1 OR lp_starting")).where()
	assert.ErrorIs(t, err, types.ErrInvalidIdentifier)
}
