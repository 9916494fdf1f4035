package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGateConfig_Valid(t *testing.T) {
	cfg := DefaultGateConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(11), cfg.Thresholds.Starters)
	assert.Equal(t, int64(3), cfg.Thresholds.Substitutes)
	assert.Equal(t, TableTeams, cfg.Tables.VenueHosts)
}

func TestThresholds_ValidateMissing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(th *Thresholds)
		field  string
	}{
		{"competitions", func(th *Thresholds) { th.Competitions = 0 }, "competitions"},
		{"teams", func(th *Thresholds) { th.Teams = -1 }, "teams"},
		{"starters", func(th *Thresholds) { th.Starters = 0 }, "starters"},
		{"substitutes", func(th *Thresholds) { th.Substitutes = 0 }, "substitutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mutate(&th)
			err := th.Validate()
			require.ErrorIs(t, err, ErrThresholdMissing)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestGateConfig_Validate(t *testing.T) {
	cfg := DefaultGateConfig()
	cfg.Tables.Lineups = "tbl_lineups WHERE 1=1"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidIdentifier)

	cfg = DefaultGateConfig()
	cfg.GoalkeeperDesignation = ""
	assert.ErrorIs(t, cfg.Validate(), ErrDesignationEmpty)
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("tbl_lineups"))
	assert.True(t, ValidIdentifier("_x1"))
	assert.False(t, ValidIdentifier(""))
	assert.False(t, ValidIdentifier("1tbl"))
	assert.False(t, ValidIdentifier("tbl-lineups"))
	assert.False(t, ValidIdentifier("tbl_lineups;"))
}

func TestRecord_Equal(t *testing.T) {
	a := Record{ID: 1, Values: []string{"Yellow"}}
	assert.True(t, a.Equal(Record{ID: 1, Values: []string{"Yellow"}}))
	assert.False(t, a.Equal(Record{ID: 1, Values: []string{"Red"}}))
	assert.False(t, a.Equal(Record{ID: 2, Values: []string{"Yellow"}}))
	assert.False(t, a.Equal(Record{ID: 1}))
}
