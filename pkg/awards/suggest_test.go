package awards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestAchieved(t *testing.T) {
	rep := &Report{UniqueCountries: 120, UniqueGrids: 100}

	got := Suggest(rep, DefaultThresholds)

	require.Len(t, got, 2)
	assert.Equal(t, "DXCC achieved: 120 unique countries", got[0])
	assert.Equal(t, "VUCC achieved: 100 unique grids", got[1])
}

func TestSuggestClose(t *testing.T) {
	rep := &Report{UniqueCountries: 95, UniqueGrids: 92}

	got := Suggest(rep, DefaultThresholds)

	require.Len(t, got, 2)
	assert.Equal(t, "DXCC close: 95 countries (need 5 more)", got[0])
	assert.Equal(t, "VUCC close: 92 grids (need 8 more)", got[1])
}

func TestSuggestBelowNinetyPercentSaysNothing(t *testing.T) {
	rep := &Report{UniqueCountries: 40, UniqueGrids: 12}

	assert.Empty(t, Suggest(rep, DefaultThresholds))
}

func TestSuggestCustomThresholds(t *testing.T) {
	rep := &Report{UniqueCountries: 50}

	got := Suggest(rep, map[string]int{"DXCC": 50, "VUCC": 10})

	require.NotEmpty(t, got)
	assert.Equal(t, "DXCC achieved: 50 unique countries", got[0])
}

func TestSuggestStrongBands(t *testing.T) {
	rep := &Report{
		GridsPerBand: map[string]int{"20M": 61, "40M": 12, "": 55},
	}

	got := Suggest(rep, DefaultThresholds)

	require.Len(t, got, 2)
	assert.Equal(t, "Strong grid count on unknown: 55", got[0])
	assert.Equal(t, "Strong grid count on 20M: 61", got[1])
}

func TestSuggestNilReport(t *testing.T) {
	assert.Nil(t, Suggest(nil, nil))
}
