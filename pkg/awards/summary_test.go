package awards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/qsopipe/qsopipe/pkg/models"
)

func qso(call, country, grid, band, mode string) models.QSO {
	return models.QSO{
		Call:    call,
		StartAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Country: country,
		Grid:    grid,
		Band:    band,
		Mode:    mode,
	}
}

func TestNorm(t *testing.T) {
	assert.Equal(t, "FN42", Norm("  fn42 "))
	assert.Equal(t, "", Norm("   "))
	assert.Equal(t, "", Norm(""))
	assert.Equal(t, "20M", Norm("20m"))
}

func TestNormIdempotent(t *testing.T) {
	for _, s := range []string{"  fn42 ", "FN42", "", "  ", "MiXeD cAsE  ", "ssb"} {
		assert.Equal(t, Norm(s), Norm(Norm(s)), "norm(norm(%q))", s)
	}
}

func TestComputeBasic(t *testing.T) {
	qsos := []models.QSO{
		qso("K1ABC", "USA", "FN42", "20m", "SSB"),
		qso("G0XYZ", "England", "IO91", "40m", "CW"),
		qso("JA1DEF", "Japan", "PM95", "20m", "FT8"),
	}

	rep := Compute(qsos).Report()

	assert.Equal(t, 3, rep.TotalQSOs)
	assert.Equal(t, 3, rep.UniqueCountries)
	assert.Equal(t, 3, rep.UniqueGrids)
	assert.Equal(t, 3, rep.UniqueCalls)
	assert.Equal(t, 2, rep.UniqueBands)
	assert.Equal(t, 3, rep.UniqueModes)
	assert.Equal(t, map[string]int{"20M": 2, "40M": 1}, rep.GridsPerBand)
}

func TestComputeNormalizesAndDeduplicates(t *testing.T) {
	qsos := []models.QSO{
		qso("K1ABC", "usa", " FN42 ", "20m", "ssb"),
		qso("k1abc", "USA", "fn42", "20M", "SSB"),
	}

	rep := Compute(qsos).Report()

	assert.Equal(t, 2, rep.TotalQSOs)
	assert.Equal(t, 1, rep.UniqueCountries)
	assert.Equal(t, 1, rep.UniqueGrids)
	assert.Equal(t, 1, rep.UniqueCalls)
	assert.Equal(t, 1, rep.UniqueBands)
	assert.Equal(t, 1, rep.UniqueModes)
}

func TestComputeExcludesEmptyValues(t *testing.T) {
	qsos := []models.QSO{
		qso("K1ABC", "", "  ", "", ""),
	}

	rep := Compute(qsos).Report()

	assert.Equal(t, 1, rep.TotalQSOs)
	assert.Zero(t, rep.UniqueCountries)
	assert.Zero(t, rep.UniqueGrids)
	assert.Equal(t, 1, rep.UniqueCalls)
	assert.Zero(t, rep.UniqueBands)
	assert.Empty(t, rep.GridsPerBand)
}

func TestGridWithoutBandCountsUnderEmptyBand(t *testing.T) {
	s := Compute([]models.QSO{qso("K1ABC", "", "FN42", "", "")})

	assert.Equal(t, map[string]int{"": 1}, s.Report().GridsPerBand)
}

func TestComputeEmpty(t *testing.T) {
	rep := Compute(nil).Report()

	assert.Zero(t, rep.TotalQSOs)
	assert.Empty(t, rep.GridsPerBand)
}

func TestSet(t *testing.T) {
	s := NewSet(" fn42 ", "FN42", "io91", "   ")

	assert.Len(t, s, 2)
	assert.True(t, s.Has("fn42"))
	assert.True(t, s.Has("IO91 "))
	assert.False(t, s.Has("pm95"))

	c := s.Clone()
	c.Add("pm95")
	assert.Len(t, s, 2, "clone must be independent")
	assert.Len(t, c, 3)
}
