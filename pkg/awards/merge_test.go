package awards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qsopipe/qsopipe/pkg/models"
)

func TestMergeUnionsGridsPerBand(t *testing.T) {
	// Chunk A worked FN42 and FN43 on 20m; chunk B worked FN42 again.
	// The merged 20m count is the size of the union (2), never the sum
	// of per-chunk counts (3).
	a := Compute([]models.QSO{
		qso("K1ABC", "", "FN42", "20m", ""),
		qso("K1ABC", "", "FN43", "20m", ""),
	})
	b := Compute([]models.QSO{
		qso("W2DEF", "", "FN42", "20m", ""),
	})

	merged := Merge(a, b)

	assert.Equal(t, 3, merged.TotalQSOs)
	assert.Equal(t, map[string]int{"20M": 2}, merged.Report().GridsPerBand)
}

func TestMergeUnionsUniqueSets(t *testing.T) {
	a := Compute([]models.QSO{qso("K1ABC", "USA", "FN42", "20m", "SSB")})
	b := Compute([]models.QSO{
		qso("K1ABC", "USA", "FN42", "20m", "SSB"), // full duplicate
		qso("G0XYZ", "England", "IO91", "40m", "CW"),
	})

	rep := Merge(a, b).Report()

	assert.Equal(t, 3, rep.TotalQSOs, "totals add; chunks partition the collection")
	assert.Equal(t, 2, rep.UniqueCountries)
	assert.Equal(t, 2, rep.UniqueGrids)
	assert.Equal(t, 2, rep.UniqueCalls)
	assert.Equal(t, 2, rep.UniqueBands)
	assert.Equal(t, 2, rep.UniqueModes)
}

func TestMergeLeavesInputsUntouched(t *testing.T) {
	a := Compute([]models.QSO{qso("K1ABC", "USA", "FN42", "20m", "SSB")})
	b := Compute([]models.QSO{qso("G0XYZ", "England", "IO91", "20m", "CW")})

	_ = Merge(a, b)

	assert.Equal(t, 1, len(a.Grids))
	assert.Equal(t, 1, len(b.Grids))
	assert.Equal(t, map[string]int{"20M": 1}, a.Report().GridsPerBand)
}

func TestMergeAssociativeAndCommutative(t *testing.T) {
	a := Compute([]models.QSO{
		qso("K1ABC", "USA", "FN42", "20m", "SSB"),
		qso("W2DEF", "USA", "FN43", "40m", "CW"),
	})
	b := Compute([]models.QSO{
		qso("G0XYZ", "England", "IO91", "20m", "FT8"),
		qso("K1ABC", "USA", "FN42", "20m", "SSB"),
	})
	c := Compute([]models.QSO{
		qso("JA1DEF", "Japan", "PM95", "20m", "SSB"),
	})

	left := Merge(Merge(a, b), c).Report()
	right := Merge(a, Merge(b, c)).Report()
	swapped := Merge(Merge(c, b), a).Report()

	assert.Equal(t, left, right)
	assert.Equal(t, left, swapped)
}

func TestMergeMatchesSerialCompute(t *testing.T) {
	qsos := []models.QSO{
		qso("K1ABC", "USA", "FN42", "20m", "SSB"),
		qso("W2DEF", "USA", "FN43", "40m", "CW"),
		qso("G0XYZ", "England", "IO91", "20m", "FT8"),
		qso("K1ABC", "usa", "fn42", "20M", "ssb"),
		qso("JA1DEF", "Japan", "PM95", "20m", "SSB"),
	}

	serial := Compute(qsos).Report()
	chunked := MergeAll([]*Summary{
		Compute(qsos[:2]),
		Compute(qsos[2:4]),
		Compute(qsos[4:]),
	}).Report()

	assert.Equal(t, serial, chunked)
}

func TestMergeNilAndEmpty(t *testing.T) {
	a := Compute([]models.QSO{qso("K1ABC", "USA", "FN42", "20m", "SSB")})

	assert.Equal(t, a.Report(), Merge(a, nil).Report())
	assert.Equal(t, a.Report(), Merge(nil, a).Report())
	assert.Equal(t, a.Report(), Merge(a, NewSummary()).Report())
	assert.Zero(t, MergeAll(nil).Report().TotalQSOs)
}
