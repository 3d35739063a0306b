package awards

import "github.com/qsopipe/qsopipe/pkg/models"

// Filter returns the QSOs matching the normalized band and mode
// filters. Empty filter values match everything.
func Filter(qsos []models.QSO, band, mode string) []models.QSO {
	b := Norm(band)
	m := Norm(mode)
	if b == "" && m == "" {
		return qsos
	}

	out := make([]models.QSO, 0, len(qsos))
	for _, q := range qsos {
		if b != "" && Norm(q.Band) != b {
			continue
		}
		if m != "" && Norm(q.Mode) != m {
			continue
		}
		out = append(out, q)
	}
	return out
}
