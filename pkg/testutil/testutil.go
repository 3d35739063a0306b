// Package testutil provides shared test helpers and QSO fixtures.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/qsopipe/qsopipe/pkg/models"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

var (
	fixtureBands = []string{"20M", "40M", "15M", "10M", "2M"}
	fixtureModes = []string{"SSB", "CW", "FT8"}
	fixtureGrids = []string{"FN42", "JO65", "IO91", "PM95", "EM12"}
)

// GenerateQSOs builds n deterministic QSOs cycling through a small set
// of bands, modes, and grids. The same n always yields the same slice.
func GenerateQSOs(n int) []models.QSO {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	qsos := make([]models.QSO, n)
	for i := range qsos {
		qsos[i] = models.QSO{
			Call:    fmt.Sprintf("K%dABC", i),
			StartAt: base.Add(time.Duration(i) * time.Minute),
			Band:    fixtureBands[i%len(fixtureBands)],
			Mode:    fixtureModes[i%len(fixtureModes)],
			FreqMHz: 14.0 + float64(i%10)/100,
			Grid:    fixtureGrids[i%len(fixtureGrids)],
			Country: fmt.Sprintf("Country %d", i%7),
			RSTSent: "59",
			RSTRcvd: "57",
		}
	}
	return qsos
}

// GenerateADIF builds an ADIF document with a header and n records,
// matching the QSOs GenerateQSOs(n) would return.
func GenerateADIF(n int) string {
	var b strings.Builder
	b.WriteString("Generated test log\n<ADIF_VER:3>3.1\n<EOH>\n")
	for _, q := range GenerateQSOs(n) {
		fmt.Fprintf(&b, "<QSO_DATE:8>%s<TIME_ON:6>%s", q.StartAt.Format("20060102"), q.StartAt.Format("150405"))
		writeField(&b, "CALL", q.Call)
		writeField(&b, "BAND", q.Band)
		writeField(&b, "MODE", q.Mode)
		writeField(&b, "GRIDSQUARE", q.Grid)
		writeField(&b, "COUNTRY", q.Country)
		b.WriteString("<EOR>\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, tag, value string) {
	fmt.Fprintf(b, "<%s:%d>%s", tag, len(value), value)
}
