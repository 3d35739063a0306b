package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/qsopipe/qsopipe/pkg/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func buildDoc(n int) string {
	var sb strings.Builder
	sb.WriteString("<ADIF_VER:3>3.1<PROGRAMID:7>qsopipe<EOH>\n")
	for i := 0; i < n; i++ {
		call := fmt.Sprintf("K1ABC%d", i)
		fmt.Fprintf(&sb, "<CALL:%d>%s<QSO_DATE:8>20240704<TIME_ON:6>123456<BAND:3>20m<EOR>\n", len(call), call)
	}
	return sb.String()
}

func callsOf(qsos []models.QSO) []string {
	calls := make([]string, len(qsos))
	for i, q := range qsos {
		calls[i] = q.Call
	}
	sort.Strings(calls)
	return calls
}

func newImporter(t *testing.T, cfg Config) *Importer {
	t.Helper()
	im, err := NewImporter(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return im
}

func TestImportSerialSmallDocument(t *testing.T) {
	im := newImporter(t, Config{Parallel: true, Workers: 4})

	res, err := im.Import(context.Background(), buildDoc(10))
	require.NoError(t, err)

	assert.Equal(t, 10, res.Accepted)
	assert.Zero(t, res.Rejected)
	assert.False(t, res.SerialFallback)
}

func TestImportParallelSerialEquivalence(t *testing.T) {
	doc := buildDoc(500)

	serial := newImporter(t, Config{Parallel: false})
	want, err := serial.Import(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, 500, want.Accepted)

	for _, workers := range []int{1, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			im := newImporter(t, Config{Parallel: true, Workers: workers, SerialThreshold: 10})

			got, err := im.Import(context.Background(), doc)
			require.NoError(t, err)

			assert.Equal(t, want.Accepted, got.Accepted)
			assert.Equal(t, want.Rejected, got.Rejected)
			assert.Equal(t, callsOf(want.QSOs), callsOf(got.QSOs),
				"multiset of records must not depend on worker count")
		})
	}
}

func TestImportRejectsInvalidRecordsWithoutError(t *testing.T) {
	doc := "<CALL:5>K1ABC<QSO_DATE:8>20240101<TIME_ON:4>1200<BAND:3>20m<MODE:3>SSB<FREQ:9>14.250000<EOR>\n" +
		"<QSO_DATE:8>20240101<TIME_ON:4>1200<EOR>\n" // missing CALL

	im := newImporter(t, Config{Parallel: true})
	res, err := im.Import(context.Background(), doc)
	require.NoError(t, err)

	require.Equal(t, 1, res.Accepted)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, "K1ABC", res.QSOs[0].Call)
	assert.InDelta(t, 14.25, res.QSOs[0].FreqMHz, 1e-9)
}

func TestImportInvalidDateRejected(t *testing.T) {
	doc := "<CALL:5>K1ABC<QSO_DATE:6>202413<TIME_ON:4>1200<EOR>"

	im := newImporter(t, Config{})
	res, err := im.Import(context.Background(), doc)
	require.NoError(t, err)

	assert.Zero(t, res.Accepted)
	assert.Equal(t, 1, res.Rejected)
}

func TestImportEmptyDocument(t *testing.T) {
	im := newImporter(t, Config{Parallel: true})

	res, err := im.Import(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, res.QSOs)
	assert.Zero(t, res.Accepted)
	assert.Zero(t, res.Rejected)
}

func TestImportMixedValidityLargeParallel(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		if i%3 == 0 {
			// No TIME_ON: rejected.
			fmt.Fprintf(&sb, "<CALL:4>BAD%d<QSO_DATE:8>20240101<EOR>", i%10)
		} else {
			call := fmt.Sprintf("OK%d", i)
			fmt.Fprintf(&sb, "<CALL:%d>%s<QSO_DATE:8>20240101<TIME_ON:4>1200<EOR>", len(call), call)
		}
	}

	im := newImporter(t, Config{Parallel: true, Workers: 8, SerialThreshold: 10})
	res, err := im.Import(context.Background(), sb.String())
	require.NoError(t, err)

	assert.Equal(t, 200, res.Accepted)
	assert.Equal(t, 100, res.Rejected)

	accepted, rejected := im.Metrics()
	assert.EqualValues(t, 200, accepted)
	assert.EqualValues(t, 100, rejected)
}

func TestImportContractViolations(t *testing.T) {
	_, err := NewImporter(Config{Workers: -1}, nil)
	assert.Error(t, err)

	_, err = NewImporter(Config{SerialThreshold: -5}, nil)
	assert.Error(t, err)
}

func TestImportCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im := newImporter(t, Config{Parallel: true, SerialThreshold: 10})
	_, err := im.Import(ctx, buildDoc(200))
	assert.Error(t, err)
}

func TestImportWorkerCountLargerThanSpans(t *testing.T) {
	im := newImporter(t, Config{Parallel: true, Workers: 64, SerialThreshold: 2})

	res, err := im.Import(context.Background(), buildDoc(5))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Accepted)
}
