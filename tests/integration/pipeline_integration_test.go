// Package integration exercises the full import-store-export-awards path.
package integration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/qsopipe/qsopipe/internal/pipeline"
	"github.com/qsopipe/qsopipe/pkg/adif"
	"github.com/qsopipe/qsopipe/pkg/adifio"
	"github.com/qsopipe/qsopipe/pkg/awards"
	"github.com/qsopipe/qsopipe/pkg/models"
	"github.com/qsopipe/qsopipe/pkg/storage"
	"github.com/qsopipe/qsopipe/pkg/testutil"
)

type PipelineSuite struct {
	suite.Suite
	store *storage.Store
}

func (s *PipelineSuite) SetupTest() {
	store, err := storage.Open(filepath.Join(s.T().TempDir(), "log.db"), testutil.TestLogger(s.T()))
	s.Require().NoError(err)
	s.store = store
}

func (s *PipelineSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *PipelineSuite) TestImportStoreExport() {
	ctx, cancel := testutil.TestContext(s.T())
	defer cancel()

	const n = 250
	doc := testutil.GenerateADIF(n)

	importer, err := pipeline.NewImporter(pipeline.Config{Parallel: true, Workers: 4}, testutil.TestLogger(s.T()))
	s.Require().NoError(err)

	res, err := importer.Import(ctx, doc)
	s.Require().NoError(err)
	s.Equal(n, res.Accepted)
	s.Equal(0, res.Rejected)

	inserted, err := s.store.InsertBatch(ctx, res.QSOs)
	s.Require().NoError(err)
	s.Equal(n, inserted)

	stored, err := s.store.Search(ctx, storage.Filter{})
	s.Require().NoError(err)
	s.Len(stored, n)

	// Band filter narrows to the QSOs on that band only.
	cw, err := s.store.Search(ctx, storage.Filter{Band: "40M"})
	s.Require().NoError(err)
	s.Equal(n/5, len(cw))

	// Export and re-import yields the same QSO set.
	out := filepath.Join(s.T().TempDir(), "export.adi.gz")
	wc, err := adifio.Create(out)
	s.Require().NoError(err)
	_, err = adif.WriteTo(wc, func(yield func(models.QSO) bool) {
		for _, q := range stored {
			if !yield(q) {
				return
			}
		}
	})
	s.Require().NoError(err)
	s.Require().NoError(wc.Close())

	doc2, err := adifio.ReadAll(out)
	s.Require().NoError(err)
	res2, err := importer.Import(ctx, doc2)
	s.Require().NoError(err)
	s.Equal(n, res2.Accepted)
}

func (s *PipelineSuite) TestAwardsOverStoredLog() {
	ctx, cancel := testutil.TestContext(s.T())
	defer cancel()

	qsos := testutil.GenerateQSOs(120)
	_, err := s.store.InsertBatch(ctx, qsos)
	s.Require().NoError(err)

	stored, err := s.store.Search(ctx, storage.Filter{})
	s.Require().NoError(err)

	serial := awards.Compute(stored).Report()
	parallel, err := awards.ComputeParallel(ctx, stored, awards.AggregatorConfig{ChunkSize: 16, Workers: 4})
	s.Require().NoError(err)
	s.Equal(serial, parallel.Report())

	s.Equal(120, serial.TotalQSOs)
	s.Equal(7, serial.UniqueCountries)
	s.Equal(5, serial.UniqueBands)
	s.Equal(3, serial.UniqueModes)
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func TestRejectedRecordsAreCountedNotFatal(t *testing.T) {
	doc := testutil.GenerateADIF(10) +
		"<QSO_DATE:8>20240601<TIME_ON:4>1200<EOR>\n" + // no callsign
		"<CALL:5>K9XYZ<QSO_DATE:8>20241341<TIME_ON:4>1200<EOR>\n" // month 13

	importer, err := pipeline.NewImporter(pipeline.Config{}, testutil.TestLogger(t))
	require.NoError(t, err)

	ctx, cancel := testutil.TestContext(t)
	defer cancel()
	res, err := importer.Import(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 10, res.Accepted)
	require.Equal(t, 2, res.Rejected)
}
