// Package pipeline implements the chunked-parallel ADIF import engine.
//
// A document is split into per-record spans, the spans are fanned out
// to a worker pool running the scanner and normalizer, and the decoded
// records are fanned back in. Each worker is a pure function over its
// spans with no shared mutable state, so the collected multiset of
// records is identical for any worker count and any completion order.
// Small documents are processed serially; parallel dispatch failure
// falls back to a full serial pass over the same document.
package pipeline

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/qsopipe/qsopipe/pkg/adif"
	"github.com/qsopipe/qsopipe/pkg/models"
	"github.com/qsopipe/qsopipe/pkg/qsoerrors"
)

// DefaultSerialThreshold is the record count below which parallel
// dispatch is not worth its overhead.
const DefaultSerialThreshold = 100

// Config controls one importer instance. The parallel/serial choice is
// explicit configuration handed in at construction, never global state.
type Config struct {
	// Workers is the worker-count hint. 0 means runtime.NumCPU.
	Workers int
	// SerialThreshold is the record count below which the import runs
	// serially. 0 means DefaultSerialThreshold.
	SerialThreshold int
	// Parallel disables the worker pool entirely when false; the
	// importer then always runs the serial path.
	Parallel bool
}

// Result is the outcome of one import.
type Result struct {
	// QSOs is the multiset of accepted records. Its order is not part
	// of the contract.
	QSOs []models.QSO
	// Accepted and Rejected count the record spans that decoded or
	// were dropped. Rejections are a normal outcome, never an error.
	Accepted int
	Rejected int
	// SerialFallback is true when parallel dispatch failed and the
	// result came from the serial path instead.
	SerialFallback bool
}

// Importer decodes ADIF documents into QSO records.
type Importer struct {
	cfg    Config
	logger *zap.Logger

	accepted atomic.Int64
	rejected atomic.Int64
}

// NewImporter validates cfg and builds an importer. Negative worker
// counts or thresholds are caller contract violations.
func NewImporter(cfg Config, logger *zap.Logger) (*Importer, error) {
	if cfg.Workers < 0 {
		return nil, qsoerrors.Newf(qsoerrors.ErrorTypeContract, "workers must be non-negative, got %d", cfg.Workers)
	}
	if cfg.SerialThreshold < 0 {
		return nil, qsoerrors.Newf(qsoerrors.ErrorTypeContract, "serial threshold must be non-negative, got %d", cfg.SerialThreshold)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.SerialThreshold == 0 {
		cfg.SerialThreshold = DefaultSerialThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{cfg: cfg, logger: logger}, nil
}

// Import decodes doc and returns the accepted records. The result is
// equal, as a multiset, to what a serial pass over doc produces,
// regardless of worker count or scheduling.
func (im *Importer) Import(ctx context.Context, doc string) (*Result, error) {
	spans := slices.Collect(adif.Records(doc))

	if !im.cfg.Parallel || len(spans) < im.cfg.SerialThreshold {
		res, err := im.importSerial(ctx, spans)
		if err != nil {
			return nil, err
		}
		im.observe(res)
		return res, nil
	}

	res, err := im.importParallel(ctx, spans)
	if err != nil {
		if ctx.Err() != nil {
			return nil, qsoerrors.Wrap(ctx.Err(), qsoerrors.ErrorTypeData, "import canceled")
		}
		// Dispatch failed; the serial path over the same spans yields
		// a complete, correct result, just slower.
		im.logger.Warn("parallel import failed, falling back to serial", zap.Error(err))
		res, err = im.importSerial(ctx, spans)
		if err != nil {
			return nil, err
		}
		res.SerialFallback = true
	}
	im.observe(res)
	return res, nil
}

// Metrics returns the accepted and rejected record totals across all
// imports run on this importer.
func (im *Importer) Metrics() (accepted, rejected int64) {
	return im.accepted.Load(), im.rejected.Load()
}

func (im *Importer) observe(res *Result) {
	im.accepted.Add(int64(res.Accepted))
	im.rejected.Add(int64(res.Rejected))
	im.logger.Info("import complete",
		zap.Int("accepted", res.Accepted),
		zap.Int("rejected", res.Rejected),
		zap.Bool("serial_fallback", res.SerialFallback))
}

func (im *Importer) importSerial(ctx context.Context, spans []string) (*Result, error) {
	res := &Result{QSOs: make([]models.QSO, 0, len(spans))}
	for i, span := range spans {
		if i%1024 == 0 && ctx.Err() != nil {
			return nil, qsoerrors.Wrap(ctx.Err(), qsoerrors.ErrorTypeData, "import canceled")
		}
		if q, ok := adif.DecodeRecord(span); ok {
			res.QSOs = append(res.QSOs, q)
			res.Accepted++
		} else {
			res.Rejected++
		}
	}
	return res, nil
}

// partial holds one worker's output. Workers touch nothing shared;
// fan-in is the only synchronization point, and combining partials is
// plain concatenation, so completion order cannot affect the multiset.
type partial struct {
	qsos     []models.QSO
	rejected int
	err      error
}

func (im *Importer) importParallel(ctx context.Context, spans []string) (*Result, error) {
	workers := im.cfg.Workers
	if workers > len(spans) {
		workers = len(spans)
	}

	spanCh := make(chan string, workers*2)
	partials := make(chan partial, workers)

	// Closed on return so the feeder can never block on a pool whose
	// workers have all exited.
	done := make(chan struct{})
	defer close(done)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partials <- im.decodeSpans(ctx, spanCh)
		}()
	}

	go func() {
		defer close(spanCh)
		for _, span := range spans {
			select {
			case spanCh <- span:
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(partials)
	}()

	res := &Result{QSOs: make([]models.QSO, 0, len(spans))}
	for p := range partials {
		if p.err != nil {
			// Drain remaining workers before reporting, so the serial
			// fallback does not race a half-dead pool.
			for range partials {
			}
			return nil, p.err
		}
		res.QSOs = append(res.QSOs, p.qsos...)
		res.Accepted += len(p.qsos)
		res.Rejected += p.rejected
	}

	if err := ctx.Err(); err != nil {
		return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeData, "import canceled")
	}
	return res, nil
}

// decodeSpans is the worker body: a pure function from spans to a
// partial. A panic while decoding one chunk is captured as the
// partial's error instead of killing the batch.
func (im *Importer) decodeSpans(ctx context.Context, spanCh <-chan string) (p partial) {
	defer func() {
		if r := recover(); r != nil {
			p.err = qsoerrors.Newf(qsoerrors.ErrorTypeInternal, "decode worker panic: %v", r)
		}
	}()

	for span := range spanCh {
		if ctx.Err() != nil {
			p.err = ctx.Err()
			return p
		}
		if q, ok := adif.DecodeRecord(span); ok {
			p.qsos = append(p.qsos, q)
		} else {
			p.rejected++
		}
	}
	return p
}
