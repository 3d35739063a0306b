package awards

import (
	"context"
	"runtime"
	"sync"

	"github.com/qsopipe/qsopipe/pkg/models"
	"github.com/qsopipe/qsopipe/pkg/qsoerrors"
)

// DefaultChunkSize is the chunk size the parallel aggregator uses when
// none is configured, and the collection size below which it computes
// serially.
const DefaultChunkSize = 5000

// AggregatorConfig controls the chunked-parallel aggregator.
type AggregatorConfig struct {
	// ChunkSize is the number of QSOs per chunk. 0 means DefaultChunkSize.
	ChunkSize int
	// Workers is the worker-count hint. 0 means runtime.NumCPU.
	Workers int
}

// ComputeParallel splits qsos into fixed-size chunks, computes a
// partial summary per chunk independently, and merges the partials.
// Chunk summaries are immutable once produced; Merge is the only way
// they combine, so the result is identical to Compute over the whole
// collection at any worker count.
func ComputeParallel(ctx context.Context, qsos []models.QSO, cfg AggregatorConfig) (*Summary, error) {
	if cfg.ChunkSize < 0 {
		return nil, qsoerrors.Newf(qsoerrors.ErrorTypeContract, "chunk size must be non-negative, got %d", cfg.ChunkSize)
	}
	if cfg.Workers < 0 {
		return nil, qsoerrors.Newf(qsoerrors.ErrorTypeContract, "workers must be non-negative, got %d", cfg.Workers)
	}
	chunkSize := cfg.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	if len(qsos) < chunkSize {
		return Compute(qsos), nil
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	chunks := make(chan []models.QSO, workers)
	partials := make(chan *Summary, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range chunks {
				partials <- Compute(chunk)
			}
		}()
	}

	go func() {
		defer close(chunks)
		for start := 0; start < len(qsos); start += chunkSize {
			end := min(start+chunkSize, len(qsos))
			select {
			case chunks <- qsos[start:end]:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(partials)
	}()

	// Fan-in. Merge order varies run to run; associativity and
	// commutativity make that irrelevant.
	out := NewSummary()
	for p := range partials {
		out = Merge(out, p)
	}

	if err := ctx.Err(); err != nil {
		return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeData, "awards aggregation canceled")
	}
	return out, nil
}
