package classifier

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/etpscan/internal/model"
)

const defaultChunkSize = 256

// BatchOptions tunes ClassifyAll.
type BatchOptions struct {
	// OnProgress is called after each chunk with the number of records it covered.
	// It may be called from several goroutines at once.
	OnProgress func(done int)
	Workers    int
	ChunkSize  int
}

// ClassifyAll classifies records in parallel. Verdicts come back in input order.
// It stops early and returns the context error when ctx is canceled.
func (c *Classifier) ClassifyAll(ctx context.Context, records []model.InstrumentRecord, opts BatchOptions) ([]model.Verdict, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}

	verdicts := make([]model.Verdict, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(records); start += chunk {
		end := min(start+chunk, len(records))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				verdicts[i] = c.Classify(records[i].Name, records[i].Flags)
			}
			if opts.OnProgress != nil {
				opts.OnProgress(end - start)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}
