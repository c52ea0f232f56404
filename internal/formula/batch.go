package formula

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"kformula/internal/config"
	"kformula/internal/logger"
	"kformula/internal/series"
)

// EvalFunc derives one output series from one input series. It must be a
// pure function of its inputs; the batch runner gives no ordering guarantee
// across keys.
type EvalFunc func(ctx context.Context, key string, s *series.Numeric) (*series.Numeric, error)

// EvalBatch evaluates fn over every input series concurrently. The kernel's
// operations are pure functions over immutable buffers, so the series axis
// is embarrassingly parallel; only the time axis inside Smooth and Zig is
// sequential. Concurrency is bounded by opts.BatchParallelism. The first
// failure cancels the remaining work and is returned as-is, preserving its
// error kind.
func EvalBatch(ctx context.Context, opts config.Options, inputs map[string]*series.Numeric, fn EvalFunc) (map[string]*series.Numeric, error) {
	opts = opts.Normalize()
	limit := opts.BatchParallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	jobID := uuid.NewString()
	logger.Debugf("batch %s: evaluating %d series (parallelism=%d)", jobID, len(inputs), limit)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	var mu sync.Mutex
	results := make(map[string]*series.Numeric, len(inputs))
	for key, in := range inputs {
		g.Go(func() error {
			out, err := fn(ctx, key, in)
			if err != nil {
				logger.Warnf("batch %s: series %s failed: %v", jobID, key, err)
				return err
			}
			mu.Lock()
			results[key] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debugf("batch %s: done", jobID)
	return results, nil
}
