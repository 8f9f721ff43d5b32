package migration

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchFailure pairs an item with the error its operation returned
type BatchFailure[T any] struct {
	Item T
	Err  error
}

// BatchOutcome collects per-item results. Every input item lands in exactly
// one of Succeeded or Failed, exactly once.
type BatchOutcome[T any] struct {
	Succeeded []T
	Failed    []BatchFailure[T]
}

// RunBatches splits items into consecutive batches of batchSize and applies
// fn to each item with at most concurrency in flight. A failing item never
// cancels its siblings or subsequent batches. Every item in a batch settles
// before the next batch starts. onBatch, when non-nil, fires once per
// completed batch with the number of items settled so far.
//
// The context is consulted only at batch boundaries: a cancelled context
// stops scheduling further batches and returns ctx.Err() alongside the
// outcome accumulated up to that point.
func RunBatches[T any](ctx context.Context, items []T, batchSize, concurrency int, fn func(context.Context, T) error, onBatch func(done, total int)) (BatchOutcome[T], error) {
	var outcome BatchOutcome[T]
	if batchSize <= 0 {
		batchSize = 10
	}
	if concurrency <= 0 {
		concurrency = 5
	}

	total := len(items)
	done := 0

	for start := 0; start < total; start += batchSize {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		end := start + batchSize
		if end > total {
			end = total
		}
		batch := items[start:end]

		var mu sync.Mutex
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(concurrency)
		for _, item := range batch {
			item := item
			group.Go(func() error {
				if err := fn(groupCtx, item); err != nil {
					mu.Lock()
					outcome.Failed = append(outcome.Failed, BatchFailure[T]{Item: item, Err: err})
					mu.Unlock()
					return nil
				}
				mu.Lock()
				outcome.Succeeded = append(outcome.Succeeded, item)
				mu.Unlock()
				return nil
			})
		}
		// Goroutines always return nil; Wait only synchronizes the barrier.
		_ = group.Wait()

		done += len(batch)
		if onBatch != nil {
			onBatch(done, total)
		}
	}

	return outcome, nil
}
