package concurrency

import (
	"context"
	"sync"
)

// PoolOptions configures a bounded worker pool.
type PoolOptions struct {
	// MaxWorkers caps how many items are processed at once.
	MaxWorkers int
}

// DefaultPoolOptions matches the segment download bound: each finished
// worker pulls the next queued item, so at most three fetches are in
// flight against the media origin.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{MaxWorkers: 3}
}

// ForEach runs itemFunc for every item using a fixed set of workers fed
// from a FIFO queue. Item errors are collected and returned; a cancelled
// context stops workers from picking up further items but does not
// interrupt items already running.
func ForEach[T any](
	ctx context.Context,
	items []T,
	opts PoolOptions,
	itemFunc func(ctx context.Context, index int, item T) error,
) []error {
	if len(items) == 0 {
		return nil
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = DefaultPoolOptions().MaxWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int, len(items))
	errCh := make(chan error, len(items))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if err := itemFunc(ctx, i, items[i]); err != nil {
					errCh <- err
				}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errs
}
