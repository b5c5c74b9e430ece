package concurrency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultPoolOptions(t *testing.T) {
	opts := DefaultPoolOptions()
	if opts.MaxWorkers != 3 {
		t.Errorf("Expected MaxWorkers to be 3, got %d", opts.MaxWorkers)
	}
}

func TestForEachEmpty(t *testing.T) {
	errs := ForEach(context.Background(), []int{}, DefaultPoolOptions(), func(ctx context.Context, index int, item int) error {
		t.Error("itemFunc should not run for empty input")
		return nil
	})
	if errs != nil {
		t.Errorf("Expected nil errors for empty input, got %v", errs)
	}
}

func TestForEachRunsAllItems(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}
	results := make([]int, len(input))

	errs := ForEach(context.Background(), input, DefaultPoolOptions(), func(ctx context.Context, index int, item int) error {
		results[index] = item * 2
		return nil
	})
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	for i, item := range input {
		if results[i] != item*2 {
			t.Errorf("Expected results[%d] to be %d, got %d", i, item*2, results[i])
		}
	}
}

func TestForEachCollectsErrors(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}
	errs := ForEach(context.Background(), input, DefaultPoolOptions(), func(ctx context.Context, index int, item int) error {
		if item%2 == 0 {
			return errors.New("even number error")
		}
		return nil
	})
	if len(errs) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(errs))
	}
}

func TestForEachInvalidWorkers(t *testing.T) {
	var count atomic.Int32
	errs := ForEach(context.Background(), []int{1, 2, 3}, PoolOptions{MaxWorkers: -1}, func(ctx context.Context, index int, item int) error {
		count.Add(1)
		return nil
	})
	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
	if count.Load() != 3 {
		t.Errorf("Expected 3 items processed, got %d", count.Load())
	}
}

func TestForEachBoundsConcurrency(t *testing.T) {
	var mu sync.Mutex
	active, peak := 0, 0

	ForEach(context.Background(), make([]int, 20), PoolOptions{MaxWorkers: 3}, func(ctx context.Context, index int, item int) error {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
		return nil
	})

	if peak > 3 {
		t.Errorf("Expected at most 3 concurrent workers, observed %d", peak)
	}
}

func TestForEachCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count atomic.Int32
	errs := ForEach(ctx, []int{1, 2, 3, 4, 5}, DefaultPoolOptions(), func(ctx context.Context, index int, item int) error {
		count.Add(1)
		return nil
	})
	if len(errs) != 0 {
		t.Errorf("Expected no errors with canceled context, got %v", errs)
	}
	if count.Load() != 0 {
		t.Errorf("Expected no items processed with canceled context, got %d", count.Load())
	}
}
