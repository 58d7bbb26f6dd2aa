// Package perf provides concurrency utilities for fanning fit work out
// across independent inputs. The fitter itself is sequential; parallelism
// only ever happens across separate dumps.
package perf

import (
	"context"
	"fmt"
	"sync"
)

// Map applies a function to each element of a slice concurrently,
// preserving input order in the results. The first error cancels the
// remaining work.
func Map[T, R any](ctx context.Context, items []T, fn func(T) (R, error), concurrency int) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]R, len(items))
	errCh := make(chan error, len(items))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			result, err := fn(it)
			if err != nil {
				// errCh is buffered to len(items), so this never blocks.
				errCh <- fmt.Errorf("error at index %d: %w", idx, err)
				cancel()
				return
			}

			select {
			case <-ctx.Done():
				return
			default:
			}

			results[idx] = result
		}(i, item)
	}

	wg.Wait()
	close(errCh)

	// A failing worker cancels the context itself; report its error, not
	// the cancellation it caused.
	if err := <-errCh; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Each applies a function to each element of a slice concurrently.
func Each[T any](ctx context.Context, items []T, fn func(T) error, concurrency int) error {
	if len(items) == 0 {
		return nil
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(items))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup

	for _, item := range items {
		wg.Add(1)
		go func(it T) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			if err := fn(it); err != nil {
				errCh <- err
				cancel()
			}
		}(item)
	}

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return err
	}
	return ctx.Err()
}
