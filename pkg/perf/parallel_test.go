// Package perf tests
package perf

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestMapPreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	results, err := Map(context.Background(), items, func(n int) (int, error) {
		return n * 10, nil
	}, 3)
	if err != nil {
		t.Fatalf("Map() error: %v", err)
	}

	for i, want := range []int{10, 20, 30, 40, 50} {
		if results[i] != want {
			t.Errorf("results[%d] = %d, want %d", i, results[i], want)
		}
	}
}

func TestMapEmpty(t *testing.T) {
	results, err := Map(context.Background(), nil, func(n int) (int, error) {
		return n, nil
	}, 2)
	if err != nil {
		t.Fatalf("Map() error: %v", err)
	}
	if results != nil {
		t.Errorf("Expected nil results for empty input")
	}
}

func TestMapError(t *testing.T) {
	items := []int{1, 2, 3}

	_, err := Map(context.Background(), items, func(n int) (int, error) {
		if n == 2 {
			return 0, fmt.Errorf("boom")
		}
		return n, nil
	}, 2)
	if err == nil {
		t.Fatal("Expected error from Map")
	}
}

func TestMapCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, []int{1, 2, 3}, func(n int) (int, error) {
		return n, nil
	}, 2)
	if err == nil {
		t.Fatal("Expected error from cancelled context")
	}
}

func TestMapErrorNotMaskedByCancellation(t *testing.T) {
	// The failing worker cancels the shared context; the returned error
	// must still be the worker's, never context.Canceled.
	errBoom := errors.New("boom")
	items := make([]int, 64)
	for i := range items {
		items[i] = i
	}

	for run := 0; run < 20; run++ {
		_, err := Map(context.Background(), items, func(n int) (int, error) {
			if n == 0 {
				return 0, errBoom
			}
			return n, nil
		}, 8)
		if !errors.Is(err, errBoom) {
			t.Fatalf("Map() error = %v, want wrapped %v", err, errBoom)
		}
	}
}

func TestEach(t *testing.T) {
	var count atomic.Int32

	err := Each(context.Background(), []int{1, 2, 3, 4}, func(n int) error {
		count.Add(1)
		return nil
	}, 2)
	if err != nil {
		t.Fatalf("Each() error: %v", err)
	}
	if count.Load() != 4 {
		t.Errorf("count = %d, want 4", count.Load())
	}
}

func TestEachError(t *testing.T) {
	err := Each(context.Background(), []int{1, 2, 3}, func(n int) error {
		if n == 3 {
			return fmt.Errorf("boom")
		}
		return nil
	}, 1)
	if err == nil {
		t.Fatal("Expected error from Each")
	}
}

func TestEachErrorNotMaskedByCancellation(t *testing.T) {
	errBoom := errors.New("boom")

	for run := 0; run < 20; run++ {
		err := Each(context.Background(), []int{0, 1, 2, 3, 4, 5, 6, 7}, func(n int) error {
			if n == 0 {
				return errBoom
			}
			return nil
		}, 4)
		if !errors.Is(err, errBoom) {
			t.Fatalf("Each() error = %v, want %v", err, errBoom)
		}
	}
}
