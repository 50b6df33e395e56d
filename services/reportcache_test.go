package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestReportCacheServesFreshEntry(t *testing.T) {
	cache := NewReportCache()
	calls := 0
	fetch := func(context.Context) (any, error) {
		calls++
		return "rows", nil
	}

	for i := 0; i < 3; i++ {
		data, err := cache.Get(context.Background(), "report:game-performance", time.Minute, fetch)
		if err != nil {
			t.Fatalf("get should succeed: %v", err)
		}
		if data != "rows" {
			t.Errorf("unexpected data: %v", data)
		}
	}
	if calls != 1 {
		t.Errorf("fresh entry should be fetched once, got %d fetches", calls)
	}
}

func TestReportCacheZeroMaxAgeAlwaysRefetches(t *testing.T) {
	cache := NewReportCache()
	calls := 0
	fetch := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	cache.Get(context.Background(), "k", time.Minute, fetch)
	data, err := cache.Get(context.Background(), "k", 0, fetch)
	if err != nil {
		t.Fatalf("refetch should succeed: %v", err)
	}
	if data != 2 {
		t.Errorf("maxAge 0 should bypass the cached value, got %v", data)
	}
	if calls != 2 {
		t.Errorf("expected 2 fetches, got %d", calls)
	}
}

func TestReportCacheNeverRetainsErrors(t *testing.T) {
	cache := NewReportCache()
	calls := 0
	fetch := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		return "rows", nil
	}

	if _, err := cache.Get(context.Background(), "k", time.Minute, fetch); err == nil {
		t.Fatal("first get should surface the fetch error")
	}
	if cache.Len() != 0 {
		t.Error("failed fetch should not be retained")
	}

	data, err := cache.Get(context.Background(), "k", time.Minute, fetch)
	if err != nil {
		t.Fatalf("second get should retry and succeed: %v", err)
	}
	if data != "rows" {
		t.Errorf("unexpected data: %v", data)
	}
}

func TestReportCacheSingleFlight(t *testing.T) {
	cache := NewReportCache()
	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "rows", nil
	}

	const waiters = 8
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := cache.Get(context.Background(), "k", time.Minute, fetch)
			if err != nil || data != "rows" {
				t.Errorf("waiter got (%v, %v)", data, err)
			}
		}()
	}

	// Give the goroutines time to pile onto the in-flight entry.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("concurrent gets should share one fetch, got %d", n)
	}
}

func TestReportCacheWaiterHonorsContext(t *testing.T) {
	cache := NewReportCache()
	release := make(chan struct{})
	defer close(release)
	fetch := func(context.Context) (any, error) {
		<-release
		return "rows", nil
	}

	go cache.Get(context.Background(), "k", time.Minute, fetch)
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cache.Get(ctx, "k", time.Minute, fetch); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled waiter should return context error, got %v", err)
	}
}

func TestReportCacheInvalidateByPrefix(t *testing.T) {
	cache := NewReportCache()
	fetch := func(context.Context) (any, error) { return "rows", nil }

	cache.Get(context.Background(), "report:game-performance:a", time.Minute, fetch)
	cache.Get(context.Background(), "report:game-performance:b", time.Minute, fetch)
	cache.Get(context.Background(), "report:developer-success:a", time.Minute, fetch)

	dropped := cache.Invalidate("report:game-performance")
	if dropped != 2 {
		t.Errorf("should drop both matching entries, dropped %d", dropped)
	}
	if cache.Len() != 1 {
		t.Errorf("unrelated entry should survive, %d entries left", cache.Len())
	}

	if dropped := cache.Invalidate("report:nothing"); dropped != 0 {
		t.Errorf("unmatched prefix should drop nothing, dropped %d", dropped)
	}
}

func TestReportCacheStaleEntryRefetched(t *testing.T) {
	cache := NewReportCache()
	calls := 0
	fetch := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	cache.Get(context.Background(), "k", time.Minute, fetch)
	time.Sleep(5 * time.Millisecond)

	data, err := cache.Get(context.Background(), "k", time.Millisecond, fetch)
	if err != nil {
		t.Fatalf("get should succeed: %v", err)
	}
	if data != 2 {
		t.Errorf("stale entry should be refetched, got %v", data)
	}
}
