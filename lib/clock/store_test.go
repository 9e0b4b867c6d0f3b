// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/fakeclock/lib/testutil"
)

func TestStoreStartsAtZero(t *testing.T) {
	var store Store
	if got := store.NowMillis(); got != 0 {
		t.Fatalf("zero Store NowMillis() = %d, want 0", got)
	}
	if got := NewStore().NowMillis(); got != 0 {
		t.Fatalf("NewStore().NowMillis() = %d, want 0", got)
	}
}

func TestStoreSet(t *testing.T) {
	store := NewStore()
	for _, value := range []uint64{0, 1, 1000, 50, math.MaxUint64} {
		store.Set(value)
		if got := store.NowMillis(); got != value {
			t.Fatalf("after Set(%d) NowMillis() = %d", value, got)
		}
	}
}

func TestStoreSetThenAdvance(t *testing.T) {
	store := NewStore()
	for _, pair := range [][2]uint64{{0, 0}, {0, 500}, {1000, 500}, {1 << 50, 3}} {
		store.Set(pair[0])
		store.Advance(pair[1])
		if got := store.NowMillis(); got != pair[0]+pair[1] {
			t.Errorf("Set(%d); Advance(%d) -> %d, want %d", pair[0], pair[1], got, pair[0]+pair[1])
		}
	}
}

func TestStoreAdvanceWraps(t *testing.T) {
	store := NewStore()
	store.Set(math.MaxUint64)
	store.Advance(2)
	if got := store.NowMillis(); got != 1 {
		t.Fatalf("NowMillis() after wrapping = %d, want 1", got)
	}
}

func TestStoreAdvanceDuration(t *testing.T) {
	store := NewStore()
	store.AdvanceDuration(1500*time.Millisecond + 999*time.Microsecond)
	if got := store.NowMillis(); got != 1500 {
		t.Fatalf("NowMillis() = %d, want 1500", got)
	}
	store.AdvanceDuration(-time.Second)
	store.AdvanceDuration(0)
	if got := store.NowMillis(); got != 1500 {
		t.Fatalf("non-positive AdvanceDuration moved the counter to %d", got)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	first := NewStore()
	second := NewStore()
	first.Set(100)
	second.Advance(7)
	if first.NowMillis() != 100 || second.NowMillis() != 7 {
		t.Fatalf("stores leaked into each other: %d, %d", first.NowMillis(), second.NowMillis())
	}
}

func TestStoreConcurrentAdvance(t *testing.T) {
	store := NewStore()
	const goroutines = 10
	const perGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range perGoroutine {
				store.Advance(1)
				store.Now()
			}
		}()
	}
	wg.Wait()

	if got := store.NowMillis(); got != goroutines*perGoroutine {
		t.Fatalf("NowMillis() = %d, want %d", got, goroutines*perGoroutine)
	}
}

func TestContextRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := WithStore(context.Background(), store)

	got, ok := FromContext(ctx)
	if !ok || got != store {
		t.Fatalf("FromContext() = %p, %v; want %p, true", got, ok, store)
	}
	if MustFromContext(ctx) != store {
		t.Fatal("MustFromContext returned a different store")
	}

	MustFromContext(ctx).Set(300)
	if store.NowMillis() != 300 {
		t.Fatal("store recovered from context is not the attached store")
	}
}

func TestFromContextMissing(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("FromContext on a bare context should report false")
	}
	if _, ok := FromContext(WithStore(context.Background(), nil)); ok {
		t.Fatal("FromContext with a nil store should report false")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustFromContext on a bare context should panic")
		}
	}()
	MustFromContext(context.Background())
}

func TestRealClockAdvances(t *testing.T) {
	wall := Real()
	start := wall.Now()
	wall.Sleep(5 * time.Millisecond)
	if elapsed := start.Elapsed(wall); elapsed < 5*time.Millisecond {
		t.Fatalf("real clock elapsed %v after sleeping 5ms", elapsed)
	}
}

func TestRealTickerStopAndReset(t *testing.T) {
	wall := Real()
	ticker := wall.NewTicker(time.Millisecond)
	defer ticker.Stop()

	testutil.RequireReceive(t, ticker.C, 5*time.Second, "real ticker tick")

	ticker.Stop()
	ticker.Reset(time.Millisecond)
	testutil.RequireReceive(t, ticker.C, 5*time.Second, "real ticker tick after restart")
}

func TestRealClockImplementsClock(t *testing.T) {
	var _ Clock = Real()
}
