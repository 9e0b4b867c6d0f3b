// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clocktest

import (
	"testing"
	"time"

	"github.com/bureau-foundation/fakeclock/lib/clock"
)

func TestStoreIsStablePerTest(t *testing.T) {
	first := Store(t)
	first.Set(1000)

	if second := Store(t); second != first {
		t.Fatal("Store(t) returned a different store on second access")
	}
	if got := Store(t).NowMillis(); got != 1000 {
		t.Fatalf("NowMillis() = %d, want 1000", got)
	}
}

func TestStoreStartsAtZero(t *testing.T) {
	if got := Store(t).NowMillis(); got != 0 {
		t.Fatalf("fresh test store NowMillis() = %d, want 0", got)
	}
}

func TestSubtestsAreIsolated(t *testing.T) {
	Store(t).Set(500)

	for _, millis := range []uint64{10, 20} {
		t.Run("", func(t *testing.T) {
			t.Parallel()
			if got := Store(t).NowMillis(); got != 0 {
				t.Fatalf("subtest store starts at %d, want 0", got)
			}
			Store(t).Advance(millis)
			if got := Store(t).NowMillis(); got != millis {
				t.Fatalf("subtest NowMillis() = %d, want %d", got, millis)
			}
		})
	}

	if got := Store(t).NowMillis(); got != 500 {
		t.Fatalf("parent store changed to %d by subtests", got)
	}
}

func TestStoreReleasedAfterTest(t *testing.T) {
	var inner *clock.Store
	t.Run("inner", func(t *testing.T) {
		inner = Store(t)
	})
	if _, ok := stores.Load(t); ok {
		t.Fatal("parent test has a store it never asked for")
	}
	stores.Range(func(_, value any) bool {
		if value.(*clock.Store) == inner {
			t.Fatal("subtest store was not released at cleanup")
		}
		return true
	})
}

func TestContextCarriesStore(t *testing.T) {
	ctx := Context(t)
	clock.MustFromContext(ctx).Set(250)
	if got := Store(t).NowMillis(); got != 250 {
		t.Fatalf("store via context not shared with Store(t): %d", got)
	}
}

func TestRequireElapsed(t *testing.T) {
	store := Store(t)
	store.Set(1000)
	start := store.Now()
	store.Advance(500)
	RequireElapsed(t, store, start, 500*time.Millisecond)

	store.Set(2000)
	RequireElapsed(t, store, start, time.Second)
}
