// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clocktest scopes a fake clock.Store to a single test.
//
// [Store] returns the store belonging to the calling test, creating it
// at millisecond zero on first use. Every helper in the test that calls
// Store(t) with the same t sees the same counter; other tests, including
// subtests and parallel tests, see their own. The store is released when
// the test finishes.
//
//	func TestLeaseExpiry(t *testing.T) {
//	    lease := NewLease(clocktest.Store(t), 30*time.Second)
//	    clocktest.Store(t).Advance(30_000)
//	    if !lease.Expired() { ... }
//	}
package clocktest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/fakeclock/lib/clock"
)

var stores sync.Map // testing.TB -> *clock.Store

// Store returns the clock.Store scoped to t, creating it on first
// access.
func Store(t testing.TB) *clock.Store {
	t.Helper()
	if existing, ok := stores.Load(t); ok {
		return existing.(*clock.Store)
	}
	store, loaded := stores.LoadOrStore(t, clock.NewStore())
	if !loaded {
		t.Cleanup(func() { stores.Delete(t) })
	}
	return store.(*clock.Store)
}

// Context returns a context carrying t's store, cancelled when the
// test finishes.
func Context(t testing.TB) context.Context {
	t.Helper()
	return clock.WithStore(t.Context(), Store(t))
}

// RequireElapsed fails the test unless start.Elapsed(source) equals
// want.
func RequireElapsed(t testing.TB, source clock.Source, start clock.Instant, want time.Duration) {
	t.Helper()
	if got := start.Elapsed(source); got != want {
		t.Fatalf("%v.Elapsed() = %v, want %v (now %d)", start, got, want, source.NowMillis())
	}
}
