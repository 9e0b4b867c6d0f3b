// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides a deterministic, manually-controlled
// millisecond clock for tests of time-dependent logic.
//
// Time lives in a [Store]: a counter of whole milliseconds that starts
// at zero and moves only when the test calls [Store.Set] or
// [Store.Advance]. An [Instant] is a frozen reading of that counter.
// Instants compare by value and combine with time.Duration:
//
//	store := clock.NewStore()
//	store.Set(1000)
//	start := store.Now()
//	store.Advance(500)
//	start.Elapsed(store)           // 500ms
//	deadline := start.Add(2 * time.Second)
//	store.Now().Before(deadline)   // true
//
// # Execution Context
//
// Go has no goroutine-local storage, so a Store is an explicit value.
// Code under test accepts a [Clock] (or a [Source]) the same way it
// would accept any other dependency. When threading the store through
// every call is impractical, [WithStore] attaches it to a
// context.Context and [FromContext] recovers it. Tests that want a
// store scoped to the test itself use the clocktest subpackage.
//
// # Arithmetic and Overflow
//
// The counter and all Instant arithmetic are uint64 milliseconds and
// wrap modulo 2^64. Nothing is checked on the fast path: subtracting
// in the wrong direction does not fail. Differences are converted to
// time.Duration by reinterpreting the wrapped uint64 as an int64
// millisecond count, so a difference that "went backward" by k
// milliseconds reads as -k milliseconds:
//
//	store.Set(100)
//	later := store.Now()
//	store.Set(50)
//	later.Elapsed(store) // -50ms
//
// The Checked variants ([Instant.CheckedSub], [Instant.CheckedElapsed],
// and friends) return [ErrUnderflow] instead. [Instant.SaturatingSub]
// clamps at zero.
//
// time.Duration counts nanoseconds in an int64, so it can hold at most
// about 292 years (9.2e12 milliseconds). A difference larger than that
// does not fit and comes out as a wrong Duration. [Instant.MillisSince]
// returns the raw uint64 millisecond difference, exact over the whole
// counter range.
//
// Durations are converted to milliseconds by truncation toward zero:
// 1500*time.Microsecond adds 1ms, 500*time.Microsecond adds nothing.
//
// # Timers
//
// A Store also schedules timers against its counter. [Store.After],
// [Store.AfterFunc], [Store.NewTicker] and [Store.Sleep] register
// deadlines that fire when Set or Advance moves the counter to or past
// them, in deadline order. A ticker fires at most once per Set or
// Advance, however many intervals it spans.
// Use [Store.WaitForTimers] to block until a goroutine has registered
// its timer before moving time.
package clock
