// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Store holds the fake current time for one execution context: a
// counter of whole milliseconds, zero until set. It also schedules
// timers against that counter (see timer.go).
//
// The zero value is ready to use. A Store is safe for concurrent use,
// but tests that want isolation should each hold their own.
//
// AfterFunc callbacks run synchronously inside Set and Advance. Do not
// call Set, Advance or Sleep on the same Store from a callback.
type Store struct {
	mu             sync.Mutex
	millis         uint64
	waiters        []*waiter
	sequence       uint64
	passes         uint64
	waitersChanged *sync.Cond
}

// NewStore returns a Store at millisecond zero.
func NewStore() *Store {
	return &Store{}
}

// NowMillis returns the current counter value.
func (s *Store) NowMillis() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.millis
}

// Now captures the current counter as an Instant.
func (s *Store) Now() Instant {
	return Now(s)
}

// Set overwrites the counter. Moving backward is allowed; callers own
// any ordering assumptions. Timers whose deadline is at or before the
// new value fire before Set returns.
func (s *Store) Set(millis uint64) {
	s.mu.Lock()
	s.millis = millis
	s.mu.Unlock()

	s.fireExpired(millis)
}

// Advance adds millis to the counter, wrapping at 2^64, and fires the
// timers that became due.
func (s *Store) Advance(millis uint64) {
	s.mu.Lock()
	s.millis += millis
	target := s.millis
	s.mu.Unlock()

	s.fireExpired(target)
}

// AdvanceDuration advances by d truncated to whole milliseconds.
// Non-positive durations are ignored.
func (s *Store) AdvanceDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	s.Advance(durationToMillis(d))
}

// condLocked returns the condition variable signalled whenever the
// waiter list grows. Must be called with s.mu held.
func (s *Store) condLocked() *sync.Cond {
	if s.waitersChanged == nil {
		s.waitersChanged = sync.NewCond(&s.mu)
	}
	return s.waitersChanged
}

var _ Clock = (*Store)(nil)
