// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Source reports the current time as a millisecond counter. It is the
// minimum a caller needs to capture an [Instant] or measure elapsed
// time.
type Source interface {
	// NowMillis returns the current counter value in milliseconds.
	NowMillis() uint64
}

// Clock abstracts millisecond time operations for testability. Tests
// inject a *Store; production code injects Real().
type Clock interface {
	Source

	// Now captures the current time as an Instant.
	Now() Instant

	// After returns a channel that receives the Instant at which
	// duration d has elapsed. If d truncates to zero milliseconds or
	// less, the channel receives immediately.
	After(d time.Duration) <-chan Instant

	// AfterFunc calls f once duration d has elapsed. The returned
	// Timer cancels or reschedules the call. If d truncates to zero
	// milliseconds or less, f is called before AfterFunc returns
	// (fake) or in a new goroutine (real).
	AfterFunc(d time.Duration, f func()) *Timer

	// NewTicker returns a Ticker that delivers the current Instant on
	// its C channel every d. Panics if d truncates to zero
	// milliseconds or less.
	NewTicker(d time.Duration) *Ticker

	// Sleep blocks the calling goroutine until d has elapsed.
	Sleep(d time.Duration)
}

// Ticker delivers periodic ticks. Read them from C and call Stop when
// the Ticker is no longer needed.
//
// C has capacity 1, matching time.Ticker. If the consumer falls
// behind, ticks are dropped rather than queued.
type Ticker struct {
	C <-chan Instant

	stopFunc  func()
	resetFunc func(time.Duration)
}

// Stop turns off the ticker. No more ticks are sent on C after Stop
// returns. Stop does not close C.
func (t *Ticker) Stop() { t.stopFunc() }

// Reset changes the interval to d and restarts the tick cycle: the
// next tick arrives d after the current time. A stopped Ticker starts
// ticking again.
func (t *Ticker) Reset(d time.Duration) { t.resetFunc(d) }

// Timer represents a scheduled AfterFunc call.
type Timer struct {
	stopFunc  func() bool
	resetFunc func(time.Duration) bool
}

// Stop prevents the Timer from firing. Returns true if the call stops
// the timer, false if the timer has already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Reset reschedules the timer to fire d after the current time.
// Returns true if the timer was pending before the reset.
func (t *Timer) Reset(d time.Duration) bool { return t.resetFunc(d) }
