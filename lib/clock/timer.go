// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"cmp"
	"slices"
	"time"
)

// waiter is a pending After, AfterFunc, NewTicker or Sleep
// registration.
type waiter struct {
	// deadline is the counter value at which the waiter fires.
	deadline uint64

	// sequence breaks deadline ties in registration order.
	sequence uint64

	// channel receives the firing Instant for After, Sleep and ticker
	// waiters. Nil for AfterFunc waiters.
	channel chan Instant

	// callback is invoked synchronously for AfterFunc waiters.
	callback func()

	// interval is non-zero for ticker waiters. After firing, the
	// waiter is rescheduled at the first deadline+k*interval past the
	// firing target.
	interval uint64

	// pass is the firing pass that last fired this ticker, so a
	// ticker fires at most once per Set or Advance.
	pass uint64

	stopped bool
	fired   bool

	// queued is true while the waiter is in Store.waiters. Stopped
	// waiters stay queued until the next firing pass drops them.
	queued bool
}

// After returns a channel that receives the Instant at which the
// counter reached now+d. The channel has capacity 1 and is never
// closed.
//
// The deadline is now+d modulo 2^64: a deadline that wraps past the
// top of the counter is already behind now and fires on the next Set
// or Advance.
func (s *Store) After(d time.Duration) <-chan Instant {
	s.mu.Lock()
	defer s.mu.Unlock()

	channel := make(chan Instant, 1)
	millis := durationToMillis(d)
	if d <= 0 || millis == 0 {
		channel <- Instant{millis: s.millis}
		return channel
	}

	s.addWaiterLocked(&waiter{
		deadline: s.millis + millis,
		channel:  channel,
	})
	return channel
}

// AfterFunc schedules f for when the counter reaches now+d. If d
// truncates to zero milliseconds or less, f runs before AfterFunc
// returns; the returned Timer is then already fired and Reset re-arms
// it.
func (s *Store) AfterFunc(d time.Duration, f func()) *Timer {
	millis := durationToMillis(d)
	entry := &waiter{callback: f}
	if d <= 0 || millis == 0 {
		entry.fired = true
		f()
		return s.timerFor(entry)
	}

	s.mu.Lock()
	entry.deadline = s.millis + millis
	s.addWaiterLocked(entry)
	s.mu.Unlock()

	return s.timerFor(entry)
}

// timerFor wraps an AfterFunc waiter in a Timer. Reset to a deadline
// that is already due fires before Reset returns, the same as
// AfterFunc with a zero duration.
func (s *Store) timerFor(entry *waiter) *Timer {
	return &Timer{
		stopFunc: func() bool {
			s.mu.Lock()
			defer s.mu.Unlock()
			if entry.stopped || entry.fired {
				return false
			}
			entry.stopped = true
			return true
		},
		resetFunc: func(d time.Duration) bool {
			s.mu.Lock()
			wasPending := !entry.stopped && !entry.fired
			now := s.millis
			millis := durationToMillis(max(d, 0))
			entry.deadline = now + millis
			entry.stopped = false
			entry.fired = false
			s.requeueLocked(entry)
			s.mu.Unlock()

			if millis == 0 {
				s.fireExpired(now)
			}
			return wasPending
		},
	}
}

// NewTicker returns a Ticker whose channel receives the counter's
// Instant each time Set or Advance carries it past the next multiple
// of d. A single Set or Advance that spans several intervals delivers
// one tick and schedules the next one after the new counter value.
// Panics if d truncates to zero milliseconds or less.
func (s *Store) NewTicker(d time.Duration) *Ticker {
	interval := durationToMillis(d)
	if d <= 0 || interval == 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	channel := make(chan Instant, 1)
	entry := &waiter{
		deadline: s.millis + interval,
		channel:  channel,
		interval: interval,
	}
	s.addWaiterLocked(entry)

	return &Ticker{
		C: channel,
		stopFunc: func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			entry.stopped = true
		},
		resetFunc: func(d time.Duration) {
			interval := durationToMillis(d)
			if d <= 0 || interval == 0 {
				panic("clock: non-positive interval for Ticker.Reset")
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			entry.interval = interval
			entry.deadline = s.millis + interval
			entry.stopped = false
			s.requeueLocked(entry)
		},
	}
}

// Sleep blocks until the counter reaches now+d. Returns immediately if
// d truncates to zero milliseconds or less.
func (s *Store) Sleep(d time.Duration) {
	if d <= 0 || durationToMillis(d) == 0 {
		return
	}
	<-s.After(d)
}

// WaitForTimers blocks until at least n timers are pending. Use it to
// close the race between a goroutine registering a timer and the test
// moving time:
//
//	go func() { store.Sleep(5 * time.Second) }()
//	store.WaitForTimers(1)
//	store.Advance(5000)
func (s *Store) WaitForTimers(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cond := s.condLocked()
	for s.pendingCountLocked() < n {
		cond.Wait()
	}
}

// PendingCount returns the number of timers and tickers that have
// neither fired nor been stopped.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingCountLocked()
}

func (s *Store) pendingCountLocked() int {
	count := 0
	for _, entry := range s.waiters {
		if !entry.stopped {
			count++
		}
	}
	return count
}

// addWaiterLocked registers entry and wakes WaitForTimers. Must be
// called with s.mu held.
func (s *Store) addWaiterLocked(entry *waiter) {
	s.sequence++
	entry.sequence = s.sequence
	entry.queued = true
	s.waiters = append(s.waiters, entry)
	s.condLocked().Broadcast()
}

// requeueLocked gives a rescheduled entry a fresh sequence number,
// adding it back to the waiter list if a firing pass already dropped
// it. Must be called with s.mu held.
func (s *Store) requeueLocked(entry *waiter) {
	if !entry.queued {
		s.addWaiterLocked(entry)
		return
	}
	s.sequence++
	entry.sequence = s.sequence
	s.condLocked().Broadcast()
}

// fireExpired fires every waiter due at target, in deadline order.
// Callbacks run without s.mu held. A callback may schedule or reset
// timers that are already due; those fire in the next pass.
func (s *Store) fireExpired(target uint64) {
	s.mu.Lock()
	s.passes++
	pass := s.passes
	s.mu.Unlock()

	fireInstant := Instant{millis: target}
	for {
		toFire := s.collectExpired(target, pass)
		if len(toFire) == 0 {
			return
		}

		slices.SortFunc(toFire, func(a, b *waiter) int {
			if c := cmp.Compare(a.deadline, b.deadline); c != 0 {
				return c
			}
			return cmp.Compare(a.sequence, b.sequence)
		})

		for _, entry := range toFire {
			if entry.callback != nil {
				entry.callback()
				continue
			}
			select {
			case entry.channel <- fireInstant:
			default:
			}
		}
	}
}

// collectExpired removes due and stopped waiters from the pending
// list, reschedules due tickers, and returns the due waiters. The
// returned entries carry the deadline they fired at.
func (s *Store) collectExpired(target, pass uint64) []*waiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	var toFire []*waiter
	remaining := s.waiters[:0]
	for _, entry := range s.waiters {
		switch {
		case entry.stopped:
			entry.queued = false
		case entry.interval > 0 && entry.pass == pass:
			// Already ticked in this pass; a wrapped deadline must not
			// tick again until the next Set or Advance.
			remaining = append(remaining, entry)
		case entry.deadline <= target:
			toFire = append(toFire, &waiter{
				deadline: entry.deadline,
				sequence: entry.sequence,
				channel:  entry.channel,
				callback: entry.callback,
			})
			if entry.interval > 0 {
				missed := (target - entry.deadline) / entry.interval
				entry.deadline += (missed + 1) * entry.interval
				entry.pass = pass
				remaining = append(remaining, entry)
				continue
			}
			entry.fired = true
			entry.queued = false
		default:
			remaining = append(remaining, entry)
		}
	}
	clear(s.waiters[len(remaining):])
	s.waiters = remaining
	return toFire
}
