// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Real returns a Clock backed by the time package. Its counter is the
// number of milliseconds since Real was called, read from Go's
// monotonic clock.
func Real() Clock { return &realClock{start: time.Now()} }

type realClock struct {
	start time.Time
}

func (c *realClock) NowMillis() uint64 {
	return uint64(time.Since(c.start).Milliseconds())
}

func (c *realClock) Now() Instant { return Now(c) }

func (c *realClock) After(d time.Duration) <-chan Instant {
	channel := make(chan Instant, 1)
	time.AfterFunc(d, func() { channel <- c.Now() })
	return channel
}

func (c *realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{
		stopFunc:  timer.Stop,
		resetFunc: timer.Reset,
	}
}

func (c *realClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 || durationToMillis(d) == 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	ticker := &realTicker{
		clock:   c,
		ticker:  time.NewTicker(d),
		channel: make(chan Instant, 1),
	}
	ticker.start()
	return &Ticker{
		C:         ticker.channel,
		stopFunc:  ticker.stop,
		resetFunc: ticker.reset,
	}
}

// realTicker forwards a time.Ticker onto an Instant channel. The
// forwarding goroutine exits on Stop and restarts on Reset.
type realTicker struct {
	clock   *realClock
	ticker  *time.Ticker
	channel chan Instant

	mu   sync.Mutex
	done chan struct{}
}

func (t *realTicker) start() {
	t.done = make(chan struct{})
	go t.forward(t.done)
}

func (t *realTicker) forward(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-t.ticker.C:
			select {
			case t.channel <- t.clock.Now():
			default:
			}
		}
	}
}

func (t *realTicker) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ticker.Stop()
	if t.done != nil {
		close(t.done)
		t.done = nil
	}
}

func (t *realTicker) reset(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ticker.Reset(d)
	if t.done == nil {
		t.start()
	}
}

func (c *realClock) Sleep(d time.Duration) { time.Sleep(d) }
