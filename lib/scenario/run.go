// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/bureau-foundation/fakeclock/lib/clock"
)

// ErrExpectation is wrapped by the error Run returns when an
// expectation does not hold.
var ErrExpectation = errors.New("expectation failed")

// Run validates scenario and executes it against store. It stops at
// the first failed expectation and returns the trace up to and
// including that step together with an error wrapping ErrExpectation.
// The context is checked between steps. A nil logger discards output.
func Run(ctx context.Context, scenario *Scenario, store *clock.Store, logger *slog.Logger) (*Trace, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("scenario", scenario.Name)

	runner := &runner{
		store: store,
		named: make(map[string]clock.Instant),
	}
	trace := &Trace{Scenario: scenario.Name}
	defer func() { trace.Instants = maps.Clone(runner.named) }()

	for index := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return trace, fmt.Errorf("scenario %s: stopped before step %d: %w", scenario.Name, index, err)
		}

		step := &scenario.Steps[index]
		event, err := runner.execute(index, step)
		trace.Events = append(trace.Events, event)
		logger.Debug("step",
			"index", index,
			"operation", event.Operation,
			"now_millis", event.NowMillis,
		)
		if err != nil {
			logger.Debug("expectation failed", "index", index, "error", err)
			return trace, fmt.Errorf("scenario %s: step %d: %w", scenario.Name, index, err)
		}
	}
	return trace, nil
}

type runner struct {
	store *clock.Store
	named map[string]clock.Instant
}

func (r *runner) execute(index int, step *Step) (Event, error) {
	event := Event{Index: index, Operation: step.Operation()}
	var err error

	switch event.Operation {
	case "set":
		r.store.Set(*step.Set)
	case "advance":
		r.store.Advance(*step.Advance)
	case "capture":
		event.Name = step.Capture
		event.Bound = r.bind(step.Capture, r.store.Now())
	case "shift":
		from := r.named[step.Shift.From]
		shift := time.Duration(step.Shift.Millis) * time.Millisecond
		shifted := from.Add(shift)
		if shift < 0 {
			shifted = from.SubDuration(-shift)
		}
		event.Name = step.Shift.Name
		event.Bound = r.bind(step.Shift.Name, shifted)
	case "expect":
		var observed int64
		observed, err = r.check(step.Expect)
		event.Observed = &observed
	}

	event.NowMillis = r.store.NowMillis()
	return event, err
}

func (r *runner) bind(name string, instant clock.Instant) *clock.Instant {
	r.named[name] = instant
	return &instant
}

// check evaluates one expectation and returns the measured value.
func (r *runner) check(expect *Expectation) (int64, error) {
	switch expect.kind() {
	case "now":
		got := r.store.NowMillis()
		if got != *expect.Now {
			return int64(got), fmt.Errorf("%w: now is %d, want %d", ErrExpectation, got, *expect.Now)
		}
		return int64(got), nil
	case "instant":
		got := r.named[expect.Instant].Millis()
		if got != *expect.Millis {
			return int64(got), fmt.Errorf("%w: %s is %d, want %d", ErrExpectation, expect.Instant, got, *expect.Millis)
		}
		return int64(got), nil
	case "elapsed":
		got := r.named[expect.Elapsed.Instant].Elapsed(r.store).Milliseconds()
		if got != expect.Elapsed.Millis {
			return got, fmt.Errorf("%w: elapsed since %s is %dms, want %dms",
				ErrExpectation, expect.Elapsed.Instant, got, expect.Elapsed.Millis)
		}
		return got, nil
	case "since":
		later, earlier := r.named[expect.Since.Later], r.named[expect.Since.Earlier]
		got := later.DurationSince(earlier).Milliseconds()
		if got != expect.Since.Millis {
			return got, fmt.Errorf("%w: %s since %s is %dms, want %dms",
				ErrExpectation, expect.Since.Later, expect.Since.Earlier, got, expect.Since.Millis)
		}
		return got, nil
	case "order":
		got := r.named[expect.Order.Left].Compare(r.named[expect.Order.Right])
		if got != expect.Order.Compare {
			return int64(got), fmt.Errorf("%w: compare(%s, %s) is %d, want %d",
				ErrExpectation, expect.Order.Left, expect.Order.Right, got, expect.Order.Compare)
		}
		return int64(got), nil
	}
	return 0, fmt.Errorf("%w: unknown expectation", ErrInvalidScenario)
}
