// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"errors"
	"fmt"
)

// ErrInvalidScenario is wrapped by every validation and parse error.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a named script of clock steps.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// Step holds exactly one operation. The populated field selects it.
type Step struct {
	// Set overwrites the counter.
	Set *uint64 `yaml:"set,omitempty" json:"set,omitempty"`

	// Advance adds to the counter.
	Advance *uint64 `yaml:"advance,omitempty" json:"advance,omitempty"`

	// Capture binds the current Instant to this name.
	Capture string `yaml:"capture,omitempty" json:"capture,omitempty"`

	// Shift binds a new name to an existing Instant moved by a signed
	// number of milliseconds.
	Shift *Shift `yaml:"shift,omitempty" json:"shift,omitempty"`

	// Expect checks one property and fails the run if it does not hold.
	Expect *Expectation `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Shift derives Name from From. Positive Millis uses Instant.Add,
// negative uses Instant.SubDuration.
type Shift struct {
	Name   string `yaml:"name" json:"name"`
	From   string `yaml:"from" json:"from"`
	Millis int64  `yaml:"millis" json:"millis"`
}

// Expectation holds exactly one check:
//
//   - Now: the counter equals the value.
//   - Instant and Millis: the named Instant holds Millis.
//   - Elapsed: Instant.Elapsed against the store.
//   - Since: Later.DurationSince(Earlier).
//   - Order: Left.Compare(Right).
type Expectation struct {
	Now     *uint64   `yaml:"now,omitempty" json:"now,omitempty"`
	Instant string    `yaml:"instant,omitempty" json:"instant,omitempty"`
	Millis  *uint64   `yaml:"millis,omitempty" json:"millis,omitempty"`
	Elapsed *Measure  `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
	Since   *Interval `yaml:"since,omitempty" json:"since,omitempty"`
	Order   *Order    `yaml:"order,omitempty" json:"order,omitempty"`
}

// Measure is the expected Elapsed of a named Instant, in signed
// milliseconds.
type Measure struct {
	Instant string `yaml:"instant" json:"instant"`
	Millis  int64  `yaml:"millis" json:"millis"`
}

// Interval is the expected DurationSince between two named Instants,
// in signed milliseconds.
type Interval struct {
	Later   string `yaml:"later" json:"later"`
	Earlier string `yaml:"earlier" json:"earlier"`
	Millis  int64  `yaml:"millis" json:"millis"`
}

// Order is the expected Compare result (-1, 0 or 1) of two named
// Instants.
type Order struct {
	Left    string `yaml:"left" json:"left"`
	Right   string `yaml:"right" json:"right"`
	Compare int    `yaml:"compare" json:"compare"`
}

// Operation names the step's operation, or "" when the step has none
// or more than one.
func (s *Step) Operation() string {
	var operations []string
	if s.Set != nil {
		operations = append(operations, "set")
	}
	if s.Advance != nil {
		operations = append(operations, "advance")
	}
	if s.Capture != "" {
		operations = append(operations, "capture")
	}
	if s.Shift != nil {
		operations = append(operations, "shift")
	}
	if s.Expect != nil {
		operations = append(operations, "expect")
	}
	if len(operations) != 1 {
		return ""
	}
	return operations[0]
}

// kind names the expectation's check, or "" when it has none or more
// than one. Instant and Millis together count as one check.
func (e *Expectation) kind() string {
	var kinds []string
	if e.Now != nil {
		kinds = append(kinds, "now")
	}
	if e.Instant != "" || e.Millis != nil {
		kinds = append(kinds, "instant")
	}
	if e.Elapsed != nil {
		kinds = append(kinds, "elapsed")
	}
	if e.Since != nil {
		kinds = append(kinds, "since")
	}
	if e.Order != nil {
		kinds = append(kinds, "order")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Validate checks that every step has exactly one operation and that
// every name is captured before it is referenced.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: %s: no steps", ErrInvalidScenario, s.Name)
	}

	bound := make(map[string]bool)
	var errs []error
	invalid := func(index int, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: step %d: %s",
			ErrInvalidScenario, s.Name, index, fmt.Sprintf(format, args...)))
	}
	requireBound := func(index int, names ...string) {
		for _, name := range names {
			if name == "" {
				invalid(index, "instant name is required")
			} else if !bound[name] {
				invalid(index, "instant %q used before capture", name)
			}
		}
	}

	for index := range s.Steps {
		step := &s.Steps[index]
		switch step.Operation() {
		case "set", "advance":
		case "capture":
			bound[step.Capture] = true
		case "shift":
			requireBound(index, step.Shift.From)
			if step.Shift.Name == "" {
				invalid(index, "shift needs a name")
			}
			bound[step.Shift.Name] = true
		case "expect":
			expect := step.Expect
			switch expect.kind() {
			case "now":
			case "instant":
				requireBound(index, expect.Instant)
				if expect.Millis == nil {
					invalid(index, "instant expectation needs millis")
				}
			case "elapsed":
				requireBound(index, expect.Elapsed.Instant)
			case "since":
				requireBound(index, expect.Since.Later, expect.Since.Earlier)
			case "order":
				requireBound(index, expect.Order.Left, expect.Order.Right)
				if c := expect.Order.Compare; c < -1 || c > 1 {
					invalid(index, "order compare must be -1, 0 or 1, got %d", c)
				}
			default:
				invalid(index, "expect needs exactly one of now, instant, elapsed, since, order")
			}
		default:
			invalid(index, "needs exactly one of set, advance, capture, shift, expect")
		}
	}
	return errors.Join(errs...)
}
