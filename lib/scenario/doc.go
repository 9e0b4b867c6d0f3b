// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scenario replays declarative fake-clock scripts.
//
// A scenario is a named list of steps. Each step does exactly one
// thing to a clock.Store: set or advance the counter, capture an
// Instant under a name, derive a new named Instant by shifting an
// existing one, or check an expectation. Scenarios are written in YAML
// or JSONC:
//
//	name: elapsed-follows-store
//	steps:
//	  - set: 1000
//	  - capture: start
//	  - advance: 500
//	  - expect: {elapsed: {instant: start, millis: 500}}
//	  - set: 2000
//	  - expect: {elapsed: {instant: start, millis: 1000}}
//
// [Run] executes a validated scenario and returns a [Trace] of every
// step with the counter value after it. Durations in expectations are
// signed milliseconds, so the wrapped result of a backward difference
// (see package clock) is written as a negative number.
//
// [Trace.Digest] fingerprints a trace through deterministic CBOR so a
// scenario's behavior can be pinned as a golden value.
package scenario
