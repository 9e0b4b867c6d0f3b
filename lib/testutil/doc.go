// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared channel assertions for tests of
// timer-driven code.
//
// [RequireReceive] and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. They are
// the only place in the module where real wall-clock timeouts are used:
// the timeout guards against a hung test, it never decides an outcome.
//
// [RequireNoReceive] is the inverse check for fake-clock tests: after
// the clock is moved short of a deadline, nothing may be ready on the
// channel. It never waits.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
