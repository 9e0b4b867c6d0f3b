// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// fakeclock-replay runs fake-clock scenario files and prints what
// happened at every step.
//
// Usage:
//
//	fakeclock-replay [flags] <scenario.yaml|scenario.jsonc>...
//
// Each scenario runs against its own clock.Store starting at
// millisecond zero. Output is one trace per scenario: a human-readable
// table (text), one JSON object per line (json), or a stream of CBOR
// items (cbor). With --digest only the BLAKE3 fingerprint of each trace
// is printed, for pinning scenario behavior in golden files.
//
// The exit code is 0 when every scenario passes, 1 when any scenario
// fails to load or fails an expectation, and 2 on usage errors.
package main
