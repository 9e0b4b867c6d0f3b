// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/fakeclock/lib/clock"
	"github.com/bureau-foundation/fakeclock/lib/codec"
)

// Trace records what a scenario run did, step by step.
type Trace struct {
	Scenario string                   `json:"scenario"`
	Events   []Event                  `json:"events"`
	Instants map[string]clock.Instant `json:"instants"`
}

// Event is one executed step.
type Event struct {
	Index     int    `json:"index"`
	Operation string `json:"operation"`

	// NowMillis is the counter after the step.
	NowMillis uint64 `json:"now_millis"`

	// Name and Bound are set for capture and shift.
	Name  string         `json:"name,omitempty"`
	Bound *clock.Instant `json:"bound,omitempty"`

	// Observed is the value an expectation measured: milliseconds for
	// now, instant, elapsed and since, the Compare result for order.
	Observed *int64 `json:"observed,omitempty"`
}

// Digest returns the hex BLAKE3-256 of the trace's deterministic CBOR
// encoding. Equal traces always produce equal digests.
func (t *Trace) Digest() (string, error) {
	data, err := codec.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding trace: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
