// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrUnderflow is returned by the Checked arithmetic variants when the
// result would be negative.
var ErrUnderflow = errors.New("clock: millisecond arithmetic underflow")

// Instant is an immutable reading of a millisecond counter. The zero
// Instant is millisecond 0. Instants are comparable with == and are
// safe to copy.
type Instant struct {
	millis uint64
}

// Now captures source's current counter as an Instant. Two captures
// with no intervening change to the source are equal.
func Now(source Source) Instant {
	return Instant{millis: source.NowMillis()}
}

// At returns the Instant for an explicit millisecond value.
func At(millis uint64) Instant {
	return Instant{millis: millis}
}

// Millis returns the counter value the Instant was captured at.
func (i Instant) Millis() uint64 { return i.millis }

// DurationSince returns i minus earlier. If earlier is actually later
// than i, the difference wraps and reads as a negative duration.
func (i Instant) DurationSince(earlier Instant) time.Duration {
	return millisToDuration(i.millis - earlier.millis)
}

// MillisSince returns i minus earlier as a raw millisecond count,
// wrapping modulo 2^64. Unlike DurationSince it is exact over the
// whole counter range.
func (i Instant) MillisSince(earlier Instant) uint64 {
	return i.millis - earlier.millis
}

// Sub is DurationSince, named after time.Time.Sub.
func (i Instant) Sub(other Instant) time.Duration {
	return i.DurationSince(other)
}

// Elapsed re-reads source and returns how much time has passed since i.
func (i Instant) Elapsed(source Source) time.Duration {
	return millisToDuration(source.NowMillis() - i.millis)
}

// Add returns i moved forward by d truncated to whole milliseconds.
// A negative d moves it backward.
func (i Instant) Add(d time.Duration) Instant {
	return Instant{millis: i.millis + durationToMillis(d)}
}

// SubDuration returns i moved backward by d truncated to whole
// milliseconds. Moving below zero wraps.
func (i Instant) SubDuration(d time.Duration) Instant {
	return Instant{millis: i.millis - durationToMillis(d)}
}

// CheckedSub is Sub that fails with ErrUnderflow when other is after i.
func (i Instant) CheckedSub(other Instant) (time.Duration, error) {
	if other.millis > i.millis {
		return 0, fmt.Errorf("%v minus %v: %w", i, other, ErrUnderflow)
	}
	return millisToDuration(i.millis - other.millis), nil
}

// CheckedDurationSince is DurationSince that fails with ErrUnderflow
// when earlier is after i.
func (i Instant) CheckedDurationSince(earlier Instant) (time.Duration, error) {
	return i.CheckedSub(earlier)
}

// CheckedElapsed is Elapsed that fails with ErrUnderflow when the
// source reads earlier than i.
func (i Instant) CheckedElapsed(source Source) (time.Duration, error) {
	return Now(source).CheckedSub(i)
}

// CheckedSubDuration is SubDuration that fails with ErrUnderflow
// instead of moving below millisecond zero.
func (i Instant) CheckedSubDuration(d time.Duration) (Instant, error) {
	millis := durationToMillis(d)
	if d < 0 || millis > i.millis {
		return Instant{}, fmt.Errorf("%v minus %v: %w", i, d, ErrUnderflow)
	}
	return Instant{millis: i.millis - millis}, nil
}

// SaturatingSub returns i minus other, or zero when other is after i.
func (i Instant) SaturatingSub(other Instant) time.Duration {
	if other.millis > i.millis {
		return 0
	}
	return millisToDuration(i.millis - other.millis)
}

// Equal reports whether i and other hold the same millisecond.
func (i Instant) Equal(other Instant) bool { return i.millis == other.millis }

// Before reports whether i is strictly earlier than other.
func (i Instant) Before(other Instant) bool { return i.millis < other.millis }

// After reports whether i is strictly later than other.
func (i Instant) After(other Instant) bool { return i.millis > other.millis }

// Compare returns -1, 0 or +1 as i is before, equal to, or after
// other. Suitable for slices.SortFunc.
func (i Instant) Compare(other Instant) int {
	switch {
	case i.millis < other.millis:
		return -1
	case i.millis > other.millis:
		return 1
	}
	return 0
}

// String renders the Instant for test failure output.
func (i Instant) String() string {
	return "Instant{millis: " + strconv.FormatUint(i.millis, 10) + "}"
}

// GoString makes %#v match String.
func (i Instant) GoString() string { return i.String() }

// MarshalText encodes the Instant as its decimal millisecond value.
// JSON, YAML and CBOR (via lib/codec) all pick this up.
func (i Instant) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, i.millis, 10), nil
}

// UnmarshalText parses a decimal millisecond value.
func (i *Instant) UnmarshalText(text []byte) error {
	millis, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil {
		return fmt.Errorf("parsing instant %q: %w", text, err)
	}
	i.millis = millis
	return nil
}

// durationToMillis truncates d toward zero and reinterprets the result
// as uint64, so negative durations become their two's complement.
func durationToMillis(d time.Duration) uint64 {
	return uint64(int64(d / time.Millisecond))
}

// millisToDuration reinterprets a wrapped uint64 difference as a signed
// millisecond count.
func millisToDuration(millis uint64) time.Duration {
	return time.Duration(int64(millis)) * time.Millisecond
}
