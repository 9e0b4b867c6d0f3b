// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's standard CBOR encoding
// configuration.
//
// Scenario traces are encoded as CBOR when they are fingerprinted or
// written in binary form by fakeclock-replay. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items. The same trace always
// produces identical bytes, which is what makes a trace digest usable
// as a golden value.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (one trace per scenario on stdout):
//
//	encoder := codec.NewEncoder(os.Stdout)
//	decoder := codec.NewDecoder(reader)
//
// [Diagnose] renders encoded bytes in CBOR diagnostic notation for
// humans (fakeclock-replay --format=diag).
//
// Types implementing encoding.TextMarshaler, such as clock.Instant,
// encode as CBOR text strings, so an Instant reads the same in CBOR
// diagnostic notation as it does in JSON.
//
// Struct tags follow one rule: a `json` tag means the type is written
// as both JSON and CBOR (fxamacker/cbor falls back to `json` tags), a
// `cbor` tag means CBOR only. Never put both on one field.
package codec
