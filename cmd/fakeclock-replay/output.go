// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/bureau-foundation/fakeclock/lib/codec"
	"github.com/bureau-foundation/fakeclock/lib/scenario"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCBOR = "cbor"
	formatDiag = "diag"
)

// traceWriter emits one trace per replayed scenario.
type traceWriter interface {
	Write(trace *scenario.Trace) error
	Flush() error
}

func newTraceWriter(format string, digestOnly bool, w io.Writer) (traceWriter, error) {
	buffered := bufio.NewWriter(w)
	if digestOnly {
		return &digestWriter{out: buffered}, nil
	}
	switch format {
	case formatText:
		return &textWriter{out: buffered}, nil
	case formatJSON:
		return &jsonWriter{out: buffered, encoder: json.NewEncoder(buffered)}, nil
	case formatCBOR:
		return &cborWriter{out: buffered, encoder: codec.NewEncoder(buffered)}, nil
	case formatDiag:
		return &diagWriter{out: buffered}, nil
	}
	return nil, fmt.Errorf("unknown --format %q (want text, json, cbor or diag)", format)
}

type digestWriter struct {
	out *bufio.Writer
}

func (w *digestWriter) Write(trace *scenario.Trace) error {
	digest, err := trace.Digest()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w.out, "%s  %s\n", digest, trace.Scenario)
	return err
}

func (w *digestWriter) Flush() error { return w.out.Flush() }

type textWriter struct {
	out *bufio.Writer
}

func (w *textWriter) Write(trace *scenario.Trace) error {
	if _, err := fmt.Fprintf(w.out, "%s\n", trace.Scenario); err != nil {
		return err
	}
	table := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(table, "  STEP\tOPERATION\tNOW\tDETAIL"); err != nil {
		return err
	}
	for _, event := range trace.Events {
		if _, err := fmt.Fprintf(table, "  %d\t%s\t%d\t%s\n", event.Index, event.Operation, event.NowMillis, detail(event)); err != nil {
			return err
		}
	}
	if err := table.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w.out)
	return err
}

func (w *textWriter) Flush() error { return w.out.Flush() }

func detail(event scenario.Event) string {
	switch {
	case event.Bound != nil:
		return event.Name + " = " + event.Bound.String()
	case event.Observed != nil:
		return "observed " + strconv.FormatInt(*event.Observed, 10)
	}
	return ""
}

type jsonWriter struct {
	out     *bufio.Writer
	encoder *json.Encoder
}

func (w *jsonWriter) Write(trace *scenario.Trace) error { return w.encoder.Encode(trace) }
func (w *jsonWriter) Flush() error                      { return w.out.Flush() }

type cborWriter struct {
	out     *bufio.Writer
	encoder *codec.Encoder
}

func (w *cborWriter) Write(trace *scenario.Trace) error { return w.encoder.Encode(trace) }
func (w *cborWriter) Flush() error                      { return w.out.Flush() }

// diagWriter prints each trace's CBOR encoding in diagnostic notation,
// one trace per line. The bytes are the ones Digest hashes.
type diagWriter struct {
	out *bufio.Writer
}

func (w *diagWriter) Write(trace *scenario.Trace) error {
	data, err := codec.Marshal(trace)
	if err != nil {
		return err
	}
	notation, err := codec.Diagnose(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, notation)
	return err
}

func (w *diagWriter) Flush() error { return w.out.Flush() }
