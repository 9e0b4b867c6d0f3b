// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/fakeclock/lib/clock"
	"github.com/bureau-foundation/fakeclock/lib/scenario"
	"github.com/bureau-foundation/fakeclock/lib/version"
)

// errFailed reports that at least one scenario failed. The failures
// themselves have already been logged.
var errFailed = errors.New("one or more scenarios failed")

// usageError marks errors caused by bad flags or arguments.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(exitCode(run(ctx, os.Args[1:], os.Stdout, os.Stderr)))
}

func exitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &usage):
		fmt.Fprintf(os.Stderr, "fakeclock-replay: %v\n", err)
		return 2
	case errors.Is(err, errFailed):
		return 1
	}
	fmt.Fprintf(os.Stderr, "fakeclock-replay: %v\n", err)
	return 1
}

type options struct {
	format  string
	digest  bool
	verbose bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("fakeclock-replay", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.format, "format", "", "output format: text, json, cbor or diag (default: text on a terminal, json otherwise)")
	flagSet.BoolVar(&opts.digest, "digest", false, "print only the BLAKE3 digest of each trace")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log every step at debug level")
	showVersion := flagSet.Bool("version", false, "print version information and exit")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return usageError{err}
	}

	if *showVersion {
		if opts.verbose {
			fmt.Fprintf(stdout, "fakeclock-replay %s\n", version.Full())
		} else {
			fmt.Fprintf(stdout, "fakeclock-replay %s\n", version.Info())
		}
		return nil
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		printUsage(stderr, flagSet)
		return usageError{errors.New("no scenario files given")}
	}

	if opts.format == "" {
		opts.format = defaultFormat(stdout)
	}
	writer, err := newTraceWriter(opts.format, opts.digest, stdout)
	if err != nil {
		return usageError{err}
	}

	logger := newLogger(stderr, opts.verbose)

	failed := 0
	for _, path := range paths {
		if err := replay(ctx, path, writer, logger); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("scenario failed", "path", path, "error", err)
			failed++
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Info("replay finished", "scenarios", len(paths), "failed", failed)
	if failed > 0 {
		return errFailed
	}
	return nil
}

// replay runs one scenario file and writes its trace. A trace is
// written even when an expectation fails, so the output shows the
// steps leading up to the failure.
func replay(ctx context.Context, path string, writer traceWriter, logger *slog.Logger) error {
	loaded, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}

	trace, runErr := scenario.Run(ctx, loaded, clock.NewStore(), logger)
	if trace != nil {
		if err := writer.Write(trace); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	return runErr
}

// newLogger mirrors the Bureau CLI convention: text on a terminal, JSON
// when stderr is piped.
func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	if isTerminal(stderr) {
		return slog.New(slog.NewTextHandler(stderr, options))
	}
	return slog.New(slog.NewJSONHandler(stderr, options))
}

func defaultFormat(stdout io.Writer) string {
	if isTerminal(stdout) {
		return formatText
	}
	return formatJSON
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `fakeclock-replay - replay fake-clock scenario files

USAGE
    fakeclock-replay [flags] <scenario-file>...

Scenario files are YAML (.yaml, .yml) or JSONC (.json, .jsonc).

FLAGS
%s`, flagSet.FlagUsages())
}
