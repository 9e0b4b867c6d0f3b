// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is a scenario file syntax.
type Format string

const (
	// FormatYAML is YAML 1.2 via gopkg.in/yaml.v3.
	FormatYAML Format = "yaml"
	// FormatJSONC is JSON with comments and trailing commas. Plain
	// JSON is a subset.
	FormatJSONC Format = "jsonc"
)

// FormatForPath picks the format from a file extension: .yaml and .yml
// are YAML, .json and .jsonc are JSONC.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	}
	return "", fmt.Errorf("%w: %s: unrecognized extension (want .yaml, .yml, .json or .jsonc)",
		ErrInvalidScenario, path)
}

// Parse decodes and validates a scenario. Unknown keys are rejected so
// that a typo in an operation name does not silently drop a step.
func Parse(data []byte, format Format) (*Scenario, error) {
	scenario, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return scenario, nil
}

// LoadFile reads and parses a scenario file, choosing the format from
// its extension. A scenario without a name takes the file's base name.
func LoadFile(path string) (*Scenario, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	scenario, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if scenario.Name == "" {
		scenario.Name = NameFromPath(path)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenario, nil
}

// NameFromPath returns the file's base name without its extension:
// "testdata/elapsed.yaml" returns "elapsed".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func decode(data []byte, format Format) (*Scenario, error) {
	var scenario Scenario
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&scenario); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidScenario, err)
		}
	case FormatJSONC:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&scenario); err != nil {
			return nil, fmt.Errorf("%w: parsing JSONC: %w", ErrInvalidScenario, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidScenario, format)
	}
	return &scenario, nil
}
