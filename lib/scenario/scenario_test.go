// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseYAMLAndJSONCAgree(t *testing.T) {
	fromYAML, err := LoadFile("testdata/elapsed.yaml")
	if err != nil {
		t.Fatalf("LoadFile(yaml): %v", err)
	}
	fromJSONC, err := LoadFile("testdata/elapsed.jsonc")
	if err != nil {
		t.Fatalf("LoadFile(jsonc): %v", err)
	}
	if !reflect.DeepEqual(fromYAML, fromJSONC) {
		t.Fatalf("YAML and JSONC scenarios differ:\n%+v\n%+v", fromYAML, fromJSONC)
	}
	if len(fromYAML.Steps) != 7 {
		t.Fatalf("parsed %d steps, want 7", len(fromYAML.Steps))
	}
}

func TestLoadFileDefaultsName(t *testing.T) {
	scenario, err := LoadFile("testdata/arithmetic.jsonc")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if scenario.Name != "arithmetic" {
		t.Fatalf("Name = %q, want %q", scenario.Name, "arithmetic")
	}
}

func TestFormatForPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml":         FormatYAML,
		"dir/b.YML":      FormatYAML,
		"c.json":         FormatJSONC,
		"nested/d.jsonc": FormatJSONC,
	} {
		got, err := FormatForPath(path)
		if err != nil || got != want {
			t.Errorf("FormatForPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatForPath("scenario.toml"); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("FormatForPath(.toml) error = %v, want ErrInvalidScenario", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	yamlInput := "name: typo\nsteps:\n  - advence: 5\n"
	if _, err := Parse([]byte(yamlInput), FormatYAML); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("YAML with unknown key: error = %v, want ErrInvalidScenario", err)
	}
	jsonInput := `{"name": "typo", "steps": [{"advence": 5}]}`
	if _, err := Parse([]byte(jsonInput), FormatJSONC); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("JSONC with unknown key: error = %v, want ErrInvalidScenario", err)
	}
}

func TestParseRejectsNegativeCounter(t *testing.T) {
	if _, err := Parse([]byte("name: n\nsteps:\n  - set: -1\n"), FormatYAML); err == nil {
		t.Fatal("set: -1 should not parse into an unsigned counter")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"missing name", "steps:\n  - set: 1\n", "name is required"},
		{"no steps", "name: empty\n", "no steps"},
		{"two operations", "name: n\nsteps:\n  - {set: 1, advance: 2}\n", "exactly one of set"},
		{"empty step", "name: n\nsteps:\n  - {}\n", "exactly one of set"},
		{"unbound elapsed", "name: n\nsteps:\n  - expect: {elapsed: {instant: ghost, millis: 0}}\n", `"ghost" used before capture`},
		{"use before capture", "name: n\nsteps:\n  - expect: {since: {later: a, earlier: a, millis: 0}}\n  - capture: a\n", `"a" used before capture`},
		{"two expectations", "name: n\nsteps:\n  - expect: {now: 1, order: {left: a, right: a, compare: 0}}\n", "exactly one of now"},
		{"instant without millis", "name: n\nsteps:\n  - capture: a\n  - expect: {instant: a}\n", "needs millis"},
		{"bad compare", "name: n\nsteps:\n  - capture: a\n  - expect: {order: {left: a, right: a, compare: 2}}\n", "must be -1, 0 or 1"},
		{"unnamed shift", "name: n\nsteps:\n  - capture: a\n  - shift: {from: a, millis: 1}\n", "shift needs a name"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.input), FormatYAML)
			if !errors.Is(err, ErrInvalidScenario) {
				t.Fatalf("error = %v, want ErrInvalidScenario", err)
			}
			if !strings.Contains(err.Error(), test.message) {
				t.Fatalf("error %q does not mention %q", err, test.message)
			}
		})
	}
}

func TestValidateNamesStep(t *testing.T) {
	input := "name: n\nsteps:\n  - set: 1\n  - capture: a\n  - {}\n"
	_, err := Parse([]byte(input), FormatYAML)
	if err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Fatalf("error = %v, want it to name step 2", err)
	}
}

func TestStepOperation(t *testing.T) {
	value := uint64(1)
	if got := (&Step{Set: &value}).Operation(); got != "set" {
		t.Errorf("Operation() = %q, want set", got)
	}
	if got := (&Step{Capture: "a", Advance: &value}).Operation(); got != "" {
		t.Errorf("Operation() with two ops = %q, want empty", got)
	}
}
