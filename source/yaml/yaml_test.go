package yaml_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	eng "github.com/reoring/skema/internal/engine"
	yamlsrc "github.com/reoring/skema/source/yaml"
)

func TestScalarsAndContainers(t *testing.T) {
	doc := `
name: skema
count: 3
ratio: 0.5
on: true
none: ~
tags: [a, "1"]
empty: []
`
	v, err := eng.DecodeAnyFromSourceAsFloat64(yamlsrc.NewBytes([]byte(doc)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"name":  "skema",
		"count": 3.0,
		"ratio": 0.5,
		"on":    true,
		"none":  nil,
		"tags":  []any{"a", "1"},
		"empty": []any{},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestNonFiniteNumbers(t *testing.T) {
	v, err := eng.DecodeAnyFromSourceAsFloat64(yamlsrc.NewBytes([]byte("[.nan, .inf, -.inf]")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	xs := v.([]any)
	if !math.IsNaN(xs[0].(float64)) || !math.IsInf(xs[1].(float64), 1) || !math.IsInf(xs[2].(float64), -1) {
		t.Fatalf("expected NaN, +Inf, -Inf, got %v", xs)
	}
}

func TestAliases(t *testing.T) {
	doc := `
base: &b {x: 1}
copy: *b
`
	v, err := eng.DecodeAnyFromSourceAsFloat64(yamlsrc.NewBytes([]byte(doc)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if diff := cmp.Diff(m["base"], m["copy"]); diff != "" {
		t.Fatalf("alias mismatch (-base +copy):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	for _, doc := range []string{"a: [1, 2", "? [a, b]\n: 1\n"} {
		if _, err := eng.DecodeAnyFromSourceAsFloat64(yamlsrc.NewBytes([]byte(doc))); err == nil {
			t.Fatalf("%q: expected error", doc)
		}
	}
}

func TestEmptyDocument(t *testing.T) {
	v, err := eng.DecodeAnyFromSourceAsFloat64(yamlsrc.NewBytes(nil))
	if err == nil && v != nil {
		t.Fatalf("expected nil or error for an empty document, got %v", v)
	}
}
