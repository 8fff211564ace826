package jsonschema_test

import (
	"errors"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/reoring/skema/ast"
	g "github.com/reoring/skema/dsl"
	"github.com/reoring/skema/jsonschema"
)

// asMap renders s as generic JSON for comparison.
func asMap(t *testing.T, s *jsonschema.Schema) map[string]any {
	t.Helper()
	b, err := gojson.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := gojson.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestFromAST_Object(t *testing.T) {
	n := g.Object().
		Field("name", g.Pipe(g.String(), g.MinLength(1))).Required().
		Field("age", g.Pipe(g.Number(), g.Int(), g.GreaterThanOrEqualTo(0))).Optional().
		Field("nick", g.Optional(g.String())).Required().
		Title("Person").
		MustBuild()
	s, err := jsonschema.FromAST(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"$schema": jsonschema.Draft,
		"type":    "object",
		"title":   "Person",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 1.0},
			"age":  map[string]any{"type": "integer", "minimum": 0.0},
			"nick": map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	}
	if diff := cmp.Diff(want, asMap(t, s)); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAST_TupleAndArray(t *testing.T) {
	tp := g.Tuple(g.String()).Optional(g.Number()).MustBuild()
	s, err := jsonschema.FromAST(tp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"$schema":     jsonschema.Draft,
		"type":        "array",
		"prefixItems": []any{map[string]any{"type": "string"}, map[string]any{"type": "number"}},
		"items":       false,
		"minItems":    1.0,
		"maxItems":    2.0,
	}
	if diff := cmp.Diff(want, asMap(t, s)); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}

	s, err = jsonschema.FromAST(g.Array(g.Bool()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = map[string]any{"$schema": jsonschema.Draft, "type": "array", "items": map[string]any{"type": "boolean"}}
	if diff := cmp.Diff(want, asMap(t, s)); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAST_UnionLiteralsEnums(t *testing.T) {
	s, err := jsonschema.FromAST(g.Nullable(g.Literal("a")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"$schema": jsonschema.Draft,
		"anyOf":   []any{map[string]any{"const": "a"}, map[string]any{"type": "null"}},
	}
	if diff := cmp.Diff(want, asMap(t, s)); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}

	s, err = jsonschema.FromAST(g.Enum(g.Member("A", "a"), g.Member("B", 1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{"a", 1.0}, s.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAST_TemplateRecord(t *testing.T) {
	key := g.MustTemplateLiteral(ast.NewLiteral("id-"), g.Number())
	s, err := jsonschema.FromAST(g.MustRecord(key, g.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.PatternProperties) != 1 {
		t.Fatalf("expected one pattern property, got %v", s.PatternProperties)
	}
	for pat := range s.PatternProperties {
		if pat[:4] != `(?s)` && pat[0] != '^' {
			t.Fatalf("expected an anchored pattern, got %s", pat)
		}
	}
}

func TestFromAST_LazyDefinitions(t *testing.T) {
	var cat ast.Node
	cat = g.Object().
		Field("name", g.String()).Required().
		Field("children", g.Array(g.Lazy(func() ast.Node { return cat }))).Required().
		Identifier("Category").
		MustBuild()
	s, err := jsonschema.FromAST(cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, ok := s.Properties["children"].Items.(*jsonschema.Schema)
	if !ok || items.Ref != "#/$defs/Category" {
		t.Fatalf("expected a $ref to Category, got %#v", s.Properties["children"].Items)
	}
	def := s.Defs["Category"]
	if def == nil || def.Type != "object" {
		t.Fatalf("expected Category definition, got %#v", s.Defs)
	}
}

func TestFromAST_TransformUsesWireSide(t *testing.T) {
	n := g.Transform(g.String(), g.Number(), func(v any) any { return v }, func(v any) any { return v })
	s, err := jsonschema.FromAST(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Type != "string" {
		t.Fatalf("expected string, got %q", s.Type)
	}
}

func TestFromAST_Unsupported(t *testing.T) {
	for _, n := range []ast.Node{g.Symbol(), g.UniqueSymbol("x"), g.Undefined()} {
		if _, err := jsonschema.FromAST(n); !errors.Is(err, jsonschema.ErrUnsupported) {
			t.Fatalf("expected ErrUnsupported for %s, got %v", ast.Describe(n), err)
		}
	}
}
