package dsl_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/reoring/skema"
	"github.com/reoring/skema/ast"
	g "github.com/reoring/skema/dsl"
)

func TestObject_Builder(t *testing.T) {
	person := g.Object().
		Field("name", g.Pipe(g.String(), g.MinLength(1))).Required().
		Field("age", g.Number()).Optional().
		Index(g.String(), g.Bool()).
		MustBuild()

	if got := ast.Describe(person); !strings.Contains(got, "age?: number") || !strings.Contains(got, "[x: string]: boolean") {
		t.Fatalf("unexpected description: %s", got)
	}
	r := skema.Decode(person, map[string]any{"name": "ann", "admin": true})
	if !r.IsSuccess() {
		t.Fatalf("expected success, got %v", r.Messages())
	}
	r = skema.Decode(person, map[string]any{"name": ""})
	if got := r.Errors.Error(); got != `/name "" did not satisfy is(minLength(1))` {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestObject_BuilderErrors(t *testing.T) {
	if _, err := g.Object().Field("a", nil).Build(); err == nil {
		t.Fatalf("expected error for a nil field schema")
	}
	if _, err := g.Object().Index(g.Number(), g.String()).Build(); err == nil {
		t.Fatalf("expected error for a number index parameter")
	}
}

func TestObject_Annotations(t *testing.T) {
	n := g.Object().Field("a", g.String()).Required().Identifier("A").MustBuild()
	if got := ast.Describe(n); got != "A" {
		t.Fatalf("expected identifier description, got %s", got)
	}
}

func TestTuple_Builder(t *testing.T) {
	tp := g.Tuple(g.String()).Optional(g.Number()).Rest(g.Bool()).MustBuild()
	if got := ast.Describe(tp); got != "readonly [string, number?, ...boolean[]]" {
		t.Fatalf("unexpected description: %s", got)
	}
	if _, err := g.Tuple().Optional(g.Number()).Required(g.String()).Build(); !errors.Is(err, ast.ErrRequiredAfterOptional) {
		t.Fatalf("expected ErrRequiredAfterOptional, got %v", err)
	}
	if _, err := g.Tuple().Rest(g.Number()).Rest(g.String()).Build(); !errors.Is(err, ast.ErrRestAfterRest) {
		t.Fatalf("expected ErrRestAfterRest, got %v", err)
	}
	post := g.Tuple().Rest(g.String()).Post(g.Number()).MustBuild()
	if !skema.Is(post, []any{"a", 1.0}) || skema.Is(post, []any{"a"}) {
		t.Fatalf("unexpected post-rest behaviour")
	}
}

func TestNonEmptyArray(t *testing.T) {
	n := g.NonEmptyArray(g.Number())
	if skema.Is(n, []any{}) {
		t.Fatalf("expected empty array to fail")
	}
	if !skema.Is(n, []any{1.0, 2.0}) {
		t.Fatalf("expected non-empty array to pass")
	}
}

func TestLiteralAndNullable(t *testing.T) {
	n := g.Nullable(g.Literal("a", "b"))
	for _, v := range []any{"a", "b", nil} {
		if !skema.Is(n, v) {
			t.Fatalf("expected %v to pass", v)
		}
	}
	if skema.Is(n, "c") {
		t.Fatalf("expected c to fail")
	}
	if got := ast.Describe(g.Literal(1)); got != "1" {
		t.Fatalf("expected single literal unwrapped, got %s", got)
	}
}

func TestEnum(t *testing.T) {
	n := g.Enum(g.Member("Red", 0), g.Member("Green", "g"))
	if !skema.Is(n, 0.0) || !skema.Is(n, "g") || skema.Is(n, 1.0) {
		t.Fatalf("unexpected enum behaviour")
	}
}

func TestStringFilters(t *testing.T) {
	cases := []struct {
		f    g.Filter
		ok   string
		bad  string
		want string
	}{
		{g.MinLength(2), "ab", "a", `"a" did not satisfy is(minLength(2))`},
		{g.MaxLength(2), "ab", "abc", `"abc" did not satisfy is(maxLength(2))`},
		{g.Length(1), "é", "ab", `"ab" did not satisfy is(length(1))`},
		{g.NonEmpty(), "a", "", `"" did not satisfy is(nonEmpty)`},
		{g.StartsWith("a"), "ab", "ba", `"ba" did not satisfy is(startsWith("a"))`},
		{g.EndsWith("b"), "ab", "ba", `"ba" did not satisfy is(endsWith("b"))`},
		{g.Includes("x"), "axb", "ab", `"ab" did not satisfy is(includes("x"))`},
		{g.Pattern(`^\d+$`), "12", "1a", `"1a" did not satisfy is(pattern(^\d+$))`},
	}
	for _, c := range cases {
		n := g.Pipe(g.String(), c.f)
		if !skema.Is(n, c.ok) {
			t.Fatalf("expected %q to pass %s", c.ok, ast.Describe(n))
		}
		r := skema.Decode(n, c.bad)
		if got := r.Errors.Error(); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}

func TestNumberFilters(t *testing.T) {
	cases := []struct {
		f   g.Filter
		ok  float64
		bad float64
	}{
		{g.LessThan(5), 4, 5},
		{g.LessThanOrEqualTo(5), 5, 6},
		{g.GreaterThan(5), 6, 5},
		{g.GreaterThanOrEqualTo(5), 5, 4},
		{g.Int(), 3, 3.5},
		{g.NonNaN(), 1, math.NaN()},
		{g.Finite(), 1, math.Inf(1)},
	}
	for i, c := range cases {
		n := g.Pipe(g.Number(), c.f)
		if r := skema.Decode(n, c.ok); !r.IsSuccess() {
			t.Fatalf("case %d: expected %v to pass, got %v", i, c.ok, r.Messages())
		}
		if r := skema.Decode(n, c.bad); !r.IsFailure() {
			t.Fatalf("case %d: expected %v to fail, got %v", i, c.bad, r.Outcome())
		}
	}
	r := skema.Decode(g.Pipe(g.Number(), g.Int()), 1.5)
	if got := r.Errors.Error(); got != "1.5 did not satisfy is(int)" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestArrayFilters(t *testing.T) {
	n := g.Pipe(g.Array(g.String()), g.MinItems(1), g.MaxItems(2))
	if !skema.Is(n, []any{"a"}) || skema.Is(n, []any{}) || skema.Is(n, []any{"a", "b", "c"}) {
		t.Fatalf("unexpected item-count behaviour")
	}
}

func TestQueries(t *testing.T) {
	base := g.Object().Field("a", g.String()).Required().Field("b", g.Number()).Required().MustBuild()
	if got := ast.Describe(g.Pick(base, "a")); got != "{ a: string }" {
		t.Fatalf("unexpected pick: %s", got)
	}
	if got := ast.Describe(g.Omit(base, "a")); got != "{ b: number }" {
		t.Fatalf("unexpected omit: %s", got)
	}
	if got := ast.Describe(g.Partial(base)); got != "{ a?: string; b?: number }" {
		t.Fatalf("unexpected partial: %s", got)
	}
	k, err := g.KeyOf(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !skema.Is(k, "a") || skema.Is(k, "c") {
		t.Fatalf("unexpected keyof behaviour: %s", ast.Describe(k))
	}
	ext := g.MustExtend(base, g.Object().Field("c", g.Bool()).Required().MustBuild())
	if diff := cmp.Diff([]string{"a", "b", "c"}, keyNames(ext), cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	rec := g.MustRecord(g.Literal("x", "y"), g.Number())
	if !skema.Is(rec, map[string]any{"x": 1.0, "y": 2.0}) || skema.Is(rec, map[string]any{"x": 1.0}) {
		t.Fatalf("unexpected record behaviour")
	}
}

func keyNames(n ast.Node) []string {
	var out []string
	for _, k := range ast.PropertyKeys(n) {
		out = append(out, k.Name())
	}
	return out
}

func TestTransformAndLazy(t *testing.T) {
	double := g.Transform(g.Number(), g.Number(),
		func(v any) any { return v.(float64) * 2 },
		func(v any) any { return v.(float64) / 2 },
	)
	if r := skema.Decode(double, 2.0); r.Value != 4.0 {
		t.Fatalf("expected 4, got %v", r.Value)
	}

	var tree ast.Node
	tree = g.Object().
		Field("value", g.Number()).Required().
		Field("children", g.Array(g.Lazy(func() ast.Node { return tree }))).Required().
		MustBuild()
	in := map[string]any{"value": 1.0, "children": []any{map[string]any{"value": 2.0, "children": []any{}}}}
	if r := skema.Decode(tree, in); !r.IsSuccess() {
		t.Fatalf("expected success, got %v", r.Messages())
	}
}

func TestMessageAnnotation(t *testing.T) {
	n := g.Message(g.String(), func(any) string { return "a name is required" })
	if got := skema.Decode(n, nil).Errors.Error(); got != "a name is required" {
		t.Fatalf("unexpected message: %q", got)
	}
}
