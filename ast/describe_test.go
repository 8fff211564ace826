package ast_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/reoring/skema/ast"
)

func TestDescribe(t *testing.T) {
	tup, _ := ast.AppendRestElement(ast.NewTuple([]ast.Element{
		ast.NewElement(ast.StringKeyword, false),
		ast.NewElement(ast.NumberKeyword, true),
	}, nil, true), ast.BooleanKeyword)

	cases := []struct {
		n    ast.Node
		want string
	}{
		{ast.StringKeyword, "string"},
		{ast.NewLiteral("a"), `"a"`},
		{ast.NewLiteral(nil), "null"},
		{ast.NewLiteral(big.NewInt(7)), "7n"},
		{tup, "readonly [string, number?, ...boolean[]]"},
		{ast.NewArray(ast.NumberKeyword, true), "ReadonlyArray<number>"},
		{ast.NewTuple(nil, []ast.Node{ast.StringKeyword, ast.NumberKeyword}, false), "[...string[], number]"},
		{ast.NewTypeLiteral([]*ast.PropertySignature{
			ast.NewPropertySignature(ast.StringKey("a"), ast.StringKeyword, false, true),
			ast.NewPropertySignature(ast.StringKey("b"), ast.NumberKeyword, true, false),
		}, nil), "{ readonly a: string; b?: number }"},
		{ast.NewTypeLiteral(nil, []*ast.IndexSignature{ast.NewIndexSignature(ast.StringKeyword, ast.UnknownKeyword, true)}), "{ readonly [x: string]: unknown }"},
		{ast.NewEnums(ast.EnumMember{Name: "A", Value: 0}, ast.EnumMember{Name: "B", Value: "b"}), `<enum 2 value(s): 0 | "b">`},
		{ast.NewTypeAlias("Person", nil, ast.StringKeyword), "Person"},
		{ast.NewRefinement(ast.StringKeyword, nil, ast.Annotations{Label: "nonEmpty"}), "nonEmpty"},
	}
	for _, c := range cases {
		if got := ast.Describe(c.n); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{nil, "null"},
		{ast.Undefined, "undefined"},
		{"x", `"x"`},
		{1.5, "1.5"},
		{float64(100), "100"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{42, "42"},
		{big.NewInt(-3), "-3n"},
		{ast.SymbolFor("k"), "Symbol(k)"},
		{[]any{1.0, "a"}, `[1,"a"]`},
		{map[string]any{"a": 1.0}, `{"a":1}`},
	}
	for _, c := range cases {
		if got := ast.FormatValue(c.v); got != c.want {
			t.Fatalf("format %#v: expected %q, got %q", c.v, c.want, got)
		}
	}
}
