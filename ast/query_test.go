package ast_test

import (
	"errors"
	"testing"

	"github.com/reoring/skema/ast"
)

func prop(name string, t ast.Node, optional bool) *ast.PropertySignature {
	return ast.NewPropertySignature(ast.StringKey(name), t, optional, false)
}

func literalStrings(t *testing.T, n ast.Node) map[string]bool {
	t.Helper()
	out := map[string]bool{}
	var members []ast.Node
	if u, ok := n.(*ast.Union); ok {
		members = u.Types
	} else {
		members = []ast.Node{n}
	}
	for _, m := range members {
		switch m := m.(type) {
		case *ast.Literal:
			out[m.Value.(string)] = true
		default:
			out[ast.Describe(m)] = true
		}
	}
	return out
}

func TestKeyOf_TypeLiteral(t *testing.T) {
	s := ast.SymbolFor("sym")
	tl := ast.NewTypeLiteral([]*ast.PropertySignature{
		prop("a", ast.StringKeyword, false),
		ast.NewPropertySignature(ast.SymbolKey(s), ast.NumberKeyword, false, false),
	}, []*ast.IndexSignature{ast.NewIndexSignature(ast.StringKeyword, ast.NumberKeyword, false)})
	got, err := ast.KeyOf(tl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the string index parameter subsumes the "a" literal
	keys := literalStrings(t, got)
	if !keys["string"] || !keys["Symbol(sym)"] || keys["a"] {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestKeyOf_UnionIsIntersection(t *testing.T) {
	a := ast.NewTypeLiteral([]*ast.PropertySignature{prop("a", ast.StringKeyword, false), prop("b", ast.StringKeyword, false)}, nil)
	b := ast.NewTypeLiteral([]*ast.PropertySignature{prop("b", ast.NumberKeyword, false), prop("c", ast.StringKeyword, false)}, nil)
	got, err := ast.KeyOf(ast.NewUnion(a, b))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := got.(*ast.Literal)
	if !ok || l.Value != "b" {
		t.Fatalf("expected \"b\", got %s", ast.Describe(got))
	}
}

func TestKeyOf_KeywordsAndErrors(t *testing.T) {
	got, err := ast.KeyOf(ast.AnyKeyword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ast.Describe(got) != "string | number | symbol" {
		t.Fatalf("unexpected keyof any: %s", ast.Describe(got))
	}
	got, _ = ast.KeyOf(ast.StringKeyword)
	if ast.Describe(got) != `"length"` {
		t.Fatalf("unexpected keyof string: %s", ast.Describe(got))
	}
	got, _ = ast.KeyOf(ast.BooleanKeyword)
	if got != ast.NeverKeyword {
		t.Fatalf("expected never, got %s", ast.Describe(got))
	}
	for _, n := range []ast.Node{ast.NewLiteral("x"), ast.NewArray(ast.StringKeyword, true)} {
		if _, err := ast.KeyOf(n); !errors.Is(err, ast.ErrKeyOf) {
			t.Fatalf("expected ErrKeyOf for %s, got %v", ast.Describe(n), err)
		}
	}
}

func TestKeyOf_ThroughLazyAndRefinement(t *testing.T) {
	tl := ast.NewTypeLiteral([]*ast.PropertySignature{prop("a", ast.StringKeyword, false)}, nil)
	ref := ast.NewRefinement(ast.NewLazy(func() ast.Node { return tl }), func(any) bool { return true }, ast.Annotations{})
	got, err := ast.KeyOf(ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ast.Describe(got) != `"a"` {
		t.Fatalf("unexpected keys: %s", ast.Describe(got))
	}
}

func TestRecord(t *testing.T) {
	key := ast.NewUnion(ast.NewLiteral("a"), ast.NewLiteral(1), ast.NeverKeyword, ast.NewUniqueSymbol(ast.SymbolFor("s")))
	tl, err := ast.Record(key, ast.NumberKeyword, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tl.PropertySignatures) != 3 || len(tl.IndexSignatures) != 0 {
		t.Fatalf("unexpected record: %s", ast.Describe(tl))
	}
	names := map[string]bool{}
	for _, ps := range tl.PropertySignatures {
		names[ps.Name.String()] = true
		if !ps.IsReadonly || ps.IsOptional {
			t.Fatalf("expected readonly required signatures, got %+v", ps)
		}
	}
	if !names["a"] || !names["1"] || !names["Symbol(s)"] {
		t.Fatalf("unexpected names: %v", names)
	}

	tl, err = ast.Record(ast.StringKeyword, ast.BooleanKeyword, false)
	if err != nil || len(tl.IndexSignatures) != 1 {
		t.Fatalf("expected one index signature, got %v %v", tl, err)
	}
	if _, err := ast.Record(ast.BooleanKeyword, ast.StringKeyword, false); !errors.Is(err, ast.ErrRecord) {
		t.Fatalf("expected ErrRecord, got %v", err)
	}
}

func TestPropertySignatures_UnionMerge(t *testing.T) {
	a := ast.NewTypeLiteral([]*ast.PropertySignature{prop("a", ast.StringKeyword, false), prop("b", ast.StringKeyword, true)}, nil)
	b := ast.NewTypeLiteral([]*ast.PropertySignature{
		prop("a", ast.NumberKeyword, false),
		ast.NewPropertySignature(ast.StringKey("b"), ast.StringKeyword, false, true),
		prop("c", ast.NumberKeyword, false),
	}, nil)
	got := ast.PropertySignatures(ast.NewUnion(a, b))
	if len(got) != 2 {
		t.Fatalf("expected 2 signatures, got %d", len(got))
	}
	byName := map[string]*ast.PropertySignature{}
	for _, ps := range got {
		byName[ps.Name.Name()] = ps
	}
	if ast.Describe(byName["a"].Type) != "string | number" && ast.Describe(byName["a"].Type) != "number | string" {
		t.Fatalf("unexpected merged type for a: %s", ast.Describe(byName["a"].Type))
	}
	if !byName["b"].IsOptional || !byName["b"].IsReadonly {
		t.Fatalf("expected b optional and readonly, got %+v", byName["b"])
	}
	if byName["a"].IsOptional {
		t.Fatalf("expected a required")
	}
}

func TestPickOmit(t *testing.T) {
	tl := ast.NewTypeLiteral(
		[]*ast.PropertySignature{prop("a", ast.StringKeyword, false), prop("b", ast.NumberKeyword, false), prop("c", ast.BooleanKeyword, true)},
		[]*ast.IndexSignature{ast.NewIndexSignature(ast.StringKeyword, ast.UnknownKeyword, false)},
	)
	picked := ast.Pick(tl, ast.StringKey("a"), ast.StringKey("c"))
	if ast.Describe(picked) != "{ c?: boolean; a: string }" {
		t.Fatalf("unexpected pick: %s", ast.Describe(picked))
	}
	omitted := ast.Omit(tl, ast.StringKey("a"))
	if ast.Describe(omitted) != "{ c?: boolean; b: number }" {
		t.Fatalf("unexpected omit: %s", ast.Describe(omitted))
	}

	tup := ast.NewTuple([]ast.Element{ast.NewElement(ast.StringKeyword, false), ast.NewElement(ast.NumberKeyword, false)}, nil, false)
	if got := ast.Pick(tup, ast.StringKey("1")); ast.Describe(got) != "{ 1: number }" {
		t.Fatalf("unexpected tuple pick: %s", ast.Describe(got))
	}
}

func TestPartial(t *testing.T) {
	tup := ast.NewTuple([]ast.Element{ast.NewElement(ast.StringKeyword, false)}, []ast.Node{ast.NumberKeyword}, true)
	got := ast.Partial(tup)
	if ast.Describe(got) != "readonly [string?, ...(number | undefined)[]]" {
		t.Fatalf("unexpected partial tuple: %s", ast.Describe(got))
	}

	tl := ast.NewTypeLiteral([]*ast.PropertySignature{prop("a", ast.StringKeyword, false)}, nil)
	ref := ast.NewRefinement(tl, func(any) bool { return false }, ast.Annotations{Label: "never"})
	got = ast.Partial(ref)
	if got.Kind() != ast.KindTypeLiteral || ast.Describe(got) != "{ a?: string }" {
		t.Fatalf("expected refinement dropped and property optional, got %s", ast.Describe(got))
	}

	lz := ast.Partial(ast.NewLazy(func() ast.Node { return tl }))
	l, ok := lz.(*ast.Lazy)
	if !ok || ast.Describe(l.Thunk()) != "{ a?: string }" {
		t.Fatalf("expected lazy partial, got %s", ast.Describe(lz))
	}
}

func TestExtend(t *testing.T) {
	a := ast.NewTypeLiteral([]*ast.PropertySignature{prop("a", ast.StringKeyword, false)}, nil)
	b := ast.NewTypeLiteral([]*ast.PropertySignature{prop("b", ast.NewLiteral(1), false)}, nil)
	got, err := ast.Extend(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ast.Describe(got) != "{ b: 1; a: string }" {
		t.Fatalf("unexpected extend: %s", ast.Describe(got))
	}
	if _, err := ast.Extend(a, ast.StringKeyword); !errors.Is(err, ast.ErrExtend) {
		t.Fatalf("expected ErrExtend, got %v", err)
	}
}
