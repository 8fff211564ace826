package dsl

import (
	"fmt"

	"github.com/reoring/skema/ast"
)

type field struct {
	name     ast.PropertyKey
	node     ast.Node
	optional bool
	readonly bool
}

type objectBuilder struct {
	fields []*field
	byName map[ast.PropertyKey]int
	index  []*ast.IndexSignature
	ann    ast.Annotations
	named  bool
	err    error
}

type fieldStep struct {
	b *objectBuilder
	f *field
}

// Object starts a type literal builder. Fields are required unless marked
// Optional.
func Object() *objectBuilder {
	return &objectBuilder{byName: map[ast.PropertyKey]int{}}
}

// Field registers (or replaces) a string-keyed field.
func (b *objectBuilder) Field(name string, n ast.Node) *fieldStep {
	return b.field(ast.StringKey(name), n)
}

// SymbolField registers a symbol-keyed field.
func (b *objectBuilder) SymbolField(key string, n ast.Node) *fieldStep {
	return b.field(ast.SymbolKey(ast.SymbolFor(key)), n)
}

func (b *objectBuilder) field(k ast.PropertyKey, n ast.Node) *fieldStep {
	if n == nil && b.err == nil {
		b.err = fmt.Errorf("dsl: field %s has no schema", k)
	}
	f := &field{name: k, node: n}
	if i, ok := b.byName[k]; ok {
		b.fields[i] = f
	} else {
		b.byName[k] = len(b.fields)
		b.fields = append(b.fields, f)
	}
	return &fieldStep{b: b, f: f}
}

// Required marks the field as required (default) and returns the builder.
func (s *fieldStep) Required() *objectBuilder {
	s.f.optional = false
	return s.b
}

// Optional marks the field as optional and returns the builder.
func (s *fieldStep) Optional() *objectBuilder {
	s.f.optional = true
	return s.b
}

// Readonly marks the field readonly.
func (s *fieldStep) Readonly() *fieldStep {
	s.f.readonly = true
	return s
}

func (s *fieldStep) Field(name string, n ast.Node) *fieldStep { return s.b.Field(name, n) }
func (s *fieldStep) Build() (*ast.TypeLiteral, error)         { return s.b.Build() }
func (s *fieldStep) MustBuild() *ast.TypeLiteral              { return s.b.MustBuild() }

// Index adds an index signature; param must be a string, symbol, template
// literal or refinement key node.
func (b *objectBuilder) Index(param, value ast.Node) *objectBuilder {
	switch param.Kind() {
	case ast.KindString, ast.KindSymbol, ast.KindTemplateLiteral, ast.KindRefinement:
	default:
		if b.err == nil {
			b.err = fmt.Errorf("dsl: unsupported index signature parameter %s", ast.Describe(param))
		}
	}
	b.index = append(b.index, ast.NewIndexSignature(param, value, false))
	return b
}

// Title, Description and Identifier annotate the built node.
func (b *objectBuilder) Title(s string) *objectBuilder { b.ann.Title, b.named = s, true; return b }
func (b *objectBuilder) Description(s string) *objectBuilder {
	b.ann.Description, b.named = s, true
	return b
}
func (b *objectBuilder) Identifier(s string) *objectBuilder {
	b.ann.Identifier, b.named = s, true
	return b
}

// Build assembles the type literal.
func (b *objectBuilder) Build() (*ast.TypeLiteral, error) {
	if b.err != nil {
		return nil, b.err
	}
	props := make([]*ast.PropertySignature, len(b.fields))
	for i, f := range b.fields {
		props[i] = ast.NewPropertySignature(f.name, f.node, f.optional, f.readonly)
	}
	tl := ast.NewTypeLiteral(props, b.index)
	if b.named {
		return ast.Annotate(tl, b.ann).(*ast.TypeLiteral), nil
	}
	return tl, nil
}

// MustBuild is Build that panics on error.
func (b *objectBuilder) MustBuild() *ast.TypeLiteral {
	tl, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tl
}

// Record maps every key accepted by key to value.
func Record(key, value ast.Node) (*ast.TypeLiteral, error) { return ast.Record(key, value, false) }

// MustRecord is Record that panics on error.
func MustRecord(key, value ast.Node) *ast.TypeLiteral {
	tl, err := ast.Record(key, value, false)
	if err != nil {
		panic(err)
	}
	return tl
}

// Pick keeps the named string keys of n.
func Pick(n ast.Node, names ...string) *ast.TypeLiteral { return ast.Pick(n, stringKeys(names)...) }

// Omit drops the named string keys of n.
func Omit(n ast.Node, names ...string) *ast.TypeLiteral { return ast.Omit(n, stringKeys(names)...) }

// Partial makes every property (or tuple element) of n optional.
func Partial(n ast.Node) ast.Node { return ast.Partial(n) }

// KeyOf returns the union of n's keys.
func KeyOf(n ast.Node) (ast.Node, error) { return ast.KeyOf(n) }

// Extend concatenates the members of two type literals.
func Extend(a, b ast.Node) (*ast.TypeLiteral, error) { return ast.Extend(a, b) }

// MustExtend is Extend that panics on error.
func MustExtend(a, b ast.Node) *ast.TypeLiteral {
	tl, err := ast.Extend(a, b)
	if err != nil {
		panic(err)
	}
	return tl
}

func stringKeys(names []string) []ast.PropertyKey {
	keys := make([]ast.PropertyKey, len(names))
	for i, s := range names {
		keys[i] = ast.StringKey(s)
	}
	return keys
}
