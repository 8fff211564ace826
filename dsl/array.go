package dsl

import (
	"github.com/reoring/skema/ast"
)

// Array is ReadonlyArray<item>.
func Array(item ast.Node) *ast.Tuple { return ast.NewArray(item, true) }

// MutableArray is Array<item>.
func MutableArray(item ast.Node) *ast.Tuple { return ast.NewArray(item, false) }

// NonEmptyArray is readonly [item, ...item[]].
func NonEmptyArray(item ast.Node) *ast.Tuple {
	return ast.NewTuple([]ast.Element{ast.NewElement(item, false)}, []ast.Node{item}, true)
}

type tupleBuilder struct {
	t   *ast.Tuple
	err error
}

// Tuple starts a readonly tuple with the given required elements.
func Tuple(required ...ast.Node) *tupleBuilder {
	b := &tupleBuilder{t: ast.NewTuple(nil, nil, true)}
	for _, n := range required {
		b.add(ast.NewElement(n, false))
	}
	return b
}

func (b *tupleBuilder) add(e ast.Element) {
	if b.err != nil {
		return
	}
	b.t, b.err = ast.AppendElement(b.t, e)
}

// Required appends required elements.
func (b *tupleBuilder) Required(ns ...ast.Node) *tupleBuilder {
	for _, n := range ns {
		b.add(ast.NewElement(n, false))
	}
	return b
}

// Optional appends optional elements.
func (b *tupleBuilder) Optional(ns ...ast.Node) *tupleBuilder {
	for _, n := range ns {
		b.add(ast.NewElement(n, true))
	}
	return b
}

// Rest sets the variadic element. Calling it twice is an error.
func (b *tupleBuilder) Rest(n ast.Node) *tupleBuilder {
	if b.err == nil {
		if b.t.HasRest() {
			b.err = ast.ErrRestAfterRest
		} else {
			b.t, b.err = ast.AppendRestElement(b.t, n)
		}
	}
	return b
}

// Post appends required elements after the rest element.
func (b *tupleBuilder) Post(ns ...ast.Node) *tupleBuilder { return b.Required(ns...) }

// Build returns the tuple or the first construction error.
func (b *tupleBuilder) Build() (*ast.Tuple, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.t, nil
}

// MustBuild is Build that panics on error.
func (b *tupleBuilder) MustBuild() *ast.Tuple {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
