package dsl

import "github.com/reoring/skema/ast"

// Transform converts between from and to with total functions.
func Transform(from, to ast.Node, decode, encode func(any) any) *ast.Transform {
	return ast.NewTransform(from, to,
		func(v any) (any, error) { return decode(v), nil },
		func(v any) (any, error) { return encode(v), nil },
		ast.Annotations{},
	)
}

// TransformOrFail converts between from and to with functions that may
// reject their input.
func TransformOrFail(from, to ast.Node, decode, encode func(any) (any, error)) *ast.Transform {
	return ast.NewTransform(from, to, decode, encode, ast.Annotations{})
}

// Refine layers a predicate over n; label names the constraint in failure
// messages.
func Refine(n ast.Node, label string, pred func(any) bool) ast.Node {
	return ast.NewRefinement(n, pred, ast.Annotations{Label: label})
}

// Title, Description, Identifier, Examples and Message return an annotated
// copy of n.
func Title(n ast.Node, s string) ast.Node       { return ast.Annotate(n, ast.Annotations{Title: s}) }
func Description(n ast.Node, s string) ast.Node { return ast.Annotate(n, ast.Annotations{Description: s}) }
func Identifier(n ast.Node, s string) ast.Node  { return ast.Annotate(n, ast.Annotations{Identifier: s}) }
func Examples(n ast.Node, xs ...any) ast.Node   { return ast.Annotate(n, ast.Annotations{Examples: xs}) }
func Message(n ast.Node, f func(any) string) ast.Node {
	return ast.Annotate(n, ast.Annotations{Message: f})
}
