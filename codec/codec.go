// Package codec provides ready-made Transform nodes for common wire
// representations. Each codec decodes from a wire node (usually string) to a
// domain value and encodes back.
package codec

import (
	"errors"
	"fmt"

	"github.com/reoring/skema/ast"
)

// ErrUnexpectedValue is returned by an encode function given a value of the
// wrong Go type.
var ErrUnexpectedValue = errors.New("codec: unexpected value")

// Identity returns a Transform from n to n that leaves values untouched.
func Identity(n ast.Node) *ast.Transform {
	same := func(v any) (any, error) { return v, nil }
	return ast.NewTransform(n, n, same, same, ast.Annotations{})
}

// Compose chains two transforms: the output side of a feeds the input side of
// b. Decoding applies a then b, encoding applies b then a.
func Compose(a, b *ast.Transform) *ast.Transform {
	dec := func(v any) (any, error) {
		x, err := apply(a.Decode, v)
		if err != nil {
			return nil, err
		}
		return apply(b.Decode, x)
	}
	enc := func(v any) (any, error) {
		x, err := apply(b.Encode, v)
		if err != nil {
			return nil, err
		}
		return apply(a.Encode, x)
	}
	return ast.NewTransform(a.From, b.To, dec, enc, ast.Annotations{})
}

func apply(f func(any) (any, error), v any) (any, error) {
	if f == nil {
		return v, nil
	}
	return f(v)
}

// instanceOf builds a node accepting Go values of type T, labelled name.
func instanceOf[T any](name string) ast.Node {
	return ast.NewRefinement(ast.ObjectKeyword, func(v any) bool {
		_, ok := v.(T)
		return ok
	}, ast.Annotations{Identifier: name, Label: name})
}

func unexpected(v any, want string) error {
	return fmt.Errorf("%w: %T, want %s", ErrUnexpectedValue, v, want)
}
