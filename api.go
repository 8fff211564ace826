package skema

import "github.com/reoring/skema/ast"

// Decode validates v against n and returns the decoded value, or the reasons
// it does not conform. Decoding is pure: it never mutates v and shares no
// state between calls, so a node may be used from many goroutines.
func Decode(n ast.Node, v any, opts ...DecodeOpt) Result {
	t := newTraversal(false, lastDecodeOpt(opts))
	return resultOf(t.run(n, v))
}

// Encode is the structural inverse of Decode: transforms apply their encode
// function and then encode the result against their From node.
func Encode(n ast.Node, v any, opts ...DecodeOpt) Result {
	t := newTraversal(true, lastDecodeOpt(opts))
	return resultOf(t.run(n, v))
}

// Is reports whether v decodes against n without failure. Warnings are
// accepted.
func Is(n ast.Node, v any) bool {
	return !Decode(n, v).IsFailure()
}

// Validate returns the DecodeErrors of a failed decode, nil otherwise.
func Validate(n ast.Node, v any, opts ...DecodeOpt) error {
	return Decode(n, v, opts...).Err()
}
