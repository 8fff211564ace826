package dsl

import (
	"github.com/reoring/skema/ast"
)

func String() ast.Node    { return ast.StringKeyword }
func Number() ast.Node    { return ast.NumberKeyword }
func Bool() ast.Node      { return ast.BooleanKeyword }
func BigInt() ast.Node    { return ast.BigIntKeyword }
func Symbol() ast.Node    { return ast.SymbolKeyword }
func Unknown() ast.Node   { return ast.UnknownKeyword }
func Any() ast.Node       { return ast.AnyKeyword }
func Never() ast.Node     { return ast.NeverKeyword }
func Undefined() ast.Node { return ast.UndefinedKeyword }
func Void() ast.Node      { return ast.VoidKeyword }

// NonPrimitive is the `object` keyword: any record, array or other
// non-primitive value.
func NonPrimitive() ast.Node { return ast.ObjectKeyword }

// Null matches nil.
func Null() ast.Node { return ast.NewLiteral(nil) }

// Literal matches any of vs. It panics on unsupported literal types.
func Literal(vs ...any) ast.Node {
	nodes := make([]ast.Node, len(vs))
	for i, v := range vs {
		nodes[i] = ast.NewLiteral(v)
	}
	return ast.NewUnion(nodes...)
}

// UniqueSymbol matches the symbol registered under key.
func UniqueSymbol(key string) ast.Node { return ast.NewUniqueSymbol(ast.SymbolFor(key)) }

// Enum builds an enum from name/value pairs given in order.
func Enum(pairs ...ast.EnumMember) ast.Node { return ast.NewEnums(pairs...) }

// Member is shorthand for an enum member.
func Member(name string, value any) ast.EnumMember { return ast.EnumMember{Name: name, Value: value} }

// TemplateLiteral concatenates parts (string literals, string/number keywords,
// nested templates and unions of those) into a template literal type.
func TemplateLiteral(parts ...ast.Node) (ast.Node, error) { return ast.TemplateLiteralOf(parts...) }

// MustTemplateLiteral is TemplateLiteral that panics on error.
func MustTemplateLiteral(parts ...ast.Node) ast.Node {
	n, err := ast.TemplateLiteralOf(parts...)
	if err != nil {
		panic(err)
	}
	return n
}
