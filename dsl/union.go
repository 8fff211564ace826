package dsl

import "github.com/reoring/skema/ast"

// Union builds the canonical union of members.
func Union(members ...ast.Node) ast.Node { return ast.NewUnion(members...) }

// Nullable is n | null.
func Nullable(n ast.Node) ast.Node { return ast.NewUnion(n, Null()) }

// Optional is n | undefined.
func Optional(n ast.Node) ast.Node { return ast.NewUnion(n, ast.UndefinedKeyword) }

// Nullish is n | null | undefined.
func Nullish(n ast.Node) ast.Node { return ast.NewUnion(n, Null(), ast.UndefinedKeyword) }

// Lazy defers building a node; use it for recursive schemas.
func Lazy(thunk func() ast.Node) ast.Node { return ast.NewLazy(thunk) }

// Alias names n.
func Alias(name string, n ast.Node) ast.Node { return ast.NewTypeAlias(name, nil, n) }
