// Package dsl is a builder façade over the ast constructors.
//
// Overview
//   - Primitives: String()/Number()/Bool()/BigInt()/Null()/Unknown() and friends return keyword nodes.
//   - Objects: Object().Field("a", String()).Required().Field("b", Number()).MustBuild().
//   - Sequences: Array(item), NonEmptyArray(item), Tuple(a, b).Optional(c).Rest(d).MustBuild().
//   - Filters: Pipe(String(), MinLength(3), Pattern(`^[a-z]+$`)) layers refinements.
//   - Queries: Pick/Omit/Partial/KeyOf/Extend/Record mirror the ast query functions.
//
// Every builder returns plain ast nodes, so the result can be passed straight
// to skema.Decode, skema.ParseFrom or jsonschema.FromAST.
//
// Must* helpers panic on construction errors, like ast.NewLiteral. Use the
// non-Must variant when the schema comes from untrusted input.
package dsl
