// Package skema decodes and validates untyped values against schemas
// described as an AST (package ast).
//
// Overview:
//
// - Decode, Encode, Is and Validate run a schema over an in-memory value and
// report Success, Warning or Failure through Result.
// - Failures are trees of DecodeError; Issues flattens them into
// JSON-pointer-addressed entries for APIs and logs.
// - ParseFrom materializes JSON or YAML input through a Source, enforcing
// duplicate-key, depth and size limits, and then decodes it.
//
// Layout:
// - dsl/ builds schemas, codec/ provides ready-made transforms, jsonschema/
// projects schemas to JSON Schema and schemadoc/ loads schemas from YAML or
// JSON documents. The CLI lives under cmd/skema.
//
// Typical usage:
//
//	user := g.Object().
//		Field("name", g.Pipe(g.String(), g.MinLength(1))).Required().
//		Field("age", g.Number()).Optional().
//		MustBuild()
//	res, err := skema.ParseFrom(ctx, user, skema.JSONBytes(data))
//	if err != nil {
//		// input-level problem: syntax, duplicate key, depth, size
//	}
//	if res.IsFailure() {
//		fmt.Println(res.Errors.Tree())
//	}
package skema
