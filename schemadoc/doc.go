// Package schemadoc loads schema documents written in YAML or JSON into ASTs.
//
// A document holds named definitions and a root node:
//
//	definitions:
//	  Category:
//	    type: struct
//	    fields:
//	      name: {type: string, minLength: 1}
//	      children: {type: array, items: {ref: Category}}
//	root:
//	  ref: Category
//
// A document without root and definitions is read as a single node. ref
// resolves lazily, so definitions may refer to themselves or each other.
// Constraints beyond the built-in filters are written as expr expressions
// over `value`:
//
//	refine:
//	  - expr: value > 0 && value < 100
//	    label: percentage
package schemadoc
