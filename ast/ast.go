// Package ast defines the schema representation shared by the decoder and the
// derived interpreters: a closed set of node variants, their canonicalizing
// constructors, and the structural queries built on top of them.
//
// Nodes are immutable after construction and safe for concurrent use.
package ast

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
)

// Kind discriminates node variants.
type Kind int

const (
	KindTypeAlias Kind = iota
	KindLiteral
	KindUniqueSymbol
	KindUndefined
	KindVoid
	KindNever
	KindUnknown
	KindAny
	KindString
	KindNumber
	KindBoolean
	KindBigInt
	KindSymbol
	KindObject
	KindEnums
	KindTemplateLiteral
	KindTuple
	KindTypeLiteral
	KindUnion
	KindLazy
	KindRefinement
	KindTransform
)

var kindNames = [...]string{
	KindTypeAlias:       "TypeAlias",
	KindLiteral:         "Literal",
	KindUniqueSymbol:    "UniqueSymbol",
	KindUndefined:       "UndefinedKeyword",
	KindVoid:            "VoidKeyword",
	KindNever:           "NeverKeyword",
	KindUnknown:         "UnknownKeyword",
	KindAny:             "AnyKeyword",
	KindString:          "StringKeyword",
	KindNumber:          "NumberKeyword",
	KindBoolean:         "BooleanKeyword",
	KindBigInt:          "BigIntKeyword",
	KindSymbol:          "SymbolKeyword",
	KindObject:          "ObjectKeyword",
	KindEnums:           "Enums",
	KindTemplateLiteral: "TemplateLiteral",
	KindTuple:           "Tuple",
	KindTypeLiteral:     "TypeLiteral",
	KindUnion:           "Union",
	KindLazy:            "Lazy",
	KindRefinement:      "Refinement",
	KindTransform:       "Transform",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the keyword kinds.
func (k Kind) IsKeyword() bool { return k >= KindUndefined && k <= KindObject }

// Node is a schema node. The set of implementations is closed; switch on the
// concrete type or on Kind.
type Node interface {
	Kind() Kind
	Annotations() Annotations
	node()
}

// Annotations carries the metadata known to the engine and the derived
// interpreters. Zero fields are unset.
type Annotations struct {
	Identifier  string
	Title       string
	Description string
	// Message replaces the leaf failure message produced at the annotated node.
	Message func(actual any) string
	// Label names a refinement predicate or a transform in failure messages.
	Label         string
	Examples      []any
	Documentation string
	// JSONSchema holds keywords merged into the JSON Schema projection of
	// the node, such as {"minLength": 3} for a length refinement.
	JSONSchema map[string]any
}

// merge returns a with the non-zero fields of o applied on top.
func (a Annotations) merge(o Annotations) Annotations {
	if o.Identifier != "" {
		a.Identifier = o.Identifier
	}
	if o.Title != "" {
		a.Title = o.Title
	}
	if o.Description != "" {
		a.Description = o.Description
	}
	if o.Message != nil {
		a.Message = o.Message
	}
	if o.Label != "" {
		a.Label = o.Label
	}
	if o.Examples != nil {
		a.Examples = o.Examples
	}
	if o.Documentation != "" {
		a.Documentation = o.Documentation
	}
	if o.JSONSchema != nil {
		a.JSONSchema = o.JSONSchema
	}
	return a
}

type base struct{ ann Annotations }

func (b base) Annotations() Annotations { return b.ann }
func (base) node()                      {}

// TypeAlias names a type. It is transparent to the decoder.
type TypeAlias struct {
	base
	TypeParameters []Node
	Type           Node
}

func (*TypeAlias) Kind() Kind { return KindTypeAlias }

// NewTypeAlias wraps t under an alias with the given identifier.
func NewTypeAlias(identifier string, params []Node, t Node) *TypeAlias {
	return &TypeAlias{base: base{ann: Annotations{Identifier: identifier}}, TypeParameters: params, Type: t}
}

// Literal matches a single scalar value: string, float64, bool, nil (null) or
// *big.Int.
type Literal struct {
	base
	Value any
}

func (*Literal) Kind() Kind { return KindLiteral }

// NewLiteral builds a literal node. Go integer and float kinds are normalized
// to float64 and big.Int to *big.Int. It panics on any other value type.
func NewLiteral(v any) *Literal {
	lv, ok := normalizeLiteral(v)
	if !ok {
		panic(fmt.Sprintf("ast: unsupported literal value of type %T", v))
	}
	return &Literal{Value: lv}
}

func normalizeLiteral(v any) (any, bool) {
	switch x := v.(type) {
	case nil, string, bool, float64:
		return x, true
	case *big.Int:
		return x, x != nil
	case big.Int:
		return new(big.Int).Set(&x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32:
		return rv.Float(), true
	}
	return nil, false
}

// UniqueSymbol matches exactly one symbol.
type UniqueSymbol struct {
	base
	Symbol Symbol
}

func (*UniqueSymbol) Kind() Kind { return KindUniqueSymbol }

// NewUniqueSymbol builds a unique symbol node.
func NewUniqueSymbol(s Symbol) *UniqueSymbol { return &UniqueSymbol{Symbol: s} }

// Keyword is one of the eleven keyword nodes. Use the package-level values.
type Keyword struct {
	base
	kind Kind
}

func (k *Keyword) Kind() Kind { return k.kind }

func keyword(k Kind, title string) *Keyword {
	return &Keyword{base: base{ann: Annotations{Title: title}}, kind: k}
}

var (
	UndefinedKeyword = keyword(KindUndefined, "undefined")
	VoidKeyword      = keyword(KindVoid, "void")
	NeverKeyword     = keyword(KindNever, "never")
	UnknownKeyword   = keyword(KindUnknown, "unknown")
	AnyKeyword       = keyword(KindAny, "any")
	StringKeyword    = keyword(KindString, "string")
	NumberKeyword    = keyword(KindNumber, "number")
	BooleanKeyword   = keyword(KindBoolean, "boolean")
	BigIntKeyword    = keyword(KindBigInt, "bigint")
	SymbolKeyword    = keyword(KindSymbol, "symbol")
	ObjectKeyword    = keyword(KindObject, "object")
)

// EnumMember is a labelled enum value (string or float64).
type EnumMember struct {
	Name  string
	Value any
}

// Enums matches any of its member values.
type Enums struct {
	base
	Members []EnumMember
}

func (*Enums) Kind() Kind { return KindEnums }

// NewEnums builds an enum node. Numeric values are normalized to float64.
func NewEnums(members ...EnumMember) *Enums {
	ms := make([]EnumMember, len(members))
	for i, m := range members {
		v, ok := normalizeLiteral(m.Value)
		if !ok {
			v = m.Value
		}
		ms[i] = EnumMember{Name: m.Name, Value: v}
	}
	return &Enums{Members: ms}
}

// TemplateSpan is a placeholder (string or number keyword) followed by a
// literal.
type TemplateSpan struct {
	Type    Node
	Literal string
}

// TemplateLiteral matches strings of the shape head, span, span...
type TemplateLiteral struct {
	base
	Head  string
	Spans []TemplateSpan

	cache *patternCache
}

func (*TemplateLiteral) Kind() Kind { return KindTemplateLiteral }

// NewTemplateLiteral returns a template literal, or a string Literal when
// spans is empty.
func NewTemplateLiteral(head string, spans []TemplateSpan) Node {
	if len(spans) == 0 {
		return NewLiteral(head)
	}
	return &TemplateLiteral{Head: head, Spans: spans, cache: &patternCache{}}
}

// Element is a positional tuple member.
type Element struct {
	Type       Node
	IsOptional bool
}

// NewElement builds a tuple element.
func NewElement(t Node, optional bool) Element { return Element{Type: t, IsOptional: optional} }

// Tuple matches arrays: leading Elements, then, when Rest is non-empty, any
// number of Rest[0] values followed by exactly one value for each of
// Rest[1:].
type Tuple struct {
	base
	Elements   []Element
	Rest       []Node
	IsReadonly bool
}

func (*Tuple) Kind() Kind { return KindTuple }

// HasRest reports whether the tuple has a rest run.
func (t *Tuple) HasRest() bool { return len(t.Rest) > 0 }

// NewTuple builds a tuple without checking element ordering; use
// AppendElement and AppendRestElement to grow tuples safely.
func NewTuple(elements []Element, rest []Node, readonly bool) *Tuple {
	return &Tuple{Elements: elements, Rest: rest, IsReadonly: readonly}
}

// NewArray builds a tuple with no leading elements and a rest of item.
func NewArray(item Node, readonly bool) *Tuple {
	return &Tuple{Rest: []Node{item}, IsReadonly: readonly}
}

// PropertySignature is a named record member.
type PropertySignature struct {
	Name       PropertyKey
	Type       Node
	IsOptional bool
	IsReadonly bool
}

// NewPropertySignature builds a property signature.
func NewPropertySignature(name PropertyKey, t Node, optional, readonly bool) *PropertySignature {
	return &PropertySignature{Name: name, Type: t, IsOptional: optional, IsReadonly: readonly}
}

// IndexSignature types every key accepted by Parameter.
type IndexSignature struct {
	Parameter  Node
	Type       Node
	IsReadonly bool
}

// NewIndexSignature builds an index signature.
func NewIndexSignature(param, t Node, readonly bool) *IndexSignature {
	return &IndexSignature{Parameter: param, Type: t, IsReadonly: readonly}
}

// TypeLiteral matches records.
type TypeLiteral struct {
	base
	PropertySignatures []*PropertySignature
	IndexSignatures    []*IndexSignature
}

func (*TypeLiteral) Kind() Kind { return KindTypeLiteral }

// NewTypeLiteral builds a type literal with both member lists stably sorted by
// ascending cardinality of their types.
func NewTypeLiteral(props []*PropertySignature, index []*IndexSignature) *TypeLiteral {
	ps := append([]*PropertySignature(nil), props...)
	is := append([]*IndexSignature(nil), index...)
	sort.SliceStable(ps, func(i, j int) bool { return Cardinality(ps[i].Type) < Cardinality(ps[j].Type) })
	sort.SliceStable(is, func(i, j int) bool { return Cardinality(is[i].Type) < Cardinality(is[j].Type) })
	return &TypeLiteral{PropertySignatures: ps, IndexSignatures: is}
}

// Union matches any of its members. Build unions with NewUnion.
type Union struct {
	base
	Types []Node
}

func (*Union) Kind() Kind { return KindUnion }

// Lazy defers construction of a node until first use. The pointer is the
// node's identity.
type Lazy struct {
	base
	Thunk func() Node
}

func (*Lazy) Kind() Kind { return KindLazy }

// NewLazy builds a lazy node.
func NewLazy(thunk func() Node) *Lazy { return &Lazy{Thunk: thunk} }

// Refinement narrows From with a predicate over decoded values.
type Refinement struct {
	base
	From      Node
	Predicate func(any) bool
}

func (*Refinement) Kind() Kind { return KindRefinement }

// NewRefinement builds a refinement node. The label annotation names the
// predicate in failure messages.
func NewRefinement(from Node, pred func(any) bool, a Annotations) *Refinement {
	return &Refinement{base: base{ann: a}, From: from, Predicate: pred}
}

// Transform converts between the From representation and the To
// representation.
type Transform struct {
	base
	From   Node
	To     Node
	Decode func(any) (any, error)
	Encode func(any) (any, error)
}

func (*Transform) Kind() Kind { return KindTransform }

// NewTransform builds a transform node.
func NewTransform(from, to Node, decode, encode func(any) (any, error), a Annotations) *Transform {
	return &Transform{base: base{ann: a}, From: from, To: to, Decode: decode, Encode: encode}
}

// Annotate returns a copy of n with a merged over its annotations. Annotating
// a Lazy yields a new lazy identity sharing the same thunk.
func Annotate(n Node, a Annotations) Node {
	switch n := n.(type) {
	case *TypeAlias:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *Literal:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *UniqueSymbol:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *Keyword:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *Enums:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *TemplateLiteral:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *Tuple:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *TypeLiteral:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *Union:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *Lazy:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *Refinement:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	case *Transform:
		c := *n
		c.ann = c.ann.merge(a)
		return &c
	}
	return n
}
