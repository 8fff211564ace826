package ast

import (
	"errors"
	"math/big"
	"sort"
)

var (
	ErrRestAfterRest         = errors.New("a rest element cannot follow another rest element")
	ErrRequiredAfterOptional = errors.New("a required element cannot follow an optional element")
	ErrOptionalAfterRest     = errors.New("an optional element cannot follow a rest element")
)

// Cardinality ranks how narrow a type is. Type literal members are checked in
// ascending cardinality order.
func Cardinality(n Node) int {
	switch n := n.(type) {
	case *Keyword:
		switch n.kind {
		case KindNever:
			return 0
		case KindUndefined, KindVoid:
			return 1
		case KindBoolean:
			return 2
		case KindString, KindNumber, KindBigInt, KindSymbol:
			return 3
		case KindObject:
			return 4
		case KindUnknown, KindAny:
			return 6
		}
	case *Literal, *UniqueSymbol:
		return 1
	case *TypeAlias:
		return Cardinality(n.Type)
	case *Refinement:
		return Cardinality(n.From)
	case *Transform:
		return Cardinality(n.To)
	}
	return 5
}

// lazyWeight ranks lazy nodes without forcing them.
const lazyWeight = 10

// Weight ranks how informative a union member is. Union members are tried in
// descending weight order.
func Weight(n Node) int {
	switch n := n.(type) {
	case *TypeAlias:
		return Weight(n.Type)
	case *Tuple:
		w := len(n.Elements)
		if n.HasRest() {
			w++
		}
		return w
	case *TypeLiteral:
		return len(n.PropertySignatures) + len(n.IndexSignatures)
	case *Union:
		w := 0
		for _, m := range n.Types {
			w += Weight(m)
		}
		return w
	case *Lazy:
		return lazyWeight
	}
	return 0
}

// NewUnion builds the canonical union of candidates: nested unions are
// flattened, structural duplicates removed, literals subsumed by a string or
// number keyword and unique symbols subsumed by the symbol keyword dropped.
// It returns NeverKeyword for no members and the member itself for one.
func NewUnion(candidates ...Node) Node {
	members := unify(candidates)
	switch len(members) {
	case 0:
		return NeverKeyword
	case 1:
		return members[0]
	}
	sort.SliceStable(members, func(i, j int) bool { return Weight(members[i]) > Weight(members[j]) })
	return &Union{Types: members}
}

func unify(candidates []Node) []Node {
	var flat []Node
	var add func(n Node)
	add = func(n Node) {
		if u, ok := n.(*Union); ok {
			for _, m := range u.Types {
				add(m)
			}
			return
		}
		for _, seen := range flat {
			if Equal(seen, n) {
				return
			}
		}
		flat = append(flat, n)
	}
	for _, c := range candidates {
		if c != nil {
			add(c)
		}
	}

	var hasString, hasNumber, hasSymbol bool
	for _, m := range flat {
		switch m.Kind() {
		case KindString:
			hasString = true
		case KindNumber:
			hasNumber = true
		case KindSymbol:
			hasSymbol = true
		}
	}
	if !hasString && !hasNumber && !hasSymbol {
		return flat
	}
	out := flat[:0:0]
	for _, m := range flat {
		switch m := m.(type) {
		case *Literal:
			if _, ok := m.Value.(string); ok && hasString {
				continue
			}
			if _, ok := m.Value.(float64); ok && hasNumber {
				continue
			}
		case *UniqueSymbol:
			if hasSymbol {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// Equal reports structural equality. TypeAlias, Lazy, Refinement and Transform
// nodes are equal only to themselves.
func Equal(a, b Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Keyword:
		return true
	case *Literal:
		return LiteralValueEqual(a.Value, b.(*Literal).Value)
	case *UniqueSymbol:
		return a.Symbol == b.(*UniqueSymbol).Symbol
	case *Enums:
		bm := b.(*Enums).Members
		if len(a.Members) != len(bm) {
			return false
		}
		for i, m := range a.Members {
			if m.Name != bm[i].Name || !LiteralValueEqual(m.Value, bm[i].Value) {
				return false
			}
		}
		return true
	case *TemplateLiteral:
		bt := b.(*TemplateLiteral)
		if a.Head != bt.Head || len(a.Spans) != len(bt.Spans) {
			return false
		}
		for i, s := range a.Spans {
			if s.Literal != bt.Spans[i].Literal || !Equal(s.Type, bt.Spans[i].Type) {
				return false
			}
		}
		return true
	case *Tuple:
		bt := b.(*Tuple)
		if a.IsReadonly != bt.IsReadonly || len(a.Elements) != len(bt.Elements) || len(a.Rest) != len(bt.Rest) {
			return false
		}
		for i, e := range a.Elements {
			if e.IsOptional != bt.Elements[i].IsOptional || !Equal(e.Type, bt.Elements[i].Type) {
				return false
			}
		}
		for i, r := range a.Rest {
			if !Equal(r, bt.Rest[i]) {
				return false
			}
		}
		return true
	case *TypeLiteral:
		bt := b.(*TypeLiteral)
		if len(a.PropertySignatures) != len(bt.PropertySignatures) || len(a.IndexSignatures) != len(bt.IndexSignatures) {
			return false
		}
		for i, p := range a.PropertySignatures {
			q := bt.PropertySignatures[i]
			if p.Name != q.Name || p.IsOptional != q.IsOptional || p.IsReadonly != q.IsReadonly || !Equal(p.Type, q.Type) {
				return false
			}
		}
		for i, s := range a.IndexSignatures {
			q := bt.IndexSignatures[i]
			if s.IsReadonly != q.IsReadonly || !Equal(s.Parameter, q.Parameter) || !Equal(s.Type, q.Type) {
				return false
			}
		}
		return true
	case *Union:
		bu := b.(*Union)
		if len(a.Types) != len(bu.Types) {
			return false
		}
		for _, m := range a.Types {
			if !containsNode(bu.Types, m) {
				return false
			}
		}
		return true
	}
	return false
}

func containsNode(list []Node, n Node) bool {
	for _, m := range list {
		if Equal(m, n) {
			return true
		}
	}
	return false
}

// LiteralValueEqual compares two literal values. Big integers compare by
// value.
func LiteralValueEqual(a, b any) bool {
	if ab, ok := a.(*big.Int); ok {
		bb, ok := b.(*big.Int)
		return ok && ab.Cmp(bb) == 0
	}
	if _, ok := b.(*big.Int); ok {
		return false
	}
	return a == b
}

// AppendRestElement returns a copy of t with a rest run of rest.
func AppendRestElement(t *Tuple, rest Node) (*Tuple, error) {
	if t.HasRest() {
		return nil, ErrRestAfterRest
	}
	return &Tuple{base: t.base, Elements: t.Elements, Rest: []Node{rest}, IsReadonly: t.IsReadonly}, nil
}

// AppendElement returns a copy of t with e appended. After a rest run only
// required elements may follow; they extend the run's trailing elements.
func AppendElement(t *Tuple, e Element) (*Tuple, error) {
	if !e.IsOptional {
		for _, x := range t.Elements {
			if x.IsOptional {
				return nil, ErrRequiredAfterOptional
			}
		}
	}
	if t.HasRest() {
		if e.IsOptional {
			return nil, ErrOptionalAfterRest
		}
		rest := append(append([]Node(nil), t.Rest...), e.Type)
		return &Tuple{base: t.base, Elements: t.Elements, Rest: rest, IsReadonly: t.IsReadonly}, nil
	}
	elems := append(append([]Element(nil), t.Elements...), e)
	return &Tuple{base: t.base, Elements: elems, Rest: t.Rest, IsReadonly: t.IsReadonly}, nil
}
