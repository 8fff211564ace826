package ast

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrKeyOf  = errors.New("cannot compute keyof")
	ErrRecord = errors.New("cannot compute record")
	ErrExtend = errors.New("extend is not supported on this schema")
)

// KeyOf returns the union of the keys of n.
func KeyOf(n Node) (Node, error) {
	keys, err := keyOf(n)
	if err != nil {
		return nil, err
	}
	return NewUnion(keys...), nil
}

func keyOf(n Node) ([]Node, error) {
	switch n := n.(type) {
	case *TypeAlias:
		return keyOf(n.Type)
	case *Keyword:
		switch n.kind {
		case KindNever, KindAny:
			return []Node{StringKeyword, NumberKeyword, SymbolKeyword}, nil
		case KindString:
			return []Node{NewLiteral("length")}, nil
		}
		return []Node{NeverKeyword}, nil
	case *TypeLiteral:
		out := make([]Node, 0, len(n.PropertySignatures)+len(n.IndexSignatures))
		for _, ps := range n.PropertySignatures {
			out = append(out, keyNode(ps.Name))
		}
		for _, is := range n.IndexSignatures {
			out = append(out, is.Parameter)
		}
		return out, nil
	case *Union:
		out, err := keyOf(n.Types[0])
		if err != nil {
			return nil, err
		}
		for _, m := range n.Types[1:] {
			keys, err := keyOf(m)
			if err != nil {
				return nil, err
			}
			out = intersectNodes(out, keys)
		}
		return out, nil
	case *Lazy:
		return keyOf(n.Thunk())
	case *Refinement:
		return keyOf(n.From)
	case *Transform:
		return keyOf(n.To)
	case *Literal, *TemplateLiteral, *Tuple:
		return nil, fmt.Errorf("%w of %s", ErrKeyOf, n.Kind())
	}
	return []Node{NeverKeyword}, nil
}

func keyNode(k PropertyKey) Node {
	if s, ok := k.Symbol(); ok {
		return NewUniqueSymbol(s)
	}
	return NewLiteral(k.Name())
}

func intersectNodes(a, b []Node) []Node {
	var out []Node
	for _, n := range a {
		if containsNode(b, n) {
			out = append(out, n)
		}
	}
	return out
}

// Record expands key into property signatures (literal and unique symbol
// keys) and index signatures (string, symbol, template literal and refinement
// keys), all typed by value.
func Record(key, value Node, readonly bool) (*TypeLiteral, error) {
	var props []*PropertySignature
	var index []*IndexSignature
	var walk func(k Node) error
	walk = func(k Node) error {
		switch k := k.(type) {
		case *TypeAlias:
			return walk(k.Type)
		case *Keyword:
			switch k.kind {
			case KindNever:
				return nil
			case KindString, KindSymbol:
				index = append(index, NewIndexSignature(k, value, readonly))
				return nil
			}
		case *TemplateLiteral, *Refinement:
			index = append(index, NewIndexSignature(k, value, readonly))
			return nil
		case *Literal:
			switch v := k.Value.(type) {
			case string:
				props = append(props, NewPropertySignature(StringKey(v), value, false, readonly))
			case float64:
				props = append(props, NewPropertySignature(StringKey(FormatNumber(v)), value, false, readonly))
			}
			return nil
		case *UniqueSymbol:
			props = append(props, NewPropertySignature(SymbolKey(k.Symbol), value, false, readonly))
			return nil
		case *Union:
			for _, m := range k.Types {
				if err := walk(m); err != nil {
					return err
				}
			}
			return nil
		}
		return fmt.Errorf("%w with key %s", ErrRecord, k.Kind())
	}
	if err := walk(key); err != nil {
		return nil, err
	}
	return NewTypeLiteral(props, index), nil
}

// PropertyKeys lists the property keys of n. For a union only keys present in
// every member are returned.
func PropertyKeys(n Node) []PropertyKey {
	switch n := n.(type) {
	case *TypeAlias:
		return PropertyKeys(n.Type)
	case *Tuple:
		out := make([]PropertyKey, len(n.Elements))
		for i := range n.Elements {
			out[i] = StringKey(strconv.Itoa(i))
		}
		return out
	case *TypeLiteral:
		out := make([]PropertyKey, len(n.PropertySignatures))
		for i, ps := range n.PropertySignatures {
			out[i] = ps.Name
		}
		return out
	case *Union:
		out := PropertyKeys(n.Types[0])
		for _, m := range n.Types[1:] {
			keys := PropertyKeys(m)
			var kept []PropertyKey
			for _, k := range out {
				if containsKey(keys, k) {
					kept = append(kept, k)
				}
			}
			out = kept
		}
		return out
	case *Lazy:
		return PropertyKeys(n.Thunk())
	case *Refinement:
		return PropertyKeys(n.From)
	case *Transform:
		return PropertyKeys(n.To)
	}
	return nil
}

func containsKey(keys []PropertyKey, k PropertyKey) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}

// PropertySignatures returns the property signatures of n. Tuple elements
// become signatures named by index; a union yields one merged signature per
// common key.
func PropertySignatures(n Node) []*PropertySignature {
	switch n := n.(type) {
	case *TypeAlias:
		return PropertySignatures(n.Type)
	case *Tuple:
		out := make([]*PropertySignature, len(n.Elements))
		for i, e := range n.Elements {
			out[i] = NewPropertySignature(StringKey(strconv.Itoa(i)), e.Type, e.IsOptional, n.IsReadonly)
		}
		return out
	case *TypeLiteral:
		return n.PropertySignatures
	case *Union:
		var all []*PropertySignature
		for _, m := range n.Types {
			all = append(all, PropertySignatures(m)...)
		}
		keys := PropertyKeys(n)
		out := make([]*PropertySignature, 0, len(keys))
		for _, k := range keys {
			var types []Node
			var optional, readonly bool
			for _, ps := range all {
				if ps.Name != k {
					continue
				}
				optional = optional || ps.IsOptional
				readonly = readonly || ps.IsReadonly
				types = append(types, ps.Type)
			}
			out = append(out, NewPropertySignature(k, NewUnion(types...), optional, readonly))
		}
		return out
	case *Lazy:
		return PropertySignatures(n.Thunk())
	case *Refinement:
		return PropertySignatures(n.From)
	case *Transform:
		return PropertySignatures(n.To)
	}
	return nil
}

// Pick keeps the property signatures of n named by keys. Index signatures are
// dropped.
func Pick(n Node, keys ...PropertyKey) *TypeLiteral {
	var out []*PropertySignature
	for _, ps := range PropertySignatures(n) {
		if containsKey(keys, ps.Name) {
			out = append(out, ps)
		}
	}
	return NewTypeLiteral(out, nil)
}

// Omit drops the property signatures of n named by keys. Index signatures are
// dropped.
func Omit(n Node, keys ...PropertyKey) *TypeLiteral {
	var out []*PropertySignature
	for _, ps := range PropertySignatures(n) {
		if !containsKey(keys, ps.Name) {
			out = append(out, ps)
		}
	}
	return NewTypeLiteral(out, nil)
}

// Partial makes every tuple element and property of n optional. Refinements
// and transforms are unwrapped.
func Partial(n Node) Node {
	switch n := n.(type) {
	case *TypeAlias:
		return Partial(n.Type)
	case *Tuple:
		elems := make([]Element, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = NewElement(e.Type, true)
		}
		var rest []Node
		if n.HasRest() {
			rest = []Node{NewUnion(append(append([]Node(nil), n.Rest...), UndefinedKeyword)...)}
		}
		return NewTuple(elems, rest, n.IsReadonly)
	case *TypeLiteral:
		props := make([]*PropertySignature, len(n.PropertySignatures))
		for i, ps := range n.PropertySignatures {
			props[i] = NewPropertySignature(ps.Name, ps.Type, true, ps.IsReadonly)
		}
		return NewTypeLiteral(props, n.IndexSignatures)
	case *Union:
		members := make([]Node, len(n.Types))
		for i, m := range n.Types {
			members[i] = Partial(m)
		}
		return NewUnion(members...)
	case *Lazy:
		return NewLazy(func() Node { return Partial(n.Thunk()) })
	case *Refinement:
		return Partial(n.From)
	case *Transform:
		return Partial(n.To)
	}
	return n
}

// Extend merges the members of two type literals.
func Extend(a, b Node) (*TypeLiteral, error) {
	ta, ok := a.(*TypeLiteral)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExtend, a.Kind())
	}
	tb, ok := b.(*TypeLiteral)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExtend, b.Kind())
	}
	props := append(append([]*PropertySignature(nil), ta.PropertySignatures...), tb.PropertySignatures...)
	index := append(append([]*IndexSignature(nil), ta.IndexSignatures...), tb.IndexSignatures...)
	return NewTypeLiteral(props, index), nil
}
