package ast

import (
	"strconv"
	"strings"
)

// Describe renders n as a TypeScript-like type expression. An identifier or
// title annotation replaces the structural rendering.
func Describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	a := n.Annotations()
	if a.Identifier != "" {
		return a.Identifier
	}
	if a.Title != "" {
		return a.Title
	}
	switch n := n.(type) {
	case *TypeAlias:
		return Describe(n.Type)
	case *Literal:
		return FormatValue(n.Value)
	case *UniqueSymbol:
		return n.Symbol.String()
	case *Keyword:
		return keywordName(n.kind)
	case *Enums:
		vals := make([]string, len(n.Members))
		for i, m := range n.Members {
			vals[i] = FormatValue(m.Value)
		}
		return "<enum " + strconv.Itoa(len(vals)) + " value(s): " + strings.Join(vals, " | ") + ">"
	case *TemplateLiteral:
		var b strings.Builder
		b.WriteString("`")
		b.WriteString(n.Head)
		for _, s := range n.Spans {
			b.WriteString("${")
			b.WriteString(Describe(s.Type))
			b.WriteString("}")
			b.WriteString(s.Literal)
		}
		b.WriteString("`")
		return b.String()
	case *Tuple:
		return describeTuple(n)
	case *TypeLiteral:
		return describeTypeLiteral(n)
	case *Union:
		parts := make([]string, len(n.Types))
		for i, m := range n.Types {
			parts[i] = Describe(m)
		}
		return strings.Join(parts, " | ")
	case *Lazy:
		return "<suspended schema>"
	case *Refinement:
		if a.Label != "" {
			return a.Label
		}
		if a.Description != "" {
			return a.Description
		}
		return "<refinement schema>"
	case *Transform:
		return "(" + Describe(n.From) + " <-> " + Describe(n.To) + ")"
	}
	return n.Kind().String()
}

func keywordName(k Kind) string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindVoid:
		return "void"
	case KindNever:
		return "never"
	case KindUnknown:
		return "unknown"
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBigInt:
		return "bigint"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	}
	return k.String()
}

func describeTuple(t *Tuple) string {
	if len(t.Elements) == 0 && len(t.Rest) == 1 {
		if t.IsReadonly {
			return "ReadonlyArray<" + Describe(t.Rest[0]) + ">"
		}
		return "Array<" + Describe(t.Rest[0]) + ">"
	}
	parts := make([]string, 0, len(t.Elements)+len(t.Rest))
	for _, e := range t.Elements {
		s := Describe(e.Type)
		if e.IsOptional {
			s += "?"
		}
		parts = append(parts, s)
	}
	if t.HasRest() {
		parts = append(parts, "..."+wrapUnion(t.Rest[0])+"[]")
		for _, r := range t.Rest[1:] {
			parts = append(parts, Describe(r))
		}
	}
	s := "[" + strings.Join(parts, ", ") + "]"
	if t.IsReadonly {
		s = "readonly " + s
	}
	return s
}

func wrapUnion(n Node) string {
	s := Describe(n)
	if _, ok := n.(*Union); ok && n.Annotations().Identifier == "" && n.Annotations().Title == "" {
		return "(" + s + ")"
	}
	return s
}

func describeTypeLiteral(t *TypeLiteral) string {
	if len(t.PropertySignatures) == 0 && len(t.IndexSignatures) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(t.PropertySignatures)+len(t.IndexSignatures))
	for _, ps := range t.PropertySignatures {
		var b strings.Builder
		if ps.IsReadonly {
			b.WriteString("readonly ")
		}
		if ps.Name.IsSymbol() {
			b.WriteString("[" + ps.Name.String() + "]")
		} else {
			b.WriteString(ps.Name.Name())
		}
		if ps.IsOptional {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(Describe(ps.Type))
		parts = append(parts, b.String())
	}
	for _, is := range t.IndexSignatures {
		s := "[x: " + Describe(is.Parameter) + "]: " + Describe(is.Type)
		if is.IsReadonly {
			s = "readonly " + s
		}
		parts = append(parts, s)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
