package jsonschema

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/skema/ast"
)

// ErrUnsupported is returned for nodes JSON has no representation for
// (symbols, bigint literals, a bare undefined).
var ErrUnsupported = errors.New("jsonschema: unsupported node")

// FromAST projects the wire side of n: transforms contribute their From node
// and refinements contribute their JSONSchema annotation on top of their From
// node. Lazy nodes and type aliases become $defs entries.
func FromAST(n ast.Node) (*Schema, error) {
	p := &projector{names: map[any]string{}, defs: map[string]*Schema{}}
	s, err := p.project(n)
	if err != nil {
		return nil, err
	}
	s.SchemaURI = Draft
	if len(p.defs) > 0 {
		s.Defs = p.defs
	}
	return s, nil
}

type projector struct {
	names map[any]string
	defs  map[string]*Schema
	seq   int
}

func (p *projector) project(n ast.Node) (*Schema, error) {
	s, err := p.node(n)
	if err != nil {
		return nil, err
	}
	if s.Ref == "" {
		a := n.Annotations()
		if k, ok := n.(*ast.Keyword); ok && a.Title == defaultTitle(k.Kind()) {
			a.Title = ""
		}
		annotate(s, a)
	}
	return s, nil
}

// defaultTitle is the title keyword singletons carry.
func defaultTitle(k ast.Kind) string {
	for _, kw := range []*ast.Keyword{
		ast.UndefinedKeyword, ast.VoidKeyword, ast.NeverKeyword, ast.UnknownKeyword, ast.AnyKeyword,
		ast.StringKeyword, ast.NumberKeyword, ast.BooleanKeyword, ast.BigIntKeyword, ast.SymbolKeyword, ast.ObjectKeyword,
	} {
		if kw.Kind() == k {
			return kw.Annotations().Title
		}
	}
	return ""
}

func (p *projector) node(n ast.Node) (*Schema, error) {
	switch n := n.(type) {
	case *ast.TypeAlias:
		return p.define(n, n.Annotations().Identifier, func() ast.Node { return n.Type })
	case *ast.Lazy:
		return p.define(n, n.Annotations().Identifier, n.Thunk)
	case *ast.Keyword:
		return keyword(n)
	case *ast.Literal:
		return literal(n.Value)
	case *ast.UniqueSymbol:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Symbol)
	case *ast.Enums:
		s := &Schema{}
		for _, m := range n.Members {
			s.Enum = append(s.Enum, m.Value)
		}
		return s, nil
	case *ast.TemplateLiteral:
		return &Schema{Type: "string", Pattern: n.Pattern().String()}, nil
	case *ast.Tuple:
		return p.tuple(n)
	case *ast.TypeLiteral:
		return p.typeLiteral(n)
	case *ast.Union:
		return p.union(n)
	case *ast.Refinement:
		s, err := p.project(n.From)
		if err != nil {
			return nil, err
		}
		if s.Ref != "" {
			s = &Schema{AnyOf: []*Schema{s}}
		}
		return s, overlay(s, n.Annotations().JSONSchema)
	case *ast.Transform:
		return p.project(n.From)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Kind())
}

// define registers target under a $defs name the first time key is seen and
// returns a $ref to it. Registration happens before projecting so recursive
// references terminate.
func (p *projector) define(key any, name string, target func() ast.Node) (*Schema, error) {
	if name, ok := p.names[key]; ok {
		return &Schema{Ref: "#/$defs/" + name}, nil
	}
	t := target()
	if name == "" {
		name = t.Annotations().Identifier
	}
	if name == "" {
		p.seq++
		name = "Def" + strconv.Itoa(p.seq)
	}
	for base, i := name, 2; p.defs[name] != nil; i++ {
		name = base + strconv.Itoa(i)
	}
	p.names[key] = name
	p.defs[name] = &Schema{}
	s, err := p.project(t)
	if err != nil {
		return nil, err
	}
	p.defs[name] = s
	return &Schema{Ref: "#/$defs/" + name}, nil
}

func keyword(n *ast.Keyword) (*Schema, error) {
	switch n.Kind() {
	case ast.KindString:
		return &Schema{Type: "string"}, nil
	case ast.KindNumber:
		return &Schema{Type: "number"}, nil
	case ast.KindBoolean:
		return &Schema{Type: "boolean"}, nil
	case ast.KindBigInt:
		return &Schema{AnyOf: []*Schema{{Type: "string"}, {Type: "integer"}, {Type: "boolean"}}}, nil
	case ast.KindObject:
		return &Schema{AnyOf: []*Schema{{Type: "object"}, {Type: "array"}}}, nil
	case ast.KindUnknown, ast.KindAny:
		return &Schema{}, nil
	case ast.KindNever:
		return &Schema{Not: &Schema{}}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Kind())
}

func literal(v any) (*Schema, error) {
	switch v.(type) {
	case nil:
		return &Schema{Type: "null"}, nil
	case string, bool, float64:
		return &Schema{Const: v}, nil
	}
	return nil, fmt.Errorf("%w: literal %s", ErrUnsupported, ast.FormatValue(v))
}

func (p *projector) tuple(t *ast.Tuple) (*Schema, error) {
	s := &Schema{Type: "array"}
	required := 0
	for _, e := range t.Elements {
		es, err := p.project(e.Type)
		if err != nil {
			return nil, err
		}
		s.PrefixItems = append(s.PrefixItems, es)
		if !e.IsOptional {
			required++
		}
	}
	if !t.HasRest() {
		s.Items = false
	} else {
		rs, err := p.project(t.Rest[0])
		if err != nil {
			return nil, err
		}
		// Post-rest elements are only counted; JSON Schema cannot anchor
		// items to the end of an array.
		required += len(t.Rest) - 1
		s.Items = rs
	}
	if required > 0 {
		s.MinItems = &required
	}
	if !t.HasRest() {
		max := len(t.Elements)
		s.MaxItems = &max
	}
	return s, nil
}

func (p *projector) typeLiteral(t *ast.TypeLiteral) (*Schema, error) {
	s := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for _, ps := range t.PropertySignatures {
		if ps.Name.IsSymbol() {
			continue
		}
		optional, typ := ps.IsOptional, ps.Type
		if u, ok := typ.(*ast.Union); ok && hasUndefined(u) {
			optional = true
			typ = withoutUndefined(u)
		}
		ps2, err := p.project(typ)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", ps.Name, err)
		}
		s.Properties[ps.Name.Name()] = ps2
		if !optional {
			s.Required = append(s.Required, ps.Name.Name())
		}
	}
	sort.Strings(s.Required)
	s.AdditionalProperties = false
	for _, is := range t.IndexSignatures {
		vs, err := p.project(is.Type)
		if err != nil {
			return nil, err
		}
		switch param := is.Parameter.(type) {
		case *ast.TemplateLiteral:
			if s.PatternProperties == nil {
				s.PatternProperties = map[string]*Schema{}
			}
			s.PatternProperties[param.Pattern().String()] = vs
		default:
			if param.Kind() == ast.KindSymbol {
				continue
			}
			s.AdditionalProperties = vs
		}
	}
	if len(s.Properties) == 0 {
		s.Properties = nil
	}
	return s, nil
}

func (p *projector) union(u *ast.Union) (*Schema, error) {
	s := &Schema{}
	for _, m := range u.Types {
		if m.Kind() == ast.KindUndefined || m.Kind() == ast.KindVoid {
			continue
		}
		ms, err := p.project(m)
		if err != nil {
			return nil, err
		}
		s.AnyOf = append(s.AnyOf, ms)
	}
	if len(s.AnyOf) == 1 {
		return s.AnyOf[0], nil
	}
	return s, nil
}

func hasUndefined(u *ast.Union) bool {
	for _, m := range u.Types {
		if m.Kind() == ast.KindUndefined {
			return true
		}
	}
	return false
}

func withoutUndefined(u *ast.Union) ast.Node {
	var rest []ast.Node
	for _, m := range u.Types {
		if m.Kind() != ast.KindUndefined {
			rest = append(rest, m)
		}
	}
	return ast.NewUnion(rest...)
}

func annotate(s *Schema, a ast.Annotations) {
	if a.Title != "" {
		s.Title = a.Title
	}
	if a.Description != "" {
		s.Description = a.Description
	}
	if a.Examples != nil {
		s.Examples = a.Examples
	}
}

// overlay merges JSON Schema keywords onto s by decoding them into it.
func overlay(s *Schema, kw map[string]any) error {
	if len(kw) == 0 {
		return nil
	}
	b, err := gojson.Marshal(kw)
	if err != nil {
		return err
	}
	return gojson.Unmarshal(b, s)
}
