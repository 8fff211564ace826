package schemadoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/skema/ast"
	"github.com/reoring/skema/codec"
	"github.com/reoring/skema/dsl"
)

var (
	ErrUnknownType = errors.New("schemadoc: unknown type")
	ErrUnknownRef  = errors.New("schemadoc: unknown ref")
	ErrCycle       = errors.New("schemadoc: definition depends on itself")
	ErrInvalid     = errors.New("schemadoc: invalid node")
)

// LoadYAML parses a YAML schema document.
func LoadYAML(data []byte) (ast.Node, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemadoc: yaml: %w", err)
	}
	if doc.Root == nil && doc.Definitions == nil {
		var n Node
		if err := yaml.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("schemadoc: yaml: %w", err)
		}
		doc.Root = &n
	}
	return Build(&doc)
}

// LoadJSON parses a JSON schema document.
func LoadJSON(data []byte) (ast.Node, error) {
	var doc Document
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemadoc: json: %w", err)
	}
	if doc.Root == nil && doc.Definitions == nil {
		var n Node
		if err := gojson.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("schemadoc: json: %w", err)
		}
		doc.Root = &n
	}
	return Build(&doc)
}

// Load picks JSON when the document starts with '{', YAML otherwise.
func Load(data []byte) (ast.Node, error) {
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
		return LoadJSON(data)
	}
	return LoadYAML(data)
}

// Build turns a decoded document into its root node.
func Build(doc *Document) (ast.Node, error) {
	if doc.Root == nil {
		return nil, fmt.Errorf("%w: document has no root", ErrInvalid)
	}
	b := &builder{defs: doc.Definitions, built: map[string]ast.Node{}, building: map[string]bool{}}
	// Definitions are built eagerly so errors surface at load time even when
	// the root does not reference them.
	names := make([]string, 0, len(doc.Definitions))
	for name := range doc.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := b.define(name); err != nil {
			return nil, err
		}
	}
	return b.node(doc.Root, "root")
}

type builder struct {
	defs     map[string]*Node
	built    map[string]ast.Node
	building map[string]bool
	lazies   map[string]ast.Node
}

func (b *builder) define(name string) (ast.Node, error) {
	if n, ok := b.built[name]; ok {
		return n, nil
	}
	d, ok := b.defs[name]
	if !ok || d == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownRef, name)
	}
	if b.building[name] {
		return nil, fmt.Errorf("%w: %s", ErrCycle, name)
	}
	b.building[name] = true
	defer delete(b.building, name)
	n, err := b.node(d, name)
	if err != nil {
		return nil, err
	}
	b.built[name] = n
	return n, nil
}

// ref returns a lazy node so definitions can refer to themselves. Operators
// that need the shape at load time (keyof, pick, omit, partial, extend)
// resolve the definition eagerly instead.
func (b *builder) ref(name string) (ast.Node, error) {
	if _, ok := b.defs[name]; !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRef, name)
	}
	if l, ok := b.lazies[name]; ok {
		return l, nil
	}
	if b.lazies == nil {
		b.lazies = map[string]ast.Node{}
	}
	l := ast.Annotate(ast.NewLazy(func() ast.Node {
		n, err := b.define(name)
		if err != nil {
			return ast.NeverKeyword
		}
		return n
	}), ast.Annotations{Identifier: name})
	b.lazies[name] = l
	return l, nil
}

func (b *builder) shape(d *Node, at string) (ast.Node, error) {
	if d == nil {
		return nil, fmt.Errorf("%w at %s: missing operand", ErrInvalid, at)
	}
	if d.Ref != "" && d.Type == "" {
		return b.define(d.Ref)
	}
	return b.node(d, at)
}

func (b *builder) node(d *Node, at string) (ast.Node, error) {
	if d == nil {
		return nil, fmt.Errorf("%w at %s: empty node", ErrInvalid, at)
	}
	n, err := b.base(d, at)
	if err != nil {
		return nil, err
	}
	if n, err = applyFilters(n, d, at); err != nil {
		return nil, err
	}
	if d.Codec != "" {
		c, err := codecOf(d.Codec)
		if err != nil {
			return nil, fmt.Errorf("%w at %s", err, at)
		}
		if d.Type == "" && d.Ref == "" {
			n = c
		} else {
			n = codec.Compose(codec.Identity(n), c)
		}
	}
	ann := ast.Annotations{Title: d.Title, Description: d.Description, Identifier: d.Identifier, Examples: d.Examples}
	if ann.Title != "" || ann.Description != "" || ann.Identifier != "" || len(ann.Examples) > 0 {
		n = ast.Annotate(n, ann)
	}
	return n, nil
}

func (b *builder) base(d *Node, at string) (ast.Node, error) {
	if d.Ref != "" {
		if d.Type != "" {
			return nil, fmt.Errorf("%w at %s: ref and type are exclusive", ErrInvalid, at)
		}
		return b.ref(d.Ref)
	}
	switch d.Type {
	case "string":
		return dsl.String(), nil
	case "number":
		return dsl.Number(), nil
	case "boolean":
		return dsl.Bool(), nil
	case "bigint":
		return dsl.BigInt(), nil
	case "symbol":
		return dsl.Symbol(), nil
	case "unknown":
		return dsl.Unknown(), nil
	case "any":
		return dsl.Any(), nil
	case "never":
		return dsl.Never(), nil
	case "undefined":
		return dsl.Undefined(), nil
	case "void":
		return dsl.Void(), nil
	case "object":
		return dsl.NonPrimitive(), nil
	case "null":
		return dsl.Null(), nil
	case "literal":
		return literal(d.Values, at)
	case "enum":
		ms := make([]ast.EnumMember, 0, len(d.Enum))
		for _, m := range d.Enum {
			v, err := scalar(m.Value, at)
			if err != nil {
				return nil, err
			}
			ms = append(ms, dsl.Member(m.Name, v))
		}
		return dsl.Enum(ms...), nil
	case "template":
		parts, err := b.nodes(d.Parts, at)
		if err != nil {
			return nil, err
		}
		n, err := dsl.TemplateLiteral(parts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		return n, nil
	case "array":
		item, err := b.node(d.Items, at+".items")
		if err != nil {
			return nil, err
		}
		return dsl.Array(item), nil
	case "tuple":
		return b.tuple(d, at)
	case "struct":
		return b.object(d, at)
	case "record":
		k, err := b.node(d.Key, at+".key")
		if err != nil {
			return nil, err
		}
		v, err := b.node(d.Value, at+".value")
		if err != nil {
			return nil, err
		}
		r, err := dsl.Record(k, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		return r, nil
	case "union":
		ms, err := b.nodes(d.Members, at)
		if err != nil {
			return nil, err
		}
		return dsl.Union(ms...), nil
	case "keyof":
		of, err := b.shape(d.Of, at+".of")
		if err != nil {
			return nil, err
		}
		n, err := dsl.KeyOf(of)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		return n, nil
	case "partial":
		of, err := b.shape(d.Of, at+".of")
		if err != nil {
			return nil, err
		}
		return dsl.Partial(of), nil
	case "pick", "omit":
		of, err := b.shape(d.Of, at+".of")
		if err != nil {
			return nil, err
		}
		if d.Type == "pick" {
			return dsl.Pick(of, d.Keys...), nil
		}
		return dsl.Omit(of, d.Keys...), nil
	case "extend":
		of, err := b.shape(d.Of, at+".of")
		if err != nil {
			return nil, err
		}
		with, err := b.shape(d.With, at+".with")
		if err != nil {
			return nil, err
		}
		n, err := dsl.Extend(of, with)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		return n, nil
	case "":
		if d.Codec != "" {
			// filled in by the codec
			return dsl.String(), nil
		}
		return nil, fmt.Errorf("%w at %s: missing type", ErrInvalid, at)
	}
	return nil, fmt.Errorf("%w %q at %s", ErrUnknownType, d.Type, at)
}

func (b *builder) nodes(ds []*Node, at string) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(ds))
	for i, d := range ds {
		n, err := b.node(d, fmt.Sprintf("%s[%d]", at, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (b *builder) tuple(d *Node, at string) (ast.Node, error) {
	req, err := b.nodes(d.Elements, at+".elements")
	if err != nil {
		return nil, err
	}
	opt, err := b.nodes(d.OptionalElements, at+".optionalElements")
	if err != nil {
		return nil, err
	}
	tb := dsl.Tuple(req...).Optional(opt...)
	if d.Rest != nil {
		rest, err := b.node(d.Rest, at+".rest")
		if err != nil {
			return nil, err
		}
		post, err := b.nodes(d.Post, at+".post")
		if err != nil {
			return nil, err
		}
		tb = tb.Rest(rest).Post(post...)
	} else if len(d.Post) > 0 {
		return nil, fmt.Errorf("%w at %s: post elements need a rest element", ErrInvalid, at)
	}
	t, err := tb.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", at, err)
	}
	return t, nil
}

func (b *builder) object(d *Node, at string) (ast.Node, error) {
	ob := dsl.Object()
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := d.Fields[name]
		n, err := b.node(f, at+"."+name)
		if err != nil {
			return nil, err
		}
		step := ob.Field(name, n)
		if f.Readonly {
			step = step.Readonly()
		}
		if f.Optional {
			ob = step.Optional()
		} else {
			ob = step.Required()
		}
	}
	for i, e := range d.Index {
		where := fmt.Sprintf("%s.index[%d]", at, i)
		k, err := b.node(e.Key, where+".key")
		if err != nil {
			return nil, err
		}
		v, err := b.node(e.Value, where+".value")
		if err != nil {
			return nil, err
		}
		ob = ob.Index(k, v)
	}
	t, err := ob.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", at, err)
	}
	return t, nil
}

func literal(vs []any, at string) (ast.Node, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w at %s: literal needs values", ErrInvalid, at)
	}
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		s, err := scalar(v, at)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return dsl.Literal(out...), nil
}

// scalar accepts the scalar shapes both YAML and JSON decoding produce.
func scalar(v any, at string) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, float64, int, int64, uint64:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w at %s: %v", ErrInvalid, at, err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w at %s: %T is not a literal value", ErrInvalid, at, v)
}

func codecOf(name string) (*ast.Transform, error) {
	switch name {
	case "rfc3339":
		return codec.TimeRFC3339(), nil
	case "uuid":
		return codec.UUIDFromString(), nil
	case "numberFromString":
		return codec.NumberFromString(), nil
	case "jsonFromString":
		return codec.JSONFromString(), nil
	}
	return nil, fmt.Errorf("%w: codec %q", ErrInvalid, name)
}

func applyFilters(n ast.Node, d *Node, at string) (ast.Node, error) {
	var fs []dsl.Filter
	if d.MinLength != nil {
		fs = append(fs, dsl.MinLength(*d.MinLength))
	}
	if d.MaxLength != nil {
		fs = append(fs, dsl.MaxLength(*d.MaxLength))
	}
	if d.Pattern != "" {
		if _, err := regexp.Compile(d.Pattern); err != nil {
			return nil, fmt.Errorf("%w at %s: %v", ErrInvalid, at, err)
		}
		fs = append(fs, dsl.Pattern(d.Pattern))
	}
	if d.NonNaN {
		fs = append(fs, dsl.NonNaN())
	}
	if d.Finite {
		fs = append(fs, dsl.Finite())
	}
	if d.Int {
		fs = append(fs, dsl.Int())
	}
	if d.Minimum != nil {
		fs = append(fs, dsl.GreaterThanOrEqualTo(*d.Minimum))
	}
	if d.Maximum != nil {
		fs = append(fs, dsl.LessThanOrEqualTo(*d.Maximum))
	}
	if d.MinItems != nil {
		fs = append(fs, dsl.MinItems(*d.MinItems))
	}
	if d.MaxItems != nil {
		fs = append(fs, dsl.MaxItems(*d.MaxItems))
	}
	n = dsl.Pipe(n, fs...)
	for i, r := range d.Refine {
		prg, err := compileRefine(r.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w at %s.refine[%d]: %v", ErrInvalid, at, i, err)
		}
		label := r.Label
		if label == "" {
			label = r.Expr
		}
		n = dsl.Refine(n, label, predicate(prg))
	}
	return n, nil
}

// exprEnv is the environment refine expressions see.
type exprEnv struct {
	Value any `expr:"value"`
}

func compileRefine(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(exprEnv{}), expr.AsBool())
}

// predicate runs prg with the candidate bound to `value`. Runtime errors
// count as a failed check.
func predicate(prg *vm.Program) func(any) bool {
	return func(v any) bool {
		out, err := expr.Run(prg, exprEnv{Value: exprValue(v)})
		if err != nil {
			return false
		}
		ok, _ := out.(bool)
		return ok
	}
}

// exprValue turns json.Number into float64 so arithmetic works in
// expressions; other values pass through unchanged.
func exprValue(v any) any {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return v
}
