package skema

import (
	"math"
	"math/big"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/skema/ast"
)

const (
	expectedArray  = "ReadonlyArray<unknown>"
	expectedRecord = "{ readonly [x: string]: unknown }"
	expectedBigInt = "string | number | boolean"
)

// outcome is the internal result of one traversal step.
type outcome struct {
	value    any
	warnings []*DecodeError
	errors   []*DecodeError
}

func (o outcome) failed() bool { return len(o.errors) > 0 }

func succeed(v any) outcome { return outcome{value: v} }

func fail(es ...*DecodeError) outcome { return outcome{errors: es} }

// traversal holds the state of one top-level Decode or Encode call.
type traversal struct {
	encode    bool
	allErrors bool
	lazies    map[*ast.Lazy]ast.Node
}

func newTraversal(encode bool, opt DecodeOpt) *traversal {
	return &traversal{encode: encode, allErrors: opt.AllErrors, lazies: map[*ast.Lazy]ast.Node{}}
}

// force evaluates a lazy node at most once per traversal.
func (t *traversal) force(l *ast.Lazy) ast.Node {
	if n, ok := t.lazies[l]; ok {
		return n
	}
	n := l.Thunk()
	t.lazies[l] = n
	return n
}

func (t *traversal) run(n ast.Node, v any) outcome {
	switch n := n.(type) {
	case *ast.TypeAlias:
		return t.run(n.Type, v)
	case *ast.Literal:
		if literalMatches(n.Value, v) {
			return succeed(v)
		}
		return fail(leaf(n, CodeInvalidLiteral, v, ast.FormatValue(v)+" did not satisfy isEqual("+ast.FormatValue(n.Value)+")"))
	case *ast.UniqueSymbol:
		if s, ok := v.(ast.Symbol); ok && s == n.Symbol {
			return succeed(v)
		}
		return fail(leaf(n, CodeInvalidLiteral, v, ast.FormatValue(v)+" did not satisfy isEqual("+n.Symbol.String()+")"))
	case *ast.Keyword:
		return t.keyword(n, v)
	case *ast.Enums:
		for _, m := range n.Members {
			if literalMatches(m.Value, v) {
				return succeed(v)
			}
		}
		return fail(leaf(n, CodeInvalidEnum, v, ast.FormatValue(v)+" did not satisfy isEnum("+enumPairs(n)+")"))
	case *ast.TemplateLiteral:
		if s, ok := v.(string); ok && n.Match(s) {
			return succeed(v)
		}
		return fail(typeMismatch(n, v, ast.Describe(n)))
	case *ast.Tuple:
		return t.tuple(n, v)
	case *ast.TypeLiteral:
		return t.typeLiteral(n, v)
	case *ast.Union:
		return t.union(n, v)
	case *ast.Lazy:
		return t.run(t.force(n), v)
	case *ast.Refinement:
		return t.refinement(n, v)
	case *ast.Transform:
		return t.transform(n, v)
	}
	return fail(&DecodeError{Code: CodeInvalidType, Message: "unsupported schema node", Actual: v, Expected: n})
}

func (t *traversal) keyword(n *ast.Keyword, v any) outcome {
	switch n.Kind() {
	case ast.KindUnknown, ast.KindAny:
		return succeed(v)
	case ast.KindUndefined, ast.KindVoid:
		if v == ast.Undefined {
			return succeed(v)
		}
	case ast.KindString:
		if _, ok := v.(string); ok {
			return succeed(v)
		}
	case ast.KindBoolean:
		if _, ok := v.(bool); ok {
			return succeed(v)
		}
	case ast.KindSymbol:
		if _, ok := v.(ast.Symbol); ok {
			return succeed(v)
		}
	case ast.KindObject:
		if isObject(v) {
			return succeed(v)
		}
	case ast.KindNumber:
		f, ok := toFloat(v)
		if !ok {
			break
		}
		switch {
		case math.IsNaN(f):
			return outcome{value: v, warnings: []*DecodeError{{Code: CodeNaN, Message: "did not satisfy not(isNaN)", Actual: v, Expected: n}}}
		case math.IsInf(f, 0):
			return outcome{value: v, warnings: []*DecodeError{{Code: CodeInfinite, Message: "did not satisfy isFinite", Actual: v, Expected: n}}}
		}
		return succeed(v)
	case ast.KindBigInt:
		return t.bigint(n, v)
	}
	return fail(typeMismatch(n, v, ast.Describe(n)))
}

func (t *traversal) bigint(n *ast.Keyword, v any) outcome {
	if t.encode {
		if b, ok := v.(*big.Int); ok && b != nil {
			return succeed(v)
		}
		return fail(typeMismatch(n, v, ast.Describe(n)))
	}
	b, typeOK, ok := toBigInt(v)
	if !typeOK {
		return fail(typeMismatch(n, v, expectedBigInt))
	}
	if !ok {
		return fail(leaf(n, CodeTransform, v, ast.FormatValue(v)+" did not satisfy parsing from ("+expectedBigInt+") to ("+ast.Describe(n)+")"))
	}
	return succeed(b)
}

func (t *traversal) tuple(n *ast.Tuple, v any) outcome {
	in, ok := toArray(v)
	if !ok {
		return fail(typeMismatch(n, v, expectedArray))
	}
	out := make([]any, 0, len(in))
	var warns, errs []*DecodeError

	// step decodes in[i] against typ; it reports false when decoding must stop.
	step := func(i int, typ ast.Node) bool {
		if i >= len(in) {
			errs = append(errs, indexError(i, []*DecodeError{required(typ)}))
			return t.allErrors
		}
		o := t.run(typ, in[i])
		if o.failed() {
			errs = append(errs, indexError(i, o.errors))
			return t.allErrors
		}
		if len(o.warnings) > 0 {
			warns = append(warns, indexError(i, o.warnings))
		}
		out = append(out, o.value)
		return true
	}

	i := 0
	for ; i < len(n.Elements); i++ {
		e := n.Elements[i]
		if e.IsOptional && i >= len(in) {
			continue
		}
		if !step(i, e.Type) {
			return fail(errs...)
		}
	}
	if n.HasRest() {
		head, tail := n.Rest[0], n.Rest[1:]
		for ; i < len(in)-len(tail); i++ {
			if !step(i, head) {
				return fail(errs...)
			}
		}
		for j, typ := range tail {
			if !step(i+j, typ) {
				return fail(errs...)
			}
		}
	} else {
		for ; i < len(in); i++ {
			warns = append(warns, indexError(i, []*DecodeError{{Code: CodeUnexpectedIndex, Message: "index is unexpected", Actual: in[i]}}))
		}
	}
	if len(errs) > 0 {
		return fail(errs...)
	}
	return outcome{value: out, warnings: warns}
}

func (t *traversal) typeLiteral(n *ast.TypeLiteral, v any) outcome {
	in, ok := toRecord(v)
	if !ok {
		return fail(typeMismatch(n, v, expectedRecord))
	}
	out := newRecordBuilder(in.symbolic)
	var warns, errs []*DecodeError
	seen := make(map[ast.PropertyKey]bool, len(in.keys))

	for _, ps := range n.PropertySignatures {
		seen[ps.Name] = true
		x, present := in.get(ps.Name)
		if !present {
			if ps.IsOptional {
				continue
			}
			errs = append(errs, keyError(ps.Name, []*DecodeError{required(ps.Type)}))
			if !t.allErrors {
				return fail(errs...)
			}
			continue
		}
		o := t.run(ps.Type, x)
		if o.failed() {
			errs = append(errs, keyError(ps.Name, o.errors))
			if !t.allErrors {
				return fail(errs...)
			}
			continue
		}
		if len(o.warnings) > 0 {
			warns = append(warns, keyError(ps.Name, o.warnings))
		}
		out.set(ps.Name, o.value)
	}

	matched := make(map[ast.PropertyKey]bool)
	for _, is := range n.IndexSignatures {
		for _, k := range in.keys {
			if seen[k] || !t.acceptsKey(is.Parameter, k) {
				continue
			}
			matched[k] = true
			o := t.run(is.Type, in.values[k])
			if o.failed() {
				errs = append(errs, keyError(k, o.errors))
				if !t.allErrors {
					return fail(errs...)
				}
				continue
			}
			if len(o.warnings) > 0 {
				warns = append(warns, keyError(k, o.warnings))
			}
			out.set(k, o.value)
		}
	}
	if len(errs) > 0 {
		return fail(errs...)
	}

	for _, k := range in.keys {
		if seen[k] || matched[k] {
			continue
		}
		warns = append(warns, keyError(k, []*DecodeError{{Code: CodeUnknownKey, Message: "key is unexpected", Actual: in.values[k]}}))
	}
	return outcome{value: out.value(), warnings: warns}
}

// acceptsKey reports whether an index signature parameter admits k.
func (t *traversal) acceptsKey(param ast.Node, k ast.PropertyKey) bool {
	switch param.Kind() {
	case ast.KindString:
		return !k.IsSymbol()
	case ast.KindSymbol:
		return k.IsSymbol()
	}
	return !t.run(param, k.Value()).failed()
}

func (t *traversal) refinement(n *ast.Refinement, v any) outcome {
	if t.encode {
		if n.Predicate != nil && !n.Predicate(v) {
			return fail(refinementError(n, v))
		}
		return t.run(n.From, v)
	}
	o := t.run(n.From, v)
	if o.failed() {
		return o
	}
	if n.Predicate != nil && !n.Predicate(o.value) {
		return fail(refinementError(n, o.value))
	}
	return o
}

func (t *traversal) transform(n *ast.Transform, v any) outcome {
	if t.encode {
		if n.Encode == nil {
			return t.run(n.From, v)
		}
		x, err := n.Encode(v)
		if err != nil {
			return fail(transformError(n, v, n.To, n.From, err))
		}
		return t.run(n.From, x)
	}
	o := t.run(n.From, v)
	if o.failed() || n.Decode == nil {
		return o
	}
	x, err := n.Decode(o.value)
	if err != nil {
		return fail(transformError(n, o.value, n.From, n.To, err))
	}
	return outcome{value: x, warnings: o.warnings}
}

// leaf builds a leaf error at n, honouring a message override on n.
func leaf(n ast.Node, code string, actual any, msg string) *DecodeError {
	if f := n.Annotations().Message; f != nil {
		msg = f(actual)
	}
	return &DecodeError{Code: code, Message: msg, Actual: actual, Expected: n}
}

func typeMismatch(n ast.Node, actual any, expected string) *DecodeError {
	return leaf(n, CodeInvalidType, actual, ast.FormatValue(actual)+" did not satisfy is("+expected+")")
}

func required(n ast.Node) *DecodeError {
	return &DecodeError{Code: CodeRequired, Message: "did not satisfy is(required)", Actual: ast.Undefined, Expected: n}
}

func refinementError(n *ast.Refinement, actual any) *DecodeError {
	return leaf(n, CodeRefinement, actual, ast.FormatValue(actual)+" did not satisfy is("+refinementLabel(n)+")")
}

func refinementLabel(n *ast.Refinement) string {
	a := n.Annotations()
	switch {
	case a.Label != "":
		return a.Label
	case a.Identifier != "":
		return a.Identifier
	case a.Title != "":
		return a.Title
	case a.Description != "":
		return a.Description
	}
	return "refinement"
}

func transformError(n *ast.Transform, actual any, from, to ast.Node, cause error) *DecodeError {
	msg := ast.FormatValue(actual) + " did not satisfy "
	if label := n.Annotations().Label; label != "" {
		msg += "is(" + label + ")"
	} else {
		msg += "parsing from (" + ast.Describe(from) + ") to (" + ast.Describe(to) + ")"
	}
	e := leaf(n, CodeTransform, actual, msg)
	e.Cause = cause
	return e
}

func enumPairs(n *ast.Enums) string {
	pairs := make([][2]any, len(n.Members))
	for i, m := range n.Members {
		pairs[i] = [2]any{m.Name, m.Value}
	}
	b, err := gojson.MarshalNoEscape(pairs)
	if err != nil {
		return ast.Describe(n)
	}
	return string(b)
}
