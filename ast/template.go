package ast

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// ErrTemplateSpan reports a part that cannot appear in a template literal.
var ErrTemplateSpan = errors.New("unsupported template literal span")

const numberPattern = `[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`

type patternCache struct {
	once sync.Once
	re   *regexp.Regexp
}

// TemplateLiteralOf concatenates parts into the union of every template
// literal they can produce. Each part must be a literal, the string or number
// keyword, a template literal, or a union of those.
func TemplateLiteralOf(parts ...Node) (Node, error) {
	if len(parts) == 0 {
		return NewLiteral(""), nil
	}
	acc, err := templateAlternatives(parts[0])
	if err != nil {
		return nil, err
	}
	for _, p := range parts[1:] {
		next, err := templateAlternatives(p)
		if err != nil {
			return nil, err
		}
		combined := make([]Node, 0, len(acc)*len(next))
		for _, a := range acc {
			for _, b := range next {
				combined = append(combined, combineTemplates(a, b))
			}
		}
		acc = combined
	}
	return NewUnion(acc...), nil
}

func templateAlternatives(n Node) ([]Node, error) {
	switch n := n.(type) {
	case *Literal, *TemplateLiteral:
		return []Node{n}, nil
	case *Keyword:
		if n.kind == KindString || n.kind == KindNumber {
			return []Node{&TemplateLiteral{Spans: []TemplateSpan{{Type: n}}, cache: &patternCache{}}}, nil
		}
	case *Union:
		var out []Node
		for _, m := range n.Types {
			alts, err := templateAlternatives(m)
			if err != nil {
				return nil, err
			}
			out = append(out, alts...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w %s", ErrTemplateSpan, n.Kind())
}

// combineTemplates concatenates two alternatives, each a *Literal or a
// *TemplateLiteral.
func combineTemplates(a, b Node) Node {
	if la, ok := a.(*Literal); ok {
		if lb, ok := b.(*Literal); ok {
			return NewLiteral(templateString(la.Value) + templateString(lb.Value))
		}
		tb := b.(*TemplateLiteral)
		return NewTemplateLiteral(templateString(la.Value)+tb.Head, tb.Spans)
	}
	ta := a.(*TemplateLiteral)
	spans := append([]TemplateSpan(nil), ta.Spans...)
	last := &spans[len(spans)-1]
	if lb, ok := b.(*Literal); ok {
		last.Literal += templateString(lb.Value)
		return NewTemplateLiteral(ta.Head, spans)
	}
	tb := b.(*TemplateLiteral)
	last.Literal += tb.Head
	return NewTemplateLiteral(ta.Head, append(spans, tb.Spans...))
}

// templateString converts a literal value the way string interpolation does.
func templateString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return FormatNumber(x)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return "null"
	case *big.Int:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Pattern returns the anchored regular expression matching t. It is compiled
// once per node.
func (t *TemplateLiteral) Pattern() *regexp.Regexp {
	if t.cache == nil {
		return compileTemplate(t)
	}
	t.cache.once.Do(func() { t.cache.re = compileTemplate(t) })
	return t.cache.re
}

// Match reports whether s is fully matched by t.
func (t *TemplateLiteral) Match(s string) bool { return t.Pattern().MatchString(s) }

func compileTemplate(t *TemplateLiteral) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?s)^`)
	b.WriteString(regexp.QuoteMeta(t.Head))
	for _, span := range t.Spans {
		if span.Type != nil && span.Type.Kind() == KindNumber {
			b.WriteString(numberPattern)
		} else {
			b.WriteString(`.*?`)
		}
		b.WriteString(regexp.QuoteMeta(span.Literal))
	}
	b.WriteString(`$`)
	return regexp.MustCompile(b.String())
}
