package dsl

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reoring/skema/ast"
)

// Filter wraps a node in a refinement.
type Filter func(from ast.Node) ast.Node

// Pipe applies filters to n from left to right.
func Pipe(n ast.Node, fs ...Filter) ast.Node {
	for _, f := range fs {
		n = f(n)
	}
	return n
}

// js is the JSON Schema fragment a filter contributes to the projection.
type js map[string]any

func filter(label string, schema js, pred func(any) bool) Filter {
	return func(from ast.Node) ast.Node {
		return ast.NewRefinement(from, pred, ast.Annotations{Label: label, JSONSchema: schema})
	}
}

func stringFilter(label string, schema js, pred func(string) bool) Filter {
	return filter(label, schema, func(v any) bool {
		s, ok := v.(string)
		return ok && pred(s)
	})
}

func numberFilter(label string, schema js, pred func(float64) bool) Filter {
	return filter(label, schema, func(v any) bool {
		f, ok := number(v)
		return ok && pred(f)
	})
}

// String lengths count runes.
func MinLength(n int) Filter {
	return stringFilter("minLength("+strconv.Itoa(n)+")", js{"minLength": n}, func(s string) bool { return utf8.RuneCountInString(s) >= n })
}

func MaxLength(n int) Filter {
	return stringFilter("maxLength("+strconv.Itoa(n)+")", js{"maxLength": n}, func(s string) bool { return utf8.RuneCountInString(s) <= n })
}

func Length(n int) Filter {
	return stringFilter("length("+strconv.Itoa(n)+")", js{"minLength": n, "maxLength": n}, func(s string) bool { return utf8.RuneCountInString(s) == n })
}

func NonEmpty() Filter {
	return stringFilter("nonEmpty", js{"minLength": 1}, func(s string) bool { return s != "" })
}

func StartsWith(prefix string) Filter {
	return stringFilter("startsWith("+ast.FormatValue(prefix)+")", js{"pattern": "^" + regexp.QuoteMeta(prefix)}, func(s string) bool { return strings.HasPrefix(s, prefix) })
}

func EndsWith(suffix string) Filter {
	return stringFilter("endsWith("+ast.FormatValue(suffix)+")", js{"pattern": regexp.QuoteMeta(suffix) + "$"}, func(s string) bool { return strings.HasSuffix(s, suffix) })
}

func Includes(sub string) Filter {
	return stringFilter("includes("+ast.FormatValue(sub)+")", js{"pattern": regexp.QuoteMeta(sub)}, func(s string) bool { return strings.Contains(s, sub) })
}

// Pattern panics if expr does not compile.
func Pattern(expr string) Filter {
	re := regexp.MustCompile(expr)
	return stringFilter("pattern("+expr+")", js{"pattern": expr}, re.MatchString)
}

func LessThan(n float64) Filter {
	return numberFilter("lessThan("+ast.FormatNumber(n)+")", js{"exclusiveMaximum": n}, func(f float64) bool { return f < n })
}

func LessThanOrEqualTo(n float64) Filter {
	return numberFilter("lessThanOrEqualTo("+ast.FormatNumber(n)+")", js{"maximum": n}, func(f float64) bool { return f <= n })
}

func GreaterThan(n float64) Filter {
	return numberFilter("greaterThan("+ast.FormatNumber(n)+")", js{"exclusiveMinimum": n}, func(f float64) bool { return f > n })
}

func GreaterThanOrEqualTo(n float64) Filter {
	return numberFilter("greaterThanOrEqualTo("+ast.FormatNumber(n)+")", js{"minimum": n}, func(f float64) bool { return f >= n })
}

func Int() Filter {
	return numberFilter("int", js{"type": "integer"}, func(f float64) bool { return f == math.Trunc(f) && !math.IsInf(f, 0) })
}

func NonNaN() Filter {
	return numberFilter("nonNaN", nil, func(f float64) bool { return !math.IsNaN(f) })
}

func Finite() Filter {
	return numberFilter("finite", nil, func(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) })
}

// MinItems and MaxItems bound array lengths.
func MinItems(n int) Filter {
	return filter("minItems("+strconv.Itoa(n)+")", js{"minItems": n}, func(v any) bool {
		l, ok := length(v)
		return ok && l >= n
	})
}

func MaxItems(n int) Filter {
	return filter("maxItems("+strconv.Itoa(n)+")", js{"maxItems": n}, func(v any) bool {
		l, ok := length(v)
		return ok && l <= n
	})
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32:
		return rv.Float(), true
	}
	return 0, false
}

func length(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}
