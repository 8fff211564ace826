package skema

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/reoring/skema/ast"
)

// toFloat reports whether v is a number and returns its float value.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case nil, string, bool:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// toBigInt converts string, number and boolean inputs. typeOK is false when v
// has none of those types; ok is false when the conversion fails.
func toBigInt(v any) (b *big.Int, typeOK, ok bool) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, false, false
		}
		return x, true, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return new(big.Int), true, true
		}
		b, ok := parseBigInt(s)
		return b, true, ok
	case bool:
		if x {
			return big.NewInt(1), true, true
		}
		return big.NewInt(0), true, true
	case json.Number:
		if b, ok := new(big.Int).SetString(string(x), 10); ok {
			return b, true, true
		}
		f, err := x.Float64()
		if err != nil {
			return nil, true, false
		}
		b, ok := floatToBigInt(f)
		return b, true, ok
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), true, true
	case reflect.Float32, reflect.Float64:
		b, ok := floatToBigInt(rv.Float())
		return b, true, ok
	}
	return nil, false, false
}

// parseBigInt accepts an optionally signed decimal integer or an unsigned
// 0x, 0o or 0b literal. Underscores and signed prefixed forms are rejected.
func parseBigInt(s string) (*big.Int, bool) {
	if strings.ContainsRune(s, '_') {
		return nil, false
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if d := s[2]; d == '+' || d == '-' {
				return nil, false
			}
			return new(big.Int).SetString(s[2:], base)
		}
	}
	return new(big.Int).SetString(s, 10)
}

func floatToBigInt(f float64) (*big.Int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	b, _ := big.NewFloat(f).Int(nil)
	return b, true
}

// literalMatches compares an input value with a literal value. Numbers of any
// Go kind match a float literal of the same value.
func literalMatches(lit, v any) bool {
	switch l := lit.(type) {
	case nil:
		return v == nil
	case string:
		s, ok := v.(string)
		return ok && s == l
	case bool:
		b, ok := v.(bool)
		return ok && b == l
	case float64:
		f, ok := toFloat(v)
		return ok && f == l
	case *big.Int:
		b, ok := v.(*big.Int)
		return ok && b != nil && b.Cmp(l) == 0
	}
	return false
}

// isObject reports whether v is a non-primitive value.
func isObject(v any) bool {
	switch v.(type) {
	case nil, ast.Symbol, ast.UndefinedType, ast.PropertyKey, *big.Int, json.Number:
		return false
	case time.Time:
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	case reflect.Array, reflect.Struct:
		return true
	}
	return false
}

// toArray views v as an array. Records and strings are not arrays.
func toArray(v any) ([]any, bool) {
	if a, ok := v.([]any); ok {
		return a, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return []any{}, true
		}
	case reflect.Array:
	default:
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// record is a read view over a map input.
type record struct {
	keys     []ast.PropertyKey
	values   map[ast.PropertyKey]any
	symbolic bool
}

func toRecord(v any) (*record, bool) {
	switch m := v.(type) {
	case map[string]any:
		r := &record{values: make(map[ast.PropertyKey]any, len(m))}
		for k, x := range m {
			r.add(ast.StringKey(k), x)
		}
		r.sortKeys()
		return r, true
	case map[any]any:
		r := &record{values: make(map[ast.PropertyKey]any, len(m)), symbolic: true}
		for k, x := range m {
			pk, ok := ast.KeyOfValue(k)
			if !ok {
				return nil, false
			}
			r.add(pk, x)
		}
		r.sortKeys()
		return r, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() {
		return nil, false
	}
	r := &record{values: make(map[ast.PropertyKey]any, rv.Len())}
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		pk, ok := ast.KeyOfValue(k)
		if !ok {
			pk = ast.StringKey(keyString(iter.Key()))
		}
		if pk.IsSymbol() {
			r.symbolic = true
		}
		r.add(pk, iter.Value().Interface())
	}
	r.sortKeys()
	return r, true
}

func keyString(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	}
	return fmt.Sprint(k.Interface())
}

func (r *record) add(k ast.PropertyKey, v any) {
	if _, dup := r.values[k]; !dup {
		r.keys = append(r.keys, k)
	}
	r.values[k] = v
}

func (r *record) sortKeys() {
	sort.Slice(r.keys, func(i, j int) bool { return r.keys[i].Less(r.keys[j]) })
}

func (r *record) get(k ast.PropertyKey) (any, bool) {
	v, ok := r.values[k]
	return v, ok
}

// recordBuilder assembles a decoded record, keeping map[string]any unless a
// symbol key requires map[any]any.
type recordBuilder struct {
	str map[string]any
	sym map[any]any
}

func newRecordBuilder(symbolic bool) *recordBuilder {
	if symbolic {
		return &recordBuilder{sym: map[any]any{}}
	}
	return &recordBuilder{str: map[string]any{}}
}

func (b *recordBuilder) set(k ast.PropertyKey, v any) {
	if b.sym == nil && k.IsSymbol() {
		b.sym = make(map[any]any, len(b.str)+1)
		for s, x := range b.str {
			b.sym[s] = x
		}
		b.str = nil
	}
	if b.sym != nil {
		b.sym[k.Value()] = v
		return
	}
	b.str[k.Name()] = v
}

func (b *recordBuilder) value() any {
	if b.sym != nil {
		return b.sym
	}
	return b.str
}

// size reports how many members a decoded value retains: record keys or array
// length.
func size(v any) int {
	switch x := v.(type) {
	case map[string]any:
		return len(x)
	case map[any]any:
		return len(x)
	case []any:
		return len(x)
	}
	return 0
}
