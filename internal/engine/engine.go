// Package engine turns token streams from any input driver into plain Go
// values (map[string]any, []any, string, bool, nil and numbers).
package engine

import (
	"encoding/json"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// NumberConv converts the textual form of a number token.
type NumberConv func(string) (any, error)

// JSONNumber keeps numbers as json.Number.
func JSONNumber(s string) (any, error) { return json.Number(s), nil }

// Float64 parses numbers as float64.
func Float64(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeAnyFromSource builds a value from src keeping numbers as json.Number.
func DecodeAnyFromSource(src TokenSource) (any, error) {
	return Materialize(src, JSONNumber)
}

// DecodeAnyFromSourceAsFloat64 builds a value from src with float64 numbers.
func DecodeAnyFromSourceAsFloat64(src TokenSource) (any, error) {
	return Materialize(src, Float64)
}

// Materialize reads exactly one value from src. Empty arrays materialize as
// a non-nil []any.
func Materialize(src TokenSource, conv NumberConv) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return value(src, tok, conv)
}

func value(src TokenSource, tok Token, conv NumberConv) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		m := make(map[string]any)
		for {
			kt, err := src.NextToken()
			if err != nil {
				return nil, err
			}
			if kt.Kind == KindEndObject {
				return m, nil
			}
			if kt.Kind != KindKey {
				return nil, io.ErrUnexpectedEOF
			}
			vt, err := src.NextToken()
			if err != nil {
				return nil, err
			}
			v, err := value(src, vt, conv)
			if err != nil {
				return nil, err
			}
			m[kt.String] = v
		}
	case KindBeginArray:
		arr := []any{}
		for {
			et, err := src.NextToken()
			if err != nil {
				return nil, err
			}
			if et.Kind == KindEndArray {
				return arr, nil
			}
			v, err := value(src, et, conv)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
	case KindString:
		return tok.String, nil
	case KindNumber:
		return conv(tok.Number)
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

// Drain consumes src until EOF. Enforcement wrappers report their issues as
// a side effect.
func Drain(src TokenSource) error {
	for {
		if _, err := src.NextToken(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// KeyTracker tells keys from string values for drivers whose tokenizer does
// not distinguish them.
type KeyTracker struct {
	// one entry per open container; true while an object awaits a key
	stack []bool
	obj   []bool
}

// Open records a new container.
func (k *KeyTracker) Open(object bool) {
	k.stack = append(k.stack, object)
	k.obj = append(k.obj, object)
}

// Close pops the innermost container; the enclosing object, if any, now
// expects a key again.
func (k *KeyTracker) Close() {
	if n := len(k.stack); n > 0 {
		k.stack = k.stack[:n-1]
		k.obj = k.obj[:n-1]
	}
	k.Value()
}

// IsKey reports whether a string token at the current position is a key.
func (k *KeyTracker) IsKey() bool {
	n := len(k.stack)
	if n == 0 || !k.obj[n-1] || !k.stack[n-1] {
		return false
	}
	k.stack[n-1] = false
	return true
}

// Value records a completed value at the current position.
func (k *KeyTracker) Value() {
	if n := len(k.stack); n > 0 && k.obj[n-1] {
		k.stack[n-1] = true
	}
}
