// Package gojson provides a JSON driver backed by goccy/go-json.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/skema"
	eng "github.com/reoring/skema/internal/engine"
)

// Driver returns a skema.JSONDriver backed by goccy/go-json.
func Driver() skema.JSONDriver { return driver{} }

// Use installs the go-json driver globally.
func Use() { skema.SetJSONDriver(driver{}) }

type driver struct{}

func (driver) NewReader(r io.Reader) skema.Source {
	return skema.SourceFromEngine(NewReader(r), skema.NumberJSONNumber)
}
func (driver) NewBytes(b []byte) skema.Source {
	return skema.SourceFromEngine(NewBytes(b), skema.NumberJSONNumber)
}
func (driver) Name() string { return "go-json" }

type source struct {
	dec  *j.Decoder
	keys eng.KeyTracker
}

// NewReader wraps an io.Reader into an engine.TokenSource using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	out := eng.Token{Offset: -1}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.keys.Open(true)
			out.Kind = eng.KindBeginObject
		case '[':
			s.keys.Open(false)
			out.Kind = eng.KindBeginArray
		case '}':
			s.keys.Close()
			out.Kind = eng.KindEndObject
		case ']':
			s.keys.Close()
			out.Kind = eng.KindEndArray
		}
		return out, nil
	case string:
		if s.keys.IsKey() {
			out.Kind, out.String = eng.KindKey, v
			return out, nil
		}
		out.Kind, out.String = eng.KindString, v
	case bool:
		out.Kind, out.Bool = eng.KindBool, v
	case j.Number:
		out.Kind, out.Number = eng.KindNumber, string(v)
	case float64:
		out.Kind, out.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		out.Kind = eng.KindNull
	}
	s.keys.Value()
	return out, nil
}

// Location is unknown; go-json's decoder does not expose the input offset.
func (s *source) Location() int64 { return -1 }
