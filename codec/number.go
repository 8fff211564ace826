package codec

import (
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/skema/ast"
)

// NumberFromString decodes decimal strings into float64. "NaN", "Infinity"
// and "-Infinity" are accepted; surrounding spaces are not.
func NumberFromString() *ast.Transform {
	return ast.NewTransform(ast.StringKeyword, ast.NumberKeyword, decodeNumber, encodeNumber, ast.Annotations{})
}

func decodeNumber(v any) (any, error) {
	s, _ := v.(string)
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	if s == "" || strings.TrimSpace(s) != s {
		return nil, strconv.ErrSyntax
	}
	// ParseFloat also accepts "inf" and "nan" spellings.
	lower := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(lower, "inf") || lower == "nan" {
		return nil, strconv.ErrSyntax
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func encodeNumber(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return ast.FormatNumber(x), nil
	case int:
		return strconv.Itoa(x), nil
	}
	return nil, unexpected(v, "float64")
}

// JSONFromString decodes a JSON text into a plain Go value (numbers as
// float64) using go-json, and encodes values back to compact JSON.
func JSONFromString() *ast.Transform {
	return ast.NewTransform(ast.StringKeyword, ast.UnknownKeyword,
		func(v any) (any, error) {
			s, _ := v.(string)
			var out any
			if err := gojson.Unmarshal([]byte(s), &out); err != nil {
				return nil, err
			}
			return out, nil
		},
		func(v any) (any, error) {
			b, err := gojson.Marshal(v)
			if err != nil {
				return nil, err
			}
			return string(b), nil
		},
		ast.Annotations{Identifier: "ParseJson"},
	)
}
