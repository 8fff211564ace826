package codec

import (
	"time"

	"github.com/reoring/skema/ast"
)

// Date accepts time.Time values.
var Date = instanceOf[time.Time]("Date")

// TimeRFC3339 decodes RFC3339 strings (fractional seconds optional) into
// time.Time and encodes back in UTC with RFC3339Nano.
func TimeRFC3339() *ast.Transform {
	return ast.NewTransform(ast.StringKeyword, Date, decodeRFC3339, encodeRFC3339, ast.Annotations{})
}

func decodeRFC3339(v any) (any, error) {
	s, _ := v.(string)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func encodeRFC3339(v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, unexpected(v, "time.Time")
	}
	return t.UTC().Format(time.RFC3339Nano), nil
}
