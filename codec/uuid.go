package codec

import (
	"github.com/google/uuid"

	"github.com/reoring/skema/ast"
)

// UUID accepts uuid.UUID values.
var UUID = instanceOf[uuid.UUID]("UUID")

// UUIDFromString decodes textual UUIDs (any form uuid.Parse accepts) and
// encodes them in the canonical hyphenated lower-case form.
func UUIDFromString() *ast.Transform {
	return ast.NewTransform(ast.StringKeyword, UUID,
		func(v any) (any, error) {
			s, _ := v.(string)
			u, err := uuid.Parse(s)
			if err != nil {
				return nil, err
			}
			return u, nil
		},
		func(v any) (any, error) {
			u, ok := v.(uuid.UUID)
			if !ok {
				return nil, unexpected(v, "uuid.UUID")
			}
			return u.String(), nil
		},
		ast.Annotations{},
	)
}
