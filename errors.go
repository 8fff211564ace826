package skema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. Leaf codes describe the failed expectation; branch codes
// (CodeIndex, CodeKey, CodeMember) only appear on DecodeError branches.
const (
	CodeInvalidType     = "invalid_type"
	CodeInvalidLiteral  = "invalid_literal"
	CodeInvalidEnum     = "invalid_enum"
	CodeRequired        = "required"
	CodeUnexpectedIndex = "unexpected_index"
	CodeUnknownKey      = "unknown_key"
	CodeNaN             = "nan"
	CodeInfinite        = "infinite"
	CodeRefinement      = "refinement"
	CodeTransform       = "transform"

	CodeIndex  = "index"
	CodeKey    = "key"
	CodeMember = "member"

	// Input-level codes reported by ParseFrom before decoding starts.
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// Issue is a flattened, path-qualified entry suitable for APIs and logs.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Localized description of Code.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"expected": "number"}).
	Params map[string]any
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
// DecodeErrors are flattened.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var des DecodeErrors
	if errors.As(err, &des) {
		return des.Issues(), true
	}
	return nil, false
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg, Offset: -1})
}
