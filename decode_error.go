package skema

import (
	"strconv"
	"strings"

	"github.com/reoring/skema/ast"
	"github.com/reoring/skema/i18n"
)

// DecodeError is a node of a decode error tree. Leaves carry a Message;
// branches (CodeIndex, CodeKey, CodeMember) carry child Errors.
type DecodeError struct {
	Code    string
	Message string
	// Actual is the offending input value (leaves only).
	Actual any
	// Expected is the node whose expectation failed (leaves only).
	Expected ast.Node
	Index    int
	Key      ast.PropertyKey
	Errors   []*DecodeError
	Cause    error
}

// IsBranch reports whether e groups child errors.
func (e *DecodeError) IsBranch() bool {
	switch e.Code {
	case CodeIndex, CodeKey, CodeMember:
		return true
	}
	return false
}

// Error renders e on one line: branches as a path segment ("/0 ", "/a ") or
// "member: " followed by their children joined with ", ".
func (e *DecodeError) Error() string {
	switch e.Code {
	case CodeIndex:
		return "/" + strconv.Itoa(e.Index) + " " + joinErrors(e.Errors)
	case CodeKey:
		return "/" + e.Key.String() + " " + joinErrors(e.Errors)
	case CodeMember:
		return "member: " + joinErrors(e.Errors)
	}
	return e.Message
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func (e *DecodeError) label() string {
	switch e.Code {
	case CodeIndex:
		return "index " + strconv.Itoa(e.Index)
	case CodeKey:
		return "key " + ast.FormatValue(e.Key.Value())
	case CodeMember:
		return "union member"
	}
	return e.Message
}

func joinErrors(es []*DecodeError) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, ", ")
}

func indexError(i int, children []*DecodeError) *DecodeError {
	return &DecodeError{Code: CodeIndex, Index: i, Errors: children}
}

func keyError(k ast.PropertyKey, children []*DecodeError) *DecodeError {
	return &DecodeError{Code: CodeKey, Key: k, Errors: children}
}

func memberError(children []*DecodeError) *DecodeError {
	return &DecodeError{Code: CodeMember, Errors: children}
}

// DecodeErrors is the error list of a failed (or warned) decode.
type DecodeErrors []*DecodeError

// Error joins the single-line rendering of each error with ", ".
func (des DecodeErrors) Error() string { return joinErrors(des) }

// Tree renders the errors as an indented tree:
//
//	2 error(s) found
//	├─ union member
//	│  └─ null did not satisfy isEqual(1)
//	└─ union member
//	   └─ null did not satisfy isEqual("a")
func (des DecodeErrors) Tree() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(des)))
	b.WriteString(" error(s) found")
	drawForest(&b, "", des)
	return b.String()
}

func drawForest(b *strings.Builder, indent string, es []*DecodeError) {
	for i, e := range es {
		last := i == len(es)-1
		b.WriteString("\n")
		b.WriteString(indent)
		if last {
			b.WriteString("└─ ")
		} else {
			b.WriteString("├─ ")
		}
		b.WriteString(e.label())
		if e.IsBranch() {
			child := indent + "│  "
			if last {
				child = indent + "   "
			}
			drawForest(b, child, e.Errors)
		}
	}
}

// Issues flattens the tree into path-qualified Issues, one per leaf, in tree
// order. Union branches do not add a path segment.
func (des DecodeErrors) Issues() Issues {
	var out Issues
	for _, e := range des {
		out = flattenError(out, "", e)
	}
	return out
}

func flattenError(out Issues, path string, e *DecodeError) Issues {
	switch e.Code {
	case CodeIndex:
		p := joinJSONPointer(path, strconv.Itoa(e.Index))
		for _, c := range e.Errors {
			out = flattenError(out, p, c)
		}
		return out
	case CodeKey:
		p := joinJSONPointer(path, e.Key.String())
		for _, c := range e.Errors {
			out = flattenError(out, p, c)
		}
		return out
	case CodeMember:
		for _, c := range e.Errors {
			out = flattenError(out, path, c)
		}
		return out
	}
	if path == "" {
		path = "/"
	}
	it := Issue{Path: path, Code: e.Code, Message: e.Message, Hint: i18n.T(e.Code, nil), Cause: e.Cause, Offset: -1}
	if e.Expected != nil {
		it.Params = map[string]any{"expected": ast.Describe(e.Expected)}
	}
	return AppendIssues(out, it)
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
