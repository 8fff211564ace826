package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls how repeated object keys are handled.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is the issue shape reported by the enforcement layer. Path is a
// JSON pointer, "/" for the root.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives every issue, fatal or not.
	IssueSink func(SimpleIssue)
	// FailFast turns duplicate-key warnings into errors.
	FailFast bool
}

type frame struct {
	object  bool
	path    string
	keys    map[string]struct{}
	pending string
	next    int
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy, the maximum nesting depth and the maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcer{inner: inner, opt: opt}
}

type enforcer struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcer) report(code, path, msg string) IssueError {
	if path == "" {
		path = "/"
	}
	si := SimpleIssue{Code: code, Path: path, Message: msg}
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

func (e *enforcer) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	if e.opt.MaxBytes > 0 {
		if off := e.inner.Location(); off > e.opt.MaxBytes {
			return Token{}, e.report("truncated", e.valuePath(), "max bytes exceeded")
		}
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		e.advance()
		f := frame{object: tok.Kind == KindBeginObject, path: path}
		if f.object {
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.report("parse_error", path, "max depth exceeded")
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 && e.stack[n-1].object {
			top := &e.stack[n-1]
			top.pending = tok.String
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				ie := e.report("duplicate_key", joinJSONPointer(top.path, tok.String), "key '"+tok.String+"' duplicated")
				if e.opt.OnDuplicate == DupError || e.opt.FailFast {
					return Token{}, ie
				}
			}
			top.keys[tok.String] = struct{}{}
		}
	default:
		e.advance()
	}
	return tok, nil
}

// valuePath is the pointer of the value about to be read.
func (e *enforcer) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := e.stack[n-1]
	if top.object {
		return joinJSONPointer(top.path, top.pending)
	}
	return joinJSONPointer(top.path, strconv.Itoa(top.next))
}

func (e *enforcer) advance() {
	if n := len(e.stack); n > 0 && !e.stack[n-1].object {
		e.stack[n-1].next++
	}
}

func (e *enforcer) Location() int64 { return e.inner.Location() }

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
