package skema

import (
	"context"
	"errors"
	"io"

	"github.com/reoring/skema/ast"
	eng "github.com/reoring/skema/internal/engine"
)

// ParseFrom materializes the whole Source into a value, applying the
// duplicate-key, depth and size limits of opts, and decodes it against n.
// The returned error is non-nil only for input-level problems (syntax,
// enforcement) and is always Issues; schema mismatches are reported in the
// Result.
func ParseFrom(ctx context.Context, n ast.Node, src Source, opts ...ParseOpt) (Result, error) {
	if n == nil {
		return Result{}, singleIssue(CodeParseError, "nil schema")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, singleIssue(CodeParseError, err.Error())
	}
	opt := lastParseOpt(opts)
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return Result{}, toIssues(err)
	}
	return Decode(n, v, DecodeOpt{AllErrors: opt.AllErrors}), nil
}

// ParseReader reads JSON from r and delegates to ParseFrom. When MaxBytes is
// set the size cap is enforced before any token is read.
func ParseReader(ctx context.Context, n ast.Node, r io.Reader, opts ...ParseOpt) (Result, error) {
	opt := lastParseOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return Result{}, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > opt.MaxBytes {
			return Result{}, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return ParseFrom(ctx, n, JSONBytes(data), opts...)
	}
	return ParseFrom(ctx, n, JSONReader(r), opts...)
}

// Materialize builds the value a Source holds without decoding it.
func Materialize(src Source, opts ...ParseOpt) (any, error) {
	v, err := decodeAnyFromSource(src, lastParseOpt(opts))
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

func decodeAnyFromSource(src Source, opt ParseOpt) (any, error) {
	var sink func(eng.SimpleIssue)
	if opt.OnIssue != nil {
		sink = func(si eng.SimpleIssue) {
			opt.OnIssue(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: src.Location()})
		}
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
		FailFast:    opt.FailFast,
	})
	switch src.NumberMode() {
	case NumberFloat64:
		return eng.DecodeAnyFromSourceAsFloat64(enforced)
	default:
		return eng.DecodeAnyFromSource(enforced)
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: -1})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err, Offset: -1})
}
