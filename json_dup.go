package skema

import (
	"errors"
	"io"

	eng "github.com/reoring/skema/internal/engine"
)

// DetectJSONDuplicateKeysBytes reports duplicate object keys in a JSON
// document as issues with JSON-pointer paths. It reads the document through
// the current JSON driver. maxIssues < 0 means unlimited; 0 disables
// reporting. With strict.OnDuplicateKey == Error scanning stops at the first
// duplicate.
func DetectJSONDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	return detectDuplicates(JSONBytes(data), strict, maxIssues)
}

// DetectJSONDuplicateKeysReader is DetectJSONDuplicateKeysBytes for an
// io.Reader. The reader is consumed.
func DetectJSONDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	return detectDuplicates(JSONReader(r), strict, maxIssues)
}

func detectDuplicates(src Source, strict Strictness, maxIssues int) (Issues, error) {
	if strict.OnDuplicateKey == Ignore || maxIssues == 0 {
		return nil, nil
	}
	var iss Issues
	full := false
	sink := func(si eng.SimpleIssue) {
		if full {
			return
		}
		iss = AppendIssues(iss, Issue{Code: si.Code, Path: si.Path, Message: si.Message, Offset: src.Location()})
		if maxIssues > 0 && len(iss) >= maxIssues {
			iss = AppendIssues(iss, Issue{Code: CodeTruncated, Path: "/", Message: "max issues reached", Offset: -1})
			full = true
		}
	}
	err := eng.Drain(eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(strict.OnDuplicateKey),
		IssueSink:   sink,
	}))
	var ie eng.IssueError
	if err != nil && !errors.As(err, &ie) {
		return iss, err
	}
	return iss, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
