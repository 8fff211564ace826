package engine_test

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	eng "github.com/reoring/skema/internal/engine"
	jsonsrc "github.com/reoring/skema/source/json"
)

func TestMaterialize_JSONNumber(t *testing.T) {
	v, err := eng.DecodeAnyFromSource(jsonsrc.NewBytes([]byte(`{"a":[1,"x",true,null],"b":{}}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"a": []any{json.Number("1"), "x", true, nil}, "b": map[string]any{}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestMaterialize_Float64(t *testing.T) {
	v, err := eng.DecodeAnyFromSourceAsFloat64(jsonsrc.NewBytes([]byte(`[1.5, []]`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{1.5, []any{}}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestEnforce_Duplicate(t *testing.T) {
	var got []eng.SimpleIssue
	src := eng.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`[{"a":1},{"b":{"c~/":1,"c~/":2}}]`)), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink:   func(si eng.SimpleIssue) { got = append(got, si) },
	})
	if err := eng.Drain(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []eng.SimpleIssue{{Code: "duplicate_key", Path: "/1/b/c~0~1", Message: "key 'c~/' duplicated"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestEnforce_DuplicateError(t *testing.T) {
	src := eng.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":1,"a":2}`)), eng.EnforceOptions{OnDuplicate: eng.DupError})
	err := eng.Drain(src)
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Path != "/a" {
		t.Fatalf("expected duplicate at /a, got %v", err)
	}
}

func TestEnforce_MaxDepth(t *testing.T) {
	src := eng.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":[[1]]}`)), eng.EnforceOptions{MaxDepth: 2})
	err := eng.Drain(src)
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != "parse_error" || ie.Path != "/a/0" {
		t.Fatalf("expected depth error at /a/0, got %v", err)
	}
}

type sliceSource struct {
	toks []eng.Token
	pos  int
}

func (s *sliceSource) NextToken() (eng.Token, error) {
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	s.pos++
	return s.toks[s.pos-1], nil
}

func (s *sliceSource) Location() int64 { return int64(s.pos) }

func TestDrain_UnexpectedEnd(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{{Kind: eng.KindBeginArray}}}
	if _, err := eng.DecodeAnyFromSource(src); err == nil {
		t.Fatalf("expected error for unterminated array")
	}
}
