package skema_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/skema"
	"github.com/reoring/skema/ast"
)

var personNode = structOf(
	prop("name", ast.StringKeyword),
	optProp("age", ast.NumberKeyword),
	optProp("tags", ast.NewArray(ast.StringKeyword, true)),
)

func TestParseFrom_JSON(t *testing.T) {
	r, err := skema.ParseFrom(context.Background(), personNode, skema.JSONBytes([]byte(`{"name":"ann","age":3,"tags":[]}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsSuccess() {
		t.Fatalf("expected success, got %v", r.Messages())
	}
	want := map[string]any{"name": "ann", "age": json.Number("3"), "tags": []any{}}
	if diff := cmp.Diff(want, r.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFrom_NumberMode(t *testing.T) {
	src := skema.WithNumberMode(skema.JSONBytes([]byte(`{"name":"ann","age":3}`)), skema.NumberFloat64)
	r, err := skema.ParseFrom(context.Background(), personNode, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "ann", "age": 3.0}, r.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFrom_DecodeFailureIsResult(t *testing.T) {
	r, err := skema.ParseFrom(context.Background(), personNode, skema.JSONBytes([]byte(`{"age":"x"}`)), skema.ParseOpt{AllErrors: true})
	if err != nil {
		t.Fatalf("expected decode failures in the result, got error %v", err)
	}
	want := []string{"/name did not satisfy is(required)", `/age "x" did not satisfy is(number)`}
	got := r.Messages()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFrom_SyntaxError(t *testing.T) {
	_, err := skema.ParseFrom(context.Background(), personNode, skema.JSONBytes([]byte(`{"name":`)))
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != skema.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestParseFrom_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := skema.ParseFrom(ctx, personNode, skema.JSONBytes([]byte(`{}`))); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestParseFrom_DuplicateKey_Error(t *testing.T) {
	opt := skema.ParseOpt{Strictness: skema.Strictness{OnDuplicateKey: skema.Error}}
	_, err := skema.ParseReader(context.Background(), ast.UnknownKeyword, bytes.NewReader([]byte(`{"a":1,"a":2}`)), opt)
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != skema.CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got %+v", iss[0])
	}
}

func TestParseFrom_DuplicateKey_NestedPath(t *testing.T) {
	opt := skema.ParseOpt{Strictness: skema.Strictness{OnDuplicateKey: skema.Error}}
	_, err := skema.ParseFrom(context.Background(), ast.UnknownKeyword, skema.JSONBytes([]byte(`[{"b":0},{"a":1,"a":2}]`)), opt)
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Path != "/1/a" {
		t.Fatalf("expected path=/1/a, got %s", iss[0].Path)
	}
}

func TestParseFrom_DuplicateKey_WarnReportsAndContinues(t *testing.T) {
	var seen []skema.Issue
	opt := skema.ParseOpt{
		Strictness: skema.Strictness{OnDuplicateKey: skema.Warn},
		OnIssue:    func(i skema.Issue) { seen = append(seen, i) },
	}
	r, err := skema.ParseFrom(context.Background(), ast.UnknownKeyword, skema.JSONBytes([]byte(`{"a":1,"a":2}`)), opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"a": json.Number("2")}, r.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if len(seen) != 1 || seen[0].Code != skema.CodeDuplicateKey {
		t.Fatalf("expected one duplicate_key issue, got %+v", seen)
	}
}

func TestParseFrom_MaxDepth(t *testing.T) {
	_, err := skema.ParseFrom(context.Background(), ast.UnknownKeyword, skema.JSONBytes([]byte(`{"a":{"b":{"c":1}}}`)), skema.ParseOpt{MaxDepth: 2})
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Path != "/a/b" {
		t.Fatalf("expected max depth issue at /a/b, got %v", err)
	}
}

func TestParseReader_MaxBytes(t *testing.T) {
	in := strings.NewReader(`{"name":"` + strings.Repeat("x", 64) + `"}`)
	_, err := skema.ParseReader(context.Background(), personNode, in, skema.ParseOpt{MaxBytes: 16})
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != skema.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestParseFrom_YAML(t *testing.T) {
	doc := []byte("name: ann\nage: 3\ntags:\n  - a\n  - b\n")
	r, err := skema.ParseFrom(context.Background(), personNode, skema.YAMLBytes(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"name": "ann", "age": 3.0, "tags": []any{"a", "b"}}
	if diff := cmp.Diff(want, r.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectJSONDuplicateKeys(t *testing.T) {
	iss, err := skema.DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2,"o":{"b":1,"b":2}}`), skema.Strictness{OnDuplicateKey: skema.Warn}, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var paths []string
	for _, i := range iss {
		paths = append(paths, i.Path)
	}
	if diff := cmp.Diff([]string{"/a", "/o/b"}, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	iss, _ = skema.DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2,"b":1,"b":2}`), skema.Strictness{OnDuplicateKey: skema.Warn}, 1)
	if len(iss) != 2 || iss[1].Code != skema.CodeTruncated {
		t.Fatalf("expected a truncated marker after the limit, got %+v", iss)
	}

	iss, _ = skema.DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2}`), skema.Strictness{}, -1)
	if len(iss) != 0 {
		t.Fatalf("expected no issues when ignoring duplicates, got %+v", iss)
	}
}

func TestJSONDriverSwap(t *testing.T) {
	defer skema.UseDefaultJSONDriver()
	if got := skema.CurrentJSONDriver().Name(); got != "encoding/json" {
		t.Fatalf("expected default driver, got %s", got)
	}
	skema.SetJSONDriver(nil)
	if got := skema.CurrentJSONDriver().Name(); got != "encoding/json" {
		t.Fatalf("expected nil to be ignored, got %s", got)
	}
}
