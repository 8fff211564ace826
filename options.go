package skema

// DecodeOpt configures Decode and Encode. When several are passed the last one
// wins.
type DecodeOpt struct {
	// AllErrors keeps decoding a tuple or type literal after its first failed
	// member and reports every failure. By default decoding stops at the first
	// one. Union members are always all attempted.
	AllErrors bool
}

// NumberMode dictates how a Source materializes numbers.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // Fast mode (with potential precision loss).
	NumberJSONNumber                   // Preserve json.Number.
)

// Strictness configures input-level enforcement.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles the options of ParseFrom.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	// FailFast stops materialization at the first input-level issue.
	FailFast bool
	// AllErrors is forwarded to the decoder, see DecodeOpt.
	AllErrors bool
	// OnIssue receives input-level issues that do not abort materialization,
	// such as duplicate keys under Warn.
	OnIssue func(Issue)
}

func lastDecodeOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}

func lastParseOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
