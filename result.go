package skema

// Outcome classifies a Result.
type Outcome int

const (
	// Success: the input conforms.
	Success Outcome = iota
	// Warning: the input conforms after an accepted correction.
	Warning
	// Failure: the input does not conform.
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Result is the outcome of Decode or Encode. Value is meaningful unless the
// outcome is Failure.
type Result struct {
	Value    any
	Warnings DecodeErrors
	Errors   DecodeErrors
}

// Outcome reports Failure when Errors is non-empty, Warning when Warnings is
// non-empty and Success otherwise.
func (r Result) Outcome() Outcome {
	switch {
	case len(r.Errors) > 0:
		return Failure
	case len(r.Warnings) > 0:
		return Warning
	}
	return Success
}

func (r Result) IsSuccess() bool { return r.Outcome() == Success }
func (r Result) IsWarning() bool { return r.Outcome() == Warning }
func (r Result) IsFailure() bool { return r.Outcome() == Failure }

// Err returns the errors of a failed result, nil otherwise.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

// Messages renders the errors of a failure, or the warnings of a warning, as
// single-line messages.
func (r Result) Messages() []string {
	src := r.Warnings
	if len(r.Errors) > 0 {
		src = r.Errors
	}
	out := make([]string, len(src))
	for i, e := range src {
		out[i] = e.Error()
	}
	return out
}

func resultOf(o outcome) Result {
	if o.failed() {
		return Result{Errors: o.errors}
	}
	return Result{Value: o.value, Warnings: o.warnings}
}
