package schema

import "fmt"

// DecodeErrorKind classifies wire decode failures.
type DecodeErrorKind string

const (
	// DecodeErrorNotObject indicates the line is not a JSON object.
	DecodeErrorNotObject DecodeErrorKind = "not_object"
	// DecodeErrorMissingTag indicates the "event" field is absent or not a string.
	DecodeErrorMissingTag DecodeErrorKind = "missing_tag"
	// DecodeErrorUnknownTag indicates an unrecognized "event" value.
	DecodeErrorUnknownTag DecodeErrorKind = "unknown_tag"
	// DecodeErrorBadField indicates a declared field has the wrong type.
	DecodeErrorBadField DecodeErrorKind = "bad_field"
)

// DecodeError wraps a wire decode failure with a stable classification.
// Decode failures are local to one input line and never reach the
// dispatch loop.
type DecodeError struct {
	Kind DecodeErrorKind
	Tag  Tag
	Err  error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "decode error"
	}
	if e.Err != nil {
		return fmt.Sprintf("decode event: %s: %v", e.Kind, e.Err)
	}
	if e.Tag != "" {
		return fmt.Sprintf("decode event: %s: %q", e.Kind, e.Tag)
	}
	return fmt.Sprintf("decode event: %s", e.Kind)
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
