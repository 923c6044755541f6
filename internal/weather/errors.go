package weather

import (
	"fmt"
)

// FetchErrorKind classifies transport-level failures.
type FetchErrorKind string

const (
	FetchTimeout     FetchErrorKind = "timeout"
	FetchUnreachable FetchErrorKind = "unreachable"
	FetchHTTPStatus  FetchErrorKind = "http_status"
)

// FetchError is a typed transport failure for one source. Non-fatal: it only
// updates that source's state.
type FetchError struct {
	Kind   FetchErrorKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch: unexpected status %d", e.Status)
	default:
		return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseErrorKind classifies parser failures.
type ParseErrorKind string

const (
	ParseMalformed      ParseErrorKind = "malformed"
	ParseSchemaMismatch ParseErrorKind = "schema_mismatch"
)

// ParseError reports bytes that could not be decoded, or a payload missing a
// field the record's identity depends on. Absence of optional fields is not
// an error.
type ParseError struct {
	Kind         ParseErrorKind
	MissingField string
	Err          error
}

func (e *ParseError) Error() string {
	if e.Kind == ParseSchemaMismatch {
		return fmt.Sprintf("parse: schema mismatch, missing %q", e.MissingField)
	}
	return fmt.Sprintf("parse: malformed payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NormalizeError reports a derivation that was impossible for the whole
// record, e.g. no usable days in a feed that promises five.
type NormalizeError struct {
	Reason string
}

func (e *NormalizeError) Error() string {
	return "normalize: " + e.Reason
}
