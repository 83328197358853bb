package market

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch produced nothing.
type Kind int

const (
	NetworkFailure Kind = iota + 1
	ParseFailure
	MissingField
	InsufficientHistory
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case ParseFailure:
		return "parse failure"
	case MissingField:
		return "missing field"
	case InsufficientHistory:
		return "insufficient history"
	}
	return "unknown failure"
}

// FetchError is returned by every provider call. Callers route it to the
// skip or rejection path; it never aborts a batch.
type FetchError struct {
	Kind   Kind
	Symbol string
	Op     string
	Err    error
}

func NewFetchError(kind Kind, symbol, op string, err error) *FetchError {
	return &FetchError{Kind: kind, Symbol: symbol, Op: op, Err: err}
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Op, e.Symbol, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, or 0 when err is not a
// FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
