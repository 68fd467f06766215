package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. A *Error matches the sentinel of
// its Kind under errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrUpstream      = errors.New("upstream error")
	ErrDataShape     = errors.New("data shape error")
	ErrValidation    = errors.New("validation error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindUpstream      ErrorKind = "upstream"
	KindDataShape     ErrorKind = "data_shape"
	KindValidation    ErrorKind = "validation"
)

// Error wraps an underlying error with operation context and a kind.
// Status, Body and Timeout are only populated for upstream failures.
type Error struct {
	Op      string
	Kind    ErrorKind
	Msg     string
	Status  int
	Body    string
	Timeout bool
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	if e.Status != 0 {
		base += fmt.Sprintf(" (status=%d)", e.Status)
	}
	if e.Timeout {
		base += " (timeout)"
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == sentinelFor(e.Kind)
}

func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindConfiguration:
		return ErrConfiguration
	case KindUpstream:
		return ErrUpstream
	case KindDataShape:
		return ErrDataShape
	case KindValidation:
		return ErrValidation
	default:
		return nil
	}
}

// IsKind helps callers classify errors without depending on the package
// that produced them.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

func ConfigurationError(op, msg string) error {
	return &Error{Op: op, Kind: KindConfiguration, Msg: msg}
}

func ValidationError(op, msg string) error {
	return &Error{Op: op, Kind: KindValidation, Msg: msg}
}

func DataShapeError(op, msg string) error {
	return &Error{Op: op, Kind: KindDataShape, Msg: msg}
}

// UpstreamHTTPError reports a non-success status from an external service.
func UpstreamHTTPError(op string, status int, body string) error {
	return &Error{Op: op, Kind: KindUpstream, Status: status, Body: body}
}

// UpstreamTransportError reports a failure to reach an external service.
func UpstreamTransportError(op string, timeout bool, err error) error {
	return &Error{Op: op, Kind: KindUpstream, Timeout: timeout, Err: err}
}
