package tariff

import (
	"errors"
	"fmt"
)

// Kind classifies a request-scoped failure. Every kind is recoverable:
// it ends the current request and is reported to the client, never the
// process.
type Kind string

const (
	// KindValidation marks malformed or unparseable client input.
	KindValidation Kind = "validation_error"
	// KindConnection marks pool exhaustion or an unreachable database.
	KindConnection Kind = "connection_error"
	// KindQuery marks an execution-time database fault.
	KindQuery Kind = "query_error"
)

// Error is a classified failure carrying an operator-readable message
// and, when wrapping a lower-level fault, the cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf builds a validation error from a format string.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func connectionErr(msg string, err error) *Error {
	return &Error{Kind: KindConnection, Msg: msg, Err: err}
}

func queryErr(msg string, err error) *Error {
	return &Error{Kind: KindQuery, Msg: msg, Err: err}
}

// KindOf extracts the failure kind from an error chain. The second
// return is false when the error carries no classification.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
