// Package domainerrors carries business failures as coded errors. Services
// return them; only the HTTP layer turns a Code into a status.
package domainerrors

import "errors"

// Code is a transport-neutral failure category.
type Code string

const (
	CodeNotFound   Code = "not_found"
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks malformed identifiers and path parameters.
	CodeInvalidInput Code = "invalid_input"
	// CodeValidation marks rejected values: prices, amounts, nicknames.
	CodeValidation Code = "validation_failed"
	CodeInternal   Code = "internal_error"
	// CodeConflict marks a lost race: a stale reader version or a duplicate
	// purchase row.
	CodeConflict Code = "conflict"
	// CodeTimeout marks a missed deadline, including waiting for the
	// per-reader lock.
	CodeTimeout Code = "timeout"
	// CodePaymentDeclined marks a top-up the payment method refused.
	CodePaymentDeclined    Code = "payment_declined"
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a coded failure with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so errors.Is(err, New(code, ""))
// works through wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Validation is shorthand for a CodeValidation error.
func Validation(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Wrap attaches msg and code to err. A code already on err wins, so a
// not-found from a lower layer is not downgraded to internal.
func Wrap(err error, code Code, msg string) error {
	if existing := CodeOf(err); existing != "" {
		code = existing
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the outermost code in err's chain, or "" for plain errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries code.
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
