package core

import (
	"errors"
	"fmt"
)

// Code is a machine-readable rejection code.
type Code string

const (
	// CodeInsufficientBudget: a bid or RTM amount exceeds the bidder's budget.
	CodeInsufficientBudget Code = "INSUFFICIENT_BUDGET"
	// CodeNoBidPlaced: a sale was attempted with no active bid.
	CodeNoBidPlaced Code = "NO_BID_PLACED"
	// CodeInvalidTransition: the session phase or RTM state does not allow the operation.
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	// CodeNotFound: an organization code or entrant index does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeInvalidArgument: malformed input such as an unknown bid step or negative raise.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeInvariantViolation is reported for internal inconsistencies only.
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
)

// RejectionError is a recoverable rejection of a caller intent.
// State is unchanged whenever a RejectionError is returned.
type RejectionError struct {
	Code    Code
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any RejectionError with the same code, so
// errors.Is(err, ErrInsufficientBudget) works for detailed rejections.
func (e *RejectionError) Is(target error) bool {
	t, ok := target.(*RejectionError)
	return ok && t.Code == e.Code
}

var (
	ErrInsufficientBudget = &RejectionError{Code: CodeInsufficientBudget}
	ErrNoBidPlaced        = &RejectionError{Code: CodeNoBidPlaced}
	ErrInvalidTransition  = &RejectionError{Code: CodeInvalidTransition}
	ErrNotFound           = &RejectionError{Code: CodeNotFound}
	ErrInvalidArgument    = &RejectionError{Code: CodeInvalidArgument}
)

func reject(code Code, format string, args ...any) error {
	return &RejectionError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvariantError reports a violated internal invariant (a programming error),
// kept distinct from user-facing rejections.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant %q violated: %s", e.Invariant, e.Detail)
}

// CodeOf extracts the code from a rejection or invariant error.
// It returns the empty code for nil and for unrelated errors.
func CodeOf(err error) Code {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Code
	}
	var inv *InvariantError
	if errors.As(err, &inv) {
		return CodeInvariantViolation
	}
	return ""
}
