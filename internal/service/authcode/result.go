package authcode

import (
	"errors"
	"fmt"
	"sync"
)

// Error identifiers recorded for failures detected locally.
const (
	stateMismatchErrorCode = "state_mismatch"
	missingCodeErrorCode   = "missing_code"
)

// Outcome is what a callback produced: either a code or an error identifier.
type Outcome struct {
	// Code is the authorization code on success.
	Code string
	// ErrorCode is the error identifier: the server's "error" parameter,
	// "state_mismatch" or "missing_code".
	ErrorCode string
	// ErrorDescription is the server's optional "error_description".
	ErrorDescription string

	kind error
}

func successOutcome(code string) Outcome {
	return Outcome{Code: code}
}

func failureOutcome(kind error, errorCode, description string) Outcome {
	return Outcome{
		ErrorCode:        errorCode,
		ErrorDescription: description,
		kind:             kind,
	}
}

// Err returns nil on success, otherwise an error matching one of
// ErrAuthorizationDenied, ErrStateMismatch or ErrMissingCode.
func (o Outcome) Err() error {
	switch {
	case o.kind == nil:
		return nil
	case errors.Is(o.kind, ErrAuthorizationDenied) && o.ErrorDescription != "":
		return fmt.Errorf("%w: %s (%s)", o.kind, o.ErrorCode, o.ErrorDescription)
	case errors.Is(o.kind, ErrAuthorizationDenied):
		return fmt.Errorf("%w: %s", o.kind, o.ErrorCode)
	default:
		return o.kind
	}
}

// CallbackResult is a single-assignment slot shared by the listener (writer)
// and the waiting caller (reader).
type CallbackResult struct {
	mu      sync.Mutex
	outcome Outcome
	isSet   bool
	done    chan struct{}
}

// NewCallbackResult returns an empty result.
func NewCallbackResult() *CallbackResult {
	return &CallbackResult{
		done: make(chan struct{}),
	}
}

// Store records the outcome if none was recorded yet and reports whether it did.
func (r *CallbackResult) Store(outcome Outcome) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isSet {
		return false
	}

	r.outcome = outcome
	r.isSet = true

	close(r.done)

	return true
}

// Load returns the recorded outcome and whether one exists.
func (r *CallbackResult) Load() (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.outcome, r.isSet
}

// Done is closed once an outcome is recorded.
func (r *CallbackResult) Done() <-chan struct{} {
	return r.done
}
