// Package vcerrors defines the error taxonomy shared by every component of
// the presentation core: interval resolution, credential extraction,
// revocation-state building, and the prover state machine.
package vcerrors

import "fmt"

// Kind categorizes an Error the way protocol handlers need to distinguish
// them: by a small, stable, numeric-friendly set rather than by message
// text.
type Kind int

const (
	// InvalidJSON indicates a parse failure on a request, credentials,
	// self-attested attributes, or an inbound A2A message.
	InvalidJSON Kind = iota

	// InvalidProofCredentialData indicates a missing required cred_info
	// field, or a referenced attribute absent from the proof request.
	InvalidProofCredentialData

	// InvalidSchema indicates the ledger returned no schema for a
	// referenced id.
	InvalidSchema

	// InvalidConnectionHandle indicates an unknown or wrong-typed
	// connection handle.
	InvalidConnectionHandle

	// InvalidDisclosedProofHandle indicates an unknown or wrong-typed
	// prover handle.
	InvalidDisclosedProofHandle

	// InvalidState indicates the requested operation is not allowed in
	// the prover's current state.
	InvalidState

	// ActionNotSupported indicates a deprecated operation invoked on a
	// v2.0-only object. send_proof and reject_proof also return it when
	// called in a state that does not allow them.
	ActionNotSupported

	// LibindyError wraps an opaque crypto or ledger failure.
	LibindyError

	// InvalidOption indicates conflicting parameters were supplied
	// (e.g. both reason and proposal to decline_presentation_request).
	InvalidOption
)

func (k Kind) String() string {
	switch k {
	case InvalidJSON:
		return "InvalidJson"
	case InvalidProofCredentialData:
		return "InvalidProofCredentialData"
	case InvalidSchema:
		return "InvalidSchema"
	case InvalidConnectionHandle:
		return "InvalidConnectionHandle"
	case InvalidDisclosedProofHandle:
		return "InvalidDisclosedProofHandle"
	case InvalidState:
		return "InvalidState"
	case ActionNotSupported:
		return "ActionNotSupported"
	case LibindyError:
		return "LibindyError"
	case InvalidOption:
		return "InvalidOption"
	default:
		return "Unknown"
	}
}

// Error is a diagnostic error carrying a stable Kind plus a human-readable
// message intended for logs, not for end-user display.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error of the given kind around an underlying cause,
// preserving it for errors.Unwrap/errors.Is/errors.As.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, vcerrors.New(vcerrors.InvalidJSON, "")) style checks work
// against a zero-value sentinel of the desired kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the Kind of err if it is (or wraps) a *Error, reporting ok
// as false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if as(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// as is a tiny local errors.As to avoid importing the stdlib errors package
// purely for this single call site in multiple files; kept here so callers
// of this package only need the stdlib "errors" for Is/As against sentinels
// if they want it.
func as(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
