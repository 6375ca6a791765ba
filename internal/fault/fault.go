// internal/fault/fault.go
//
// Typed error values with a severity.
//
// Context
// -------
// Every configuration, logic, or internal problem the core detects is an
// *Error.  The severity decides what happens next:
//
//   • CRITICAL  – returned up the call stack; startup aborts.
//   • anything else – handed to the logger and execution continues.
//
// Constructing an *Error never fails and never panics.  The same type is
// used for both paths, so a caller can decide late whether a value is
// returned or only reported.
//
// Notes
// -----
//   • Attach a cause with Wrap; errors.Is and errors.As see through it.
//   • Generic (non-fault) errors count as INFO with kind "Error".
package fault

import (
	"errors"
	"fmt"
)

/*────────────────────────────── severity ─────────────────────────────────*/

// Severity orders reported conditions from least to most serious.
type Severity int

const (
	Development Severity = iota
	Info
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Development:
		return "DEVELOPMENT"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Details travel with every *Error.
type Details struct {
	Priority   Severity
	SupportURL string // optional troubleshooting link
}

/*──────────────────────────────── kinds ──────────────────────────────────*/

// Kind names the class of a problem.  The set is closed.
type Kind string

const (
	KindConfiguration Kind = "ConfigurationError"
	KindLogic         Kind = "LogicError"
	KindInternal      Kind = "InternalError"

	// KindGeneric is reported for errors that are not *Error values.
	KindGeneric Kind = "Error"
)

/*──────────────────────────────── error ──────────────────────────────────*/

// Error is the single concrete error type of the package.
type Error struct {
	Kind    Kind
	Message string
	Details Details
	Err     error // optional cause
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// Configuration reports a missing, unreadable, or invalid configuration.
func Configuration(msg string, d Details) *Error {
	return &Error{Kind: KindConfiguration, Message: msg, Details: d}
}

// Logic reports an internal consistency failure, such as a log sink that
// cannot be written.
func Logic(msg string, d Details) *Error {
	return &Error{Kind: KindLogic, Message: msg, Details: d}
}

// Internal reports anything not attributable to configuration or logic.
func Internal(msg string, d Details) *Error {
	return &Error{Kind: KindInternal, Message: msg, Details: d}
}

/*─────────────────────────────── helpers ─────────────────────────────────*/

// SeverityOf returns the priority carried by err, or Info when err is not
// an *Error.
func SeverityOf(err error) Severity {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Details.Priority
	}
	return Info
}

// KindOf returns the kind carried by err, or KindGeneric.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindGeneric
}

// IsCritical reports whether err must abort the current operation.
func IsCritical(err error) bool {
	return err != nil && SeverityOf(err) == Critical
}
