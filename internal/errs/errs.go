// Package errs defines the error kinds surfaced to cfkit users and the exit
// code each kind maps to.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for exit-code selection and user messaging.
type Kind int

const (
	KindInternal Kind = iota
	KindUsage
	KindFilesystem
	KindConflict
	KindFetch
	KindParse
	KindVersionLookup
	KindTool
)

var kindNames = map[Kind]string{
	KindInternal:      "internal",
	KindUsage:         "usage",
	KindFilesystem:    "filesystem",
	KindConflict:      "conflict",
	KindFetch:         "fetch",
	KindParse:         "parse",
	KindVersionLookup: "version lookup",
	KindTool:          "external tool",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error is the structured error type returned across cfkit packages.
type Error struct {
	Kind   Kind
	Op     string // e.g. "scaffold.conflicts"
	Err    error
	Advice string // optional remediation hint shown below the message

	// Status is the HTTP status code for fetch failures, zero otherwise.
	Status int
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithAdvice sets the remediation hint.
func (e *Error) WithAdvice(advice string) *Error {
	e.Advice = advice
	return e
}

// New creates an Error with a formatted message as its cause.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap annotates err with a kind and operation. Returns nil for a nil err.
func Wrap(err error, kind Kind, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Fetch creates a fetch failure carrying the HTTP status code.
func Fetch(op string, status int, url string) *Error {
	return &Error{
		Kind:   KindFetch,
		Op:     op,
		Status: status,
		Err:    fmt.Errorf("GET %s returned status %d", url, status),
	}
}

// As extracts the *Error from err, or returns nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// KindOf returns the kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	if e := As(err); e != nil {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e := As(err)
	return e != nil && e.Kind == kind
}

// Exit codes, one per failure category.
const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitUsage      = 2
	ExitFilesystem = 3
	ExitConflict   = 4
	ExitFetch      = 5
	ExitParse      = 6
	ExitTool       = 7
)

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindUsage:
		return ExitUsage
	case KindFilesystem:
		return ExitFilesystem
	case KindConflict:
		return ExitConflict
	case KindFetch:
		return ExitFetch
	case KindParse:
		return ExitParse
	case KindTool:
		return ExitTool
	default:
		return ExitInternal
	}
}
