package um

import "github.com/pkg/errors"

// MalformedProgramError is returned by Load when the program image cannot
// be parsed: wrong length, or the underlying reader failed.
type MalformedProgramError struct {
	cause error
}

func (e *MalformedProgramError) Error() string { return "malformed program: " + e.cause.Error() }

// Unwrap allows errors.Is / errors.As to see through to the cause.
func (e *MalformedProgramError) Unwrap() error { return e.cause }

func malformed(format string, args ...interface{}) error {
	return &MalformedProgramError{cause: errors.Errorf(format, args...)}
}

func wrapMalformed(err error, msg string) error {
	return &MalformedProgramError{cause: errors.Wrap(err, msg)}
}

// RuntimeErrorKind classifies a RuntimeError for callers that need to
// distinguish fatal conditions without string matching.
type RuntimeErrorKind int

// Runtime error kinds, one per fatal condition the dispatch loop can hit.
const (
	ErrDivisionByZero RuntimeErrorKind = iota
	ErrIllegalOpcode
	ErrOutputRange
	ErrInvalidHandle
	ErrHostIO
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case ErrDivisionByZero:
		return "division by zero"
	case ErrIllegalOpcode:
		return "illegal opcode"
	case ErrOutputRange:
		return "output value out of range"
	case ErrInvalidHandle:
		return "invalid array handle"
	case ErrHostIO:
		return "host I/O failure"
	default:
		return "unknown runtime error"
	}
}

// RuntimeError reports a fatal condition encountered while executing an
// instruction. In errors returned by Run and Step, Finger points at the
// instruction that raised it; errors returned directly by Heap methods
// carry Finger -1.
type RuntimeError struct {
	Kind   RuntimeErrorKind
	Finger int
	cause  error
}

func (e *RuntimeError) Error() string {
	msg := "um: " + e.Kind.String()
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap allows errors.Is / errors.As to see through to the cause, if any.
func (e *RuntimeError) Unwrap() error { return e.cause }

func runtimeErr(kind RuntimeErrorKind, finger int) error {
	return &RuntimeError{Kind: kind, Finger: finger}
}

func runtimeErrWrap(kind RuntimeErrorKind, finger int, cause error) error {
	return &RuntimeError{Kind: kind, Finger: finger, cause: cause}
}
