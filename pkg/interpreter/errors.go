package interpreter

import (
	"fmt"

	"abrvalg/interpreter-go/pkg/token"
)

// RuntimeErrorKind enumerates the ways evaluation can fail.
type RuntimeErrorKind int

const (
	ErrUnboundName RuntimeErrorKind = iota
	ErrTypeMismatch
	ErrArity
	ErrNotCallable
	ErrIndexOutOfRange
	ErrDivisionByZero
	ErrStackOverflow
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case ErrUnboundName:
		return "unbound name"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrArity:
		return "arity"
	case ErrNotCallable:
		return "not callable"
	case ErrIndexOutOfRange:
		return "index out of range"
	case ErrDivisionByZero:
		return "division by zero"
	case ErrStackOverflow:
		return "stack overflow"
	default:
		return fmt.Sprintf("unknown_error_%d", int(k))
	}
}

// RuntimeError halts the current top-level statement. It carries the
// failure kind, a message, and the best available source position.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Msg  string
	Pos  token.Position
}

func (e *RuntimeError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s error: %s at %s", e.Kind, e.Msg, e.Pos)
}

func runtimeErrorf(kind RuntimeErrorKind, pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// builtinErrorf builds a RuntimeError with no position; the call site
// fills it in so builtin failures still point at source.
func builtinErrorf(kind RuntimeErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
