package interpreter

import (
	"fmt"

	"uninter/interpreter-go/pkg/ast"
	"uninter/interpreter-go/pkg/runtime"
)

// ErrorKind classifies evaluation failures. Every kind aborts the run;
// the evaluator never recovers locally.
type ErrorKind int

const (
	ErrUnboundVariable ErrorKind = iota
	ErrNotCallable
	ErrWrongArity
	ErrNotATuple
	ErrDivisionByZero
	ErrUnknownOperator
	ErrUnknownNodeKind
	ErrTypeMismatch
	ErrStackExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnboundVariable:
		return "unbound variable"
	case ErrNotCallable:
		return "not callable"
	case ErrWrongArity:
		return "wrong arity"
	case ErrNotATuple:
		return "not a tuple"
	case ErrDivisionByZero:
		return "division by zero"
	case ErrUnknownOperator:
		return "unknown operator"
	case ErrUnknownNodeKind:
		return "unknown node kind"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrStackExhausted:
		return "stack exhausted"
	default:
		return fmt.Sprintf("error_kind_%d", int(k))
	}
}

// EvalError is the diagnostic carried out of a failed evaluation.
type EvalError struct {
	ErrKind ErrorKind
	Detail  string
	Loc     *ast.Location
}

func (e *EvalError) Error() string {
	msg := e.ErrKind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Loc != nil && e.Loc.Filename != "" {
		msg = fmt.Sprintf("%s (%s:%d)", msg, e.Loc.Filename, e.Loc.Start)
	}
	return msg
}

// Kind exposes the error classification for callers using errors.As.
func (e *EvalError) Kind() ErrorKind { return e.ErrKind }

func evalErr(kind ErrorKind, loc *ast.Location, format string, args ...any) *EvalError {
	return &EvalError{ErrKind: kind, Detail: fmt.Sprintf(format, args...), Loc: loc}
}

func errUnbound(name string, loc *ast.Location) *EvalError {
	return evalErr(ErrUnboundVariable, loc, "'%s' is not defined", name)
}

func errNotCallable(got runtime.Value, loc *ast.Location) *EvalError {
	return evalErr(ErrNotCallable, loc, "cannot call value of kind %s", got.Kind())
}

func errWrongArity(expected, actual int, loc *ast.Location) *EvalError {
	return evalErr(ErrWrongArity, loc, "function expects %d arguments, got %d", expected, actual)
}

func errNotATuple(got runtime.Value, loc *ast.Location) *EvalError {
	return evalErr(ErrNotATuple, loc, "cannot project from value of kind %s", got.Kind())
}

func errDivisionByZero(loc *ast.Location) *EvalError {
	return evalErr(ErrDivisionByZero, loc, "right operand is zero")
}

func errUnknownOperator(op ast.BinaryOp, loc *ast.Location) *EvalError {
	return evalErr(ErrUnknownOperator, loc, "operator %q", string(op))
}

func errUnknownNodeKind(kind ast.NodeKind, loc *ast.Location) *EvalError {
	return evalErr(ErrUnknownNodeKind, loc, "node kind %q", string(kind))
}

func errTypeMismatch(op ast.BinaryOp, lhs, rhs runtime.Value, loc *ast.Location) *EvalError {
	return evalErr(ErrTypeMismatch, loc, "operator %s is not defined on %s and %s", op, lhs.Kind(), rhs.Kind())
}

func errStackExhausted(limit int, loc *ast.Location) *EvalError {
	return evalErr(ErrStackExhausted, loc, "evaluation depth exceeded %d frames", limit)
}
