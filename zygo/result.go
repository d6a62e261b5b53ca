package zygo

import "fmt"

// ResultKind says which of the three evaluation outcomes an EvalResult holds.
type ResultKind int

const (
	Succeeded ResultKind = iota
	// Recurred asks the enclosing loop or function body to run again
	// with Args as the new bindings. Only the owner of a tail position
	// may consume it.
	Recurred
	Failed
)

func (k ResultKind) String() string {
	switch k {
	case Succeeded:
		return "Succeeded"
	case Recurred:
		return "Recur"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// EvalResult is the outcome of evaluating one form.
type EvalResult struct {
	Kind  ResultKind
	Value Sexp
	Args  Params
	Err   error
}

func Success(v Sexp) EvalResult {
	return EvalResult{Kind: Succeeded, Value: v}
}

func Recur(args Params) EvalResult {
	return EvalResult{Kind: Recurred, Value: SexpNull, Args: args}
}

func Failure(err error) EvalResult {
	return EvalResult{Kind: Failed, Value: SexpNull, Err: err}
}

func (r EvalResult) String() string {
	switch r.Kind {
	case Succeeded:
		return r.Value.SexpString(nil)
	case Recurred:
		return "recur " + r.Args.String()
	}
	return "error: " + r.Err.Error()
}

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	// ArityError: wrong argument count for a special form, or no arity
	// of a callable matches.
	ArityError ErrorKind = iota + 1
	// InvalidArgument: a specific structural form was required and
	// something else was found.
	InvalidArgument
	// BindingMismatch: odd-length binding vector in let or loop.
	BindingMismatch
	// RecurMisuse: recur seen outside a tail position that consumes it.
	RecurMisuse
	// InvalidSymbol: the symbol was never declared.
	InvalidSymbol
	// UnboundSymbol: declared by def with no value.
	UnboundSymbol
	// NotEvalable: the head of an application is not callable.
	NotEvalable
	DivideByZero
	RuntimeError
)

var errorKindNames = map[ErrorKind]string{
	ArityError:      "arity error",
	InvalidArgument: "invalid argument",
	BindingMismatch: "binding mismatch",
	RecurMisuse:     "recur misuse",
	InvalidSymbol:   "invalid symbol",
	UnboundSymbol:   "unbound symbol",
	NotEvalable:     "not evalable",
	DivideByZero:    "divide by zero",
	RuntimeError:    "runtime error",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// EvalError is the payload of a Failed result. errors.Is matches on
// Kind alone, so errors.Is(err, ErrArity) works for any arity failure.
type EvalError struct {
	Kind ErrorKind
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == e.Kind
}

var (
	ErrArity           = &EvalError{Kind: ArityError}
	ErrInvalidArgument = &EvalError{Kind: InvalidArgument}
	ErrBindingMismatch = &EvalError{Kind: BindingMismatch}
	ErrRecurMisuse     = &EvalError{Kind: RecurMisuse}
	ErrInvalidSymbol   = &EvalError{Kind: InvalidSymbol}
	ErrUnboundSymbol   = &EvalError{Kind: UnboundSymbol}
	ErrNotEvalable     = &EvalError{Kind: NotEvalable}
	ErrDivideByZero    = &EvalError{Kind: DivideByZero}
	ErrRuntime         = &EvalError{Kind: RuntimeError}
)

func NewEvalError(kind ErrorKind, format string, a ...interface{}) *EvalError {
	return &EvalError{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}

// KindOf returns the ErrorKind of err, or 0 if err is not an *EvalError.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*EvalError); ok {
		return e.Kind
	}
	return 0
}

func arityErrorf(format string, a ...interface{}) EvalResult {
	return Failure(NewEvalError(ArityError, format, a...))
}

func invalidArgf(format string, a ...interface{}) EvalResult {
	return Failure(NewEvalError(InvalidArgument, format, a...))
}

func recurMisuse(where string) EvalResult {
	return Failure(NewEvalError(RecurMisuse, "recur is not allowed in %s", where))
}
