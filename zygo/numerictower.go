package zygo

import "errors"

type NumericOp int

const (
	Add NumericOp = iota
	Sub
	Mult
	Div
)

var WrongType error = errors.New("operands have invalid type")

func (op NumericOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	case Div:
		return "/"
	}
	return "?"
}

// NumericDo applies op to two numbers. Two ints give an int, except
// that an inexact division gives a float. Any float operand makes the
// result a float.
func NumericDo(op NumericOp, a, b Sexp) (Sexp, error) {
	switch ta := a.(type) {
	case *SexpFloat:
		return NumericMatchFloat(op, ta, b)
	case *SexpInt:
		return NumericMatchInt(op, ta, b)
	}
	return SexpNull, WrongType
}

func NumericMatchFloat(op NumericOp, a *SexpFloat, b Sexp) (Sexp, error) {
	var fb float64
	switch tb := b.(type) {
	case *SexpFloat:
		fb = tb.Val
	case *SexpInt:
		fb = float64(tb.Val)
	default:
		return SexpNull, WrongType
	}
	switch op {
	case Add:
		return &SexpFloat{Val: a.Val + fb}, nil
	case Sub:
		return &SexpFloat{Val: a.Val - fb}, nil
	case Mult:
		return &SexpFloat{Val: a.Val * fb}, nil
	case Div:
		if fb == 0 {
			return SexpNull, ErrDivideByZero
		}
		return &SexpFloat{Val: a.Val / fb}, nil
	}
	return SexpNull, errors.New("unrecognized numeric operation")
}

func NumericMatchInt(op NumericOp, a *SexpInt, b Sexp) (Sexp, error) {
	var ib int64
	switch tb := b.(type) {
	case *SexpFloat:
		return NumericMatchFloat(op, &SexpFloat{Val: float64(a.Val)}, tb)
	case *SexpInt:
		ib = tb.Val
	default:
		return SexpNull, WrongType
	}
	switch op {
	case Add:
		return &SexpInt{Val: a.Val + ib}, nil
	case Sub:
		return &SexpInt{Val: a.Val - ib}, nil
	case Mult:
		return &SexpInt{Val: a.Val * ib}, nil
	case Div:
		if ib == 0 {
			return SexpNull, ErrDivideByZero
		}
		if a.Val%ib == 0 {
			return &SexpInt{Val: a.Val / ib}, nil
		}
		return &SexpFloat{Val: float64(a.Val) / float64(ib)}, nil
	}
	return SexpNull, errors.New("unrecognized numeric operation")
}
