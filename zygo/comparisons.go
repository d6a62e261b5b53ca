package zygo

import (
	"math"
	"strings"
)

// Equal is structural equality. Both sides must be the same variant,
// so a list never equals a vector and 1 never equals 1.0. Maps compare
// as unordered sets of entries. Callables compare by identity.
func Equal(a Sexp, b Sexp) bool {
	switch x := a.(type) {
	case SexpSentinel:
		y, ok := b.(SexpSentinel)
		return ok && x == y
	case SexpSpecial:
		y, ok := b.(SexpSpecial)
		return ok && x == y
	case *SexpBool:
		y, ok := b.(*SexpBool)
		return ok && x.Val == y.Val
	case *SexpInt:
		y, ok := b.(*SexpInt)
		return ok && x.Val == y.Val
	case *SexpFloat:
		y, ok := b.(*SexpFloat)
		return ok && x.Val == y.Val
	case *SexpStr:
		y, ok := b.(*SexpStr)
		return ok && x.S == y.S
	case *SexpSymbol:
		y, ok := b.(*SexpSymbol)
		return ok && x.number == y.number
	case *SexpPair:
		y, ok := b.(*SexpPair)
		if !ok {
			return false
		}
		return equalPairs(x, y)
	case *SexpArray:
		y, ok := b.(*SexpArray)
		if !ok || len(x.Val) != len(y.Val) {
			return false
		}
		for i := range x.Val {
			if !Equal(x.Val[i], y.Val[i]) {
				return false
			}
		}
		return true
	case *SexpHash:
		y, ok := b.(*SexpHash)
		if !ok || x.NumKeys != y.NumKeys {
			return false
		}
		for _, e := range x.order {
			v, found := y.HashGet(e.key)
			if !found || !Equal(e.val, v) {
				return false
			}
		}
		return true
	}
	return a == b
}

func equalPairs(x *SexpPair, y *SexpPair) bool {
	var a, b Sexp = x, y
	for {
		pa, okA := a.(*SexpPair)
		pb, okB := b.(*SexpPair)
		if !okA || !okB {
			return okA == okB && Equal(a, b)
		}
		if !Equal(pa.Head, pb.Head) {
			return false
		}
		a, b = pa.Tail, pb.Tail
	}
}

func signumFloat(f float64) int {
	if f > 0 {
		return 1
	}
	if f < 0 {
		return -1
	}
	return 0
}

func compareFloat(f *SexpFloat, expr Sexp) (int, error) {
	var other float64
	switch e := expr.(type) {
	case *SexpInt:
		other = float64(e.Val)
	case *SexpFloat:
		other = e.Val
	default:
		return 0, NewEvalError(InvalidArgument, "cannot compare %s to %s", TypeName(f), TypeName(expr))
	}
	if math.IsNaN(f.Val) || math.IsNaN(other) {
		return 0, NewEvalError(InvalidArgument, "cannot order NaN")
	}
	return signumFloat(f.Val - other), nil
}

func compareInt(i *SexpInt, expr Sexp) (int, error) {
	switch e := expr.(type) {
	case *SexpInt:
		switch {
		case i.Val < e.Val:
			return -1, nil
		case i.Val > e.Val:
			return 1, nil
		}
		return 0, nil
	case *SexpFloat:
		c, err := compareFloat(e, i)
		return -c, err
	}
	return 0, NewEvalError(InvalidArgument, "cannot compare %s to %s", TypeName(i), TypeName(expr))
}

func compareString(s *SexpStr, expr Sexp) (int, error) {
	if e, ok := expr.(*SexpStr); ok {
		return strings.Compare(s.S, e.S), nil
	}
	return 0, NewEvalError(InvalidArgument, "cannot compare %s to %s", TypeName(s), TypeName(expr))
}

// Compare orders numbers (ints and floats mix) and strings. Anything
// else is an InvalidArgument error.
func Compare(a Sexp, b Sexp) (int, error) {
	switch x := a.(type) {
	case *SexpInt:
		return compareInt(x, b)
	case *SexpFloat:
		return compareFloat(x, b)
	case *SexpStr:
		return compareString(x, b)
	}
	return 0, NewEvalError(InvalidArgument, "cannot order %s", TypeName(a))
}
