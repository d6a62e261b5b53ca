package zygo

import (
	"errors"
	"fmt"
)

var NotAList = errors.New("not a list")

func Cons(a Sexp, b Sexp) *SexpPair {
	return &SexpPair{Head: a, Tail: b}
}

// ListToArray copies the elements of a proper list into a slice.
func ListToArray(expr Sexp) ([]Sexp, error) {
	if !IsList(expr) {
		return nil, NotAList
	}
	arr := make([]Sexp, 0)

	for expr != SexpEmpty {
		list, ok := expr.(*SexpPair)
		if !ok {
			return nil, NotAList
		}
		arr = append(arr, list.Head)
		expr = list.Tail
	}

	return arr, nil
}

// MakeList builds a fresh list; no expressions gives the empty list.
func MakeList(expressions []Sexp) Sexp {
	var list Sexp = SexpEmpty
	for i := len(expressions) - 1; i >= 0; i-- {
		list = Cons(expressions[i], list)
	}
	return list
}

// ListToParams collects the elements of a proper list.
func ListToParams(expr Sexp) (Params, error) {
	var p Params
	for expr != SexpEmpty {
		list, ok := expr.(*SexpPair)
		if !ok {
			return p, NotAList
		}
		p.Append(list.Head)
		expr = list.Tail
	}
	return p, nil
}

func ListLen(expr Sexp) (int, error) {
	sz := 0
	for expr != SexpEmpty {
		list, ok := expr.(*SexpPair)
		if !ok {
			return 0, fmt.Errorf("ListLen() called on non-list")
		}
		sz++
		expr = list.Tail
	}
	return sz, nil
}
