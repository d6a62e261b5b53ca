package zygo

import "fmt"

const paramsInline = 8

// Params is the argument vector handed to callables. The first eight
// slots live inline, so short argument lists need no extra allocation;
// later values spill into others.
//
// Params is a value type. Rest returns a view that shares storage with
// its receiver, so Append is only for populating a freshly built Params.
type Params struct {
	inline [paramsInline]Sexp
	others []Sexp
	off    int
	n      int
}

func NewParams(vals ...Sexp) Params {
	var p Params
	for _, v := range vals {
		p.Append(v)
	}
	return p
}

func (p *Params) slot(i int) Sexp {
	if i < paramsInline {
		return p.inline[i]
	}
	return p.others[i-paramsInline]
}

func (p Params) Len() int {
	return p.n
}

func (p Params) At(i int) Sexp {
	if i < 0 || i >= p.n {
		panic(fmt.Sprintf("Params index %d out of range [0,%d)", i, p.n))
	}
	return p.slot(p.off + i)
}

func (p Params) First() (Sexp, bool) {
	if p.n == 0 {
		return SexpNull, false
	}
	return p.slot(p.off), true
}

func (p Params) Last() (Sexp, bool) {
	if p.n == 0 {
		return SexpNull, false
	}
	return p.slot(p.off + p.n - 1), true
}

// Rest drops the first value. The receiver is unchanged.
func (p Params) Rest() Params {
	if p.n == 0 {
		return p
	}
	p.off++
	p.n--
	return p
}

func (p *Params) Append(v Sexp) {
	i := p.off + p.n
	if i < paramsInline {
		p.inline[i] = v
	} else {
		p.others = append(p.others[:i-paramsInline], v)
	}
	p.n++
}

// PrefixedBy returns a new Params holding prefix followed by a copy of
// the receiver's values.
func (p Params) PrefixedBy(prefix Sexp) Params {
	q := NewParams(prefix)
	for i := 0; i < p.n; i++ {
		q.Append(p.At(i))
	}
	return q
}

func (p Params) Slice() []Sexp {
	s := make([]Sexp, p.n)
	for i := range s {
		s[i] = p.At(i)
	}
	return s
}

func (p Params) ToList() Sexp {
	var list Sexp = SexpEmpty
	for i := p.n - 1; i >= 0; i-- {
		list = Cons(p.At(i), list)
	}
	return list
}

func (p Params) String() string {
	return "[" + DisplayString(p) + "]"
}
