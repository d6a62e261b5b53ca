package zygo

import (
	"strconv"
	"strings"
)

// Sexp is any value the evaluator reads, produces or passes around.
// Consumers dispatch on the concrete types below with type switches.
type Sexp interface {
	SexpString(ps *PrintState) string
}

// SexpSentinel values carry no payload.
type SexpSentinel int

const (
	// SexpNull is nil.
	SexpNull SexpSentinel = iota
	// SexpEmpty is the empty list; it is not nil.
	SexpEmpty
	// SexpEnd marks the end of reader input and is never evaluated.
	SexpEnd
)

func (sent SexpSentinel) SexpString(ps *PrintState) string {
	switch sent {
	case SexpNull:
		return "nil"
	case SexpEmpty:
		return "()"
	case SexpEnd:
		return "End"
	}
	return ""
}

type SexpBool struct {
	Val bool
}

func (b *SexpBool) SexpString(ps *PrintState) string {
	if b.Val {
		return "true"
	}
	return "false"
}

type SexpInt struct {
	Val int64
}

func (i *SexpInt) SexpString(ps *PrintState) string {
	return strconv.FormatInt(i.Val, 10)
}

type SexpFloat struct {
	Val float64
}

func (f *SexpFloat) SexpString(ps *PrintState) string {
	s := strconv.FormatFloat(f.Val, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

type SexpStr struct {
	S string
}

func (s *SexpStr) SexpString(ps *PrintState) string {
	if ps.IsDisplay() {
		return s.S
	}
	return strconv.Quote(s.S)
}

// SexpSymbol is an interned name. Two symbols are the same symbol
// iff their numbers match.
type SexpSymbol struct {
	name   string
	number int
}

func (sym *SexpSymbol) SexpString(ps *PrintState) string {
	return sym.name
}

func (sym *SexpSymbol) Name() string {
	return sym.name
}

func (sym *SexpSymbol) Number() int {
	return sym.number
}

// SexpPair is one cons cell. Tail is either another *SexpPair or
// SexpEmpty. Cells are never mutated once they are reachable from a
// value, so tails may be shared between lists.
type SexpPair struct {
	Head Sexp
	Tail Sexp
}

func (pair *SexpPair) SexpString(ps *PrintState) string {
	var parts []string
	var cur Sexp = pair
	for {
		p, ok := cur.(*SexpPair)
		if !ok {
			break
		}
		parts = append(parts, p.Head.SexpString(ps))
		cur = p.Tail
	}
	if cur != SexpEmpty {
		parts = append(parts, "\\", cur.SexpString(ps))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// SexpArray is a vector.
type SexpArray struct {
	Val []Sexp
}

func (arr *SexpArray) SexpString(ps *PrintState) string {
	parts := make([]string, len(arr.Val))
	for i, x := range arr.Val {
		parts[i] = x.SexpString(ps)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// SexpBuiltin is a native operation. Id is stable for the lifetime of
// the interpreter that registered it.
type SexpBuiltin struct {
	Id   int
	Name string
	Fun  ZlispUserFunction
}

func (b *SexpBuiltin) SexpString(ps *PrintState) string {
	return "builtin " + b.Name
}

// SexpSpecial tags a special form. The reader produces these for the
// special form names, and they evaluate to themselves.
type SexpSpecial int

const (
	SpecialQuote SexpSpecial = iota
	SpecialIf
	SpecialDo
	SpecialDef
	SpecialLet
	SpecialFn
	SpecialDefmacro
	SpecialLoop
	SpecialRecur
	SpecialApply
	SpecialAttempt
)

var specialNames = [...]string{
	SpecialQuote:    "quote",
	SpecialIf:       "if",
	SpecialDo:       "do",
	SpecialDef:      "def",
	SpecialLet:      "let",
	SpecialFn:       "fn",
	SpecialDefmacro: "defmacro",
	SpecialLoop:     "loop",
	SpecialRecur:    "recur",
	SpecialApply:    "apply",
	SpecialAttempt:  "attempt",
}

func (s SexpSpecial) Name() string {
	return specialNames[s]
}

func (s SexpSpecial) SexpString(ps *PrintState) string {
	return specialNames[s]
}

// LookupSpecial reports whether name is a special form.
func LookupSpecial(name string) (SexpSpecial, bool) {
	for i, n := range specialNames {
		if n == name {
			return SexpSpecial(i), true
		}
	}
	return 0, false
}

// IsTruthy: only nil and false are false.
func IsTruthy(expr Sexp) bool {
	switch e := expr.(type) {
	case SexpSentinel:
		return e != SexpNull
	case *SexpBool:
		return e.Val
	}
	return true
}

func IsList(expr Sexp) bool {
	if expr == SexpEmpty {
		return true
	}
	_, ok := expr.(*SexpPair)
	return ok
}

// TypeName is used in error messages.
func TypeName(expr Sexp) string {
	switch e := expr.(type) {
	case SexpSentinel:
		switch e {
		case SexpNull:
			return "nil"
		case SexpEmpty:
			return "list"
		}
		return "end"
	case *SexpBool:
		return "bool"
	case *SexpInt:
		return "int"
	case *SexpFloat:
		return "float"
	case *SexpStr:
		return "string"
	case *SexpSymbol:
		return "symbol"
	case *SexpPair:
		return "list"
	case *SexpArray:
		return "vector"
	case *SexpHash:
		return "map"
	case *SexpFunction:
		if e.IsMacro {
			return "macro"
		}
		return "function"
	case *SexpBuiltin:
		return "builtin"
	case SexpSpecial:
		return "special form"
	}
	return "unknown"
}
