package zygo

import (
	"io"
	"sort"
	"strings"
)

// Zlisp is one running program: its symbol table, its global scope and
// the registry of native operations bound into that scope.
type Zlisp struct {
	symtable    map[string]int
	revsymtable map[int]string
	nextsymbol  int

	global   *Scope
	builtins []*SexpBuiltin
	specials map[int]SexpSpecial

	ampersand *SexpSymbol

	// Stdout receives program output from print and println.
	Stdout io.Writer

	trace bool
	depth int
}

// NewZlisp returns an interpreter whose global scope holds every
// primitive in AllBuiltinFunctions.
func NewZlisp() *Zlisp {
	return NewZlispWithFuncs(AllBuiltinFunctions())
}

// NewZlispWithFuncs returns a new *Zlisp instance with access to only
// the given builtin functions. Builtin ids follow the sorted order of
// the names, so the same table always yields the same ids.
func NewZlispWithFuncs(funcs map[string]ZlispUserFunction) *Zlisp {
	env := &Zlisp{
		symtable:    make(map[string]int),
		revsymtable: make(map[int]string),
		nextsymbol:  1,
		global:      NewGlobalScope(),
		specials:    make(map[int]SexpSpecial),
		Stdout:      OurStdout,
	}

	for i := range specialNames {
		sym := env.MakeSymbol(specialNames[i])
		env.specials[sym.number] = SexpSpecial(i)
	}
	env.ampersand = env.MakeSymbol("&")

	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		env.AddFunction(name, funcs[name])
	}
	return env
}

func (env *Zlisp) MakeSymbol(name string) *SexpSymbol {
	if env == nil {
		panic("internal problem:  env.MakeSymbol called with nil env")
	}
	symnum, ok := env.symtable[name]
	if ok {
		return &SexpSymbol{name: name, number: symnum}
	}
	symbol := &SexpSymbol{name: name, number: env.nextsymbol}
	env.symtable[name] = symbol.number
	env.revsymtable[symbol.number] = name
	env.nextsymbol++
	return symbol
}

func (env *Zlisp) SymbolName(number int) (string, bool) {
	name, ok := env.revsymtable[number]
	return name, ok
}

func (env *Zlisp) GlobalScope() *Scope {
	return env.global
}

// AddFunction registers a native operation under the next free id and
// binds it globally under name.
func (env *Zlisp) AddFunction(name string, function ZlispUserFunction) *SexpBuiltin {
	b := &SexpBuiltin{Id: len(env.builtins), Name: name, Fun: function}
	env.builtins = append(env.builtins, b)
	env.global.DefineGlobal(env.MakeSymbol(name), BuiltinBinding(b))
	return b
}

func (env *Zlisp) Builtin(id int) (*SexpBuiltin, bool) {
	if id < 0 || id >= len(env.builtins) {
		return nil, false
	}
	return env.builtins[id], true
}

func (env *Zlisp) AddGlobal(name string, obj Sexp) {
	env.global.DefineGlobal(env.MakeSymbol(name), LiteralBinding(obj))
}

// SetTrace turns on logging of every special form and call.
func (env *Zlisp) SetTrace(on bool) {
	env.trace = on
}

func (env *Zlisp) tracef(format string, a ...interface{}) {
	if env.trace {
		TSPrintf(strings.Repeat("  ", env.depth)+format, a...)
	}
}

// ReadString reads every form in src without evaluating any of them.
func (env *Zlisp) ReadString(src string) ([]Sexp, error) {
	return env.NewParser().ParseString(src)
}

// EvalExpressions evaluates already-read forms in order at global scope
// and returns the last result. A recur reaching this level is a misuse.
func (env *Zlisp) EvalExpressions(xs []Sexp) EvalResult {
	res := Success(SexpNull)
	for _, x := range xs {
		res = env.Evaluate(x, env.global)
		switch res.Kind {
		case Failed:
			return res
		case Recurred:
			return recurMisuse("top-level position")
		}
	}
	return res
}

func (env *Zlisp) EvalStringResult(src string) EvalResult {
	xs, err := env.ReadString(src)
	if err != nil {
		return Failure(err)
	}
	return env.EvalExpressions(xs)
}

// EvalString reads and evaluates src, reporting a failure as an error.
func (env *Zlisp) EvalString(src string) (Sexp, error) {
	res := env.EvalStringResult(src)
	if res.Kind != Succeeded {
		return SexpNull, res.Err
	}
	return res.Value, nil
}
