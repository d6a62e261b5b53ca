package zygo

import (
	"fmt"
	"strings"
)

// Arity is one clause of a function or macro.
type Arity struct {
	Params   []*SexpSymbol
	Variadic *SexpSymbol // nil unless the clause ends in `& rest`
	Body     []Sexp
}

// slots is how many values a recur must supply to this clause.
func (a *Arity) slots() int {
	if a.Variadic != nil {
		return len(a.Params) + 1
	}
	return len(a.Params)
}

func (a *Arity) describe() string {
	names := make([]string, 0, len(a.Params)+2)
	for _, p := range a.Params {
		names = append(names, p.name)
	}
	if a.Variadic != nil {
		names = append(names, "&", a.Variadic.name)
	}
	return "[" + strings.Join(names, " ") + "]"
}

// SexpFunction is the callable behind both fn and defmacro: its arities
// plus the scope that was active when it was defined.
type SexpFunction struct {
	Name    *SexpSymbol // optional for functions, required for macros
	Arities []*Arity
	Closing *Scope
	IsMacro bool
}

func (sf *SexpFunction) displayName() string {
	if sf.Name == nil {
		return "anonymous"
	}
	return sf.Name.name
}

func (sf *SexpFunction) SexpString(ps *PrintState) string {
	kind := "fn"
	if sf.IsMacro {
		kind = "macro"
	}
	clauses := make([]string, len(sf.Arities))
	for i, a := range sf.Arities {
		clauses[i] = a.describe()
	}
	return fmt.Sprintf("(%s %s %s)", kind, sf.displayName(), strings.Join(clauses, " "))
}

// extractParameters splits a parameter vector into its fixed symbols
// and the optional variadic one. `&` may only appear second to last.
func (env *Zlisp) extractParameters(vec *SexpArray) ([]*SexpSymbol, *SexpSymbol, error) {
	names := make([]*SexpSymbol, 0, len(vec.Val))
	for _, x := range vec.Val {
		sym, ok := x.(*SexpSymbol)
		if !ok {
			return nil, nil, NewEvalError(InvalidArgument,
				"parameter %s is not a symbol", x.SexpString(nil))
		}
		names = append(names, sym)
	}
	n := len(names)
	for i, sym := range names {
		if sym.number == env.ampersand.number && i != n-2 {
			return nil, nil, NewEvalError(InvalidArgument,
				"`&` must be second to last in %s", vec.SexpString(nil))
		}
	}
	if n >= 2 && names[n-2].number == env.ampersand.number {
		return names[:n-2], names[n-1], nil
	}
	return names, nil, nil
}

// buildArity turns `[params] body...` into an Arity.
func (env *Zlisp) buildArity(clause []Sexp) (*Arity, error) {
	if len(clause) == 0 {
		return nil, NewEvalError(InvalidArgument, "empty arity clause")
	}
	vec, ok := clause[0].(*SexpArray)
	if !ok {
		return nil, NewEvalError(InvalidArgument,
			"arity clause must start with a parameter vector, got %s", clause[0].SexpString(nil))
	}
	params, variadic, err := env.extractParameters(vec)
	if err != nil {
		return nil, err
	}
	return &Arity{Params: params, Variadic: variadic, Body: clause[1:]}, nil
}

// buildCallable parses either a single `[params] body...` clause or a
// run of `([params] body...)` clauses, and captures scope.
func (env *Zlisp) buildCallable(name *SexpSymbol, clauses Params, isMacro bool, scope *Scope) (*SexpFunction, error) {
	if clauses.Len() == 0 {
		return nil, NewEvalError(ArityError, "no arity clause given")
	}
	f := &SexpFunction{Name: name, Closing: scope, IsMacro: isMacro}

	if _, single := clauses.At(0).(*SexpArray); single {
		a, err := env.buildArity(clauses.Slice())
		if err != nil {
			return nil, err
		}
		f.Arities = []*Arity{a}
		return f, nil
	}

	for i := 0; i < clauses.Len(); i++ {
		var clause []Sexp
		switch c := clauses.At(i).(type) {
		case *SexpPair:
			var err error
			if clause, err = ListToArray(c); err != nil {
				return nil, NewEvalError(InvalidArgument,
					"arity clause %s is not a proper list", c.SexpString(nil))
			}
		case *SexpArray:
			clause = c.Val
		default:
			return nil, NewEvalError(InvalidArgument,
				"arity clause %s is not a list", c.SexpString(nil))
		}
		a, err := env.buildArity(clause)
		if err != nil {
			return nil, err
		}
		f.Arities = append(f.Arities, a)
	}
	if err := f.checkArities(); err != nil {
		return nil, err
	}
	return f, nil
}

// checkArities keeps dispatch deterministic: no two fixed clauses with
// the same count, and at most one variadic clause.
func (sf *SexpFunction) checkArities() error {
	fixed := make(map[int]bool)
	var variadic *Arity
	for _, a := range sf.Arities {
		if a.Variadic != nil {
			if variadic != nil {
				return NewEvalError(ArityError, "%s has more than one variadic clause", sf.displayName())
			}
			variadic = a
			continue
		}
		if fixed[len(a.Params)] {
			return NewEvalError(ArityError, "%s has two clauses taking %d arguments",
				sf.displayName(), len(a.Params))
		}
		fixed[len(a.Params)] = true
	}
	return nil
}

// selectArity prefers an exact fixed match, then a variadic clause
// needing no more than n fixed arguments.
func (sf *SexpFunction) selectArity(n int) (*Arity, error) {
	for _, a := range sf.Arities {
		if a.Variadic == nil && len(a.Params) == n {
			return a, nil
		}
	}
	for _, a := range sf.Arities {
		if a.Variadic != nil && len(a.Params) <= n {
			return a, nil
		}
	}
	return nil, NewEvalError(ArityError, "%s cannot take %d arguments", sf.displayName(), n)
}

// frame builds the invocation scope: a fresh child of the defining
// scope, never of the caller's. On a call the variadic parameter
// collects the leftover arguments as a list; on a recur it takes the
// supplied value as-is.
func (sf *SexpFunction) frame(a *Arity, args Params, fromRecur bool) *Scope {
	bindings := make(map[int]Binding, a.slots()+1)
	if sf.Name != nil && !sf.IsMacro {
		bindings[sf.Name.number] = LiteralBinding(sf)
	}
	rest := args
	for _, p := range a.Params {
		v, _ := rest.First()
		bindings[p.number] = LiteralBinding(v)
		rest = rest.Rest()
	}
	if a.Variadic != nil {
		if fromRecur {
			v, _ := rest.First()
			bindings[a.Variadic.number] = LiteralBinding(v)
		} else {
			bindings[a.Variadic.number] = LiteralBinding(rest.ToList())
		}
	}
	return sf.Closing.NewChild(sf.displayName(), bindings)
}

// invoke runs the body of sf with args bound, re-running it for as long
// as the body ends in recur. It never returns Recurred.
func (env *Zlisp) invoke(sf *SexpFunction, args Params) EvalResult {
	a, err := sf.selectArity(args.Len())
	if err != nil {
		return Failure(err)
	}
	env.tracef("call %s %s with %s", sf.displayName(), a.describe(), args)
	env.depth++
	defer func() { env.depth-- }()

	body := NewParams(a.Body...)
	scope := sf.frame(a, args, false)
	for {
		res := sfDo(env, body, scope)
		if res.Kind != Recurred {
			return res
		}
		if res.Args.Len() != a.slots() {
			return arityErrorf("recur in %s expects %d values, got %d",
				sf.displayName(), a.slots(), res.Args.Len())
		}
		scope = sf.frame(a, res.Args, true)
	}
}

// expandAndEval runs macro m over the unevaluated forms, then evaluates
// the form it produced in the caller's scope.
func (env *Zlisp) expandAndEval(m *SexpFunction, forms Params, caller *Scope) EvalResult {
	expansion := env.invoke(m, forms)
	if expansion.Kind != Succeeded {
		return expansion
	}
	env.tracef("macro %s expanded to %s", m.displayName(), expansion.Value.SexpString(nil))
	return env.Evaluate(expansion.Value, caller)
}
