package zygo

// SpecialFormFunction receives the raw, unevaluated argument forms.
type SpecialFormFunction func(env *Zlisp, args Params, scope *Scope) EvalResult

func (s SexpSpecial) function() SpecialFormFunction {
	switch s {
	case SpecialQuote:
		return sfQuote
	case SpecialIf:
		return sfIf
	case SpecialDo:
		return sfDo
	case SpecialDef:
		return sfDef
	case SpecialLet:
		return sfLet
	case SpecialFn:
		return sfFn
	case SpecialDefmacro:
		return sfDefmacro
	case SpecialLoop:
		return sfLoop
	case SpecialRecur:
		return sfRecur
	case SpecialApply:
		return sfApply
	case SpecialAttempt:
		return sfAttempt
	}
	panic("unknown special form")
}

func (env *Zlisp) callSpecial(s SexpSpecial, args Params, scope *Scope) EvalResult {
	env.tracef("special %s %s", s.Name(), args)
	return s.function()(env, args, scope)
}

// (quote x) returns x unevaluated. Extra forms are ignored.
func sfQuote(env *Zlisp, args Params, scope *Scope) EvalResult {
	first, ok := args.First()
	if !ok {
		return Success(SexpNull)
	}
	return Success(first)
}

// (if test then else?)
func sfIf(env *Zlisp, args Params, scope *Scope) EvalResult {
	n := args.Len()
	if n != 2 && n != 3 {
		return arityErrorf("if takes 2 or 3 forms, got %d", n)
	}
	test := env.Evaluate(args.At(0), scope)
	if test.Kind != Succeeded {
		return test
	}
	if IsTruthy(test.Value) {
		return env.Evaluate(args.At(1), scope)
	}
	if n == 3 {
		return env.Evaluate(args.At(2), scope)
	}
	return Success(SexpNull)
}

// (do forms...) returns the value of the last form. Only the last form
// may recur.
func sfDo(env *Zlisp, args Params, scope *Scope) EvalResult {
	var final Sexp = SexpNull
	n := args.Len()
	for i := 0; i < n; i++ {
		res := env.Evaluate(args.At(i), scope)
		switch res.Kind {
		case Failed:
			return res
		case Recurred:
			if i == n-1 {
				return res
			}
			return recurMisuse("a non-final form of do")
		}
		final = res.Value
	}
	return Success(final)
}

// (def sym init?) always binds in the global scope.
func sfDef(env *Zlisp, args Params, scope *Scope) EvalResult {
	if args.Len() == 0 {
		return arityErrorf("def needs a symbol")
	}
	sym, ok := args.At(0).(*SexpSymbol)
	if !ok {
		return invalidArgf("def needs a symbol, got %s", args.At(0).SexpString(nil))
	}
	if args.Len() > 1 {
		res := env.evalOperand(args.At(1), scope)
		if res.Kind != Succeeded {
			return res
		}
		scope.DefineGlobal(sym, LiteralBinding(res.Value))
	} else if !scope.IsDeclared(sym) {
		scope.DefineGlobal(sym, UnboundBinding)
	}
	return Success(sym)
}

// bindingVector evaluates a let/loop binding vector pair by pair. Each
// initializer sees the pairs before it and none after it. An initializer
// that does not succeed stops the walk and its result is returned as-is
// in stop.
func (env *Zlisp) bindingVector(form Sexp, scope *Scope) (syms []*SexpSymbol, bindings map[int]Binding, stop EvalResult) {
	vec, ok := form.(*SexpArray)
	if !ok {
		return nil, nil, invalidArgf("bindings must be a vector, got %s", form.SexpString(nil))
	}
	if len(vec.Val)%2 != 0 {
		return nil, nil, Failure(NewEvalError(BindingMismatch,
			"binding vector %s has an odd number of forms", vec.SexpString(nil)))
	}
	syms = make([]*SexpSymbol, 0, len(vec.Val)/2)
	bindings = make(map[int]Binding, len(vec.Val)/2)
	for i := 0; i < len(vec.Val); i += 2 {
		sym, ok := vec.Val[i].(*SexpSymbol)
		if !ok {
			return nil, nil, invalidArgf("cannot bind to %s", vec.Val[i].SexpString(nil))
		}
		initScope := scope
		if len(bindings) > 0 {
			initScope = scope.NewChild("binding", copyBindings(bindings))
		}
		res := env.Evaluate(vec.Val[i+1], initScope)
		if res.Kind != Succeeded {
			return nil, nil, res
		}
		bindings[sym.number] = LiteralBinding(res.Value)
		syms = append(syms, sym)
	}
	return syms, bindings, Success(SexpNull)
}

func copyBindings(m map[int]Binding) map[int]Binding {
	cp := make(map[int]Binding, len(m)+1)
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// (let [sym init ...] body...)
func sfLet(env *Zlisp, args Params, scope *Scope) EvalResult {
	if args.Len() == 0 {
		return arityErrorf("let needs a binding vector")
	}
	// a recur from an initializer belongs to whatever encloses the let
	_, bindings, stop := env.bindingVector(args.At(0), scope)
	if stop.Kind != Succeeded {
		return stop
	}
	return sfDo(env, args.Rest(), scope.NewChild("let", bindings))
}

// (fn name? [params] body...) or (fn name? ([params] body...) ...)
func sfFn(env *Zlisp, args Params, scope *Scope) EvalResult {
	if args.Len() == 0 {
		return arityErrorf("fn needs a parameter vector or arity clauses")
	}
	name, named := args.At(0).(*SexpSymbol)
	clauses := args
	if named {
		clauses = args.Rest()
	}
	f, err := env.buildCallable(name, clauses, false, scope)
	if err != nil {
		return Failure(err)
	}
	return Success(f)
}

// (defmacro name [params] body...) binds name globally as a macro.
func sfDefmacro(env *Zlisp, args Params, scope *Scope) EvalResult {
	if args.Len() < 2 {
		return arityErrorf("defmacro needs a name and at least one arity clause")
	}
	name, ok := args.At(0).(*SexpSymbol)
	if !ok {
		return invalidArgf("defmacro needs a symbol name, got %s", args.At(0).SexpString(nil))
	}
	m, err := env.buildCallable(name, args.Rest(), true, scope)
	if err != nil {
		return Failure(err)
	}
	scope.DefineGlobal(name, MacroBinding(m))
	return Success(name)
}

// (loop [sym init ...] body...) re-runs body for as long as it ends in
// recur. Every iteration gets a fresh child of the enclosing scope, so
// neither scope depth nor Go stack grows with the iteration count.
func sfLoop(env *Zlisp, args Params, scope *Scope) EvalResult {
	if args.Len() == 0 {
		return arityErrorf("loop needs a binding vector")
	}
	syms, bindings, stop := env.bindingVector(args.At(0), scope)
	switch stop.Kind {
	case Recurred:
		return recurMisuse("a loop binding")
	case Failed:
		return stop
	}
	body := args.Rest()
	iteration := scope.NewChild("loop", bindings)
	for {
		res := sfDo(env, body, iteration)
		if res.Kind != Recurred {
			return res
		}
		if res.Args.Len() != len(syms) {
			return arityErrorf("recur in loop expects %d values, got %d", len(syms), res.Args.Len())
		}
		next := make(map[int]Binding, len(syms))
		for i, sym := range syms {
			next[sym.number] = LiteralBinding(res.Args.At(i))
		}
		iteration = scope.NewChild("loop", next)
	}
}

// (recur vals...) packages its evaluated arguments for the enclosing
// loop or function body.
func sfRecur(env *Zlisp, args Params, scope *Scope) EvalResult {
	vals, err := env.evalEach(args, scope)
	if err != nil {
		return Failure(err)
	}
	return Recur(vals)
}

// (apply f leading... coll) calls f with the leading arguments followed
// by the elements of coll. A map contributes one [key value] vector per
// entry, in insertion order.
func sfApply(env *Zlisp, args Params, scope *Scope) EvalResult {
	n := args.Len()
	if n < 2 {
		return arityErrorf("apply takes at least 2 forms, got %d", n)
	}
	fres := env.evalOperand(args.At(0), scope)
	if fres.Kind != Succeeded {
		return fres
	}
	var buf Params
	for i := 1; i < n-1; i++ {
		res := env.evalOperand(args.At(i), scope)
		if res.Kind != Succeeded {
			return res
		}
		buf.Append(res.Value)
	}
	last := env.evalOperand(args.At(n-1), scope)
	if last.Kind != Succeeded {
		return last
	}
	switch coll := last.Value.(type) {
	case *SexpPair:
		for cur := Sexp(coll); cur != SexpEmpty; {
			p, ok := cur.(*SexpPair)
			if !ok {
				return invalidArgf("apply cannot splice an improper list")
			}
			buf.Append(p.Head)
			cur = p.Tail
		}
	case *SexpArray:
		for _, x := range coll.Val {
			buf.Append(x)
		}
	case *SexpHash:
		coll.Each(func(k, v Sexp) bool {
			buf.Append(&SexpArray{Val: []Sexp{k, v}})
			return true
		})
	default:
		if coll != SexpEmpty {
			return invalidArgf("apply needs a list, vector or map last, got %s", TypeName(coll))
		}
	}
	return env.Apply(fres.Value, buf)
}

// (attempt forms...) returns the first form that does not fail, or the
// failure of the last form.
func sfAttempt(env *Zlisp, args Params, scope *Scope) EvalResult {
	if args.Len() == 0 {
		return arityErrorf("attempt needs at least one form")
	}
	var res EvalResult
	for i := 0; i < args.Len(); i++ {
		res = env.Evaluate(args.At(i), scope)
		if res.Kind != Failed {
			return res
		}
	}
	return res
}
