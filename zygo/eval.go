package zygo

// Evaluate is the single re-entrant entry point of the evaluator.
// Special forms call back into it for their sub-forms.
func (env *Zlisp) Evaluate(form Sexp, scope *Scope) EvalResult {
	switch x := form.(type) {
	case *SexpSymbol:
		return env.evalSymbol(x, scope)
	case *SexpPair:
		return env.evalList(x, scope)
	case *SexpArray:
		return env.evalArray(x, scope)
	case *SexpHash:
		return env.evalHash(x, scope)
	}
	return Success(form)
}

func (env *Zlisp) evalSymbol(sym *SexpSymbol, scope *Scope) EvalResult {
	b := scope.Lookup(sym)
	switch b.Kind {
	case BindingLiteral, BindingBuiltin:
		return Success(b.Val)
	case BindingUnbound:
		return Failure(NewEvalError(UnboundSymbol, "symbol `%s` has no value", sym.name))
	case BindingMacro:
		return invalidArgf("macro `%s` cannot be used as a value", sym.name)
	}
	if sp, ok := env.specials[sym.number]; ok {
		return Success(sp)
	}
	return Failure(NewEvalError(InvalidSymbol, "symbol `%s` not found", sym.name))
}

// evalOperand evaluates a form whose value is needed by its parent, so
// a recur coming out of it is a misuse.
func (env *Zlisp) evalOperand(form Sexp, scope *Scope) EvalResult {
	res := env.Evaluate(form, scope)
	if res.Kind == Recurred {
		return recurMisuse("a value position")
	}
	return res
}

// evalEach evaluates forms left to right and stops at the first failure.
func (env *Zlisp) evalEach(forms Params, scope *Scope) (Params, error) {
	var vals Params
	for i := 0; i < forms.Len(); i++ {
		res := env.evalOperand(forms.At(i), scope)
		if res.Kind != Succeeded {
			return vals, res.Err
		}
		vals.Append(res.Value)
	}
	return vals, nil
}

func (env *Zlisp) evalList(form *SexpPair, scope *Scope) EvalResult {
	args, err := ListToParams(form.Tail)
	if err != nil {
		return invalidArgf("cannot evaluate improper list %s", form.SexpString(nil))
	}

	switch head := form.Head.(type) {
	case SexpSpecial:
		return env.callSpecial(head, args, scope)
	case *SexpSymbol:
		if sp, ok := env.specials[head.number]; ok {
			return env.callSpecial(sp, args, scope)
		}
		if b := scope.Lookup(head); b.Kind == BindingMacro {
			return env.expandAndEval(b.Val.(*SexpFunction), args, scope)
		}
	}

	fres := env.evalOperand(form.Head, scope)
	if fres.Kind != Succeeded {
		return fres
	}
	vals, err := env.evalEach(args, scope)
	if err != nil {
		return Failure(err)
	}
	return env.Apply(fres.Value, vals)
}

func (env *Zlisp) evalArray(arr *SexpArray, scope *Scope) EvalResult {
	out := make([]Sexp, len(arr.Val))
	for i, x := range arr.Val {
		res := env.evalOperand(x, scope)
		if res.Kind != Succeeded {
			return res
		}
		out[i] = res.Value
	}
	return Success(&SexpArray{Val: out})
}

func (env *Zlisp) evalHash(h *SexpHash, scope *Scope) EvalResult {
	out := NewHash()
	for _, e := range h.entries() {
		k := env.evalOperand(e.key, scope)
		if k.Kind != Succeeded {
			return k
		}
		v := env.evalOperand(e.val, scope)
		if v.Kind != Succeeded {
			return v
		}
		if err := out.HashSet(k.Value, v.Value); err != nil {
			return invalidArgf("bad map key: %v", err)
		}
	}
	return Success(out)
}

// Apply invokes a function or builtin with already-evaluated arguments.
func (env *Zlisp) Apply(fn Sexp, args Params) EvalResult {
	switch f := fn.(type) {
	case *SexpBuiltin:
		return env.callBuiltin(f, args)
	case *SexpFunction:
		if !f.IsMacro {
			return env.invoke(f, args)
		}
	}
	return Failure(NewEvalError(NotEvalable, "%s `%s` is not callable",
		TypeName(fn), fn.SexpString(nil)))
}

func (env *Zlisp) callBuiltin(b *SexpBuiltin, args Params) EvalResult {
	env.tracef("builtin %s %s", b.Name, args)
	res := b.Fun(env, b.Name, args)
	if res.Kind == Recurred {
		return recurMisuse("the result of builtin " + b.Name)
	}
	return res
}

// MacroExpand runs the macro named by the head of form over its raw
// arguments and returns the produced form without evaluating it. Forms
// that are not macro calls come back unchanged.
func (env *Zlisp) MacroExpand(form Sexp, scope *Scope) EvalResult {
	pair, ok := form.(*SexpPair)
	if !ok {
		return Success(form)
	}
	sym, ok := pair.Head.(*SexpSymbol)
	if !ok {
		return Success(form)
	}
	if _, special := env.specials[sym.number]; special {
		return Success(form)
	}
	b := scope.Lookup(sym)
	if b.Kind != BindingMacro {
		return Success(form)
	}
	args, err := ListToParams(pair.Tail)
	if err != nil {
		return invalidArgf("cannot expand improper list %s", pair.SexpString(nil))
	}
	return env.invoke(b.Val.(*SexpFunction), args)
}
