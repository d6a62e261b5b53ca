package zygo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ZlispUserFunction is a native operation. It receives evaluated
// arguments and reports failure through a Failed result.
type ZlispUserFunction func(env *Zlisp, name string, args Params) EvalResult

func wrongNargs(name string, want string, got int) EvalResult {
	return arityErrorf("%s takes %s argument(s), got %d", name, want, got)
}

func boolResult(b bool) EvalResult {
	return Success(&SexpBool{Val: b})
}

func NumericFunction(name string) ZlispUserFunction {
	var op NumericOp
	switch name {
	case "+":
		op = Add
	case "-":
		op = Sub
	case "*":
		op = Mult
	case "/":
		op = Div
	}
	return func(env *Zlisp, _ string, args Params) EvalResult {
		var accum Sexp
		switch args.Len() {
		case 0:
			switch op {
			case Add:
				return Success(&SexpInt{Val: 0})
			case Mult:
				return Success(&SexpInt{Val: 1})
			}
			return wrongNargs(name, "at least 1", 0)
		case 1:
			// (- x) negates and (/ x) inverts.
			switch op {
			case Sub:
				accum = &SexpInt{Val: 0}
			case Div:
				accum = &SexpInt{Val: 1}
			default:
				accum = args.At(0)
				if _, err := NumericDo(op, accum, &SexpInt{Val: 0}); err == WrongType {
					return invalidArgf("%s needs numbers, got %s", name, TypeName(accum))
				}
				return Success(accum)
			}
		default:
			accum = args.At(0)
			args = args.Rest()
		}
		for i := 0; i < args.Len(); i++ {
			next, err := NumericDo(op, accum, args.At(i))
			switch {
			case err == WrongType:
				return invalidArgf("%s needs numbers, got %s and %s",
					name, TypeName(accum), TypeName(args.At(i)))
			case err != nil:
				return Failure(NewEvalError(DivideByZero, "%s by zero", name))
			}
			accum = next
		}
		return Success(accum)
	}
}

// EqualFunction is true when every argument equals the first.
func EqualFunction(env *Zlisp, name string, args Params) EvalResult {
	first, ok := args.First()
	if !ok {
		return wrongNargs(name, "at least 1", 0)
	}
	for i := 1; i < args.Len(); i++ {
		if !Equal(first, args.At(i)) {
			return boolResult(false)
		}
	}
	return boolResult(true)
}

func CompareFunction(name string) ZlispUserFunction {
	return func(env *Zlisp, _ string, args Params) EvalResult {
		if args.Len() < 1 {
			return wrongNargs(name, "at least 1", 0)
		}
		for i := 0; i+1 < args.Len(); i++ {
			res, err := Compare(args.At(i), args.At(i+1))
			if err != nil {
				return Failure(err)
			}
			cond := false
			switch name {
			case "<":
				cond = res < 0
			case ">":
				cond = res > 0
			case "<=":
				cond = res <= 0
			case ">=":
				cond = res >= 0
			}
			if !cond {
				return boolResult(false)
			}
		}
		return boolResult(true)
	}
}

func NotFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() != 1 {
		return wrongNargs(name, "1", args.Len())
	}
	return boolResult(!IsTruthy(args.At(0)))
}

func ConsFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() != 2 {
		return wrongNargs(name, "2", args.Len())
	}
	switch coll := args.At(1).(type) {
	case SexpSentinel:
		if coll == SexpNull || coll == SexpEmpty {
			return Success(Cons(args.At(0), SexpEmpty))
		}
	case *SexpPair:
		return Success(Cons(args.At(0), coll))
	case *SexpArray:
		return Success(Cons(args.At(0), MakeList(coll.Val)))
	}
	return invalidArgf("cannot cons onto %s", TypeName(args.At(1)))
}

func FirstFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() != 1 {
		return wrongNargs(name, "1", args.Len())
	}
	switch coll := args.At(0).(type) {
	case SexpSentinel:
		if coll == SexpNull || coll == SexpEmpty {
			return Success(SexpNull)
		}
	case *SexpPair:
		return Success(coll.Head)
	case *SexpArray:
		if len(coll.Val) == 0 {
			return Success(SexpNull)
		}
		return Success(coll.Val[0])
	}
	return invalidArgf("%s needs a list or vector, got %s", name, TypeName(args.At(0)))
}

// RestFunction implements rest and next. They differ only in what they
// return once nothing is left: rest gives () and next gives nil.
func RestFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() != 1 {
		return wrongNargs(name, "1", args.Len())
	}
	var rest Sexp = SexpEmpty
	switch coll := args.At(0).(type) {
	case SexpSentinel:
		if coll != SexpNull && coll != SexpEmpty {
			return invalidArgf("%s needs a list or vector, got %s", name, TypeName(coll))
		}
	case *SexpPair:
		rest = coll.Tail
	case *SexpArray:
		if len(coll.Val) > 1 {
			rest = MakeList(coll.Val[1:])
		}
	default:
		return invalidArgf("%s needs a list or vector, got %s", name, TypeName(coll))
	}
	if name == "next" && rest == SexpEmpty {
		return Success(SexpNull)
	}
	return Success(rest)
}

func ListFunction(env *Zlisp, name string, args Params) EvalResult {
	return Success(args.ToList())
}

func VectorFunction(env *Zlisp, name string, args Params) EvalResult {
	return Success(&SexpArray{Val: args.Slice()})
}

func HashMapFunction(env *Zlisp, name string, args Params) EvalResult {
	hash, err := MakeHash(args)
	if err != nil {
		return invalidArgf("%s: %v", name, err)
	}
	return Success(hash)
}

// (get coll key default?) reads a map entry or a vector index.
func GetFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() != 2 && args.Len() != 3 {
		return wrongNargs(name, "2 or 3", args.Len())
	}
	var dflt Sexp = SexpNull
	if args.Len() == 3 {
		dflt = args.At(2)
	}
	switch coll := args.At(0).(type) {
	case *SexpHash:
		if v, ok := coll.HashGet(args.At(1)); ok {
			return Success(v)
		}
	case *SexpArray:
		if i, ok := args.At(1).(*SexpInt); ok && i.Val >= 0 && i.Val < int64(len(coll.Val)) {
			return Success(coll.Val[i.Val])
		}
	}
	return Success(dflt)
}

func CountFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() != 1 {
		return wrongNargs(name, "1", args.Len())
	}
	n := 0
	switch coll := args.At(0).(type) {
	case SexpSentinel:
		if coll != SexpNull && coll != SexpEmpty {
			return invalidArgf("cannot count %s", TypeName(coll))
		}
	case *SexpPair:
		n, _ = ListLen(coll)
	case *SexpArray:
		n = len(coll.Val)
	case *SexpHash:
		n = coll.NumKeys
	case *SexpStr:
		n = utf8.RuneCountInString(coll.S)
	default:
		return invalidArgf("cannot count %s", TypeName(coll))
	}
	return Success(&SexpInt{Val: int64(n)})
}

func TypeQueryFunction(name string) ZlispUserFunction {
	return func(env *Zlisp, _ string, args Params) EvalResult {
		if args.Len() != 1 {
			return wrongNargs(name, "1", args.Len())
		}
		x := args.At(0)
		var result bool
		switch name {
		case "nil?":
			result = x == SexpNull
		case "list?":
			result = IsList(x)
		case "vector?":
			_, result = x.(*SexpArray)
		case "map?":
			_, result = x.(*SexpHash)
		case "symbol?":
			_, result = x.(*SexpSymbol)
		}
		return boolResult(result)
	}
}

func StrFunction(env *Zlisp, name string, args Params) EvalResult {
	var sb strings.Builder
	ps := NewDisplayPrintState()
	for i := 0; i < args.Len(); i++ {
		sb.WriteString(args.At(i).SexpString(ps))
	}
	return Success(&SexpStr{S: sb.String()})
}

// PrintFunction writes its arguments, space separated, to env.Stdout.
func PrintFunction(name string) ZlispUserFunction {
	return func(env *Zlisp, _ string, args Params) EvalResult {
		out := DisplayString(args)
		if name == "println" {
			out += "\n"
		}
		if _, err := fmt.Fprint(env.Stdout, out); err != nil {
			return Failure(NewEvalError(RuntimeError, "%s: %v", name, err))
		}
		return Success(SexpNull)
	}
}

func JsonFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() != 1 {
		return wrongNargs(name, "1", args.Len())
	}
	switch name {
	case "json":
		raw, err := SexpToJson(args.At(0))
		if err != nil {
			return invalidArgf("%s: %v", name, err)
		}
		return Success(&SexpStr{S: string(raw)})
	case "unjson":
		s, ok := args.At(0).(*SexpStr)
		if !ok {
			return invalidArgf("%s needs a string, got %s", name, TypeName(args.At(0)))
		}
		x, err := env.JsonToSexp([]byte(s.S))
		if err != nil {
			return invalidArgf("%s: %v", name, err)
		}
		return Success(x)
	}
	return invalidArgf("unknown json operation %s", name)
}

func MergeFuncMap(funcs ...map[string]ZlispUserFunction) map[string]ZlispUserFunction {
	n := make(map[string]ZlispUserFunction)
	for _, f := range funcs {
		for k, v := range f {
			if _, dup := n[k]; dup {
				panic(fmt.Sprintf(" duplicate function '%s' not allowed", k))
			}
			n[k] = v
		}
	}
	return n
}

// AllBuiltinFunctions returns all built in functions
func AllBuiltinFunctions() map[string]ZlispUserFunction {
	return MergeFuncMap(
		CoreFunctions(),
		CollectionFunctions(),
		StrFunctions(),
		EncodingFunctions(),
		SystemFunctions(),
	)
}

// CoreFunctions returns arithmetic, comparison and logic.
func CoreFunctions() map[string]ZlispUserFunction {
	return map[string]ZlispUserFunction{
		"+":   NumericFunction("+"),
		"-":   NumericFunction("-"),
		"*":   NumericFunction("*"),
		"/":   NumericFunction("/"),
		"=":   EqualFunction,
		"<":   CompareFunction("<"),
		">":   CompareFunction(">"),
		"<=":  CompareFunction("<="),
		">=":  CompareFunction(">="),
		"not": NotFunction,
	}
}

func CollectionFunctions() map[string]ZlispUserFunction {
	return map[string]ZlispUserFunction{
		"cons":     ConsFunction,
		"first":    FirstFunction,
		"rest":     RestFunction,
		"next":     RestFunction,
		"list":     ListFunction,
		"vector":   VectorFunction,
		"hash-map": HashMapFunction,
		"get":      GetFunction,
		"count":    CountFunction,
		"nil?":     TypeQueryFunction("nil?"),
		"list?":    TypeQueryFunction("list?"),
		"vector?":  TypeQueryFunction("vector?"),
		"map?":     TypeQueryFunction("map?"),
		"symbol?":  TypeQueryFunction("symbol?"),
	}
}

func StrFunctions() map[string]ZlispUserFunction {
	return map[string]ZlispUserFunction{
		"str":     StrFunction,
		"print":   PrintFunction("print"),
		"println": PrintFunction("println"),
	}
}

func EncodingFunctions() map[string]ZlispUserFunction {
	return map[string]ZlispUserFunction{
		"json":   JsonFunction,
		"unjson": JsonFunction,
	}
}

// SystemFunctions returns builtins that reach the file system.
func SystemFunctions() map[string]ZlispUserFunction {
	return map[string]ZlispUserFunction{
		"source": SourceFileFunction,
		"slurpf": SlurpfileFunction,
		"split":  SplitStringFunction,
		"nsplit": SplitStringFunction,
	}
}
