package zygo

import (
	"fmt"
	"os"
)

// SourceFile reads every form in path and evaluates them in order in
// the global scope, yielding the value of the last one.
func (env *Zlisp) SourceFile(path string) EvalResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return Failure(NewEvalError(RuntimeError, "source: %v", err))
	}
	xs, err := env.ReadString(string(src))
	if err != nil {
		return Failure(NewEvalError(RuntimeError, "source: error parsing '%s': %v", path, err))
	}
	VPrintf("source: read %d forms from '%s'\n", len(xs), path)
	return env.EvalExpressions(xs)
}

// (source "a.zy" ["b.zy" "c.zy"] ...) evaluates files in turn. Vectors
// and lists of paths are walked in order.
func SourceFileFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() < 1 {
		return wrongNargs(name, "at least 1", args.Len())
	}
	res := Success(SexpNull)
	for i := 0; i < args.Len(); i++ {
		res = env.sourceItem(args.At(i))
		if res.Kind != Succeeded {
			return res
		}
	}
	return res
}

func (env *Zlisp) sourceItem(item Sexp) EvalResult {
	switch t := item.(type) {
	case *SexpStr:
		return env.SourceFile(t.S)
	case *SexpArray:
		res := Success(SexpNull)
		for _, v := range t.Val {
			if res = env.sourceItem(v); res.Kind != Succeeded {
				return res
			}
		}
		return res
	case *SexpPair:
		elems, err := ListToArray(t)
		if err != nil {
			return invalidArgf("source: %v", err)
		}
		return env.sourceItem(&SexpArray{Val: elems})
	}
	return invalidArgf("source: expected a string, list or vector, found %s", TypeName(item))
}

func fileExists(name string) bool {
	fi, err := os.Stat(name)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}

func pathArg(name string, x Sexp) (string, error) {
	s, ok := x.(*SexpStr)
	if !ok {
		return "", fmt.Errorf("%s requires a string path, got %s", name, TypeName(x))
	}
	return s.S, nil
}
