package zygo

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// read new-line delimited text from a file into a vector (slurpf "path-to-file")
func SlurpfileFunction(env *Zlisp, name string, args Params) EvalResult {
	if args.Len() != 1 {
		return wrongNargs(name, "1", args.Len())
	}
	fn, err := pathArg(name, args.At(0))
	if err != nil {
		return Failure(NewEvalError(InvalidArgument, "%v", err))
	}
	if !fileExists(fn) {
		return Failure(NewEvalError(RuntimeError, "file '%s' does not exist", fn))
	}
	f, err := os.Open(fn)
	if err != nil {
		return Failure(NewEvalError(RuntimeError, "%s: %v", name, err))
	}
	defer f.Close()

	a := make([]Sexp, 0)
	bufIn := bufio.NewReader(f)
	for {
		lastline, err := bufIn.ReadString('\n')
		if err != nil && err != io.EOF {
			return Failure(NewEvalError(RuntimeError, "%s: %v", name, err))
		}
		if lastline != "" {
			a = append(a, &SexpStr{S: strings.TrimSuffix(lastline, "\n")})
		}
		if err == io.EOF {
			break
		}
	}

	VPrintf("read %d lines\n", len(a))
	return Success(&SexpArray{Val: a})
}

// SplitStringFunction splits a string on an arbitrary delimiter:
// (split "a,b" ",") -> ["a" "b"]. (nsplit "a\nb") splits on newlines.
func SplitStringFunction(env *Zlisp, name string, args Params) EvalResult {
	var splitter string
	switch name {
	case "nsplit":
		if args.Len() != 1 {
			return wrongNargs(name, "1", args.Len())
		}
		splitter = "\n"
	default:
		if args.Len() != 2 {
			return wrongNargs(name, "2", args.Len())
		}
		s2, ok := args.At(1).(*SexpStr)
		if !ok {
			return invalidArgf("%s requires a string as a delimiter, got %s", name, TypeName(args.At(1)))
		}
		splitter = s2.S
	}

	s1, ok := args.At(0).(*SexpStr)
	if !ok {
		return invalidArgf("%s requires a string to split, got %s", name, TypeName(args.At(0)))
	}

	s := strings.Split(s1.S, splitter)
	split := make([]Sexp, len(s))
	for i := range split {
		split[i] = &SexpStr{S: s[i]}
	}
	return Success(&SexpArray{Val: split})
}
