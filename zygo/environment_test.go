package zygo

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test400BuiltinRegistry(t *testing.T) {

	cv.Convey(`Given a table of builtins, NewZlispWithFuncs should bind exactly those, with ids in sorted name order`, t, func() {
		noop := func(env *Zlisp, name string, args Params) EvalResult { return Success(SexpNull) }
		env := NewZlispWithFuncs(map[string]ZlispUserFunction{"zeta": noop, "alpha": noop, "mid": noop})
		for id, name := range []string{"alpha", "mid", "zeta"} {
			b, ok := env.Builtin(id)
			cv.So(ok, cv.ShouldBeTrue)
			cv.So(b.Name, cv.ShouldEqual, name)
			cv.So(b.Id, cv.ShouldEqual, id)
		}
		_, ok := env.Builtin(3)
		cv.So(ok, cv.ShouldBeFalse)
		cv.So(evalErrKind(env, `+`), cv.ShouldEqual, InvalidSymbol)
		cv.So(evalToString(env, `(if true (alpha) 1)`), cv.ShouldEqual, `nil`)
	})

	cv.Convey(`NewZlisp should register every builtin in AllBuiltinFunctions, and the same table always yields the same ids`, t, func() {
		all := AllBuiltinFunctions()
		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)

		env1 := NewZlisp()
		env2 := NewZlisp()
		for id, name := range names {
			b1, ok := env1.Builtin(id)
			cv.So(ok, cv.ShouldBeTrue)
			b2, _ := env2.Builtin(id)
			cv.So(b1.Name, cv.ShouldEqual, name)
			cv.So(b2.Name, cv.ShouldEqual, name)
			cv.So(evalToString(env1, name), cv.ShouldEqual, "builtin "+name)
		}
	})

	cv.Convey(`AddGlobal and AddFunction extend the root scope`, t, func() {
		env := NewZlisp()
		env.AddGlobal("answer", &SexpInt{Val: 42})
		env.AddFunction("twice", func(env *Zlisp, name string, args Params) EvalResult {
			if args.Len() != 1 {
				return wrongNargs(name, "1", args.Len())
			}
			return NumericFunction("*")(env, "*", NewParams(args.At(0), &SexpInt{Val: 2}))
		})
		cv.So(evalToString(env, `(twice answer)`), cv.ShouldEqual, `84`)
		cv.So(evalErrKind(env, `(twice)`), cv.ShouldEqual, ArityError)
	})
}

func Test401Arithmetic(t *testing.T) {

	cv.Convey(`ints stay ints, floats are contagious, and inexact division gives a float`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(+ 1 2 3)`), cv.ShouldEqual, `6`)
		cv.So(evalToString(env, `(+)`), cv.ShouldEqual, `0`)
		cv.So(evalToString(env, `(*)`), cv.ShouldEqual, `1`)
		cv.So(evalToString(env, `(+ 1 2.5)`), cv.ShouldEqual, `3.5`)
		cv.So(evalToString(env, `(* 2 2.0)`), cv.ShouldEqual, `4.0`)
		cv.So(evalToString(env, `(- 10 1 2)`), cv.ShouldEqual, `7`)
		cv.So(evalToString(env, `(- 5)`), cv.ShouldEqual, `-5`)
		cv.So(evalToString(env, `(/ 6 3)`), cv.ShouldEqual, `2`)
		cv.So(evalToString(env, `(/ 1 2)`), cv.ShouldEqual, `0.5`)
		cv.So(evalToString(env, `(/ 4)`), cv.ShouldEqual, `0.25`)
		cv.So(evalToString(env, `(+ 7)`), cv.ShouldEqual, `7`)
		cv.So(evalErrKind(env, `(/ 1 0)`), cv.ShouldEqual, DivideByZero)
		cv.So(evalErrKind(env, `(/ 1.5 0)`), cv.ShouldEqual, DivideByZero)
		cv.So(evalErrKind(env, `(+ 1 "a")`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(+ "a")`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(-)`), cv.ShouldEqual, ArityError)
	})

	cv.Convey(`comparisons chain and mix ints with floats`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(< 1 2 3)`), cv.ShouldEqual, `true`)
		cv.So(evalToString(env, `(< 1 3 2)`), cv.ShouldEqual, `false`)
		cv.So(evalToString(env, `(<= 1 1 2.5)`), cv.ShouldEqual, `true`)
		cv.So(evalToString(env, `(> 3 2.5)`), cv.ShouldEqual, `true`)
		cv.So(evalToString(env, `(>= 2 2)`), cv.ShouldEqual, `true`)
		cv.So(evalToString(env, `(< "a" "b")`), cv.ShouldEqual, `true`)
		cv.So(evalToString(env, `(< 1)`), cv.ShouldEqual, `true`)
		cv.So(evalErrKind(env, `(< 1 "a")`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(< [1] [2])`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalToString(env, `(not nil)`), cv.ShouldEqual, `true`)
		cv.So(evalToString(env, `(not 0)`), cv.ShouldEqual, `false`)
	})
}

func Test402Collections(t *testing.T) {

	cv.Convey(`list builtins keep nil and the empty list apart`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(rest '(1))`), cv.ShouldEqual, `()`)
		cv.So(evalToString(env, `(next '(1))`), cv.ShouldEqual, `nil`)
		cv.So(evalToString(env, `(rest nil)`), cv.ShouldEqual, `()`)
		cv.So(evalToString(env, `(rest [1 2 3])`), cv.ShouldEqual, `(2 3)`)
		cv.So(evalToString(env, `(first [])`), cv.ShouldEqual, `nil`)
		cv.So(evalToString(env, `(first '(9 8))`), cv.ShouldEqual, `9`)
		cv.So(evalToString(env, `(cons 1 nil)`), cv.ShouldEqual, `(1)`)
		cv.So(evalToString(env, `(cons 1 [2 3])`), cv.ShouldEqual, `(1 2 3)`)
		cv.So(evalToString(env, `(list)`), cv.ShouldEqual, `()`)
		cv.So(evalToString(env, `(vector)`), cv.ShouldEqual, `[]`)
		cv.So(evalToString(env, `[(nil? nil) (nil? ()) (list? ()) (list? nil) (vector? []) (map? {}) (symbol? 'a)]`),
			cv.ShouldEqual, `[true false true false true true true]`)
		cv.So(evalErrKind(env, `(cons 1 2)`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(first 1)`), cv.ShouldEqual, InvalidArgument)
	})

	cv.Convey(`count, get and hash-map`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `[(count nil) (count ()) (count '(1 2)) (count [1]) (count {"a" 1}) (count "héllo")]`),
			cv.ShouldEqual, `[0 0 2 1 1 5]`)
		cv.So(evalToString(env, `(get {"a" 1} "a")`), cv.ShouldEqual, `1`)
		cv.So(evalToString(env, `(get {"a" 1} "z")`), cv.ShouldEqual, `nil`)
		cv.So(evalToString(env, `(get {"a" 1} "z" 7)`), cv.ShouldEqual, `7`)
		cv.So(evalToString(env, `(get [5 6] 1)`), cv.ShouldEqual, `6`)
		cv.So(evalToString(env, `(get [5 6] 2 "none")`), cv.ShouldEqual, `"none"`)
		cv.So(evalToString(env, `(hash-map "b" 2 "a" 1)`), cv.ShouldEqual, `{"b" 2 "a" 1}`)
		cv.So(evalErrKind(env, `(hash-map "b")`), cv.ShouldEqual, InvalidArgument)
	})
}

func Test403PrintAndStr(t *testing.T) {

	cv.Convey(`print writes display forms separated by spaces to the interpreter's Stdout`, t, func() {
		env := NewZlisp()
		var buf bytes.Buffer
		env.Stdout = &buf
		cv.So(evalToString(env, `(print "a" 1 [2 "b"])`), cv.ShouldEqual, `nil`)
		cv.So(buf.String(), cv.ShouldEqual, `a 1 [2 b]`)
		buf.Reset()
		_, err := env.EvalString(`(println "x" 'y) (println)`)
		panicOn(err)
		cv.So(buf.String(), cv.ShouldEqual, "x y\n\n")
		cv.So(evalToString(env, `(str "a" 1 "b" nil)`), cv.ShouldEqual, `"a1bnil"`)
	})
}

func Test404Trace(t *testing.T) {

	cv.Convey(`with tracing on, special forms and calls are logged to OurStdout`, t, func() {
		var buf bytes.Buffer
		old := OurStdout
		OurStdout = &buf
		defer func() { OurStdout = old }()

		env := NewZlisp()
		env.SetTrace(true)
		cv.So(evalToString(env, `((fn sq [x] (* x x)) 3)`), cv.ShouldEqual, `9`)
		cv.So(buf.String(), cv.ShouldContainSubstring, `special fn`)
		cv.So(buf.String(), cv.ShouldContainSubstring, `call sq [x] with [3]`)
		cv.So(buf.String(), cv.ShouldContainSubstring, `builtin * [3 3]`)
	})
}

func BenchmarkCallUserFunction(b *testing.B) {
	env := NewZlisp()
	env.AddFunction("dosomething", func(*Zlisp, string, Params) EvalResult { return Success(SexpNull) })
	script := fmt.Sprintf(`
		(loop [i 0]
			(if (< i %d)
				(do (dosomething) (recur (+ i 1)))
				i))
	`, 100000)
	xs, err := env.ReadString(script)
	panicOn(err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		env.EvalExpressions(xs)
	}
}

func BenchmarkFunctionRecur(b *testing.B) {
	env := NewZlisp()
	_, err := env.EvalString(`(def f (fn [n] (if (= n 0) n (recur (- n 1)))))`)
	panicOn(err)
	xs, err := env.ReadString(`(f 10000)`)
	panicOn(err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		env.EvalExpressions(xs)
	}
}
