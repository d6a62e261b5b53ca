package zygo

import (
	"bytes"
	"fmt"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test200Quote(t *testing.T) {

	cv.Convey(`quote returns its first argument unevaluated`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(quote a)`), cv.ShouldEqual, `a`)
		cv.So(evalToString(env, `'(+ 1 2)`), cv.ShouldEqual, `(+ 1 2)`)
		cv.So(evalToString(env, `(quote a b)`), cv.ShouldEqual, `a`)
		cv.So(evalToString(env, `(quote)`), cv.ShouldEqual, `nil`)
		cv.So(evalToString(env, `(quote (1 (quote 2)))`), cv.ShouldEqual, `(1 (quote 2))`)
		cv.So(evalToString(env, `''a`), cv.ShouldEqual, `(quote a)`)
	})

	cv.Convey(`quoting a form never runs it`, t, func() {
		env := NewZlisp()
		var buf bytes.Buffer
		env.Stdout = &buf
		cv.So(evalToString(env, `(quote (print "x"))`), cv.ShouldEqual, `(print "x")`)
		cv.So(evalToString(env, `'[(print "y") (def q 1)]`), cv.ShouldEqual, `[(print "y") (def q 1)]`)
		cv.So(buf.String(), cv.ShouldEqual, ``)
		cv.So(evalErrKind(env, `q`), cv.ShouldEqual, InvalidSymbol)
	})
}

func Test201If(t *testing.T) {

	cv.Convey(`if takes two or three forms and evaluates only the chosen branch`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(if true 1 2)`), cv.ShouldEqual, `1`)
		cv.So(evalToString(env, `(if nil 1 2)`), cv.ShouldEqual, `2`)
		cv.So(evalToString(env, `(if false 1)`), cv.ShouldEqual, `nil`)
		cv.So(evalToString(env, `(if true 1 (undefined))`), cv.ShouldEqual, `1`)
		cv.So(evalErrKind(env, `(if)`), cv.ShouldEqual, ArityError)
		cv.So(evalErrKind(env, `(if true)`), cv.ShouldEqual, ArityError)
		cv.So(evalErrKind(env, `(if 1 2 3 4)`), cv.ShouldEqual, ArityError)
		cv.So(evalErrKind(env, `(if (undefined) 1 2)`), cv.ShouldEqual, InvalidSymbol)
	})

	cv.Convey(`a recur coming out of the test of an if is passed up unchanged`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(loop [a 0] (if (< a 3) (if (recur (+ a 1)) 1 2) a))`), cv.ShouldEqual, `3`)
	})
}

func Test202Do(t *testing.T) {

	cv.Convey(`do evaluates its forms in order and returns the last`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(do)`), cv.ShouldEqual, `nil`)
		cv.So(evalToString(env, `(do 1 2 3)`), cv.ShouldEqual, `3`)
		cv.So(evalToString(env, `(do (def a 1) (def a (+ a 1)) a)`), cv.ShouldEqual, `2`)
		cv.So(evalErrKind(env, `(do 1 (undefined) (def never 1))`), cv.ShouldEqual, InvalidSymbol)
		cv.So(evalErrKind(env, `never`), cv.ShouldEqual, InvalidSymbol)
	})

	cv.Convey(`only the last form of a do may recur`, t, func() {
		env := NewZlisp()
		cv.So(evalErrKind(env, `(loop [a 1] (do (recur 2) 3))`), cv.ShouldEqual, RecurMisuse)
		cv.So(evalToString(env, `(loop [a 1] (do 3 (if (< a 5) (recur (+ a 1)) a)))`), cv.ShouldEqual, `5`)
	})

	cv.Convey(`do runs every form in order and yields the last`, t, func() {
		env := NewZlisp()
		var buf bytes.Buffer
		env.Stdout = &buf
		cv.So(evalToString(env, `(do (print "a") (print "b") 3)`), cv.ShouldEqual, `3`)
		cv.So(buf.String(), cv.ShouldEqual, `ab`)
		cv.So(evalToString(env, `(do)`), cv.ShouldEqual, `nil`)
	})
}

func Test203Def(t *testing.T) {

	cv.Convey(`def always binds in the global scope and returns the symbol`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(def a 1)`), cv.ShouldEqual, `a`)
		cv.So(evalToString(env, `(let [b 2] (def g (+ b 1))) g`), cv.ShouldEqual, `3`)
		cv.So(evalToString(env, `((fn [] (def h 4))) h`), cv.ShouldEqual, `4`)
		cv.So(evalErrKind(env, `(def)`), cv.ShouldEqual, ArityError)
		cv.So(evalErrKind(env, `(def 1 2)`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(def z (recur 1))`), cv.ShouldEqual, RecurMisuse)
	})

	cv.Convey(`global functions may call each other before both exist`, t, func() {
		env := NewZlisp()
		src := `
(def even? (fn [n] (if (= n 0) true (odd? (- n 1)))))
(def odd? (fn [n] (if (= n 0) false (even? (- n 1)))))
[(even? 10) (odd? 7) (even? 3)]`
		cv.So(evalToString(env, src), cv.ShouldEqual, `[true true false]`)
	})
}

func Test204Let(t *testing.T) {

	cv.Convey(`let binds sequentially in a new scope`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(let [a 1 b (+ a 1)] b)`), cv.ShouldEqual, `2`)
		cv.So(evalToString(env, `(let [a 1 a (+ a 10)] a)`), cv.ShouldEqual, `11`)
		cv.So(evalToString(env, `(let [a 1])`), cv.ShouldEqual, `nil`)
		cv.So(evalToString(env, `(let [] 1 2)`), cv.ShouldEqual, `2`)
		cv.So(evalToString(env, `(def a 10) (let [a 1] a) a`), cv.ShouldEqual, `10`)
		cv.So(evalErrKind(env, `(let [x y y 1] x)`), cv.ShouldEqual, InvalidSymbol)
	})

	cv.Convey(`malformed lets are rejected`, t, func() {
		env := NewZlisp()
		cv.So(evalErrKind(env, `(let)`), cv.ShouldEqual, ArityError)
		cv.So(evalErrKind(env, `(let [a] a)`), cv.ShouldEqual, BindingMismatch)
		cv.So(evalErrKind(env, `(let (a 1) a)`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(let [1 2] 3)`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(let [a (recur 1)] a)`), cv.ShouldEqual, RecurMisuse)
	})

	cv.Convey(`a recur from a let initializer goes to the enclosing loop or function`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(loop [a 0] (let [x (if (< a 3) (recur (+ a 1)) a)] x))`), cv.ShouldEqual, `3`)
		cv.So(evalToString(env, `(def down (fn [n] (let [m (if (> n 0) (recur (- n 1)) n)] m))) (down 5)`), cv.ShouldEqual, `0`)
		cv.So(evalErrKind(env, `(loop [b 0] (loop [a (recur 1)] a))`), cv.ShouldEqual, RecurMisuse)
		cv.So(evalErrKind(env, `(loop [b 0] (+ 1 (let [a (recur 1)] a)))`), cv.ShouldEqual, RecurMisuse)
	})
}

func Test205Loop(t *testing.T) {

	cv.Convey(`loop with recur agrees with plain recursion for small bounds`, t, func() {
		env := NewZlisp()
		_, err := env.EvalString(`
(def sumto (fn sumto [n] (if (= n 0) 0 (+ n (sumto (- n 1))))))
(def fact (fn fact [n] (if (= n 0) 1 (* n (fact (- n 1))))))`)
		panicOn(err)
		for n := 0; n <= 10; n++ {
			cv.So(evalToString(env, fmt.Sprintf(`(loop [i %d acc 0] (if (= i 0) acc (recur (- i 1) (+ acc i))))`, n)),
				cv.ShouldEqual, evalToString(env, fmt.Sprintf(`(sumto %d)`, n)))
			cv.So(evalToString(env, fmt.Sprintf(`(loop [i %d acc 1] (if (= i 0) acc (recur (- i 1) (* acc i))))`, n)),
				cv.ShouldEqual, evalToString(env, fmt.Sprintf(`(fact %d)`, n)))
		}
	})

	cv.Convey(`loop re-runs its body for each recur without growing the stack`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(loop [i 0 acc 0] (if (< i 100000) (recur (+ i 1) (+ acc i)) acc))`), cv.ShouldEqual, `4999950000`)
		cv.So(evalToString(env, `(loop [a 1])`), cv.ShouldEqual, `nil`)
		cv.So(evalToString(env, `(loop [] 7)`), cv.ShouldEqual, `7`)
		cv.So(evalToString(env, `(loop [a 1 b (+ a 1)] b)`), cv.ShouldEqual, `2`)
	})

	cv.Convey(`an inner loop consumes its own recur`, t, func() {
		env := NewZlisp()
		src := `
(loop [i 0 total 0]
  (if (< i 3)
    (recur (+ i 1) (+ total (loop [j 0] (if (< j 10) (recur (+ j 1)) j))))
    total))`
		cv.So(evalToString(env, src), cv.ShouldEqual, `30`)
	})

	cv.Convey(`loop errors`, t, func() {
		env := NewZlisp()
		cv.So(evalErrKind(env, `(loop)`), cv.ShouldEqual, ArityError)
		cv.So(evalErrKind(env, `(loop [a] 1)`), cv.ShouldEqual, BindingMismatch)
		cv.So(evalErrKind(env, `(loop (a 1) 1)`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(loop [a 1] (if (= a 1) (recur 1 2) a))`), cv.ShouldEqual, ArityError)
		cv.So(evalErrKind(env, `(loop [a 1] (+ 1 (recur 2)))`), cv.ShouldEqual, RecurMisuse)
	})
}

func Test206Recur(t *testing.T) {

	cv.Convey(`recur outside of a tail position that consumes it is a misuse`, t, func() {
		env := NewZlisp()
		cv.So(evalErrKind(env, `(recur 1)`), cv.ShouldEqual, RecurMisuse)
		cv.So(evalErrKind(env, `(+ 1 (recur 2))`), cv.ShouldEqual, RecurMisuse)
		cv.So(evalErrKind(env, `((recur 1) 2)`), cv.ShouldEqual, RecurMisuse)
		cv.So(evalErrKind(env, `(recur (undefined))`), cv.ShouldEqual, InvalidSymbol)
	})
}

func Test207Apply(t *testing.T) {

	cv.Convey(`apply splices its last argument after the leading ones`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(apply + [1 2 3])`), cv.ShouldEqual, `6`)
		cv.So(evalToString(env, `(apply + 1 2 '(3 4))`), cv.ShouldEqual, `10`)
		cv.So(evalToString(env, `(apply + ())`), cv.ShouldEqual, `0`)
		cv.So(evalToString(env, `(apply (fn [a b] (- a b)) [10 3])`), cv.ShouldEqual, `7`)
		cv.So(evalToString(env, `(apply list {"a" 1 "b" 2})`), cv.ShouldEqual, `(["a" 1] ["b" 2])`)
		cv.So(evalToString(env, `(apply vector 0 {"z" 1})`), cv.ShouldEqual, `[0 ["z" 1]]`)
	})

	cv.Convey(`apply errors`, t, func() {
		env := NewZlisp()
		cv.So(evalErrKind(env, `(apply +)`), cv.ShouldEqual, ArityError)
		cv.So(evalErrKind(env, `(apply + 1)`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(apply + "abc")`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(apply 1 [2])`), cv.ShouldEqual, NotEvalable)
		cv.So(evalErrKind(env, `(loop [a 1] (apply (recur 2) [1]))`), cv.ShouldEqual, RecurMisuse)
		cv.So(evalErrKind(env, `(loop [a 1] (apply + (recur 2) [1]))`), cv.ShouldEqual, RecurMisuse)
		cv.So(evalErrKind(env, `(apply (fn [a] a) [1 2])`), cv.ShouldEqual, ArityError)
	})
}

func Test208Attempt(t *testing.T) {

	cv.Convey(`attempt returns the first form that does not fail, else the last failure`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(attempt (undefined) 2)`), cv.ShouldEqual, `2`)
		cv.So(evalToString(env, `(attempt 1 (undefined))`), cv.ShouldEqual, `1`)
		cv.So(evalToString(env, `(attempt (/ 1 0) (undefined) (+ 2 2))`), cv.ShouldEqual, `4`)
		cv.So(evalErrKind(env, `(attempt (undefined) (/ 1 0))`), cv.ShouldEqual, DivideByZero)
		cv.So(evalErrKind(env, `(attempt)`), cv.ShouldEqual, ArityError)
		cv.So(evalToString(env, `(loop [a 0] (attempt (undefined) (if (< a 5) (recur (+ a 1)) a)))`), cv.ShouldEqual, `5`)
	})

	cv.Convey(`attempt stops at the first form that succeeds`, t, func() {
		env := NewZlisp()
		var buf bytes.Buffer
		env.Stdout = &buf
		cv.So(evalToString(env, `(attempt (print "a") (print "b"))`), cv.ShouldEqual, `nil`)
		cv.So(buf.String(), cv.ShouldEqual, `a`)
		buf.Reset()
		cv.So(evalToString(env, `(attempt (do (print "x") (undefined)) (do (print "y") 2) (print "z"))`), cv.ShouldEqual, `2`)
		cv.So(buf.String(), cv.ShouldEqual, `xy`)
	})
}
