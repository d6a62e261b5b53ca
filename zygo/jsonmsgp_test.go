package zygo

import (
	"errors"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
	"github.com/shurcooL/go-goon"
)

func Test005MsgpackRoundTrip(t *testing.T) {

	cv.Convey(`Given a data value, SexpToMsgpack then MsgpackToSexp should give back an equal value`, t, func() {
		env := NewZlisp()
		x, err := env.EvalString(`'[1 -7 2.5 "s" sym (1 (2)) {"a" [true nil] b ()} () if]`)
		panicOn(err)

		by, err := SexpToMsgpack(x)
		panicOn(err)
		back, err := MsgpackToSexp(env, by)
		panicOn(err)
		cv.So(Equal(x, back), cv.ShouldBeTrue)
		cv.So(back.SexpString(nil), cv.ShouldEqual, x.SexpString(nil))

		plus, err := env.EvalString(`+`)
		panicOn(err)
		by, err = SexpToMsgpack(plus)
		panicOn(err)
		back, err = MsgpackToSexp(env, by)
		panicOn(err)
		cv.So(back, cv.ShouldEqual, plus)
	})

	cv.Convey(`equal maps encode to identical bytes whatever their insertion order`, t, func() {
		env := NewZlisp()
		a, err := SexpToMsgpack(readOne(env, `{"x" 1 "y" [2] z 3}`))
		panicOn(err)
		b, err := SexpToMsgpack(readOne(env, `{z 3 "y" [2] "x" 1}`))
		panicOn(err)
		cv.So(a, cv.ShouldResemble, b)
	})

	cv.Convey(`functions have no msgpack form, and trailing bytes are rejected`, t, func() {
		env := NewZlisp()
		f, err := env.EvalString(`(fn [] 1)`)
		panicOn(err)
		_, err = SexpToMsgpack(f)
		cv.So(errors.Is(err, ErrNotSerializable), cv.ShouldBeTrue)

		by, err := SexpToMsgpack(&SexpInt{Val: 3})
		panicOn(err)
		_, err = MsgpackToSexp(env, append(by, by...))
		cv.So(err, cv.ShouldNotBeNil)
	})

	cv.Convey(`a generic msgpack decoder reads our maps and scalars natively`, t, func() {
		env := NewZlisp()
		by, err := SexpToMsgpack(readOne(env, `{"a" 1 "b" "two"}`))
		panicOn(err)
		iface, err := MsgpackToGo(by)
		panicOn(err)
		cv.So(iface, cv.ShouldResemble, map[string]interface{}{"a": int64(1), "b": "two"})
	})
}

func Test006JsonConversion(t *testing.T) {

	cv.Convey(`SexpToGo flattens to plain Go, and GoToSexp brings it back`, t, func() {
		env := NewZlisp()
		x := readOne(env, `{"name" "zygo" "tags" ["a" b] "n" 3 "f" 1.5 "ok" true "none" nil}`)
		iface, err := SexpToGo(x)
		panicOn(err)
		cv.So(iface, cv.ShouldResemble, map[string]interface{}{
			"name": "zygo",
			"tags": []interface{}{"a", "b"},
			"n":    int64(3),
			"f":    1.5,
			"ok":   true,
			"none": nil,
		})
		if Verbose {
			goon.Dump(iface)
		}

		back, err := env.GoToSexp(iface)
		panicOn(err)
		cv.So(back.SexpString(nil), cv.ShouldEqual, `{"f" 1.5 "n" 3 "name" "zygo" "none" nil "ok" true "tags" ["a" "b"]}`)
	})

	cv.Convey(`json and unjson round trip through text`, t, func() {
		env := NewZlisp()
		cv.So(evalToString(env, `(json [1 "a" nil])`), cv.ShouldEqual, `"[1,\"a\",null]"`)
		cv.So(evalToString(env, `(unjson "{\"b\": [1, 2.5], \"a\": {\"c\": null}}")`),
			cv.ShouldEqual, `{"a" {"c" nil} "b" [1 2.5]}`)
		cv.So(evalToString(env, `(def v {"k" [1 2 {"deep" "x"}]}) (= v (unjson (json v)))`), cv.ShouldEqual, `true`)
		cv.So(evalErrKind(env, `(json (fn [] 1))`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(unjson "{")`), cv.ShouldEqual, InvalidArgument)
		cv.So(evalErrKind(env, `(unjson 1)`), cv.ShouldEqual, InvalidArgument)
	})
}
