package zygo

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/ugorji/go/codec"
)

type msgpackHelper struct {
	initialized bool
	mh          codec.MsgpackHandle
	jh          codec.JsonHandle
}

func (m *msgpackHelper) init() {
	if m.initialized {
		return
	}

	m.mh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.mh.RawToString = true
	m.mh.WriteExt = true
	m.mh.SignedInteger = true
	m.mh.Canonical = true // sort maps before writing them

	// JSON
	m.jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.jh.SignedInteger = true
	m.jh.Canonical = true

	m.initialized = true
}

var msgpHelper msgpackHelper

func init() {
	msgpHelper.init()
}

// SexpToGo converts a data value into plain Go: nil, bool, int64,
// float64, string, []interface{} and map[string]interface{}. Symbols
// become their names; map keys that are not strings or symbols become
// their printed form. Callables cannot be converted.
func SexpToGo(x Sexp) (interface{}, error) {
	switch e := x.(type) {
	case SexpSentinel:
		switch e {
		case SexpNull:
			return nil, nil
		case SexpEmpty:
			return []interface{}{}, nil
		}
	case *SexpBool:
		return e.Val, nil
	case *SexpInt:
		return e.Val, nil
	case *SexpFloat:
		return e.Val, nil
	case *SexpStr:
		return e.S, nil
	case *SexpSymbol:
		return e.name, nil
	case *SexpPair:
		elems, err := ListToArray(e)
		if err != nil {
			return nil, err
		}
		return sliceToGo(elems)
	case *SexpArray:
		return sliceToGo(e.Val)
	case *SexpHash:
		m := make(map[string]interface{}, e.NumKeys)
		for _, entry := range e.order {
			v, err := SexpToGo(entry.val)
			if err != nil {
				return nil, err
			}
			m[goKey(entry.key)] = v
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotSerializable, TypeName(x))
}

func sliceToGo(elems []Sexp) (interface{}, error) {
	out := make([]interface{}, len(elems))
	for i, el := range elems {
		v, err := SexpToGo(el)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func goKey(k Sexp) string {
	switch e := k.(type) {
	case *SexpStr:
		return e.S
	case *SexpSymbol:
		return e.name
	}
	return k.SexpString(nil)
}

// GoToSexp is the inverse of SexpToGo for the types a JSON or msgpack
// decoder produces. Arrays become vectors; map entries are inserted in
// sorted key order.
func (env *Zlisp) GoToSexp(iface interface{}) (Sexp, error) {
	switch v := iface.(type) {
	case nil:
		return SexpNull, nil
	case bool:
		return &SexpBool{Val: v}, nil
	case int:
		return &SexpInt{Val: int64(v)}, nil
	case int8:
		return &SexpInt{Val: int64(v)}, nil
	case int16:
		return &SexpInt{Val: int64(v)}, nil
	case int32:
		return &SexpInt{Val: int64(v)}, nil
	case int64:
		return &SexpInt{Val: v}, nil
	case uint:
		return &SexpInt{Val: int64(v)}, nil
	case uint8:
		return &SexpInt{Val: int64(v)}, nil
	case uint16:
		return &SexpInt{Val: int64(v)}, nil
	case uint32:
		return &SexpInt{Val: int64(v)}, nil
	case uint64:
		return &SexpInt{Val: int64(v)}, nil
	case float32:
		return &SexpFloat{Val: float64(v)}, nil
	case float64:
		return &SexpFloat{Val: v}, nil
	case string:
		return &SexpStr{S: v}, nil
	case []byte:
		return &SexpStr{S: string(v)}, nil
	case []interface{}:
		arr := make([]Sexp, len(v))
		for i := range v {
			x, err := env.GoToSexp(v[i])
			if err != nil {
				return SexpNull, err
			}
			arr[i] = x
		}
		return &SexpArray{Val: arr}, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		hash := NewHash()
		for _, k := range keys {
			x, err := env.GoToSexp(v[k])
			if err != nil {
				return SexpNull, err
			}
			if err := hash.HashSet(&SexpStr{S: k}, x); err != nil {
				return SexpNull, err
			}
		}
		return hash, nil
	case map[interface{}]interface{}:
		type kv struct {
			k Sexp
			v interface{}
		}
		pairs := make([]kv, 0, len(v))
		for k, val := range v {
			ks, err := env.GoToSexp(k)
			if err != nil {
				return SexpNull, err
			}
			pairs = append(pairs, kv{k: ks, v: val})
		}
		sort.Slice(pairs, func(i, j int) bool {
			return pairs[i].k.SexpString(nil) < pairs[j].k.SexpString(nil)
		})
		hash := NewHash()
		for _, p := range pairs {
			x, err := env.GoToSexp(p.v)
			if err != nil {
				return SexpNull, err
			}
			if err := hash.HashSet(p.k, x); err != nil {
				return SexpNull, err
			}
		}
		return hash, nil
	}
	return SexpNull, fmt.Errorf("cannot convert Go type %T", iface)
}

// SexpToJson encodes a data value as JSON with sorted object keys.
func SexpToJson(x Sexp) ([]byte, error) {
	iface, err := SexpToGo(x)
	if err != nil {
		return nil, err
	}
	return GoToJson(iface)
}

// JsonToSexp decodes JSON into data values.
func (env *Zlisp) JsonToSexp(json []byte) (Sexp, error) {
	iface, err := JsonToGo(json)
	if err != nil {
		return SexpNull, err
	}
	return env.GoToSexp(iface)
}

// json -> go
func JsonToGo(json []byte) (interface{}, error) {
	var iface interface{}
	decoder := codec.NewDecoderBytes(json, &msgpHelper.jh)
	if err := decoder.Decode(&iface); err != nil {
		return nil, err
	}
	VPrintf("\n decoded type : %T\n", iface)
	return iface, nil
}

// go -> json
func GoToJson(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	encoder := codec.NewEncoder(&w, &msgpHelper.jh)
	if err := encoder.Encode(&iface); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// msgpack -> go, for bytes from SexpToMsgpack or any other writer.
func MsgpackToGo(msgp []byte) (interface{}, error) {
	var iface interface{}
	dec := codec.NewDecoderBytes(msgp, &msgpHelper.mh)
	if err := dec.Decode(&iface); err != nil {
		return nil, err
	}
	return iface, nil
}

func GoToMsgpack(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	enc := codec.NewEncoder(&w, &msgpHelper.mh)
	if err := enc.Encode(&iface); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
