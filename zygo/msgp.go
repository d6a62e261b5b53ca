package zygo

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/tinylib/msgp/msgp"
)

var ErrNotSerializable = fmt.Errorf("value has no msgpack encoding")

type encodeFlags int

const (
	// maps are written with their entries sorted by encoded key
	encodeCanonical encodeFlags = 1 << iota
	// key hashing: functions are written as their address instead of
	// failing, and -0.0 is written as 0.0 since the two are Equal
	encodeIdentity
)

// Wire tags. Scalars and maps use native msgpack types; everything
// else is an array whose first element is one of these.
const (
	tagList    = "l"
	tagVector  = "v"
	tagSymbol  = "s"
	tagSpecial = "sf"
	tagBuiltin = "b"
	tagFunc    = "fn"
)

// SexpToMsgpack encodes a data value. Maps are written in canonical
// order, so equal values always produce identical bytes.
func SexpToMsgpack(x Sexp) ([]byte, error) {
	return appendSexp(nil, x, encodeCanonical)
}

func appendTagged(b []byte, tag string, n int) []byte {
	b = msgp.AppendArrayHeader(b, uint32(n+1))
	return msgp.AppendString(b, tag)
}

func appendSexp(b []byte, x Sexp, flags encodeFlags) ([]byte, error) {
	var err error
	switch e := x.(type) {
	case SexpSentinel:
		switch e {
		case SexpNull:
			return msgp.AppendNil(b), nil
		case SexpEmpty:
			return appendTagged(b, tagList, 0), nil
		}
	case *SexpBool:
		return msgp.AppendBool(b, e.Val), nil
	case *SexpInt:
		return msgp.AppendInt64(b, e.Val), nil
	case *SexpFloat:
		if flags&encodeIdentity != 0 && e.Val == 0 {
			return msgp.AppendFloat64(b, 0), nil
		}
		return msgp.AppendFloat64(b, e.Val), nil
	case *SexpStr:
		return msgp.AppendString(b, e.S), nil
	case *SexpSymbol:
		b = appendTagged(b, tagSymbol, 1)
		return msgp.AppendString(b, e.name), nil
	case SexpSpecial:
		b = appendTagged(b, tagSpecial, 1)
		return msgp.AppendString(b, e.Name()), nil
	case *SexpBuiltin:
		b = appendTagged(b, tagBuiltin, 1)
		return msgp.AppendString(b, e.Name), nil
	case *SexpPair:
		elems, lerr := ListToArray(e)
		if lerr != nil {
			return b, lerr
		}
		b = appendTagged(b, tagList, len(elems))
		for _, el := range elems {
			if b, err = appendSexp(b, el, flags); err != nil {
				return b, err
			}
		}
		return b, nil
	case *SexpArray:
		b = appendTagged(b, tagVector, len(e.Val))
		for _, el := range e.Val {
			if b, err = appendSexp(b, el, flags); err != nil {
				return b, err
			}
		}
		return b, nil
	case *SexpHash:
		return appendHash(b, e, flags)
	case *SexpFunction:
		if flags&encodeIdentity != 0 {
			b = appendTagged(b, tagFunc, 1)
			return msgp.AppendString(b, fmt.Sprintf("%p", e)), nil
		}
	}
	return b, fmt.Errorf("%w: %s", ErrNotSerializable, TypeName(x))
}

func appendHash(b []byte, hash *SexpHash, flags encodeFlags) ([]byte, error) {
	type kv struct {
		k []byte
		v []byte
	}
	pairs := make([]kv, 0, hash.NumKeys)
	for _, e := range hash.order {
		k, err := appendSexp(nil, e.key, flags)
		if err != nil {
			return b, err
		}
		v, err := appendSexp(nil, e.val, flags)
		if err != nil {
			return b, err
		}
		pairs = append(pairs, kv{k: k, v: v})
	}
	if flags&encodeCanonical != 0 {
		sort.Slice(pairs, func(i, j int) bool {
			return bytes.Compare(pairs[i].k, pairs[j].k) < 0
		})
	}
	b = msgp.AppendMapHeader(b, uint32(len(pairs)))
	for _, p := range pairs {
		b = append(b, p.k...)
		b = append(b, p.v...)
	}
	return b, nil
}

// MsgpackToSexp decodes one value written by SexpToMsgpack. Symbols are
// interned in env and builtins are looked up in its global scope.
func MsgpackToSexp(env *Zlisp, b []byte) (Sexp, error) {
	x, rest, err := env.readSexp(b)
	if err != nil {
		return SexpNull, err
	}
	if len(rest) != 0 {
		return SexpNull, fmt.Errorf("%d trailing bytes after msgpack value", len(rest))
	}
	return x, nil
}

func (env *Zlisp) readSexp(b []byte) (Sexp, []byte, error) {
	switch msgp.NextType(b) {
	case msgp.NilType:
		b, err := msgp.ReadNilBytes(b)
		return SexpNull, b, err
	case msgp.BoolType:
		v, b, err := msgp.ReadBoolBytes(b)
		return &SexpBool{Val: v}, b, err
	case msgp.IntType:
		v, b, err := msgp.ReadInt64Bytes(b)
		return &SexpInt{Val: v}, b, err
	case msgp.UintType:
		v, b, err := msgp.ReadUint64Bytes(b)
		return &SexpInt{Val: int64(v)}, b, err
	case msgp.Float64Type:
		v, b, err := msgp.ReadFloat64Bytes(b)
		return &SexpFloat{Val: v}, b, err
	case msgp.Float32Type:
		v, b, err := msgp.ReadFloat32Bytes(b)
		return &SexpFloat{Val: float64(v)}, b, err
	case msgp.StrType:
		v, b, err := msgp.ReadStringBytes(b)
		return &SexpStr{S: v}, b, err
	case msgp.MapType:
		return env.readHash(b)
	case msgp.ArrayType:
		return env.readTagged(b)
	}
	return SexpNull, b, fmt.Errorf("unsupported msgpack type %s", msgp.NextType(b))
}

func (env *Zlisp) readHash(b []byte) (Sexp, []byte, error) {
	n, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return SexpNull, b, err
	}
	hash := NewHash()
	for i := uint32(0); i < n; i++ {
		var k, v Sexp
		if k, b, err = env.readSexp(b); err != nil {
			return SexpNull, b, err
		}
		if v, b, err = env.readSexp(b); err != nil {
			return SexpNull, b, err
		}
		if err = hash.HashSet(k, v); err != nil {
			return SexpNull, b, err
		}
	}
	return hash, b, nil
}

func (env *Zlisp) readTagged(b []byte) (Sexp, []byte, error) {
	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return SexpNull, b, err
	}
	if n == 0 {
		return SexpNull, b, fmt.Errorf("untagged msgpack array")
	}
	tag, b, err := msgp.ReadStringBytes(b)
	if err != nil {
		return SexpNull, b, err
	}
	switch tag {
	case tagSymbol, tagSpecial, tagBuiltin:
		if n != 2 {
			return SexpNull, b, fmt.Errorf("tag %q wants one name, got %d", tag, n-1)
		}
		name, b, err := msgp.ReadStringBytes(b)
		if err != nil {
			return SexpNull, b, err
		}
		return env.namedValue(tag, name, b)
	case tagList, tagVector:
		elems := make([]Sexp, n-1)
		for i := range elems {
			if elems[i], b, err = env.readSexp(b); err != nil {
				return SexpNull, b, err
			}
		}
		if tag == tagList {
			return MakeList(elems), b, nil
		}
		return &SexpArray{Val: elems}, b, nil
	}
	return SexpNull, b, fmt.Errorf("unknown msgpack tag %q", tag)
}

func (env *Zlisp) namedValue(tag string, name string, b []byte) (Sexp, []byte, error) {
	switch tag {
	case tagSpecial:
		if sp, ok := LookupSpecial(name); ok {
			return sp, b, nil
		}
		return SexpNull, b, fmt.Errorf("no special form named %q", name)
	case tagBuiltin:
		bind := env.global.Lookup(env.MakeSymbol(name))
		if bind.Kind != BindingBuiltin {
			return SexpNull, b, fmt.Errorf("no builtin named %q", name)
		}
		return bind.Val, b, nil
	}
	return env.MakeSymbol(name), b, nil
}
