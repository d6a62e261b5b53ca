package zygo

import (
	"fmt"
	"strings"
)

var OddHashArgs = fmt.Errorf("hash-map requires an even number of arguments")

type hashEntry struct {
	key Sexp
	val Sexp
}

// SexpHash is the map value. Entries live in buckets selected by the
// BLAKE2b hash of the key's canonical msgpack encoding; order keeps
// them in insertion order for printing and iteration.
type SexpHash struct {
	Map     map[uint64][]*hashEntry
	order   []*hashEntry
	NumKeys int
}

func NewHash() *SexpHash {
	return &SexpHash{Map: make(map[uint64][]*hashEntry)}
}

// MakeHash builds a map from alternating keys and values.
func MakeHash(args Params) (*SexpHash, error) {
	if args.Len()%2 != 0 {
		return nil, OddHashArgs
	}
	hash := NewHash()
	for i := 0; i < args.Len(); i += 2 {
		if err := hash.HashSet(args.At(i), args.At(i+1)); err != nil {
			return nil, err
		}
	}
	return hash, nil
}

// HashExpression returns the bucket number for key.
func HashExpression(key Sexp) (uint64, error) {
	raw, err := appendSexp(nil, key, encodeCanonical|encodeIdentity)
	if err != nil {
		return 0, err
	}
	return Blake2bUint64(raw), nil
}

func (hash *SexpHash) find(hashval uint64, key Sexp) *hashEntry {
	for _, e := range hash.Map[hashval] {
		if Equal(e.key, key) {
			return e
		}
	}
	return nil
}

// HashSet adds or replaces the value for key. A replaced key keeps its
// original position.
func (hash *SexpHash) HashSet(key Sexp, val Sexp) error {
	hashval, err := HashExpression(key)
	if err != nil {
		return err
	}
	if e := hash.find(hashval, key); e != nil {
		e.val = val
		return nil
	}
	e := &hashEntry{key: key, val: val}
	hash.Map[hashval] = append(hash.Map[hashval], e)
	hash.order = append(hash.order, e)
	hash.NumKeys++
	return nil
}

func (hash *SexpHash) HashGet(key Sexp) (Sexp, bool) {
	hashval, err := HashExpression(key)
	if err != nil {
		return SexpNull, false
	}
	if e := hash.find(hashval, key); e != nil {
		return e.val, true
	}
	return SexpNull, false
}

func (hash *SexpHash) entries() []*hashEntry {
	return hash.order
}

// Each visits entries in insertion order until f returns false.
func (hash *SexpHash) Each(f func(key Sexp, val Sexp) bool) {
	for _, e := range hash.order {
		if !f(e.key, e.val) {
			return
		}
	}
}

// KeyOrder returns the keys in insertion order.
func (hash *SexpHash) KeyOrder() []Sexp {
	keys := make([]Sexp, len(hash.order))
	for i, e := range hash.order {
		keys[i] = e.key
	}
	return keys
}

func (hash *SexpHash) SexpString(ps *PrintState) string {
	parts := make([]string, 0, 2*len(hash.order))
	for _, e := range hash.order {
		parts = append(parts, e.key.SexpString(ps), e.val.SexpString(ps))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
