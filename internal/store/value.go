// Package store implements the typed keyspace: the five-variant Value sum
// type, per-database key maps, and the empty-value pruning rule, per
// spec.md §3 and §4.3.
package store

import (
	"redikv/internal/store/dlist"
	"redikv/internal/store/zset"
)

// Kind identifies which of the five value variants a Value holds.
type Kind int

const (
	KindNone Kind = iota
	KindBstr
	KindList
	KindHash
	KindSet
	KindZSet
)

// TypeName returns the spec.md §4.4 TYPE name for k.
func (k Kind) TypeName() string {
	switch k {
	case KindBstr:
		return "string"
	case KindList:
		return "list"
	case KindHash:
		return "hash"
	case KindSet:
		return "set"
	case KindZSet:
		return "zset"
	default:
		return "none"
	}
}

// Value is the tagged union described by spec.md §3: exactly one of its
// fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Bstr []byte
	List *dlist.List
	Hash map[string][]byte
	Set  map[string]struct{}
	ZSet *zset.ZSet
}

// NewEmpty synthesizes a fresh, empty value of the given kind, used by the
// dispatcher's type-discipline rule (spec.md §4.3 step 1) when a key is
// absent.
func NewEmpty(kind Kind) *Value {
	v := &Value{Kind: kind}
	switch kind {
	case KindBstr:
		v.Bstr = []byte{}
	case KindList:
		v.List = dlist.New()
	case KindHash:
		v.Hash = make(map[string][]byte)
	case KindSet:
		v.Set = make(map[string]struct{})
	case KindZSet:
		v.ZSet = zset.New()
	}
	return v
}

// NewBstr returns a Bstr value wrapping b.
func NewBstr(b []byte) *Value {
	return &Value{Kind: KindBstr, Bstr: b}
}

// IsEmpty reports whether v must be pruned from the keyspace per spec.md
// §3's "no empty containers" invariant. A Bstr, even "", is never pruned:
// it is a real observable value (SET k "" followed by EXISTS k is 1).
func (v *Value) IsEmpty() bool {
	switch v.Kind {
	case KindList:
		return v.List.Len() == 0
	case KindHash:
		return len(v.Hash) == 0
	case KindSet:
		return len(v.Set) == 0
	case KindZSet:
		return v.ZSet.Len() == 0
	default:
		return false
	}
}

// Clone returns a deep, independent copy of v, used by the dispatcher to
// implement clone-and-swap atomicity (spec.md §9).
func (v *Value) Clone() *Value {
	cp := &Value{Kind: v.Kind}
	switch v.Kind {
	case KindBstr:
		b := make([]byte, len(v.Bstr))
		copy(b, v.Bstr)
		cp.Bstr = b
	case KindList:
		cp.List = v.List.Clone()
	case KindHash:
		h := make(map[string][]byte, len(v.Hash))
		for k, val := range v.Hash {
			cpv := make([]byte, len(val))
			copy(cpv, val)
			h[k] = cpv
		}
		cp.Hash = h
	case KindSet:
		s := make(map[string]struct{}, len(v.Set))
		for m := range v.Set {
			s[m] = struct{}{}
		}
		cp.Set = s
	case KindZSet:
		cp.ZSet = v.ZSet.Clone()
	}
	return cp
}
