package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmptyKinds(t *testing.T) {
	assert.True(t, NewEmpty(KindList).IsEmpty())
	assert.True(t, NewEmpty(KindHash).IsEmpty())
	assert.True(t, NewEmpty(KindSet).IsEmpty())
	assert.True(t, NewEmpty(KindZSet).IsEmpty())
}

func TestBstrNeverEmptyPruned(t *testing.T) {
	v := NewBstr([]byte(""))
	assert.False(t, v.IsEmpty())
}

func TestCloneIndependence(t *testing.T) {
	v := NewEmpty(KindHash)
	v.Hash["f"] = []byte("v")
	cp := v.Clone()
	cp.Hash["f"] = []byte("changed")
	assert.Equal(t, "v", string(v.Hash["f"]))
	assert.Equal(t, "changed", string(cp.Hash["f"]))
}

func TestCloneSet(t *testing.T) {
	v := NewEmpty(KindSet)
	v.Set["a"] = struct{}{}
	cp := v.Clone()
	cp.Set["b"] = struct{}{}
	_, hasB := v.Set["b"]
	assert.False(t, hasB)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "none", KindNone.TypeName())
	assert.Equal(t, "string", KindBstr.TypeName())
	assert.Equal(t, "list", KindList.TypeName())
	assert.Equal(t, "hash", KindHash.TypeName())
	assert.Equal(t, "set", KindSet.TypeName())
	assert.Equal(t, "zset", KindZSet.TypeName())
}
