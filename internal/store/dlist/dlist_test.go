package dlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vals(l *List) []string {
	out := make([]string, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		out = append(out, string(e.Value))
	}
	return out
}

func TestPushFrontOrder(t *testing.T) {
	l := New()
	l.PushFront([]byte("a"))
	l.PushFront([]byte("b"))
	l.PushFront([]byte("c"))
	assert.Equal(t, []string{"c", "b", "a"}, vals(l))
}

func TestPushBack(t *testing.T) {
	l := New()
	l.PushFront([]byte("a"))
	l.PushFront([]byte("b"))
	l.PushFront([]byte("c"))
	l.PushBack([]byte("d"))
	assert.Equal(t, []string{"c", "b", "a", "d"}, vals(l))
}

func TestAtNegativeIndex(t *testing.T) {
	l := New()
	for _, s := range []string{"a", "b", "c"} {
		l.PushBack([]byte(s))
	}
	require.NotNil(t, l.At(-1))
	assert.Equal(t, "c", string(l.At(-1).Value))
	assert.Equal(t, "a", string(l.At(-3).Value))
	assert.Nil(t, l.At(-4))
	assert.Nil(t, l.At(3))
}

func TestRemove(t *testing.T) {
	l := New()
	l.PushBack([]byte("a"))
	mid := l.PushBack([]byte("b"))
	l.PushBack([]byte("c"))
	l.Remove(mid)
	assert.Equal(t, []string{"a", "c"}, vals(l))
	assert.Equal(t, 2, l.Len())
}

func TestInsertBeforeAfter(t *testing.T) {
	l := New()
	l.PushBack([]byte("a"))
	pivot := l.PushBack([]byte("b"))
	l.PushBack([]byte("c"))
	l.InsertBefore([]byte("x"), pivot)
	l.InsertAfter([]byte("y"), pivot)
	assert.Equal(t, []string{"a", "x", "b", "y", "c"}, vals(l))
}

func TestCloneIsIndependent(t *testing.T) {
	l := New()
	l.PushBack([]byte("a"))
	cp := l.Clone()
	cp.PushBack([]byte("b"))
	assert.Equal(t, []string{"a"}, vals(l))
	assert.Equal(t, []string{"a", "b"}, vals(cp))
}
