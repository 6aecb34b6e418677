package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyspaceIsolation(t *testing.T) {
	ks := NewKeyspace(2)
	ks.DB(0).Set("k", NewBstr([]byte("a")))
	_, ok := ks.DB(1).Get("k")
	assert.False(t, ok)
}

func TestDatabaseFlush(t *testing.T) {
	db := newDatabase()
	db.Set("a", NewBstr(nil))
	db.Set("b", NewBstr(nil))
	require.Equal(t, 2, db.Len())
	db.Flush()
	assert.Equal(t, 0, db.Len())
}

func TestFlushAllIsolatedPerDB(t *testing.T) {
	ks := NewKeyspace(3)
	ks.DB(0).Set("k", NewBstr(nil))
	ks.DB(1).Set("k", NewBstr(nil))
	ks.FlushDB(0)
	_, ok0 := ks.DB(0).Get("k")
	_, ok1 := ks.DB(1).Get("k")
	assert.False(t, ok0)
	assert.True(t, ok1)

	ks.FlushAll()
	_, ok1After := ks.DB(1).Get("k")
	assert.False(t, ok1After)
}

func TestKeysSortedDeterministic(t *testing.T) {
	db := newDatabase()
	db.Set("b", NewBstr(nil))
	db.Set("a", NewBstr(nil))
	db.Set("c", NewBstr(nil))
	assert.Equal(t, []string{"a", "b", "c"}, db.Keys())
}
