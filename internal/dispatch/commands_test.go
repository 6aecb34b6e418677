package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redikv/internal/resp"
)

func TestSetRangeGrowsPastEnd(t *testing.T) {
	ks, idx := newHarness(t)
	// fresh key: SETRANGE pads the gap before offset with zero bytes.
	assert.Equal(t, resp.Int(10), run(ks, idx, "SETRANGE", "k", "5", "World"))
	assert.Equal(t, resp.Bulk([]byte("\x00\x00\x00\x00\x00World")), run(ks, idx, "GET", "k"))

	require.Equal(t, resp.Status("OK"), run(ks, idx, "SET", "h", "Hello World"))
	assert.Equal(t, resp.Int(11), run(ks, idx, "SETRANGE", "h", "6", "Redis"))
	assert.Equal(t, resp.Bulk([]byte("Hello Redis")), run(ks, idx, "GET", "h"))
}

func TestGetRangeAndStrlenAndAppend(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SET", "s", "Hello World")
	assert.Equal(t, resp.Bulk([]byte("Hello")), run(ks, idx, "GETRANGE", "s", "0", "4"))
	assert.Equal(t, resp.Bulk([]byte("World")), run(ks, idx, "GETRANGE", "s", "-5", "-1"))
	assert.Equal(t, resp.Int(11), run(ks, idx, "STRLEN", "s"))
	assert.Equal(t, resp.Int(20), run(ks, idx, "APPEND", "s", "! Goodbye"))
}

func TestMSetNXAllOrNothing(t *testing.T) {
	ks, idx := newHarness(t)
	require.Equal(t, resp.Status("OK"), run(ks, idx, "SET", "b", "existing"))

	reply := run(ks, idx, "MSETNX", "a", "1", "b", "2", "c", "3")
	assert.Equal(t, resp.Int(0), reply)
	assert.Equal(t, resp.Int(0), run(ks, idx, "EXISTS", "a"))
	assert.Equal(t, resp.Int(0), run(ks, idx, "EXISTS", "c"))
	assert.Equal(t, resp.Bulk([]byte("existing")), run(ks, idx, "GET", "b"))

	reply = run(ks, idx, "MSETNX", "x", "1", "y", "2")
	assert.Equal(t, resp.Int(1), reply)
	assert.Equal(t, resp.Bulk([]byte("1")), run(ks, idx, "GET", "x"))
	assert.Equal(t, resp.Bulk([]byte("2")), run(ks, idx, "GET", "y"))
}

func TestLPushXRPushXOnlyActOnExistingKey(t *testing.T) {
	ks, idx := newHarness(t)
	assert.Equal(t, resp.Int(0), run(ks, idx, "LPUSHX", "missing", "a"))
	assert.Equal(t, resp.Int(0), run(ks, idx, "EXISTS", "missing"))

	run(ks, idx, "RPUSH", "l", "seed")
	assert.Equal(t, resp.Int(2), run(ks, idx, "LPUSHX", "l", "front"))
	assert.Equal(t, resp.Int(3), run(ks, idx, "RPUSHX", "l", "back"))
	assert.Equal(t, resp.BulkStrings([]string{"front", "seed", "back"}), run(ks, idx, "LRANGE", "l", "0", "-1"))
}

func TestLInsertBeforeAfterAndMissingPivot(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "RPUSH", "l", "a", "c")
	assert.Equal(t, resp.Int(3), run(ks, idx, "LINSERT", "l", "BEFORE", "c", "b"))
	assert.Equal(t, resp.BulkStrings([]string{"a", "b", "c"}), run(ks, idx, "LRANGE", "l", "0", "-1"))

	assert.Equal(t, resp.Int(4), run(ks, idx, "LINSERT", "l", "AFTER", "c", "d"))
	assert.Equal(t, resp.BulkStrings([]string{"a", "b", "c", "d"}), run(ks, idx, "LRANGE", "l", "0", "-1"))

	assert.Equal(t, resp.Int(-1), run(ks, idx, "LINSERT", "l", "BEFORE", "zzz", "x"))
}

func TestLRemPositiveNegativeAndZero(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "RPUSH", "l", "a", "b", "a", "c", "a")

	assert.Equal(t, resp.Int(2), run(ks, idx, "LREM", "l", "2", "a"))
	assert.Equal(t, resp.BulkStrings([]string{"b", "c", "a"}), run(ks, idx, "LRANGE", "l", "0", "-1"))

	run(ks, idx, "DEL", "l")
	run(ks, idx, "RPUSH", "l", "a", "b", "a", "c", "a")
	assert.Equal(t, resp.Int(2), run(ks, idx, "LREM", "l", "-2", "a"))
	assert.Equal(t, resp.BulkStrings([]string{"a", "b", "c"}), run(ks, idx, "LRANGE", "l", "0", "-1"))

	run(ks, idx, "DEL", "l")
	run(ks, idx, "RPUSH", "l", "a", "b", "a", "c", "a")
	assert.Equal(t, resp.Int(3), run(ks, idx, "LREM", "l", "0", "a"))
	assert.Equal(t, resp.BulkStrings([]string{"b", "c"}), run(ks, idx, "LRANGE", "l", "0", "-1"))
}

func TestLSetAndLTrim(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "RPUSH", "l", "a", "b", "c", "d", "e")

	assert.Equal(t, resp.Status("OK"), run(ks, idx, "LSET", "l", "1", "B"))
	assert.Equal(t, resp.Bulk([]byte("B")), run(ks, idx, "LINDEX", "l", "1"))

	reply := run(ks, idx, "LSET", "l", "99", "x")
	assert.Equal(t, resp.KindError, reply.Kind)
	assert.Equal(t, "ERR index out of range", reply.Err)

	assert.Equal(t, resp.Status("OK"), run(ks, idx, "LTRIM", "l", "1", "3"))
	assert.Equal(t, resp.BulkStrings([]string{"B", "c", "d"}), run(ks, idx, "LRANGE", "l", "0", "-1"))
}

func TestRPopLPushSameListRotates(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "RPUSH", "l", "a", "b", "c")
	assert.Equal(t, resp.Bulk([]byte("c")), run(ks, idx, "RPOPLPUSH", "l", "l"))
	assert.Equal(t, resp.BulkStrings([]string{"c", "a", "b"}), run(ks, idx, "LRANGE", "l", "0", "-1"))
}

func TestRPopLPushAcrossLists(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "RPUSH", "src", "a", "b", "c")
	run(ks, idx, "RPUSH", "dst", "x")
	assert.Equal(t, resp.Bulk([]byte("c")), run(ks, idx, "RPOPLPUSH", "src", "dst"))
	assert.Equal(t, resp.BulkStrings([]string{"a", "b"}), run(ks, idx, "LRANGE", "src", "0", "-1"))
	assert.Equal(t, resp.BulkStrings([]string{"c", "x"}), run(ks, idx, "LRANGE", "dst", "0", "-1"))
}

func TestRPopLPushOnEmptySourceReturnsNil(t *testing.T) {
	ks, idx := newHarness(t)
	assert.Equal(t, resp.NullBulk(), run(ks, idx, "RPOPLPUSH", "missing", "dst"))
	assert.Equal(t, resp.Int(0), run(ks, idx, "EXISTS", "dst"))
}

// TestSMoveSameSetIsNoOp is a direct regression test for the bug where
// SMOVE x x member resolved src and dst as two independent clones of the
// same key, deleted the member from one and re-added it to the other, but
// only committed the delete — leaving the member gone despite replying :1.
func TestSMoveSameSetIsNoOp(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SADD", "s", "a", "b", "c")
	assert.Equal(t, resp.Int(1), run(ks, idx, "SMOVE", "s", "s", "b"))
	assert.Equal(t, resp.Int(1), run(ks, idx, "SISMEMBER", "s", "b"))
	assert.Equal(t, resp.Int(3), run(ks, idx, "SCARD", "s"))
}

func TestSMoveAcrossSets(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SADD", "src", "a", "b")
	run(ks, idx, "SADD", "dst", "x")
	assert.Equal(t, resp.Int(1), run(ks, idx, "SMOVE", "src", "dst", "a"))
	assert.Equal(t, resp.Int(0), run(ks, idx, "SISMEMBER", "src", "a"))
	assert.Equal(t, resp.Int(1), run(ks, idx, "SISMEMBER", "dst", "a"))

	assert.Equal(t, resp.Int(0), run(ks, idx, "SMOVE", "src", "dst", "nope"))
}

func TestSRandMemberPositiveIsDistinctSample(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SADD", "s", "a", "b", "c", "d")

	reply := run(ks, idx, "SRANDMEMBER", "s", "2")
	require.Equal(t, resp.KindMulti, reply.Kind)
	require.Len(t, reply.Multi, 2)
	seen := map[string]bool{}
	for _, r := range reply.Multi {
		seen[string(r.Bulk)] = true
	}
	assert.Len(t, seen, 2, "positive count must return distinct members")

	reply = run(ks, idx, "SRANDMEMBER", "s", "10")
	assert.Len(t, reply.Multi, 4, "count larger than set size is capped at cardinality")
}

func TestSRandMemberNegativeAllowsRepeats(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SADD", "s", "only")

	reply := run(ks, idx, "SRANDMEMBER", "s", "-5")
	require.Equal(t, resp.KindMulti, reply.Kind)
	require.Len(t, reply.Multi, 5)
	for _, r := range reply.Multi {
		assert.Equal(t, "only", string(r.Bulk))
	}
}

func TestSetAlgebraStoreVariants(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SADD", "a", "1", "2", "3")
	run(ks, idx, "SADD", "b", "2", "3", "4")

	assert.Equal(t, resp.Int(1), run(ks, idx, "SDIFFSTORE", "d", "a", "b"))
	assert.Equal(t, resp.BulkStrings([]string{"1"}), run(ks, idx, "SMEMBERS", "d"))

	assert.Equal(t, resp.Int(2), run(ks, idx, "SINTERSTORE", "i", "a", "b"))
	assert.Equal(t, resp.BulkStrings([]string{"2", "3"}), run(ks, idx, "SMEMBERS", "i"))

	assert.Equal(t, resp.Int(4), run(ks, idx, "SUNIONSTORE", "u", "a", "b"))
	assert.Equal(t, resp.BulkStrings([]string{"1", "2", "3", "4"}), run(ks, idx, "SMEMBERS", "u"))

	// an empty result deletes any prior value at the destination key.
	run(ks, idx, "SET", "empty-dst", "placeholder")
	assert.Equal(t, resp.Int(0), run(ks, idx, "SDIFFSTORE", "empty-dst", "a", "a"))
	assert.Equal(t, resp.Int(0), run(ks, idx, "EXISTS", "empty-dst"))
}

func TestZInterStoreAndZUnionStore(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "ZADD", "z1", "1", "a", "2", "b")
	run(ks, idx, "ZADD", "z2", "10", "b", "20", "c")

	assert.Equal(t, resp.Int(1), run(ks, idx, "ZINTERSTORE", "zi", "2", "z1", "z2"))
	assert.Equal(t, resp.BulkStrings([]string{"b", "12"}), run(ks, idx, "ZRANGE", "zi", "0", "-1", "WITHSCORES"))

	assert.Equal(t, resp.Int(3), run(ks, idx, "ZUNIONSTORE", "zu", "2", "z1", "z2"))
	assert.Equal(t, resp.BulkStrings([]string{"a", "1", "b", "12", "c", "20"}), run(ks, idx, "ZRANGE", "zu", "0", "-1", "WITHSCORES"))
}

func TestZRevRangeAndZRangeByScore(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "ZADD", "z", "1", "a", "2", "b", "3", "c")

	assert.Equal(t, resp.BulkStrings([]string{"c", "b", "a"}), run(ks, idx, "ZREVRANGE", "z", "0", "-1"))
	assert.Equal(t, resp.BulkStrings([]string{"b", "c"}), run(ks, idx, "ZRANGEBYSCORE", "z", "2", "3"))
	assert.Equal(t, resp.Int(2), run(ks, idx, "ZCOUNT", "z", "2", "3"))
	assert.Equal(t, resp.Int(2), run(ks, idx, "ZREVRANK", "z", "a"))
}

func TestZRemRangeByRankAndByScore(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "ZADD", "z", "1", "a", "2", "b", "3", "c", "4", "d")
	assert.Equal(t, resp.Int(2), run(ks, idx, "ZREMRANGEBYRANK", "z", "0", "1"))
	assert.Equal(t, resp.BulkStrings([]string{"c", "d"}), run(ks, idx, "ZRANGE", "z", "0", "-1"))

	assert.Equal(t, resp.Int(1), run(ks, idx, "ZREMRANGEBYSCORE", "z", "4", "4"))
	assert.Equal(t, resp.BulkStrings([]string{"c"}), run(ks, idx, "ZRANGE", "z", "0", "-1"))
}

func TestHSetNXAndHIncrBy(t *testing.T) {
	ks, idx := newHarness(t)
	assert.Equal(t, resp.Int(1), run(ks, idx, "HSETNX", "h", "f", "1"))
	assert.Equal(t, resp.Int(0), run(ks, idx, "HSETNX", "h", "f", "2"))
	assert.Equal(t, resp.Bulk([]byte("1")), run(ks, idx, "HGET", "h", "f"))

	assert.Equal(t, resp.IntText("6"), run(ks, idx, "HINCRBY", "h", "counter", "6"))
	assert.Equal(t, resp.IntText("4"), run(ks, idx, "HINCRBY", "h", "counter", "-2"))
}

func TestKeysGlobMatching(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SET", "foo", "1")
	run(ks, idx, "SET", "foobar", "2")
	run(ks, idx, "SET", "bar", "3")

	reply := run(ks, idx, "KEYS", "foo*")
	require.Equal(t, resp.KindMulti, reply.Kind)
	got := map[string]bool{}
	for _, r := range reply.Multi {
		got[string(r.Bulk)] = true
	}
	assert.Equal(t, map[string]bool{"foo": true, "foobar": true}, got)
}

func TestRenameAndRenameNX(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SET", "a", "1")
	assert.Equal(t, resp.Status("OK"), run(ks, idx, "RENAME", "a", "b"))
	assert.Equal(t, resp.Int(0), run(ks, idx, "EXISTS", "a"))
	assert.Equal(t, resp.Bulk([]byte("1")), run(ks, idx, "GET", "b"))

	reply := run(ks, idx, "RENAME", "missing", "c")
	assert.Equal(t, "ERR no such key", reply.Err)

	run(ks, idx, "SET", "x", "1")
	run(ks, idx, "SET", "y", "2")
	assert.Equal(t, resp.Int(0), run(ks, idx, "RENAMENX", "x", "y"))
	assert.Equal(t, resp.Bulk([]byte("2")), run(ks, idx, "GET", "y"))
}

func TestTypeCommand(t *testing.T) {
	ks, idx := newHarness(t)
	run(ks, idx, "SET", "str", "v")
	run(ks, idx, "RPUSH", "lst", "v")
	run(ks, idx, "SADD", "st", "v")
	run(ks, idx, "HSET", "h", "f", "v")
	run(ks, idx, "ZADD", "z", "1", "v")

	assert.Equal(t, resp.Status("string"), run(ks, idx, "TYPE", "str"))
	assert.Equal(t, resp.Status("list"), run(ks, idx, "TYPE", "lst"))
	assert.Equal(t, resp.Status("set"), run(ks, idx, "TYPE", "st"))
	assert.Equal(t, resp.Status("hash"), run(ks, idx, "TYPE", "h"))
	assert.Equal(t, resp.Status("zset"), run(ks, idx, "TYPE", "z"))
	assert.Equal(t, resp.Status("none"), run(ks, idx, "TYPE", "missing"))
}

func TestConnectionAndServerCommandsSmoke(t *testing.T) {
	ks, idx := newHarness(t)
	assert.Equal(t, resp.Status("PONG"), run(ks, idx, "PING"))
	assert.Equal(t, resp.Bulk([]byte("hi")), run(ks, idx, "PING", "hi"))
	assert.Equal(t, resp.Bulk([]byte("hi")), run(ks, idx, "ECHO", "hi"))

	reply := run(ks, idx, "AUTH", "whatever")
	assert.Equal(t, "ERR Client sent AUTH, but no password is set", reply.Err)

	run(ks, idx, "SET", "k", "v")
	assert.Equal(t, resp.Int(1), run(ks, idx, "DBSIZE"))
	assert.Equal(t, resp.Status("OK"), run(ks, idx, "FLUSHDB"))
	assert.Equal(t, resp.Int(0), run(ks, idx, "DBSIZE"))

	assert.Equal(t, resp.Multi(nil), run(ks, idx, "CONFIG", "GET", "maxmemory"))
	assert.Equal(t, resp.Status("OK"), run(ks, idx, "CONFIG", "SET", "maxmemory", "0"))
	assert.Equal(t, resp.Status("OK"), run(ks, idx, "DEBUG", "anything"))
}
