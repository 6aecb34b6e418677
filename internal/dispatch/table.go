// Package dispatch resolves a parsed request frame to its command handler,
// applies the arity check spec.md §4.5 step 2 requires, and translates
// handler failures into error replies, all while holding the keyspace's
// single command-indivisibility mutex (spec.md §5).
package dispatch

import "redikv/internal/command"

// spec is one command's entry in the dispatch table: its canonical
// (uppercase) name and arity rule. A non-negative Arity is an exact
// argument count (including the command name itself); a negative Arity is
// a minimum, Redis-style (-3 means "at least 3").
type spec struct {
	name    string
	arity   int
	handler command.Handler
}

func (s spec) arityOK(n int) bool {
	if s.arity >= 0 {
		return n == s.arity
	}
	return n >= -s.arity
}

// table is the single place command names, arities, and handlers are
// declared as data, generalizing the teacher's inline per-case switch
// arity checks into one lookup (SPEC_FULL.md §4.5).
var table = map[string]spec{
	// Keys
	"DEL":       {"DEL", -2, command.Del},
	"EXISTS":    {"EXISTS", 2, command.Exists},
	"KEYS":      {"KEYS", 2, command.Keys},
	"RENAME":    {"RENAME", 3, command.Rename},
	"RENAMENX":  {"RENAMENX", 3, command.RenameNX},
	"RANDOMKEY": {"RANDOMKEY", 1, command.RandomKey},
	"TYPE":      {"TYPE", 2, command.Type},
	"DUMP":      {"DUMP", 2, command.Dump},
	"RESTORE":   {"RESTORE", 4, command.Restore},
	"EXPIRE":    {"EXPIRE", -1, command.NotImplemented},
	"EXPIREAT":  {"EXPIREAT", -1, command.NotImplemented},
	"PERSIST":   {"PERSIST", -1, command.NotImplemented},
	"TTL":       {"TTL", -1, command.NotImplemented},
	"MOVE":      {"MOVE", -1, command.NotImplemented},
	"SORT":      {"SORT", -2, command.Sort},

	// Strings
	"GET":         {"GET", 2, command.Get},
	"SET":         {"SET", 3, command.Set},
	"GETSET":      {"GETSET", 3, command.GetSet},
	"SETNX":       {"SETNX", 3, command.SetNX},
	"APPEND":      {"APPEND", 3, command.Append},
	"STRLEN":      {"STRLEN", 2, command.Strlen},
	"MGET":        {"MGET", -2, command.MGet},
	"MSET":        {"MSET", -3, command.MSet},
	"MSETNX":      {"MSETNX", -3, command.MSetNX},
	"GETRANGE":    {"GETRANGE", 4, command.GetRange},
	"SETRANGE":    {"SETRANGE", 4, command.SetRange},
	"INCR":        {"INCR", 2, command.Incr},
	"DECR":        {"DECR", 2, command.Decr},
	"INCRBY":      {"INCRBY", 3, command.IncrBy},
	"DECRBY":      {"DECRBY", 3, command.DecrBy},
	"INCRBYFLOAT": {"INCRBYFLOAT", 3, command.IncrByFloat},

	// Hashes
	"HGET":         {"HGET", 3, command.HGet},
	"HSET":         {"HSET", 4, command.HSet},
	"HSETNX":       {"HSETNX", 4, command.HSetNX},
	"HMSET":        {"HMSET", -4, command.HMSet},
	"HMGET":        {"HMGET", -3, command.HMGet},
	"HDEL":         {"HDEL", -3, command.HDel},
	"HEXISTS":      {"HEXISTS", 3, command.HExists},
	"HKEYS":        {"HKEYS", 2, command.HKeys},
	"HVALS":        {"HVALS", 2, command.HVals},
	"HGETALL":      {"HGETALL", 2, command.HGetAll},
	"HLEN":         {"HLEN", 2, command.HLen},
	"HINCRBY":      {"HINCRBY", 4, command.HIncrBy},
	"HINCRBYFLOAT": {"HINCRBYFLOAT", 4, command.HIncrByFloat},

	// Lists
	"LPUSH":     {"LPUSH", -3, command.LPush},
	"RPUSH":     {"RPUSH", -3, command.RPush},
	"LPUSHX":    {"LPUSHX", -3, command.LPushX},
	"RPUSHX":    {"RPUSHX", -3, command.RPushX},
	"LPOP":      {"LPOP", 2, command.LPop},
	"RPOP":      {"RPOP", 2, command.RPop},
	"LINDEX":    {"LINDEX", 3, command.LIndex},
	"LRANGE":    {"LRANGE", 4, command.LRange},
	"LINSERT":   {"LINSERT", 5, command.LInsert},
	"LREM":      {"LREM", 4, command.LRem},
	"LSET":      {"LSET", 4, command.LSet},
	"LTRIM":     {"LTRIM", 4, command.LTrim},
	"RPOPLPUSH": {"RPOPLPUSH", 3, command.RPopLPush},

	// Sets
	"SADD":        {"SADD", -3, command.SAdd},
	"SREM":        {"SREM", -3, command.SRem},
	"SMEMBERS":    {"SMEMBERS", 2, command.SMembers},
	"SCARD":       {"SCARD", 2, command.SCard},
	"SISMEMBER":   {"SISMEMBER", 3, command.SIsMember},
	"SPOP":        {"SPOP", 2, command.SPop},
	"SRANDMEMBER": {"SRANDMEMBER", -2, command.SRandMember},
	"SDIFF":       {"SDIFF", -2, command.SDiff},
	"SINTER":      {"SINTER", -2, command.SInter},
	"SUNION":      {"SUNION", -2, command.SUnion},
	"SDIFFSTORE":  {"SDIFFSTORE", -3, command.SDiffStore},
	"SINTERSTORE": {"SINTERSTORE", -3, command.SInterStore},
	"SUNIONSTORE": {"SUNIONSTORE", -3, command.SUnionStore},
	"SMOVE":       {"SMOVE", 4, command.SMove},

	// Sorted sets
	"ZADD":             {"ZADD", -4, command.ZAdd},
	"ZCARD":            {"ZCARD", 2, command.ZCard},
	"ZSCORE":           {"ZSCORE", 3, command.ZScore},
	"ZINCRBY":          {"ZINCRBY", 4, command.ZIncrBy},
	"ZRANGE":           {"ZRANGE", -4, command.ZRange},
	"ZREVRANGE":        {"ZREVRANGE", -4, command.ZRevRange},
	"ZRANK":            {"ZRANK", 3, command.ZRank},
	"ZREVRANK":         {"ZREVRANK", 3, command.ZRevRank},
	"ZREM":             {"ZREM", -3, command.ZRem},
	"ZRANGEBYSCORE":    {"ZRANGEBYSCORE", -4, command.ZRangeByScore},
	"ZREVRANGEBYSCORE": {"ZREVRANGEBYSCORE", -4, command.ZRevRangeByScore},
	"ZCOUNT":           {"ZCOUNT", 4, command.ZCount},
	"ZREMRANGEBYRANK":  {"ZREMRANGEBYRANK", 4, command.ZRemRangeByRank},
	"ZREMRANGEBYSCORE": {"ZREMRANGEBYSCORE", 4, command.ZRemRangeByScore},
	"ZINTERSTORE":      {"ZINTERSTORE", -4, command.ZInterStore},
	"ZUNIONSTORE":      {"ZUNIONSTORE", -4, command.ZUnionStore},

	// Connection / server
	"PING":     {"PING", -1, command.Ping},
	"ECHO":     {"ECHO", 2, command.Echo},
	"SELECT":   {"SELECT", 2, command.Select},
	"AUTH":     {"AUTH", -2, command.Auth},
	"DBSIZE":   {"DBSIZE", 1, command.DBSize},
	"FLUSHDB":  {"FLUSHDB", 1, command.FlushDB},
	"FLUSHALL": {"FLUSHALL", 1, command.FlushAll},
	"INFO":     {"INFO", 1, command.Info},
	"TIME":     {"TIME", 1, command.Time},
	"DEBUG":    {"DEBUG", -2, command.Debug},
	"QUIT":     {"QUIT", 1, command.Quit},
	"CONFIG":   {"CONFIG", -2, command.Config},

	// Non-goals explicitly named by spec.md §1/§4.4
	"SETEX":    {"SETEX", -1, command.NotImplemented},
	"PSETEX":   {"PSETEX", -1, command.NotImplemented},
	"GETBIT":   {"GETBIT", -1, command.NotImplemented},
	"SETBIT":   {"SETBIT", -1, command.NotImplemented},
	"BITCOUNT": {"BITCOUNT", -1, command.NotImplemented},
	"BITOP":    {"BITOP", -1, command.NotImplemented},
}
