package command

import (
	"strconv"

	"redikv/internal/resp"
	"redikv/internal/store"
	"redikv/internal/store/zset"
)

func ZAdd(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		pairs := ctx.Args[2:]
		if len(pairs)%2 != 0 {
			return resp.Reply{}, ErrSyntax
		}
		added := int64(0)
		for i := 0; i < len(pairs); i += 2 {
			score, err := strconv.ParseFloat(string(pairs[i]), 64)
			if err != nil || store.IsNaN(score) {
				return resp.Reply{}, ErrNotFloat
			}
			if v.ZSet.Add(string(pairs[i+1]), score) {
				added++
			}
		}
		return resp.Int(added), nil
	})(ctx)
}

func ZCard(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		return resp.Int(int64(v.ZSet.Len())), nil
	})(ctx)
}

func ZScore(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		score, ok := v.ZSet.Score(ctx.Key(2))
		if !ok {
			return resp.NullBulk(), nil
		}
		return resp.BulkString(store.CanonicalFloat(score)), nil
	})(ctx)
}

func ZIncrBy(ctx *Context) (resp.Reply, error) {
	delta, err := strconv.ParseFloat(string(ctx.Args[2]), 64)
	if err != nil || store.IsNaN(delta) {
		return resp.Reply{}, ErrNotFloat
	}
	return WithWrite(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		member := ctx.Key(3)
		cur, _ := v.ZSet.Score(member)
		next := cur + delta
		if store.IsNaN(next) {
			return resp.Reply{}, ErrNotFloat
		}
		v.ZSet.Add(member, next)
		return resp.BulkString(store.CanonicalFloat(next)), nil
	})(ctx)
}

func zrangeReply(elems []zset.Element, withScores bool) resp.Reply {
	if withScores {
		out := make([]resp.Reply, 0, len(elems)*2)
		for _, e := range elems {
			out = append(out, resp.BulkString(e.Member), resp.BulkString(store.CanonicalFloat(e.Score)))
		}
		return resp.Multi(out)
	}
	out := make([]resp.Reply, 0, len(elems))
	for _, e := range elems {
		out = append(out, resp.BulkString(e.Member))
	}
	return resp.Multi(out)
}

func parseWithScores(args [][]byte) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	if len(args) == 1 && equalFold(args[0], "WITHSCORES") {
		return true, nil
	}
	return false, ErrSyntax
}

func equalFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := range b {
		c := b[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != s[i] {
			return false
		}
	}
	return true
}

func ZRange(ctx *Context) (resp.Reply, error) {
	return zrangeCmd(ctx, false)
}

func ZRevRange(ctx *Context) (resp.Reply, error) {
	return zrangeCmd(ctx, true)
}

func zrangeCmd(ctx *Context, desc bool) (resp.Reply, error) {
	return WithRead(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		start, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		stop, err := strconv.Atoi(string(ctx.Args[3]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		withScores, err := parseWithScores(ctx.Args[4:])
		if err != nil {
			return resp.Reply{}, err
		}
		var elems []zset.Element
		if desc {
			elems = v.ZSet.RangeByRankDesc(start, stop)
		} else {
			elems = v.ZSet.RangeByRank(start, stop)
		}
		return zrangeReply(elems, withScores), nil
	})(ctx)
}

func ZRank(ctx *Context) (resp.Reply, error) {
	return zrankCmd(ctx, false)
}

func ZRevRank(ctx *Context) (resp.Reply, error) {
	return zrankCmd(ctx, true)
}

func zrankCmd(ctx *Context, desc bool) (resp.Reply, error) {
	return WithRead(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		rank, ok := v.ZSet.Rank(ctx.Key(2))
		if !ok {
			return resp.NullBulk(), nil
		}
		if desc {
			rank = v.ZSet.Len() - 1 - rank
		}
		return resp.Int(int64(rank)), nil
	})(ctx)
}

func ZRem(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		removed := int64(0)
		for _, m := range ctx.Args[2:] {
			if v.ZSet.Remove(string(m)) {
				removed++
			}
		}
		return resp.Int(removed), nil
	})(ctx)
}

func parseScoreBound(raw []byte) (float64, error) {
	return strconv.ParseFloat(string(raw), 64)
}

func ZRangeByScore(ctx *Context) (resp.Reply, error) {
	return zrangeByScoreCmd(ctx, false)
}

func ZRevRangeByScore(ctx *Context) (resp.Reply, error) {
	return zrangeByScoreCmd(ctx, true)
}

func zrangeByScoreCmd(ctx *Context, desc bool) (resp.Reply, error) {
	return WithRead(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		first, second := ctx.Args[2], ctx.Args[3]
		if desc {
			first, second = second, first
		}
		min, err := parseScoreBound(first)
		if err != nil {
			return resp.Reply{}, ErrNotFloat
		}
		max, err := parseScoreBound(second)
		if err != nil {
			return resp.Reply{}, ErrNotFloat
		}
		withScores, err := parseWithScores(ctx.Args[4:])
		if err != nil {
			return resp.Reply{}, err
		}
		var elems []zset.Element
		if desc {
			elems = v.ZSet.RangeByScoreDesc(min, max)
		} else {
			elems = v.ZSet.RangeByScore(min, max)
		}
		return zrangeReply(elems, withScores), nil
	})(ctx)
}

func ZCount(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		min, err := parseScoreBound(ctx.Args[2])
		if err != nil {
			return resp.Reply{}, ErrNotFloat
		}
		max, err := parseScoreBound(ctx.Args[3])
		if err != nil {
			return resp.Reply{}, ErrNotFloat
		}
		return resp.Int(int64(v.ZSet.CountByScore(min, max))), nil
	})(ctx)
}

func ZRemRangeByRank(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		start, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		stop, err := strconv.Atoi(string(ctx.Args[3]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		return resp.Int(int64(v.ZSet.RemoveRangeByRank(start, stop))), nil
	})(ctx)
}

func ZRemRangeByScore(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindZSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		min, err := parseScoreBound(ctx.Args[2])
		if err != nil {
			return resp.Reply{}, ErrNotFloat
		}
		max, err := parseScoreBound(ctx.Args[3])
		if err != nil {
			return resp.Reply{}, ErrNotFloat
		}
		return resp.Int(int64(v.ZSet.RemoveRangeByScore(min, max))), nil
	})(ctx)
}

// aggregateZSets implements the shared body of ZINTERSTORE/ZUNIONSTORE: sum
// scores of members present according to op across numkeys source zsets,
// weight 1 for each (spec.md does not ask for WEIGHTS/AGGREGATE options).
func aggregateZSets(ctx *Context, union bool) (resp.Reply, error) {
	dstKey := ctx.Key(1)
	numKeys, err := strconv.Atoi(string(ctx.Args[2]))
	if err != nil || numKeys < 1 || len(ctx.Args) < 3+numKeys {
		return resp.Reply{}, ErrSyntax
	}
	sources := make([]*zset.ZSet, 0, numKeys)
	for i := 0; i < numKeys; i++ {
		key := string(ctx.Args[3+i])
		v, ok := ctx.DB().Get(key)
		if !ok {
			sources = append(sources, zset.New())
			continue
		}
		if v.Kind != store.KindZSet {
			return resp.Reply{}, ErrWrongType
		}
		sources = append(sources, v.ZSet)
	}

	result := zset.New()
	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, zs := range sources {
		for _, e := range zs.All() {
			sums[e.Member] += e.Score
			counts[e.Member]++
		}
	}
	for member, sum := range sums {
		if !union && counts[member] != numKeys {
			continue
		}
		result.Add(member, sum)
	}

	if result.Len() == 0 {
		ctx.DB().Delete(dstKey)
		return resp.Int(0), nil
	}
	v := store.NewEmpty(store.KindZSet)
	v.ZSet = result
	ctx.DB().Set(dstKey, v)
	return resp.Int(int64(result.Len())), nil
}

func ZInterStore(ctx *Context) (resp.Reply, error) {
	return aggregateZSets(ctx, false)
}

func ZUnionStore(ctx *Context) (resp.Reply, error) {
	return aggregateZSets(ctx, true)
}
