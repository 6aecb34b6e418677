package command

import (
	"math/rand"
	"sort"
	"strconv"

	"redikv/internal/resp"
	"redikv/internal/store"
)

func SAdd(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		added := int64(0)
		for _, m := range ctx.Args[2:] {
			if _, ok := v.Set[string(m)]; !ok {
				v.Set[string(m)] = struct{}{}
				added++
			}
		}
		return resp.Int(added), nil
	})(ctx)
}

func SRem(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		removed := int64(0)
		for _, m := range ctx.Args[2:] {
			if _, ok := v.Set[string(m)]; ok {
				delete(v.Set, string(m))
				removed++
			}
		}
		return resp.Int(removed), nil
	})(ctx)
}

func SMembers(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		return resp.BulkStrings(sortedSetMembers(v.Set)), nil
	})(ctx)
}

func SCard(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		return resp.Int(int64(len(v.Set))), nil
	})(ctx)
}

func SIsMember(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		_, ok := v.Set[ctx.Key(2)]
		if ok {
			return resp.Int(1), nil
		}
		return resp.Int(0), nil
	})(ctx)
}

func SPop(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		if len(v.Set) == 0 {
			return resp.NullBulk(), nil
		}
		members := sortedSetMembers(v.Set)
		pick := members[rand.Intn(len(members))]
		delete(v.Set, pick)
		return resp.BulkString(pick), nil
	})(ctx)
}

func SRandMember(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindSet, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		members := sortedSetMembers(v.Set)
		if len(ctx.Args) == 2 {
			if len(members) == 0 {
				return resp.NullBulk(), nil
			}
			return resp.BulkString(members[rand.Intn(len(members))]), nil
		}
		count, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		if count >= 0 {
			perm := rand.Perm(len(members))
			if count < len(members) {
				perm = perm[:count]
			}
			out := make([]resp.Reply, 0, len(perm))
			for _, idx := range perm {
				out = append(out, resp.BulkString(members[idx]))
			}
			return resp.Multi(out), nil
		}
		n := -count
		out := make([]resp.Reply, 0, n)
		if len(members) == 0 {
			return resp.Multi(out), nil
		}
		for i := 0; i < n; i++ {
			out = append(out, resp.BulkString(members[rand.Intn(len(members))]))
		}
		return resp.Multi(out), nil
	})(ctx)
}

func sortedSetMembers(s map[string]struct{}) []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func loadSet(ctx *Context, key string) (map[string]struct{}, error) {
	v, ok := ctx.DB().Get(key)
	if !ok {
		return map[string]struct{}{}, nil
	}
	if v.Kind != store.KindSet {
		return nil, ErrWrongType
	}
	return v.Set, nil
}

func SDiff(ctx *Context) (resp.Reply, error) {
	return setAlgebra(ctx, diffSets)
}

func SInter(ctx *Context) (resp.Reply, error) {
	return setAlgebra(ctx, interSets)
}

func SUnion(ctx *Context) (resp.Reply, error) {
	return setAlgebra(ctx, unionSets)
}

func SDiffStore(ctx *Context) (resp.Reply, error) {
	return setAlgebraStore(ctx, diffSets)
}

func SInterStore(ctx *Context) (resp.Reply, error) {
	return setAlgebraStore(ctx, interSets)
}

func SUnionStore(ctx *Context) (resp.Reply, error) {
	return setAlgebraStore(ctx, unionSets)
}

type setOp func(base map[string]struct{}, rest []map[string]struct{}) map[string]struct{}

func setAlgebra(ctx *Context, op setOp) (resp.Reply, error) {
	keys := ctx.Args[1:]
	base, err := loadSet(ctx, string(keys[0]))
	if err != nil {
		return resp.Reply{}, err
	}
	rest := make([]map[string]struct{}, 0, len(keys)-1)
	for _, k := range keys[1:] {
		s, err := loadSet(ctx, string(k))
		if err != nil {
			return resp.Reply{}, err
		}
		rest = append(rest, s)
	}
	result := op(base, rest)
	return resp.BulkStrings(sortedSetMembers(result)), nil
}

func setAlgebraStore(ctx *Context, op setOp) (resp.Reply, error) {
	dstKey := ctx.Key(1)
	keys := ctx.Args[2:]
	base, err := loadSet(ctx, string(keys[0]))
	if err != nil {
		return resp.Reply{}, err
	}
	rest := make([]map[string]struct{}, 0, len(keys)-1)
	for _, k := range keys[1:] {
		s, err := loadSet(ctx, string(k))
		if err != nil {
			return resp.Reply{}, err
		}
		rest = append(rest, s)
	}
	result := op(base, rest)
	if len(result) == 0 {
		ctx.DB().Delete(dstKey)
		return resp.Int(0), nil
	}
	v := store.NewEmpty(store.KindSet)
	v.Set = result
	ctx.DB().Set(dstKey, v)
	return resp.Int(int64(len(result))), nil
}

func diffSets(base map[string]struct{}, rest []map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(base))
	for m := range base {
		out[m] = struct{}{}
	}
	for _, s := range rest {
		for m := range s {
			delete(out, m)
		}
	}
	return out
}

func interSets(base map[string]struct{}, rest []map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(base))
	for m := range base {
		out[m] = struct{}{}
	}
	for _, s := range rest {
		for m := range out {
			if _, ok := s[m]; !ok {
				delete(out, m)
			}
		}
	}
	return out
}

func unionSets(base map[string]struct{}, rest []map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(base))
	for m := range base {
		out[m] = struct{}{}
	}
	for _, s := range rest {
		for m := range s {
			out[m] = struct{}{}
		}
	}
	return out
}

// SMove atomically relocates member from src to dst, both sets. It reports
// whether member was present in src. When srcKey == dstKey it resolves and
// commits a single value (matching RPopLPush's src==dst handling in
// lists.go) so
// the move is a true no-op instead of deleting the member via one clone
// while a second, independent clone of the same key is never committed.
func SMove(ctx *Context) (resp.Reply, error) {
	srcKey := ctx.Key(1)
	dstKey := ctx.Key(2)
	member := ctx.Key(3)

	src, err := resolve(ctx, srcKey, store.KindSet)
	if err != nil {
		return resp.Reply{}, err
	}
	if _, ok := src.Set[member]; !ok {
		return resp.Int(0), nil
	}

	if srcKey == dstKey {
		commit(ctx, srcKey, src)
		return resp.Int(1), nil
	}

	dst, err := resolve(ctx, dstKey, store.KindSet)
	if err != nil {
		return resp.Reply{}, err
	}
	delete(src.Set, member)
	dst.Set[member] = struct{}{}
	commit(ctx, srcKey, src)
	commit(ctx, dstKey, dst)
	return resp.Int(1), nil
}
