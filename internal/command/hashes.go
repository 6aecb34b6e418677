package command

import (
	"sort"
	"strconv"
	"strings"

	"redikv/internal/resp"
	"redikv/internal/store"
)

func HGet(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		val, ok := v.Hash[ctx.Key(2)]
		if !ok {
			return resp.NullBulk(), nil
		}
		return resp.Bulk(val), nil
	})(ctx)
}

// HSet stores field=value and reports whether the field was new. It always
// stores, whether or not the field already existed.
func HSet(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		field := ctx.Key(2)
		_, existed := v.Hash[field]
		v.Hash[field] = cloneBytes(ctx.Args[3])
		if existed {
			return resp.Int(0), nil
		}
		return resp.Int(1), nil
	})(ctx)
}

func HSetNX(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		field := ctx.Key(2)
		if _, ok := v.Hash[field]; ok {
			return resp.Int(0), nil
		}
		v.Hash[field] = cloneBytes(ctx.Args[3])
		return resp.Int(1), nil
	})(ctx)
}

func HMSet(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		pairs := ctx.Args[2:]
		if len(pairs)%2 != 0 {
			return resp.Reply{}, ErrSyntax
		}
		for i := 0; i < len(pairs); i += 2 {
			v.Hash[string(pairs[i])] = cloneBytes(pairs[i+1])
		}
		return resp.Status("OK"), nil
	})(ctx)
}

func HMGet(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		fields := ctx.Args[2:]
		out := make([]resp.Reply, len(fields))
		for i, f := range fields {
			val, ok := v.Hash[string(f)]
			if !ok {
				out[i] = resp.NullBulk()
				continue
			}
			out[i] = resp.Bulk(val)
		}
		return resp.Multi(out), nil
	})(ctx)
}

// HDel removes the given fields and returns how many were actually
// present, correctly incrementing the counter (spec.md §9 flags the
// source's HDEL as never incrementing it).
func HDel(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		removed := int64(0)
		for _, f := range ctx.Args[2:] {
			if _, ok := v.Hash[string(f)]; ok {
				delete(v.Hash, string(f))
				removed++
			}
		}
		return resp.Int(removed), nil
	})(ctx)
}

func HExists(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		_, ok := v.Hash[ctx.Key(2)]
		if ok {
			return resp.Int(1), nil
		}
		return resp.Int(0), nil
	})(ctx)
}

// HKeys and HVals document the open question spec.md §9 raises about
// HGETALL iteration order: this implementation makes hash field order a
// deterministic sorted order rather than leaving it to Go's randomized map
// iteration, so repeated calls against an unmodified hash are stable.
func HKeys(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		return resp.BulkStrings(sortedHashFields(v.Hash)), nil
	})(ctx)
}

func HVals(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		fields := sortedHashFields(v.Hash)
		out := make([]resp.Reply, len(fields))
		for i, f := range fields {
			out[i] = resp.Bulk(v.Hash[f])
		}
		return resp.Multi(out), nil
	})(ctx)
}

func HGetAll(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		fields := sortedHashFields(v.Hash)
		out := make([]resp.Reply, 0, len(fields)*2)
		for _, f := range fields {
			out = append(out, resp.BulkString(f), resp.Bulk(v.Hash[f]))
		}
		return resp.Multi(out), nil
	})(ctx)
}

func HLen(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		return resp.Int(int64(len(v.Hash))), nil
	})(ctx)
}

func HIncrBy(ctx *Context) (resp.Reply, error) {
	delta, err := strconv.ParseInt(string(ctx.Args[3]), 10, 64)
	if err != nil {
		return resp.Reply{}, ErrNotInteger
	}
	return WithWrite(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		field := ctx.Key(2)
		cur, err := parseIntCounter(v.Hash[field])
		if err != nil {
			return resp.Reply{}, err
		}
		next := cur + delta
		text := store.CanonicalInt(next)
		v.Hash[field] = []byte(text)
		return resp.IntText(text), nil
	})(ctx)
}

func HIncrByFloat(ctx *Context) (resp.Reply, error) {
	delta, err := strconv.ParseFloat(string(ctx.Args[3]), 64)
	if err != nil || store.IsNaN(delta) || store.IsInf(delta) {
		return resp.Reply{}, ErrNotFloat
	}
	return WithWrite(store.KindHash, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		field := ctx.Key(2)
		var cur float64
		if raw, ok := v.Hash[field]; ok && len(raw) > 0 {
			s := string(raw)
			if strings.TrimSpace(s) != s {
				return resp.Reply{}, ErrNotFloat
			}
			cur, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return resp.Reply{}, ErrNotFloat
			}
		}
		next := cur + delta
		if store.IsNaN(next) || store.IsInf(next) {
			return resp.Reply{}, ErrNotFloat
		}
		text := store.CanonicalFloat(next)
		v.Hash[field] = []byte(text)
		return resp.BulkString(text), nil
	})(ctx)
}

func sortedHashFields(h map[string][]byte) []string {
	out := make([]string, 0, len(h))
	for f := range h {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
