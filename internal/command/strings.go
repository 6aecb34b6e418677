package command

import (
	"strconv"
	"strings"

	"redikv/internal/resp"
	"redikv/internal/store"
)

// Get returns the Bstr under Args[1]. Unlike the WithRead-based string
// readers, it does not treat an absent key as the empty string: the reply
// is a null bulk, not an empty bulk, when the key does not exist.
func Get(ctx *Context) (resp.Reply, error) {
	key := ctx.Key(1)
	v, ok := ctx.DB().Get(key)
	if !ok {
		return resp.NullBulk(), nil
	}
	if v.Kind != store.KindBstr {
		return resp.Reply{}, ErrWrongType
	}
	return resp.Bulk(v.Bstr), nil
}

// Set installs a fresh Bstr under the key, overwriting any prior value of
// any kind: SET is the one string command exempt from WithWrite's
// type-discipline resolve, since it is defined to replace the variant
// outright rather than require a prior match.
func Set(ctx *Context) (resp.Reply, error) {
	key := ctx.Key(1)
	ctx.DB().Set(key, store.NewBstr(cloneBytes(ctx.Args[2])))
	return resp.Status("OK"), nil
}

func GetSet(ctx *Context) (resp.Reply, error) {
	key := ctx.Key(1)
	existing, ok := ctx.DB().Get(key)
	var prior resp.Reply
	if !ok {
		prior = resp.NullBulk()
	} else if existing.Kind != store.KindBstr {
		return resp.Reply{}, ErrWrongType
	} else {
		prior = resp.Bulk(existing.Bstr)
	}
	ctx.DB().Set(key, store.NewBstr(cloneBytes(ctx.Args[2])))
	return prior, nil
}

func SetNX(ctx *Context) (resp.Reply, error) {
	key := ctx.Key(1)
	if ctx.Exists(key) {
		return resp.Int(0), nil
	}
	ctx.DB().Set(key, store.NewBstr(cloneBytes(ctx.Args[2])))
	return resp.Int(1), nil
}

func Append(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindBstr, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		v.Bstr = append(v.Bstr, ctx.Args[2]...)
		return resp.Int(int64(len(v.Bstr))), nil
	})(ctx)
}

func Strlen(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindBstr, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		return resp.Int(int64(len(v.Bstr))), nil
	})(ctx)
}

func MGet(ctx *Context) (resp.Reply, error) {
	out := make([]resp.Reply, 0, len(ctx.Args)-1)
	for _, k := range ctx.Args[1:] {
		v, ok := ctx.DB().Get(string(k))
		if !ok || v.Kind != store.KindBstr {
			out = append(out, resp.NullBulk())
			continue
		}
		out = append(out, resp.Bulk(v.Bstr))
	}
	return resp.Multi(out), nil
}

func MSet(ctx *Context) (resp.Reply, error) {
	pairs := ctx.Args[1:]
	if len(pairs)%2 != 0 {
		return resp.Reply{}, ErrSyntax
	}
	for i := 0; i < len(pairs); i += 2 {
		ctx.DB().Set(string(pairs[i]), store.NewBstr(cloneBytes(pairs[i+1])))
	}
	return resp.Status("OK"), nil
}

func MSetNX(ctx *Context) (resp.Reply, error) {
	pairs := ctx.Args[1:]
	if len(pairs)%2 != 0 {
		return resp.Reply{}, ErrSyntax
	}
	for i := 0; i < len(pairs); i += 2 {
		if ctx.Exists(string(pairs[i])) {
			return resp.Int(0), nil
		}
	}
	for i := 0; i < len(pairs); i += 2 {
		ctx.DB().Set(string(pairs[i]), store.NewBstr(cloneBytes(pairs[i+1])))
	}
	return resp.Int(1), nil
}

func GetRange(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindBstr, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		start, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		end, err := strconv.Atoi(string(ctx.Args[3]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		n := len(v.Bstr)
		lo, hi, ok := clampRange(start, end, n)
		if !ok {
			return resp.Bulk(nil), nil
		}
		return resp.Bulk(v.Bstr[lo : hi+1]), nil
	})(ctx)
}

func SetRange(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindBstr, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		offset, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil || offset < 0 {
			return resp.Reply{}, ErrNotInteger
		}
		patch := ctx.Args[3]
		need := offset + len(patch)
		if need > len(v.Bstr) {
			grown := make([]byte, need)
			copy(grown, v.Bstr)
			v.Bstr = grown
		}
		copy(v.Bstr[offset:], patch)
		return resp.Int(int64(len(v.Bstr))), nil
	})(ctx)
}

func Incr(ctx *Context) (resp.Reply, error) { return incrBy(ctx, 1) }
func Decr(ctx *Context) (resp.Reply, error) { return incrBy(ctx, -1) }

func IncrBy(ctx *Context) (resp.Reply, error) {
	delta, err := strconv.ParseInt(string(ctx.Args[2]), 10, 64)
	if err != nil {
		return resp.Reply{}, ErrNotInteger
	}
	return incrBy(ctx, delta)
}

func DecrBy(ctx *Context) (resp.Reply, error) {
	delta, err := strconv.ParseInt(string(ctx.Args[2]), 10, 64)
	if err != nil {
		return resp.Reply{}, ErrNotInteger
	}
	return incrBy(ctx, -delta)
}

func incrBy(ctx *Context, delta int64) (resp.Reply, error) {
	return WithWrite(store.KindBstr, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		cur, err := parseIntCounter(v.Bstr)
		if err != nil {
			return resp.Reply{}, err
		}
		next := cur + delta
		text := store.CanonicalInt(next)
		v.Bstr = []byte(text)
		return resp.IntText(text), nil
	})(ctx)
}

// parseIntCounter rejects leading/trailing whitespace explicitly, per
// spec.md §4.4's INCR contract, since strconv.ParseInt alone tolerates a
// leading sign but not whitespace; the check is kept explicit for clarity
// about which rule is being enforced.
func parseIntCounter(b []byte) (int64, error) {
	s := string(b)
	if s == "" {
		return 0, nil
	}
	if strings.TrimSpace(s) != s {
		return 0, ErrNotInteger
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}
	return n, nil
}

func IncrByFloat(ctx *Context) (resp.Reply, error) {
	delta, err := strconv.ParseFloat(string(ctx.Args[2]), 64)
	if err != nil || store.IsNaN(delta) || store.IsInf(delta) {
		return resp.Reply{}, ErrNotFloat
	}
	return WithWrite(store.KindBstr, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		var cur float64
		if len(v.Bstr) > 0 {
			s := string(v.Bstr)
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
		v.Bstr = []byte(text)
		return resp.BulkString(text), nil
	})(ctx)
}

func cloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// clampRange resolves a Redis-style inclusive start/stop pair against a
// byte-string (or list) length n, returning the clamped [lo, hi] bounds.
// ok is false when the resolved range is empty.
func clampRange(start, stop, n int) (lo, hi int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}
