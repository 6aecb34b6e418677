package command

import (
	"bytes"
	"strconv"
	"strings"

	"redikv/internal/resp"
	"redikv/internal/store"
	"redikv/internal/store/dlist"
)

func LPush(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		for _, val := range ctx.Args[2:] {
			v.List.PushFront(cloneBytes(val))
		}
		return resp.Int(int64(v.List.Len())), nil
	})(ctx)
}

func RPush(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		for _, val := range ctx.Args[2:] {
			v.List.PushBack(cloneBytes(val))
		}
		return resp.Int(int64(v.List.Len())), nil
	})(ctx)
}

func LPushX(ctx *Context) (resp.Reply, error) {
	key := ctx.Key(1)
	if !ctx.Exists(key) {
		return resp.Int(0), nil
	}
	return LPush(ctx)
}

func RPushX(ctx *Context) (resp.Reply, error) {
	key := ctx.Key(1)
	if !ctx.Exists(key) {
		return resp.Int(0), nil
	}
	return RPush(ctx)
}

func LPop(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		e := v.List.Front()
		if e == nil {
			return resp.NullBulk(), nil
		}
		v.List.Remove(e)
		return resp.Bulk(e.Value), nil
	})(ctx)
}

func RPop(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		e := v.List.Back()
		if e == nil {
			return resp.NullBulk(), nil
		}
		v.List.Remove(e)
		return resp.Bulk(e.Value), nil
	})(ctx)
}

func LIndex(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		idx, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		e := v.List.At(idx)
		if e == nil {
			return resp.NullBulk(), nil
		}
		return resp.Bulk(e.Value), nil
	})(ctx)
}

func LRange(ctx *Context) (resp.Reply, error) {
	return WithRead(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		start, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		stop, err := strconv.Atoi(string(ctx.Args[3]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		lo, hi, ok := clampRange(start, stop, v.List.Len())
		if !ok {
			return resp.Multi(nil), nil
		}
		values := v.List.Values()
		out := make([]resp.Reply, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			out = append(out, resp.Bulk(values[i]))
		}
		return resp.Multi(out), nil
	})(ctx)
}

func LInsert(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		where := strings.ToUpper(string(ctx.Args[2]))
		if where != "BEFORE" && where != "AFTER" {
			return resp.Reply{}, ErrSyntax
		}
		pivot := ctx.Args[3]
		val := ctx.Args[4]
		var mark *dlist.Element
		for e := v.List.Front(); e != nil; e = e.Next() {
			if bytes.Equal(e.Value, pivot) {
				mark = e
				break
			}
		}
		if mark == nil {
			return resp.Int(-1), nil
		}
		if where == "BEFORE" {
			v.List.InsertBefore(cloneBytes(val), mark)
		} else {
			v.List.InsertAfter(cloneBytes(val), mark)
		}
		return resp.Int(int64(v.List.Len())), nil
	})(ctx)
}

func LRem(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		n, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		target := ctx.Args[3]
		removed := int64(0)
		switch {
		case n == 0:
			for e := v.List.Front(); e != nil; {
				next := e.Next()
				if bytes.Equal(e.Value, target) {
					v.List.Remove(e)
					removed++
				}
				e = next
			}
		case n > 0:
			for e := v.List.Front(); e != nil && removed < int64(n); {
				next := e.Next()
				if bytes.Equal(e.Value, target) {
					v.List.Remove(e)
					removed++
				}
				e = next
			}
		default:
			limit := int64(-n)
			for e := v.List.Back(); e != nil && removed < limit; {
				prev := e.Prev()
				if bytes.Equal(e.Value, target) {
					v.List.Remove(e)
					removed++
				}
				e = prev
			}
		}
		return resp.Int(removed), nil
	})(ctx)
}

func LSet(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		idx, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		e := v.List.At(idx)
		if e == nil {
			return resp.Reply{}, ErrIndexOutOfRange
		}
		e.Value = cloneBytes(ctx.Args[3])
		return resp.Status("OK"), nil
	})(ctx)
}

func LTrim(ctx *Context) (resp.Reply, error) {
	return WithWrite(store.KindList, func(ctx *Context, key string, v *store.Value) (resp.Reply, error) {
		start, err := strconv.Atoi(string(ctx.Args[2]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		stop, err := strconv.Atoi(string(ctx.Args[3]))
		if err != nil {
			return resp.Reply{}, ErrNotInteger
		}
		lo, hi, ok := clampRange(start, stop, v.List.Len())
		kept := dlist.New()
		if ok {
			values := v.List.Values()
			for i := lo; i <= hi; i++ {
				kept.PushBack(values[i])
			}
		}
		v.List = kept
		return resp.Status("OK"), nil
	})(ctx)
}

// RPopLPush atomically moves src's tail element to dst's head. It is
// implemented as a single handler (not two WithWrite calls) so the move is
// indivisible even when src == dst, and so a failure partway never leaves
// the element in neither or both lists.
func RPopLPush(ctx *Context) (resp.Reply, error) {
	srcKey := ctx.Key(1)
	dstKey := ctx.Key(2)

	src, err := resolve(ctx, srcKey, store.KindList)
	if err != nil {
		return resp.Reply{}, err
	}
	e := src.List.Back()
	if e == nil {
		return resp.NullBulk(), nil
	}
	val := cloneBytes(e.Value)

	if srcKey == dstKey {
		src.List.Remove(e)
		src.List.PushFront(val)
		commit(ctx, srcKey, src)
		return resp.Bulk(val), nil
	}

	dst, err := resolve(ctx, dstKey, store.KindList)
	if err != nil {
		return resp.Reply{}, err
	}
	src.List.Remove(e)
	dst.List.PushFront(val)
	commit(ctx, srcKey, src)
	commit(ctx, dstKey, dst)
	return resp.Bulk(val), nil
}

