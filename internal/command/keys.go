package command

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/gobwas/glob"

	"redikv/internal/resp"
	"redikv/internal/store"
)

func Del(ctx *Context) (resp.Reply, error) {
	removed := int64(0)
	for _, k := range ctx.Args[1:] {
		if ctx.DB().Delete(string(k)) {
			removed++
		}
	}
	return resp.Int(removed), nil
}

func Exists(ctx *Context) (resp.Reply, error) {
	if ctx.Exists(ctx.Key(1)) {
		return resp.Int(1), nil
	}
	return resp.Int(0), nil
}

// Keys matches every key against a glob pattern (*, ?, [...] wildcards,
// backslash-escaped literals) using gobwas/glob, the same matcher the
// teacher already depended on for this exact purpose.
func Keys(ctx *Context) (resp.Reply, error) {
	pattern := string(ctx.Args[1])
	g, err := glob.Compile(pattern)
	if err != nil {
		return resp.Reply{}, ErrSyntax
	}
	var out []string
	for _, k := range ctx.DB().Keys() {
		if g.Match(k) {
			out = append(out, k)
		}
	}
	return resp.BulkStrings(out), nil
}

func Rename(ctx *Context) (resp.Reply, error) {
	src, dst := ctx.Key(1), ctx.Key(2)
	if src == dst {
		return resp.Reply{}, ErrSyntax
	}
	v, ok := ctx.DB().Get(src)
	if !ok {
		return resp.Reply{}, errNoSuchKey
	}
	ctx.DB().Set(dst, v)
	ctx.DB().Delete(src)
	return resp.Status("OK"), nil
}

func RenameNX(ctx *Context) (resp.Reply, error) {
	src, dst := ctx.Key(1), ctx.Key(2)
	if src == dst {
		return resp.Reply{}, ErrSyntax
	}
	v, ok := ctx.DB().Get(src)
	if !ok {
		return resp.Reply{}, errNoSuchKey
	}
	if ctx.Exists(dst) {
		return resp.Int(0), nil
	}
	ctx.DB().Set(dst, v)
	ctx.DB().Delete(src)
	return resp.Int(1), nil
}

func RandomKey(ctx *Context) (resp.Reply, error) {
	keys := ctx.DB().Keys()
	if len(keys) == 0 {
		return resp.NullBulk(), nil
	}
	return resp.BulkString(keys[rand.Intn(len(keys))]), nil
}

func Type(ctx *Context) (resp.Reply, error) {
	v, ok := ctx.DB().Get(ctx.Key(1))
	if !ok {
		return resp.Status(store.KindNone.TypeName()), nil
	}
	return resp.Status(v.Kind.TypeName()), nil
}

func Dump(ctx *Context) (resp.Reply, error) {
	v, ok := ctx.DB().Get(ctx.Key(1))
	if !ok {
		return resp.NullBulk(), nil
	}
	blob, err := store.Dump(v)
	if err != nil {
		return resp.Reply{}, err
	}
	return resp.Bulk(blob), nil
}

// Restore only accepts a TTL of "0" (spec.md §6: any other TTL is
// not-implemented); it installs the decoded value unconditionally,
// overwriting whatever variant previously occupied the key.
func Restore(ctx *Context) (resp.Reply, error) {
	if string(ctx.Args[2]) != "0" {
		return resp.Reply{}, ErrNotImplemented
	}
	v, err := store.Restore(ctx.Args[3])
	if err != nil {
		return resp.Reply{}, ErrSyntax
	}
	ctx.DB().Set(ctx.Key(1), v)
	return resp.Status("OK"), nil
}

func NotImplemented(ctx *Context) (resp.Reply, error) {
	return resp.Reply{}, ErrNotImplemented
}

// Sort covers only the no-BY/no-GET/no-STORE case spec.md §4.4 calls
// "trivial SORT": a numeric sort when every element parses as a float,
// falling back to byte-lexicographic order otherwise. BY/GET/LIMIT/STORE
// are non-goals.
func Sort(ctx *Context) (resp.Reply, error) {
	if len(ctx.Args) > 2 {
		return resp.Reply{}, ErrNotImplemented
	}
	v, ok := ctx.DB().Get(ctx.Key(1))
	if !ok {
		return resp.BulkStrings(nil), nil
	}

	var elems [][]byte
	switch v.Kind {
	case store.KindList:
		elems = v.List.Values()
	case store.KindSet:
		for m := range v.Set {
			elems = append(elems, []byte(m))
		}
	default:
		return resp.Reply{}, ErrWrongType
	}

	numeric := make([]float64, len(elems))
	allNumeric := true
	for i, e := range elems {
		f, err := strconv.ParseFloat(string(e), 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[i] = f
	}

	sorted := make([][]byte, len(elems))
	copy(sorted, elems)
	if allNumeric {
		sort.Slice(sorted, func(i, j int) bool {
			fi, _ := strconv.ParseFloat(string(sorted[i]), 64)
			fj, _ := strconv.ParseFloat(string(sorted[j]), 64)
			return fi < fj
		})
	} else {
		sort.Slice(sorted, func(i, j int) bool {
			return string(sorted[i]) < string(sorted[j])
		})
	}
	out := make([]string, len(sorted))
	for i, e := range sorted {
		out[i] = string(e)
	}
	return resp.BulkStrings(out), nil
}

