package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"redikv/internal/resp"
)

func DBSize(ctx *Context) (resp.Reply, error) {
	return resp.Int(int64(ctx.DB().Len())), nil
}

func FlushDB(ctx *Context) (resp.Reply, error) {
	ctx.KS.FlushDB(*ctx.DBIndex)
	return resp.Status("OK"), nil
}

func FlushAll(ctx *Context) (resp.Reply, error) {
	ctx.KS.FlushAll()
	return resp.Status("OK"), nil
}

// Info renders the fixed set of key:value lines spec.md §4.4 requires,
// plus one dbN:keys=M line per nonempty database.
func Info(ctx *Context) (resp.Reply, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "server:%s\r\n", ctx.Info.ServerName)
	fmt.Fprintf(&b, "os:%s\r\n", ctx.Info.OS)
	fmt.Fprintf(&b, "runtime:%s\r\n", ctx.Info.Runtime)
	for i := 0; i < ctx.KS.NumDatabases(); i++ {
		n := ctx.KS.DB(i).Len()
		if n > 0 {
			fmt.Fprintf(&b, "db%d:keys=%d\r\n", i, n)
		}
	}
	return resp.BulkString(b.String()), nil
}

// Time returns seconds since epoch and the microsecond remainder, each as
// decimal text, matching the two-element multi-bulk spec.md §4.4 names.
func Time(ctx *Context) (resp.Reply, error) {
	now := time.Now()
	sec := now.Unix()
	micro := now.Nanosecond() / 1000
	return resp.Multi([]resp.Reply{
		resp.BulkString(strconv.FormatInt(sec, 10)),
		resp.BulkString(strconv.Itoa(micro)),
	}), nil
}

// Debug implements the two DEBUG forms spec.md §4.4 names: SEGFAULT
// intentionally crashes the process, anything else is a no-op
// compatibility stub.
func Debug(ctx *Context) (resp.Reply, error) {
	sub := strings.ToUpper(string(ctx.Args[1]))
	if sub == "SEGFAULT" {
		if ctx.Crash != nil {
			ctx.Crash()
		}
		return resp.Status("OK"), nil
	}
	return resp.Status("OK"), nil
}

// Config is a compatibility stub: GET replies with an empty multi-bulk,
// SET always replies OK. Neither actually reads or writes configuration,
// matching the original source's own CONFIG kludge (see DESIGN.md).
func Config(ctx *Context) (resp.Reply, error) {
	if len(ctx.Args) < 2 {
		return resp.Reply{}, ErrSyntax
	}
	switch strings.ToUpper(string(ctx.Args[1])) {
	case "GET":
		return resp.Multi(nil), nil
	case "SET":
		return resp.Status("OK"), nil
	default:
		return resp.Reply{}, ErrSyntax
	}
}
