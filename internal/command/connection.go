package command

import (
	"strconv"

	"redikv/internal/resp"
)

func Ping(ctx *Context) (resp.Reply, error) {
	if len(ctx.Args) == 2 {
		return resp.Bulk(ctx.Args[1]), nil
	}
	return resp.Status("PONG"), nil
}

func Echo(ctx *Context) (resp.Reply, error) {
	return resp.Bulk(ctx.Args[1]), nil
}

func Select(ctx *Context) (resp.Reply, error) {
	n, err := strconv.Atoi(string(ctx.Args[1]))
	if err != nil || n < 0 || n >= ctx.KS.NumDatabases() {
		return resp.Reply{}, ErrSyntax
	}
	*ctx.DBIndex = n
	return resp.Status("OK"), nil
}

// Auth always rejects, since this server never has a password configured
// (spec.md §4.4's connection/server contract).
func Auth(ctx *Context) (resp.Reply, error) {
	return resp.Reply{}, errAuthNotSet
}

func Quit(ctx *Context) (resp.Reply, error) {
	ctx.Quit = true
	return resp.Status("OK"), nil
}
