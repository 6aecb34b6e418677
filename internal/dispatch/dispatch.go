package dispatch

import (
	"fmt"

	"redikv/internal/command"
	"redikv/internal/resp"
	"redikv/internal/store"
)

// Dispatch implements spec.md §4.5 end to end for one request frame: name
// resolution, arity check, handler invocation under the keyspace's single
// command mutex, and failure-to-reply translation. It never panics on a
// well-formed frame; frame is assumed non-empty (the parser's contract).
func Dispatch(ks *store.Keyspace, dbIndex *int, info command.Info, crash func(), frame [][]byte) (reply resp.Reply, quit bool) {
	name := upperASCII(string(frame[0]))
	s, ok := table[name]
	if !ok {
		return resp.ErrDefault(fmt.Sprintf("unknown command '%s'", frame[0])), false
	}
	if !s.arityOK(len(frame)) {
		return resp.ErrDefault(fmt.Sprintf("wrong number of arguments for '%s'", lowerASCII(s.name))), false
	}

	ctx := &command.Context{KS: ks, DBIndex: dbIndex, Args: frame, Info: info, Crash: crash}

	ks.Lock()
	reply, err := s.handler(ctx)
	ks.Unlock()

	if err != nil {
		return resp.ErrDefault(err.Error()), false
	}
	return reply, ctx.Quit
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
