// Package command implements one handler per supported command, grouped by
// the value family they operate on, plus the WithRead/WithWrite combinators
// that replace the decorator-based value injection described in spec.md
// §9 with a single pair of generic-shaped helpers.
package command

import (
	"redikv/internal/resp"
	"redikv/internal/store"
)

// Info carries the static identity strings the INFO command reports.
type Info struct {
	ServerName string
	OS         string
	Runtime    string
}

// Context is the explicit, per-dispatch state a handler needs: the
// keyspace, the calling connection's database cursor, and the raw
// argument vector (Args[0] is the command name, Args[1:] its parameters).
// Nothing here is ambient; spec.md §9 calls out the source's global
// "current client" cursor as a defect this rewrite fixes by threading the
// cursor explicitly instead.
type Context struct {
	KS      *store.Keyspace
	DBIndex *int
	Args    [][]byte
	Info    Info

	// Quit is set to true by the QUIT handler; the connection driver
	// closes the connection after flushing the reply.
	Quit bool

	// Crash is invoked by DEBUG SEGFAULT. Production wiring sets this to
	// something that terminates the process; nil is a safe no-op for
	// tests that exercise the command table without wanting to die.
	Crash func()
}

// DB returns the database named by the connection's current cursor.
func (c *Context) DB() *store.Database { return c.KS.DB(*c.DBIndex) }

// Key returns Args[i] as a string, the usual key/field/member conversion.
func (c *Context) Key(i int) string { return string(c.Args[i]) }

// Handler is one fully resolved command implementation.
type Handler func(ctx *Context) (resp.Reply, error)

// ValueHandler operates on the single value addressed by a command's key
// argument, already resolved (or synthesized) to the expected Kind.
type ValueHandler func(ctx *Context, key string, v *store.Value) (resp.Reply, error)

// WithRead resolves the value under Args[1] without ever installing
// anything back into the database: absent keys are handed an empty
// synthesized value (the read-path half of spec.md §4.3's discipline),
// and the handler's own mutations, if any, are discarded. Use this for
// every command that cannot observably change the keyspace.
func WithRead(kind store.Kind, h ValueHandler) Handler {
	return func(ctx *Context) (resp.Reply, error) {
		key := ctx.Key(1)
		v, err := resolve(ctx, key, kind)
		if err != nil {
			return resp.Reply{}, err
		}
		return h(ctx, key, v)
	}
}

// WithWrite implements spec.md §4.5 steps 3-5 for a single-key command: it
// clones the existing value (or synthesizes an empty one), invokes h, and
// only on success reinstalls the result and applies empty-pruning. A
// handler error leaves the keyspace exactly as it was, giving the
// all-or-nothing atomicity spec.md §5 and §9 require without needing undo
// logs, since the mutation always happens on a private clone.
func WithWrite(kind store.Kind, h ValueHandler) Handler {
	return func(ctx *Context) (resp.Reply, error) {
		key := ctx.Key(1)
		v, err := resolve(ctx, key, kind)
		if err != nil {
			return resp.Reply{}, err
		}
		reply, err := h(ctx, key, v)
		if err != nil {
			return resp.Reply{}, err
		}
		commit(ctx, key, v)
		return reply, nil
	}
}

// resolve implements spec.md §4.3 steps 1-3: absent -> fresh empty value of
// kind; present and matching -> a private clone; present and mismatched ->
// WRONGTYPE.
func resolve(ctx *Context, key string, kind store.Kind) (*store.Value, error) {
	existing, ok := ctx.DB().Get(key)
	if !ok {
		return store.NewEmpty(kind), nil
	}
	if existing.Kind != kind {
		return nil, ErrWrongType
	}
	return existing.Clone(), nil
}

// commit reinstalls v under key, applying the no-empty-container
// invariant (spec.md §3).
func commit(ctx *Context, key string, v *store.Value) {
	if v.IsEmpty() {
		ctx.DB().Delete(key)
		return
	}
	ctx.DB().Set(key, v)
}

// Exists reports whether key is present in the active database, without
// going through the type-discipline resolve path. Handlers for the
// *-if-(not-)exists family (SETNX, LPUSHX, RPUSHX, MSETNX...) need this
// raw existence check before they decide whether to act at all.
func (c *Context) Exists(key string) bool {
	_, ok := c.DB().Get(key)
	return ok
}
