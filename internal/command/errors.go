package command

import "github.com/pkg/errors"

// ErrWrongType is spec.md §4.3 step 3's type-discipline failure. Its text
// already carries the uppercase "WRONGTYPE" tag, so resp.ErrDefault will
// not prepend "ERR " to it.
var ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

// ErrNotImplemented is returned by every command spec.md names as an
// explicit non-goal.
var ErrNotImplemented = errors.New("not implemented")

// ErrNotInteger is the value-domain error for INCR-family commands whose
// current value fails to parse as a signed decimal integer.
var ErrNotInteger = errors.New("value is not an integer or out of range")

// ErrNotFloat mirrors ErrNotInteger for INCRBYFLOAT-family commands.
var ErrNotFloat = errors.New("value is not a valid float")

// ErrIndexOutOfRange backs LSET's documented error text.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrSyntax is a generic catch-all for malformed option arguments (e.g. an
// LINSERT direction that is neither BEFORE nor AFTER).
var ErrSyntax = errors.New("syntax error")

// errNoSuchKey backs RENAME/RENAMENX's requirement that the source key
// exist (spec.md §9 flags the source's RENAMENX as asserting this instead
// of erroring cleanly).
var errNoSuchKey = errors.New("no such key")

// errAuthNotSet is AUTH's fixed reply text, verbatim from spec.md §4.4.
var errAuthNotSet = errors.New("Client sent AUTH, but no password is set")
