// Package resp implements the wire codec: the five reply shapes and their
// serialization, and an incremental parser for the inline and multi-bulk
// request forms.
package resp

import (
	"strconv"
	"strings"
)

// Kind identifies which of the five reply shapes a Reply carries.
type Kind int

const (
	KindStatus Kind = iota
	KindError
	KindInteger
	KindBulk
	KindNullBulk
	KindMulti
)

// Reply is a wire-level response value. Exactly one of the fields below is
// meaningful, selected by Kind.
type Reply struct {
	Kind    Kind
	Status  string
	Err     string
	Integer int64
	// IntegerText carries arbitrary-precision integer replies (spec.md
	// §4.2 allows decimals wider than int64); if non-empty it is used
	// verbatim instead of Integer.
	IntegerText string
	Bulk        []byte
	Multi       []Reply
}

func Status(s string) Reply { return Reply{Kind: KindStatus, Status: s} }

// Err constructs an error reply. If msg has no uppercase error tag prefix
// (e.g. "WRONGTYPE ", "ERR ") one is not added here; callers that need the
// default "ERR " prefix should use ErrDefault.
func Err(msg string) Reply { return Reply{Kind: KindError, Err: msg} }

// ErrDefault prefixes msg with "ERR " unless msg already starts with an
// uppercase tag word followed by a space.
func ErrDefault(msg string) Reply {
	return Reply{Kind: KindError, Err: withDefaultTag(msg)}
}

func withDefaultTag(msg string) string {
	if hasTag(msg) {
		return msg
	}
	return "ERR " + msg
}

func hasTag(msg string) bool {
	sp := strings.IndexByte(msg, ' ')
	word := msg
	if sp >= 0 {
		word = msg[:sp]
	}
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return sp >= 0
}

func Int(n int64) Reply { return Reply{Kind: KindInteger, Integer: n} }

// IntText builds an arbitrary-precision integer reply from decimal text.
func IntText(s string) Reply { return Reply{Kind: KindInteger, IntegerText: s} }

func Bulk(b []byte) Reply { return Reply{Kind: KindBulk, Bulk: b} }

func BulkString(s string) Reply { return Reply{Kind: KindBulk, Bulk: []byte(s)} }

func NullBulk() Reply { return Reply{Kind: KindNullBulk} }

func Multi(items []Reply) Reply { return Reply{Kind: KindMulti, Multi: items} }

func NullMulti() Reply { return Reply{Kind: KindMulti, Multi: nil} }

// BulkStrings builds a multi-bulk reply of plain strings.
func BulkStrings(items []string) Reply {
	out := make([]Reply, len(items))
	for i, s := range items {
		out[i] = BulkString(s)
	}
	return Multi(out)
}

// Bool translates spec.md §4.2's boolean shorthand: true -> Status "OK",
// false -> Error "ERR".
func Bool(b bool) Reply {
	if b {
		return Status("OK")
	}
	return Err("ERR")
}

// Encode serializes r into its wire form.
func Encode(r Reply) []byte {
	var buf []byte
	buf = appendReply(buf, r)
	return buf
}

func appendReply(buf []byte, r Reply) []byte {
	switch r.Kind {
	case KindStatus:
		buf = append(buf, '+')
		buf = append(buf, r.Status...)
		buf = append(buf, '\r', '\n')
	case KindError:
		buf = append(buf, '-')
		buf = append(buf, r.Err...)
		buf = append(buf, '\r', '\n')
	case KindInteger:
		buf = append(buf, ':')
		if r.IntegerText != "" {
			buf = append(buf, r.IntegerText...)
		} else {
			buf = strconv.AppendInt(buf, r.Integer, 10)
		}
		buf = append(buf, '\r', '\n')
	case KindBulk:
		buf = append(buf, '$')
		buf = strconv.AppendInt(buf, int64(len(r.Bulk)), 10)
		buf = append(buf, '\r', '\n')
		buf = append(buf, r.Bulk...)
		buf = append(buf, '\r', '\n')
	case KindNullBulk:
		buf = append(buf, '$', '-', '1', '\r', '\n')
	case KindMulti:
		if r.Multi == nil {
			buf = append(buf, '*', '-', '1', '\r', '\n')
			return buf
		}
		buf = append(buf, '*')
		buf = strconv.AppendInt(buf, int64(len(r.Multi)), 10)
		buf = append(buf, '\r', '\n')
		for _, item := range r.Multi {
			buf = appendReply(buf, item)
		}
	}
	return buf
}
