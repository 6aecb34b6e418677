package resp

import (
	"bytes"

	"github.com/pkg/errors"
)

// ErrProtocol is wrapped by pkg/errors to carry a stack trace for the log;
// the text returned to the wire is ProtocolErrorText below, independent of
// whatever this error's Error() method renders.
var ErrProtocol = errors.New("protocol error")

// ProtocolErrorText is the reply text emitted before a connection is torn
// down for malformed framing (spec.md §7).
const ProtocolErrorText = "ERR Protocol error"

// Parser incrementally decodes request frames from an append-only byte
// stream. It never blocks: Feed appends bytes and Next reports whether a
// full frame is available yet. A Parser is safe to reuse across reads of
// any fragmentation, including a single read containing several pipelined
// frames.
type Parser struct {
	buf []byte
}

// NewParser returns an empty, ready-to-use Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Feed appends newly read bytes to the parser's internal buffer.
func (p *Parser) Feed(b []byte) {
	p.buf = append(p.buf, b...)
}

// Next attempts to decode one frame from the buffered bytes. It returns
// (frame, true, nil) on success, (nil, false, nil) if more bytes are
// needed, or (nil, false, err) on a terminal protocol error. On success the
// consumed prefix is dropped from the internal buffer; on error or "need
// more bytes" the buffer is left untouched so a later Feed can complete it.
// Ignorable input (a blank inline line, "*0", "*-1") is dropped and parsing
// continues with whatever follows it in the buffer.
func (p *Parser) Next() (frame [][]byte, ok bool, err error) {
	if len(p.buf) == 0 {
		return nil, false, nil
	}
	if p.buf[0] == '*' {
		return p.nextMultiBulk()
	}
	if p.buf[0] == '$' {
		// A bare '$' at the top level (outside an array) is malformed:
		// the inline fallback explicitly excludes lines starting with
		// '$' or '*' (spec.md §4.1).
		return nil, false, errors.Wrap(ErrProtocol, "unexpected '$' outside of multi-bulk request")
	}
	return p.nextInline()
}

func (p *Parser) nextInline() (frame [][]byte, ok bool, err error) {
	idx := bytes.IndexByte(p.buf, '\n')
	if idx < 0 {
		return nil, false, nil
	}
	line := p.buf[:idx]
	consumed := idx + 1
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	p.buf = p.buf[consumed:]
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		// blank inline line: not a frame, keep reading.
		return p.Next()
	}
	out := make([][]byte, len(fields))
	for i, f := range fields {
		cp := make([]byte, len(f))
		copy(cp, f)
		out[i] = cp
	}
	return out, true, nil
}

// nextMultiBulk parses "*<N>\r\n" followed by N "$<L>\r\n<L bytes>\r\n"
// arguments, without consuming anything from p.buf until the whole frame
// (or a definite error) is available.
func (p *Parser) nextMultiBulk() (frame [][]byte, ok bool, err error) {
	pos := 0
	n, next, complete, err := readDecimalLine(p.buf, pos+1)
	if err != nil {
		return nil, false, err
	}
	if !complete {
		return nil, false, nil
	}
	if n < 0 {
		// "*-1\r\n" null array: treat as an empty, ignorable frame.
		p.buf = p.buf[next:]
		return p.Next()
	}
	pos = next
	args := make([][]byte, 0, n)
	for i := int64(0); i < n; i++ {
		if pos >= len(p.buf) {
			return nil, false, nil
		}
		if p.buf[pos] != '$' {
			return nil, false, errors.Wrapf(ErrProtocol, "expected '$', got %q", p.buf[pos])
		}
		length, afterLen, complete, err := readDecimalLine(p.buf, pos+1)
		if err != nil {
			return nil, false, err
		}
		if !complete {
			return nil, false, nil
		}
		if length < 0 {
			return nil, false, errors.Wrap(ErrProtocol, "negative bulk length")
		}
		end := afterLen + int(length)
		if end+2 > len(p.buf) {
			return nil, false, nil
		}
		if p.buf[end] != '\r' || p.buf[end+1] != '\n' {
			return nil, false, errors.Wrap(ErrProtocol, "missing bulk string terminator")
		}
		arg := make([]byte, length)
		copy(arg, p.buf[afterLen:end])
		args = append(args, arg)
		pos = end + 2
	}
	if n == 0 {
		// "*0\r\n": a frame with zero arguments is not a valid request
		// (spec.md §4.1: a frame is a non-empty vector); drop it and
		// keep reading rather than surfacing a spurious empty command.
		p.buf = p.buf[pos:]
		return p.Next()
	}
	p.buf = p.buf[pos:]
	return args, true, nil
}

// readDecimalLine reads a "<possibly-signed-decimal>\r\n" starting at
// offset start in buf. It returns the parsed value, the offset just past
// the line, whether a full line was available, and a terminal error for
// malformed (non-decimal) content.
func readDecimalLine(buf []byte, start int) (value int64, next int, complete bool, err error) {
	rest := buf[start:]
	idx := bytes.IndexByte(rest, '\n')
	if idx < 0 {
		return 0, 0, false, nil
	}
	line := rest[:idx]
	if len(line) == 0 || line[len(line)-1] != '\r' {
		return 0, 0, false, errors.Wrap(ErrProtocol, "malformed length line: missing \\r")
	}
	line = line[:len(line)-1]
	neg := false
	i := 0
	if len(line) > 0 && (line[0] == '-' || line[0] == '+') {
		neg = line[0] == '-'
		i = 1
	}
	if i >= len(line) {
		return 0, 0, false, errors.Wrap(ErrProtocol, "malformed length line: no digits")
	}
	var n int64
	for ; i < len(line); i++ {
		c := line[i]
		if c < '0' || c > '9' {
			return 0, 0, false, errors.Wrapf(ErrProtocol, "malformed length line: %q", line)
		}
		n = n*10 + int64(c-'0')
	}
	if neg {
		n = -n
	}
	return n, start + idx + 1, true, nil
}
