// Command redikv-cli is an interactive client, generalizing the teacher's
// client/main.go: same readline-driven REPL and request encoding, but with
// full recursive reply decoding in place of the teacher's stubbed '*' case
// (which left multi-bulk replies entirely unhandled).
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

const delimiter = "\r\n"

func check(err error) {
	if err == nil {
		return
	}
	fmt.Printf("Fatal Client Error: %v\n", err)
	os.Exit(1)
}

// client holds the connection and prompt for one interactive session.
type client struct {
	conn net.Conn
	rl   *readline.Instance
	r    *bufio.Reader
}

func newClient(addr string) *client {
	conn, err := net.Dial("tcp", addr)
	check(err)
	rl, err := readline.New("redikv " + addr + "> ")
	check(err)
	return &client{conn: conn, rl: rl, r: bufio.NewReader(conn)}
}

// encodeRequest turns a space-separated command line into a multi-bulk
// request frame, matching the teacher's mbrr helper.
func encodeRequest(line string) []byte {
	fields := strings.Fields(line)
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%d%s", len(fields), delimiter)
	for _, f := range fields {
		fmt.Fprintf(&sb, "$%d%s%s%s", len(f), delimiter, f, delimiter)
	}
	return []byte(sb.String())
}

// readLine reads one line up to and including \r\n and returns it without
// the trailing \r\n.
func (c *client) readLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// decodeReply recursively decodes one reply of any of the five shapes,
// the generalization the teacher's client left as a TODO for arrays.
func (c *client) decodeReply() (string, error) {
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	if len(line) == 0 {
		return "", fmt.Errorf("empty reply line")
	}
	kind, body := line[0], line[1:]

	switch kind {
	case '+':
		return fmt.Sprintf("(OK) %s", body), nil
	case '-':
		return fmt.Sprintf("(ERROR) %s", body), nil
	case ':':
		return fmt.Sprintf("(INTEGER) %s", body), nil
	case '$':
		n, err := strconv.Atoi(body)
		if err != nil {
			return "", fmt.Errorf("malformed bulk length %q: %w", body, err)
		}
		if n < 0 {
			return "(NIL)", nil
		}
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(c.r, buf); err != nil {
			return "", err
		}
		return fmt.Sprintf("(STRING) %s", buf[:n]), nil
	case '*':
		n, err := strconv.Atoi(body)
		if err != nil {
			return "", fmt.Errorf("malformed array length %q: %w", body, err)
		}
		if n < 0 {
			return "(NIL ARRAY)", nil
		}
		elems := make([]string, n)
		for i := 0; i < n; i++ {
			elems[i], err = c.decodeReply()
			if err != nil {
				return "", err
			}
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "(ARRAY of %d)", n)
		for i, e := range elems {
			fmt.Fprintf(&sb, "\n  %d) %s", i+1, e)
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("unrecognized reply kind %q", kind)
	}
}

func (c *client) processResponse() {
	reply, err := c.decodeReply()
	if err != nil {
		log.Printf("reply decode error: %v", err)
		return
	}
	fmt.Println(reply)
}

func main() {
	addr := "127.0.0.1:6379"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	c := newClient(addr)
	defer c.conn.Close()

	for {
		line, err := c.rl.Readline()
		if err != nil {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		_, err = c.conn.Write(encodeRequest(line))
		check(err)
		if strings.EqualFold(strings.Fields(line)[0], "QUIT") {
			c.processResponse()
			return
		}
		c.processResponse()
	}
}
