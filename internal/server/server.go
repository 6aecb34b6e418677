// Package server implements the connection driver: the piece spec.md §1
// calls an external I/O collaborator. It owns the TCP accept loop, and for
// each connection a resp.Parser plus an explicit per-connection database
// cursor (replacing the teacher's single ambient rs.sp field, which
// spec.md §9 flags as global per-request state a rewrite should thread
// through explicitly instead).
package server

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"redikv/internal/command"
	"redikv/internal/dispatch"
	"redikv/internal/resp"
	"redikv/internal/store"
)

// Config configures a Server's accept loop.
type Config struct {
	Addr        string
	NumDatabases int
	ServerName  string
}

// Server accepts TCP connections and dispatches commands against a shared
// keyspace, serializing every command through the keyspace's own mutex
// (spec.md §5); Server itself holds no per-command lock.
type Server struct {
	cfg Config
	ks  *store.Keyspace
	ln  net.Listener
	log *zap.Logger

	mu    sync.Mutex
	conns map[string]net.Conn

	startedAt time.Time
}

// New constructs a Server configured for cfg.Addr but neither binds nor
// accepts connections; call Bind and/or Serve for that.
func New(cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:       cfg,
		ks:        store.NewKeyspace(cfg.NumDatabases),
		log:       log,
		conns:     make(map[string]net.Conn),
		startedAt: time.Now(),
	}
}

// Bind opens the listening socket without yet accepting connections,
// letting a caller (or a test) read back the resolved Addr() before
// Serve's accept loop starts — useful when Config.Addr asks for an
// ephemeral port ("127.0.0.1:0").
func (s *Server) Bind() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Addr, err)
	}
	s.ln = ln
	return nil
}

// Addr returns the bound listener's address. Valid only after Bind.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Serve binds the listener if not already bound, then runs the accept
// loop until the listener is closed (by Shutdown or a fatal accept error).
func (s *Server) Serve() error {
	if s.ln == nil {
		if err := s.Bind(); err != nil {
			return err
		}
	}
	s.log.Info("listening", zap.String("addr", s.ln.Addr().String()))

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if ok := errors.As(err, &ne); ok && ne.Timeout() {
				s.log.Warn("temporary accept error", zap.Error(err))
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		connID := uuid.NewString()
		s.mu.Lock()
		s.conns[connID] = conn
		s.mu.Unlock()
		go s.handleConn(connID, conn)
	}
}

// Shutdown closes the listener and every open connection. Commands already
// dispatched run to completion (spec.md §5); no new commands are accepted.
func (s *Server) Shutdown() {
	if s.ln != nil {
		s.ln.Close()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		c.Close()
	}
}

func (s *Server) removeConn(connID string) {
	s.mu.Lock()
	delete(s.conns, connID)
	s.mu.Unlock()
}

func (s *Server) info() command.Info {
	return command.Info{
		ServerName: s.cfg.ServerName,
		OS:         fmt.Sprintf("%s %s %s", runtime.GOOS, runtime.Version(), runtime.GOARCH),
		Runtime:    "go " + runtime.Version(),
	}
}

func (s *Server) handleConn(connID string, conn net.Conn) {
	log := s.log.With(zap.String("conn", connID), zap.String("remote", conn.RemoteAddr().String()))
	log.Info("connection opened")
	defer func() {
		conn.Close()
		s.removeConn(connID)
		log.Info("connection closed")
	}()

	dbIndex := 0
	parser := resp.NewParser()
	buf := make([]byte, 64*1024)

	for {
		frame, ok, err := parser.Next()
		if err != nil {
			conn.Write(resp.Encode(resp.Err(resp.ProtocolErrorText)))
			log.Warn("protocol error, closing connection", zap.Error(err))
			return
		}
		if !ok {
			n, rerr := conn.Read(buf)
			if n > 0 {
				parser.Feed(buf[:n])
			}
			if rerr != nil {
				return
			}
			continue
		}
		if len(frame) == 0 {
			continue
		}

		reply, quit := dispatch.Dispatch(s.ks, &dbIndex, s.info(), s.crash(log), frame)
		if _, err := conn.Write(resp.Encode(reply)); err != nil {
			log.Warn("write error, closing connection", zap.Error(err))
			return
		}
		if quit {
			return
		}
	}
}

// crash returns the function DEBUG SEGFAULT invokes: a real, logged
// process termination, matching spec.md §4.4's "intentionally crashes the
// process" contract.
func (s *Server) crash(log *zap.Logger) func() {
	return func() {
		log.Fatal("DEBUG SEGFAULT received, terminating process")
	}
}
