// Package ipc implements the control socket: a unix-domain server that
// forwards requests to the manager, and the client used by the CLI.
package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/wm"
)

// ErrSocketInUse means another daemon answers on the socket path.
var ErrSocketInUse = errors.New("control socket in use")

const probeTimeout = 200 * time.Millisecond

// Handler executes commands. *wm.Manager implements it.
type Handler interface {
	Do(ctx context.Context, cmd wm.Command) (any, error)
}

// Server accepts control connections. Each connection carries one
// outstanding request at a time; requests from all connections are
// serialized by the handler.
type Server struct {
	socketPath string
	listener   net.Listener
	handler    Handler

	mu     sync.Mutex
	conns  map[net.Conn]bool // true while a request is in flight
	closed bool
	wg     sync.WaitGroup
}

// Listen binds the socket. A stale socket file is removed; a live one
// yields ErrSocketInUse.
func Listen(socketPath string, handler Handler) (*Server, error) {
	if _, err := os.Stat(socketPath); err == nil {
		conn, err := net.DialTimeout("unix", socketPath, probeTimeout)
		if err == nil {
			conn.Close()
			return nil, fmt.Errorf("%w: %s", ErrSocketInUse, socketPath)
		}
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket %s: %w", socketPath, err)
		}
		logging.Debug().Str("path", socketPath).Msg("removed stale socket")
	}

	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", socketPath, err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		ln.Close()
		return nil, fmt.Errorf("failed to chmod socket: %w", err)
	}

	return &Server{
		socketPath: socketPath,
		listener:   ln,
		handler:    handler,
		conns:      make(map[net.Conn]bool),
	}, nil
}

// Addr returns the socket path.
func (s *Server) Addr() string {
	return s.socketPath
}

// Serve accepts connections until ctx is done or Close is called.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.Close()
	}()

	logging.Info().Str("path", s.socketPath).Msg("control socket listening")
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isClosed() {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		if !s.track(conn) {
			conn.Close()
			return nil
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.serveConn(ctx, conn)
		}()
	}
}

// Close stops accepting, closes open connections, waits for their
// handlers and removes the socket file.
func (s *Server) Close() error {
	return s.Shutdown(0)
}

// Shutdown stops accepting and closes idle connections. Connections
// with a request in flight get up to grace to write their response
// before they are closed too.
func (s *Server) Shutdown(grace time.Duration) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	err := s.listener.Close()
	for c, busy := range s.conns {
		if !busy || grace <= 0 {
			c.Close()
		}
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	if grace > 0 {
		select {
		case <-done:
		case <-time.After(grace):
			logging.Warn().Dur("grace", grace).Msg("dropping unfinished control requests")
			s.mu.Lock()
			for c := range s.conns {
				c.Close()
			}
			s.mu.Unlock()
		}
	}
	<-done

	if rmErr := os.Remove(s.socketPath); rmErr != nil && !os.IsNotExist(rmErr) {
		logging.Warn().Err(rmErr).Str("path", s.socketPath).Msg("failed to remove socket")
	}
	return err
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) track(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[c] = false
	return true
}

// begin marks c busy. It reports false once shutdown has started.
func (s *Server) begin(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[c] = true
	return true
}

// end marks c idle again and reports whether the connection should keep
// reading.
func (s *Server) end(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c] = false
	return !s.closed
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	c.Close()
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	reader := bufio.NewReader(conn)
	for {
		env, err := models.ReadEnvelope(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) && !s.isClosed() {
				logging.Debug().Err(err).Msg("control connection closed")
				models.WriteEnvelope(conn, models.NewErrorResponse("", wm.KindInvalidArgument, err.Error()))
			}
			return
		}
		if env.Type != models.TypeRequest {
			models.WriteEnvelope(conn, models.NewErrorResponse("", wm.KindInvalidArgument, "expected request, got "+env.Type))
			continue
		}

		if !s.begin(conn) {
			return
		}
		resp := s.dispatch(ctx, env.Request)
		err = models.WriteEnvelope(conn, resp)
		if !s.end(conn) {
			return
		}
		if err != nil {
			logging.Debug().Err(err).Msg("failed to write response")
			return
		}
	}
}

// dispatch runs one request and always yields exactly one response.
func (s *Server) dispatch(ctx context.Context, req *models.Request) *models.MessageEnvelope {
	log := logging.Debug().Str("id", req.ID).Str("method", req.Method)

	if req.Method == MethodPing {
		log.Msg("request")
		return mustResponse(req.ID, map[string]interface{}{
			"pong":      true,
			"timestamp": time.Now().Unix(),
		})
	}

	cmd, err := CommandFromRequest(req)
	if err != nil {
		log.Err(err).Msg("request rejected")
		return models.NewErrorResponse(req.ID, wm.ErrorKind(err), err.Error())
	}

	payload, err := s.handler.Do(ctx, cmd)
	if err != nil {
		log.Err(err).Msg("request failed")
		return models.NewErrorResponse(req.ID, wm.ErrorKind(err), err.Error())
	}
	log.Msg("request")
	return mustResponse(req.ID, payload)
}

func mustResponse(id string, payload interface{}) *models.MessageEnvelope {
	env, err := models.NewResponse(id, payload)
	if err != nil {
		return models.NewErrorResponse(id, wm.KindInternal, err.Error())
	}
	return env
}
