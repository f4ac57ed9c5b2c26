package bridge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/models"
)

const eventBufferSize = 1024

// ErrClosed is returned by calls on a closed connection.
var ErrClosed = errors.New("bridge connection closed")

// conn is a GridServer connection shared by concurrent callers. A single
// reader goroutine routes responses by request id and queues events.
type conn struct {
	netConn net.Conn
	timeout time.Duration

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan *models.Response
	err     error

	events    chan *models.Event
	done      chan struct{}
	closeOnce sync.Once
}

func dial(socketPath string, timeout time.Duration) (*conn, error) {
	nc, err := net.DialTimeout("unix", socketPath, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket %s: %w", socketPath, err)
	}
	c := &conn{
		netConn: nc,
		timeout: timeout,
		pending: make(map[string]chan *models.Response),
		events:  make(chan *models.Event, eventBufferSize),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *conn) readLoop() {
	reader := bufio.NewReader(c.netConn)
	for {
		env, err := models.ReadEnvelope(reader)
		if err != nil {
			c.fail(err)
			return
		}

		switch env.Type {
		case models.TypeResponse:
			c.mu.Lock()
			ch, ok := c.pending[env.Response.ID]
			delete(c.pending, env.Response.ID)
			c.mu.Unlock()
			if ok {
				ch <- env.Response
			} else {
				logging.Debug().Str("id", env.Response.ID).Msg("response for unknown request")
			}
		case models.TypeEvent:
			select {
			case c.events <- env.Event:
			default:
				logging.Warn().Str("event", env.Event.EventType).Msg("event buffer full, event dropped")
			}
		}
	}
}

func (c *conn) fail(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = fmt.Errorf("%w: %v", ErrClosed, err)
	}
	c.mu.Unlock()
	c.closeOnce.Do(func() { close(c.done) })
}

// call sends a request and waits for its response, the context deadline
// or the connection closing. Server-side failures become errors.
func (c *conn) call(ctx context.Context, method string, params map[string]interface{}) (*models.Response, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	id := uuid.New().String()
	ch := make(chan *models.Response, 1)

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return nil, err
	}
	c.pending[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	deadline, _ := ctx.Deadline()
	c.netConn.SetWriteDeadline(deadline)
	err := models.WriteEnvelope(c.netConn, models.NewRequest(id, method, params))
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", method, ctx.Err())
	case <-c.done:
		return nil, c.closedErr()
	case resp := <-ch:
		if resp.IsError() {
			return nil, fmt.Errorf("%s: server error: %s", method, resp.GetError())
		}
		return resp, nil
	}
}

func (c *conn) closedErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *conn) close() error {
	err := c.netConn.Close()
	c.fail(errors.New("closed by client"))
	return err
}
