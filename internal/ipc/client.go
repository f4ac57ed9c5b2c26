package ipc

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/wm"
)

const DefaultTimeout = 10 * time.Second

// RemoteError is an error reported by the daemon.
type RemoteError struct {
	Kind    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Kind == "" {
		return e.Message
	}
	return e.Kind + ": " + e.Message
}

// Client talks to the daemon's control socket.
type Client struct {
	socketPath string
	timeout    time.Duration
	conn       net.Conn
	reader     *bufio.Reader
}

// NewClient creates a client. The connection is opened on first use.
func NewClient(socketPath string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{socketPath: socketPath, timeout: timeout}
}

// Connect establishes the Unix domain socket connection
func (c *Client) Connect() error {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Call sends a request and waits for its response. Daemon-side failures
// are returned as *RemoteError.
func (c *Client) Call(ctx context.Context, method string, params map[string]interface{}) (*models.Response, error) {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	id := uuid.New().String()
	if err := models.WriteEnvelope(c.conn, models.NewRequest(id, method, params)); err != nil {
		return nil, err
	}

	respChan := make(chan *models.MessageEnvelope, 1)
	errChan := make(chan error, 1)
	go func() {
		env, err := models.ReadEnvelope(c.reader)
		if err != nil {
			errChan <- fmt.Errorf("failed to read response: %w", err)
			return
		}
		respChan <- env
	}()

	var env *models.MessageEnvelope
	select {
	case <-ctx.Done():
		c.Close()
		return nil, fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	case err := <-errChan:
		c.Close()
		return nil, err
	case env = <-respChan:
	}

	if env.Type != models.TypeResponse {
		return nil, fmt.Errorf("expected response, got %s", env.Type)
	}
	resp := env.Response
	if resp.ID != id && resp.ID != "" {
		return nil, fmt.Errorf("response id %s does not match request %s", resp.ID, id)
	}
	if resp.IsError() {
		return nil, &RemoteError{Kind: resp.Error.Kind, Message: resp.Error.Message}
	}
	return resp, nil
}

// Ping checks that the daemon answers.
func (c *Client) Ping(ctx context.Context) (map[string]interface{}, error) {
	resp, err := c.Call(ctx, MethodPing, nil)
	if err != nil {
		return nil, err
	}
	return resp.ResultMap()
}

// Status fetches the daemon's model summary.
func (c *Client) Status(ctx context.Context) (*wm.Status, error) {
	resp, err := c.Call(ctx, string(wm.CmdStatus), nil)
	if err != nil {
		return nil, err
	}
	var st wm.Status
	if err := resp.Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}
