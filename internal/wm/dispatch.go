package wm

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/types"
)

const (
	dispatchQueueSize = 1024
	grabTimeout       = 5 * time.Second
)

type osOp int

const (
	opSetGeometry osOp = iota
	opRaise
	opFocus
	opClose
	opGrabHotkeys
)

func (o osOp) String() string {
	switch o {
	case opSetGeometry:
		return "setGeometry"
	case opRaise:
		return "raise"
	case opFocus:
		return "focus"
	case opClose:
		return "close"
	case opGrabHotkeys:
		return "grabHotkeys"
	default:
		return "unknown"
	}
}

type osCommand struct {
	op     osOp
	id     uint32
	rect   types.Rect
	combos []string
}

// dispatcher issues outbound commands in order on its own goroutine, so the
// manager loop never waits on the binding. Each command gets the current
// command timeout; failures are logged and never retried.
type dispatcher struct {
	binding Binding
	timeout *atomic.Int64

	cmds      chan osCommand
	done      chan struct{}
	closeOnce sync.Once
}

func newDispatcher(b Binding, timeout *atomic.Int64) *dispatcher {
	return &dispatcher{
		binding: b,
		timeout: timeout,
		cmds:    make(chan osCommand, dispatchQueueSize),
		done:    make(chan struct{}),
	}
}

func (d *dispatcher) run() {
	defer close(d.done)
	for c := range d.cmds {
		d.apply(c)
	}
}

// send queues c without blocking. A full queue drops the command.
func (d *dispatcher) send(c osCommand) {
	select {
	case d.cmds <- c:
	default:
		logging.Warn().Str("op", c.op.String()).Uint32("windowId", c.id).Msg("dispatch queue full, command dropped")
	}
}

func (d *dispatcher) apply(c osCommand) {
	timeout := time.Duration(d.timeout.Load())
	if c.op == opGrabHotkeys {
		timeout = grabTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var err error
	switch c.op {
	case opSetGeometry:
		err = d.binding.SetGeometry(ctx, c.id, c.rect)
	case opRaise:
		err = d.binding.Raise(ctx, c.id)
	case opFocus:
		err = d.binding.Focus(ctx, c.id)
	case opClose:
		err = d.binding.Close(ctx, c.id)
	case opGrabHotkeys:
		err = d.binding.GrabHotkeys(ctx, c.combos)
	}
	if err == nil {
		return
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = ErrCommandTimeout
	}
	logging.Warn().Err(err).Str("op", c.op.String()).Uint32("windowId", c.id).Msg("command failed")
}

// flush stops accepting commands and waits for queued ones to finish, up
// to timeout.
func (d *dispatcher) flush(timeout time.Duration) {
	d.closeOnce.Do(func() { close(d.cmds) })
	select {
	case <-d.done:
	case <-time.After(timeout):
		logging.Warn().Dur("timeout", timeout).Msg("pending commands abandoned")
	}
}
