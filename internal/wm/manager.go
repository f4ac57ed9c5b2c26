// Package wm is the manager core: a single loop that owns the window model
// and serializes OS observations, hotkeys and control requests into model
// mutations and outbound geometry commands.
package wm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/filter"
	"github.com/yourusername/gridwm/internal/focus"
	"github.com/yourusername/gridwm/internal/hotkeys"
	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/types"
)

const (
	defaultQueueSize    = 256
	defaultPollInterval = 50 * time.Millisecond
	flushTimeout        = 2 * time.Second
	ratioStep           = layout.DefaultResizeAmount
)

// Options configures a Manager.
type Options struct {
	Binding Binding
	Config  *config.Config

	// Loader re-reads configuration on reload. Nil disables reload.
	Loader func() (*config.Config, error)

	// State remembers per-workspace layouts across restarts. Nil disables it.
	State     *state.RuntimeState
	StatePath string

	QueueSize    int
	PollInterval time.Duration

	// Exec runs a shell command line. Defaults to sh -c.
	Exec func(command string) error
}

type reply struct {
	payload any
	err     error
}

type request struct {
	cmd   Command
	reply chan reply
}

// Manager owns the model. All fields below the queue are touched only by
// the loop goroutine.
type Manager struct {
	binding      Binding
	loader       func() (*config.Config, error)
	execFn       func(string) error
	pollInterval time.Duration

	queue    chan Event
	quit     chan struct{} // closed when the loop exits
	done     chan struct{} // closed once shutdown completes
	started  atomic.Bool
	stopOnce sync.Once

	commandTimeout atomic.Int64
	followsMouse   atomic.Bool

	model     *model.Model
	cfg       *config.Config
	table     *hotkeys.Table
	policy    *filter.Policy
	engine    layout.Engine
	store     *state.RuntimeState
	statePath string
	prevKind  map[string]types.LayoutKind // workspaces in fullscreen -> kind to restore
	stopping  bool

	debouncer *focus.Debouncer
	out       *dispatcher
}

// New creates a manager. cfg must already be validated.
func New(opts Options) (*Manager, error) {
	if opts.Binding == nil {
		return nil, errors.New("no window-system binding")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	table, err := hotkeys.NewTable(cfg.Hotkeys.Bindings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	m := &Manager{
		binding:      opts.Binding,
		loader:       opts.Loader,
		execFn:       opts.Exec,
		pollInterval: opts.PollInterval,
		queue:        make(chan Event, opts.QueueSize),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
		model:        model.New(),
		store:        opts.State,
		statePath:    opts.StatePath,
		prevKind:     make(map[string]types.LayoutKind),
	}
	if opts.QueueSize <= 0 {
		m.queue = make(chan Event, defaultQueueSize)
	}
	if m.pollInterval <= 0 {
		m.pollInterval = defaultPollInterval
	}
	if m.execFn == nil {
		m.execFn = shellExec
	}
	m.applyConfig(cfg, table)
	m.debouncer = focus.NewDebouncer(cfg.Focus.MouseDelay(), func(p types.Point) {
		m.emit(Event{Kind: EventPointerMoved, Point: p})
	})
	m.out = newDispatcher(m.binding, &m.commandTimeout)
	return m, nil
}

func (m *Manager) applyConfig(cfg *config.Config, table *hotkeys.Table) {
	m.cfg = cfg
	m.table = table
	m.policy = filter.New(cfg)
	m.engine = layout.Engine{Gap: cfg.General.Gap + 2*cfg.General.BorderWidth}
	m.commandTimeout.Store(int64(cfg.General.CommandTimeout()))
	m.followsMouse.Store(cfg.Focus.FollowsMouse)
	if m.debouncer != nil {
		m.debouncer.SetDelay(cfg.Focus.MouseDelay())
	}
}

// Run bootstraps the model from the binding, starts the producers and
// processes events until ctx is done or a stop command arrives. It fails
// only when the binding cannot be initialized.
func (m *Manager) Run(ctx context.Context) error {
	if !m.started.CompareAndSwap(false, true) {
		return errors.New("manager already running")
	}
	defer m.finish()

	go m.out.run()

	if err := m.bootstrap(ctx); err != nil {
		m.out.flush(flushTimeout)
		return err
	}

	producers, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := m.binding.Observe(producers, m.emit); err != nil && producers.Err() == nil {
			logging.Error().Err(err).Msg("observer stopped")
		}
	}()
	go func() {
		defer wg.Done()
		m.pollPointer(producers)
	}()

	logging.Info().Int("windows", len(m.model.Windows())).Msg("manager running")

	for !m.stopping {
		select {
		case <-ctx.Done():
			m.stopping = true
		case ev := <-m.queue:
			m.handle(ctx, ev)
		}
	}

	close(m.quit)
	cancel()
	m.debouncer.Stop()
	wg.Wait()
	m.out.flush(flushTimeout)
	m.saveState()
	logging.Info().Msg("manager stopped")
	return nil
}

// finish unblocks every pending and future Do call.
func (m *Manager) finish() {
	m.stopOnce.Do(func() {
		close(m.done)
		for {
			select {
			case ev := <-m.queue:
				if ev.req != nil {
					ev.req.reply <- reply{err: ErrStopped}
				}
			default:
				return
			}
		}
	})
}

// Done is closed once the manager has stopped.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Do submits a command and waits for its reply.
func (m *Manager) Do(ctx context.Context, cmd Command) (any, error) {
	req := &request{cmd: cmd, reply: make(chan reply, 1)}

	select {
	case m.queue <- Event{Kind: eventControl, req: req}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.done:
		return nil, ErrStopped
	}

	select {
	case r := <-req.reply:
		return r.payload, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.done:
		select {
		case r := <-req.reply:
			return r.payload, r.err
		default:
			return nil, ErrStopped
		}
	}
}

// emit is handed to producers. It blocks while the queue is full.
func (m *Manager) emit(ev Event) {
	select {
	case m.queue <- ev:
	case <-m.quit:
	}
}

func (m *Manager) handle(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventWindowAppeared:
		m.windowAppeared(ev.Window)
	case EventWindowDisappeared:
		m.windowDisappeared(ev.Window.ID)
	case EventWindowMoved:
		// Observations are authoritative and never trigger a relayout.
		m.model.SetGeometry(ev.Window.ID, ev.Window.Frame)
	case EventWindowFocused:
		m.windowFocused(ev.Window.ID)
	case EventDisplaysChanged:
		m.displaysChanged(ctx, ev.Displays)
	case EventHotkeyTriggered:
		m.hotkey(ev.Combo)
	case EventPointerMoved:
		m.pointerMoved(ev.Point)
	case eventControl:
		payload, err := m.execute(ev.req.cmd)
		if err != nil {
			logging.Debug().Err(err).Str("command", string(ev.req.cmd.Kind)).Msg("command failed")
		}
		ev.req.reply <- reply{payload: payload, err: err}
	}
}

func (m *Manager) hotkey(combo string) {
	action, ok := m.table.Lookup(combo)
	if !ok {
		logging.Debug().Str("combo", combo).Msg("unbound hotkey")
		return
	}
	cmd := CommandForAction(action)
	if _, err := m.execute(cmd); err != nil {
		logging.Warn().Err(err).Str("combo", combo).Str("action", action.String()).Msg("hotkey failed")
	}
}

func (m *Manager) pollPointer(ctx context.Context) {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	var last types.Point
	seen := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !m.followsMouse.Load() {
			continue
		}

		p, err := m.binding.QueryPointerLocation(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logging.Debug().Err(err).Msg("pointer query failed")
			}
			continue
		}
		if seen && p == last {
			continue
		}
		last, seen = p, true
		m.debouncer.Push(p)
	}
}

func shellExec(command string) error {
	cmd := exec.Command("sh", "-c", command)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
