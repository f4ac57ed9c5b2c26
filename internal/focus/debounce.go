package focus

import (
	"sync"
	"time"

	"github.com/yourusername/gridwm/internal/types"
)

// Debouncer coalesces bursts of pointer positions. fire runs with the last
// position once no new one has arrived for delay.
type Debouncer struct {
	delay time.Duration
	fire  func(types.Point)

	mu      sync.Mutex
	timer   *time.Timer
	last    types.Point
	stopped bool
}

// NewDebouncer creates a debouncer. A zero delay fires synchronously.
func NewDebouncer(delay time.Duration, fire func(types.Point)) *Debouncer {
	return &Debouncer{delay: delay, fire: fire}
}

// Push records a pointer position and restarts the quiet period.
func (d *Debouncer) Push(p types.Point) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		d.fire(p)
		return
	}

	d.last = p
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.flush)
	} else {
		d.timer.Reset(d.delay)
	}
	d.mu.Unlock()
}

// SetDelay changes the quiet period for subsequent pushes.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}

// Stop cancels any pending fire. Later pushes are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	p := d.last
	d.mu.Unlock()
	d.fire(p)
}
