package typeahead

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Debouncer delivers the last input it has seen once no new input has arrived for the quiet period.
type Debouncer struct {
	clock clock.WithDelayedExecution
	quiet time.Duration
	fire  func(string)

	mu      sync.Mutex
	timer   clock.Timer
	seq     uint64
	pending *string
	stopped bool
}

// NewDebouncer returns a debouncer delivering to fire. fire is called with the debouncer's lock held, so
// deliveries happen in input order and fire must not call back into the debouncer.
func NewDebouncer(clk clock.WithDelayedExecution, quiet time.Duration, fire func(string)) *Debouncer {
	return &Debouncer{
		clock: clk,
		quiet: quiet,
		fire:  fire,
	}
}

// Input records text and restarts the quiet period.
func (d *Debouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = &text
	d.timer = d.clock.AfterFunc(d.quiet, func() { d.expire(seq) })
}

func (d *Debouncer) expire(seq uint64) {
	d.mu.Lock()
	// Stop cannot recall a timer whose function has already been started.
	if d.stopped || seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	text := *d.pending
	d.pending = nil
	d.timer = nil
	d.fire(text)
	d.mu.Unlock()
}

// Flush delivers the pending input right away, if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || d.pending == nil {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	text := *d.pending
	d.pending = nil
	d.fire(text)
	d.mu.Unlock()
}

// Stop discards any pending input. The debouncer ignores input afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
