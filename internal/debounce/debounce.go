// Package debounce delays propagation of a rapidly-changing value until the
// input has settled for a fixed interval.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the most recent value passed to Set on C once no new
// value has arrived for the configured delay. Intermediate values are never
// delivered. A zero delay still defers delivery to the timer goroutine, so a
// settled value never arrives synchronously inside Set.
//
// Delivery is latest-wins: if the consumer has not drained C when the next
// value settles, the undelivered value is replaced, not queued behind.
type Debouncer[T any] struct {
	delay time.Duration
	out   chan T

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New returns a Debouncer with the given settle delay.
func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// Set feeds a new input value, cancelling any pending delivery and
// restarting the settle timer. Calls after Stop are ignored.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.deliver(v) })
}

// C returns the channel on which settled values are delivered.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Stop cancels any pending delivery. Nothing is delivered after Stop returns.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) deliver(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	// Drop an undelivered stale value so the buffered send below cannot block.
	select {
	case <-d.out:
	default:
	}
	d.out <- v
}
