// Package debounce delays a changing value until it has been quiet for a
// fixed interval. Timing is expressed as bubbletea tick commands so the
// debouncer lives inside a model's single-threaded Update loop.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period used by the selectors.
const DefaultDelay = 500 * time.Millisecond

var lastID atomic.Int64

// SettledMsg is produced when a debounce timer elapses. It is only meaningful
// to the Debouncer that issued it; Settle filters out everything else.
type SettledMsg struct {
	ID  int64
	Tag int
}

// Debouncer holds the latest pending value of type T.
type Debouncer[T any] struct {
	id       int64
	delay    time.Duration
	tag      int
	pending  T
	hasValue bool
	disposed bool
}

// New creates a debouncer with the given quiet period. Zero means DefaultDelay.
func New[T any](delay time.Duration) Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return Debouncer[T]{
		id:    lastID.Add(1),
		delay: delay,
	}
}

// Delay returns the configured quiet period.
func (d Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Trigger records v as the pending value and restarts the timer. Every earlier
// timer becomes stale.
func (d *Debouncer[T]) Trigger(v T) tea.Cmd {
	if d.disposed {
		return nil
	}
	d.tag++
	d.pending = v
	d.hasValue = true
	id, tag := d.id, d.tag
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return SettledMsg{ID: id, Tag: tag}
	})
}

// Settle returns the pending value when msg is the latest timer of this
// debouncer. The pending value is consumed, so a quiet period emits once.
func (d *Debouncer[T]) Settle(msg SettledMsg) (T, bool) {
	var zero T
	if d.disposed || !d.hasValue || msg.ID != d.id || msg.Tag != d.tag {
		return zero, false
	}
	v := d.pending
	d.pending = zero
	d.hasValue = false
	return v, true
}

// Owns reports whether msg was issued by this debouncer, stale or not.
func (d Debouncer[T]) Owns(msg SettledMsg) bool {
	return msg.ID == d.id
}

// Pending reports whether a value is waiting for its quiet period.
func (d Debouncer[T]) Pending() bool {
	return d.hasValue && !d.disposed
}

// Cancel drops the pending value; the outstanding timer settles to nothing.
func (d *Debouncer[T]) Cancel() {
	var zero T
	d.tag++
	d.pending = zero
	d.hasValue = false
}

// Dispose tears the debouncer down. No value is emitted afterwards.
func (d *Debouncer[T]) Dispose() {
	d.Cancel()
	d.disposed = true
}
