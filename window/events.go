package window

import (
	"iter"

	"github.com/1broseidon/winkit/event"
)

// PollIterator drains a window's event queue without blocking.
type PollIterator struct {
	w *Window
}

// Next returns the next queued event, or false when the queue is empty.
func (it *PollIterator) Next() (event.Event, bool) {
	native := it.w.native
	if native == nil {
		return nil, false
	}
	return native.PollEvent()
}

// SizeHint returns the number of queued events as a lower bound. The upper
// bound is unknown because events keep arriving.
func (it *PollIterator) SizeHint() (lower, upper int, bounded bool) {
	native := it.w.native
	if native == nil {
		return 0, 0, true
	}
	return native.PendingEvents(), 0, false
}

// All yields queued events until the queue is empty.
func (it *PollIterator) All() iter.Seq[event.Event] {
	return func(yield func(event.Event) bool) {
		for {
			ev, ok := it.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}

// WaitIterator blocks for events. It never runs dry: the loop ends when the
// caller stops iterating.
type WaitIterator struct {
	w *Window
}

// Next blocks until an event is queued or a Proxy wakes the loop, in which
// case it returns event.Awakened. A wakeup carries no other information, so
// callers should re-check their own exit conditions. On a closed window Next
// returns event.Destroyed immediately.
func (it *WaitIterator) Next() event.Event {
	native := it.w.native
	if native == nil {
		return event.Destroyed{}
	}
	return native.WaitEvent()
}

// SizeHint returns the number of queued events; the sequence is unbounded.
func (it *WaitIterator) SizeHint() (lower, upper int, bounded bool) {
	native := it.w.native
	if native == nil {
		return 0, 0, false
	}
	return native.PendingEvents(), 0, false
}

// All yields events forever, blocking between them, until yield returns
// false.
func (it *WaitIterator) All() iter.Seq[event.Event] {
	return func(yield func(event.Event) bool) {
		for {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
