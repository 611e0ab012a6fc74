package tetris

import "sync"

// EventType tags a lifecycle event.
type EventType uint8

const (
	// EventScore is emitted once per cleared row.
	EventScore EventType = iota + 1
	// EventStop is emitted once when the loop observes game over.
	EventStop
)

func (t EventType) String() string {
	switch t {
	case EventScore:
		return "score"
	case EventStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Event is the record delivered to listeners.
type Event struct {
	Type         EventType
	Score        int
	BoardID      string
	Win          bool
	ForceStopped bool
}

// Listener receives lifecycle events.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

type subscription struct {
	id       uint64
	listener Listener
}

// Dispatcher fans events out to subscribed listeners in subscription order.
type Dispatcher struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

// Subscribe registers l and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (d *Dispatcher) Subscribe(l Listener) (unsubscribe func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, listener: l})
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of subscribed listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Emit delivers e to a snapshot of the current listeners, so listeners may
// unsubscribe themselves while handling it.
func (d *Dispatcher) Emit(e Event) {
	d.mu.Lock()
	snapshot := make([]subscription, len(d.subs))
	copy(snapshot, d.subs)
	d.mu.Unlock()

	for _, s := range snapshot {
		s.listener.HandleEvent(e)
	}
}
