package idle

import "sync"

// EventKind names a user interaction that counts as activity.
type EventKind string

const (
	PointerDown EventKind = "pointerdown"
	PointerMove EventKind = "pointermove"
	KeyPress    EventKind = "keypress"
	Scroll      EventKind = "scroll"
	TouchStart  EventKind = "touchstart"
	Click       EventKind = "click"
)

// ActivityEvents lists every kind the monitor treats as activity.
var ActivityEvents = []EventKind{PointerDown, PointerMove, KeyPress, Scroll, TouchStart, Click}

// Source delivers activity events to subscribers. The returned func removes
// the subscription and is safe to call more than once.
type Source interface {
	Subscribe(fn func(EventKind)) (unsubscribe func())
}

// Bus is an in-process Source. The UI publishes into it.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(EventKind)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(EventKind))}
}

func (b *Bus) Subscribe(fn func(EventKind)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish calls every subscriber outside the bus lock, so a subscriber may
// unsubscribe from within its callback.
func (b *Bus) Publish(kind EventKind) {
	b.mu.Lock()
	fns := make([]func(EventKind), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(kind)
	}
}

// Subscribers reports the number of live subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
