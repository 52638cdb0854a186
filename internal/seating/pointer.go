package seating

import "sync"

// PointerBus carries "pointer released" for one staff session. Release can
// happen anywhere on the page, not just over a seat, so the grid listens
// here instead of on its own seats. Subscribers must unsubscribe when they
// go away.
type PointerBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewPointerBus() *PointerBus {
	return &PointerBus{subs: make(map[int]func())}
}

// Subscribe registers fn and returns the func that removes it. Calling the
// returned func more than once is a no-op.
func (b *PointerBus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Release notifies every subscriber. Handlers run outside the bus lock.
func (b *PointerBus) Release() {
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

func (b *PointerBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
