package observable

import (
	"slices"
	"sync"
)

// List is an ordered sequence that notifies subscribers whenever its
// contents are replaced. Subscribers receive no payload and read the
// current contents with Items, so a late notification never shows a
// stale snapshot.
type List[T any] struct {
	mu     sync.RWMutex
	items  []T
	subs   map[uint64]func()
	nextID uint64
}

// NewList creates a list holding a copy of items
func NewList[T any](items ...T) *List[T] {
	return &List[T]{
		items: slices.Clone(items),
		subs:  make(map[uint64]func()),
	}
}

// Items returns a copy of the current contents
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

// Len returns the number of items
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Set replaces the contents and notifies subscribers once
func (l *List[T]) Set(items []T) {
	l.SetIf(items, nil)
}

// SetIf replaces the contents only if cond reports true. cond runs while
// the list is locked and must not touch the list. A nil cond always
// passes. Subscribers are notified after the lock is released.
func (l *List[T]) SetIf(items []T, cond func() bool) bool {
	l.mu.Lock()
	if cond != nil && !cond() {
		l.mu.Unlock()
		return false
	}
	l.items = slices.Clone(items)
	subs := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return true
}

// Subscribe registers fn to be called after every replacement. The
// returned func removes the subscription.
func (l *List[T]) Subscribe(fn func()) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.subs == nil {
		l.subs = make(map[uint64]func())
	}
	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}
