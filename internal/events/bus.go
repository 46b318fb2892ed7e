// Package events carries typed in-process notifications between stores and
// their observers (cart badge, search indexer, kafka forwarder).
package events

import (
	"context"
	"sync"
)

type Handler[T any] func(ctx context.Context, ev T)

type subscription[T any] struct {
	id uint64
	fn Handler[T]
}

// Bus delivers every published value to all current subscribers,
// synchronously and in subscription order.
type Bus[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription[T]
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn and returns a func that removes it again.
func (b *Bus[T]) Subscribe(fn Handler[T]) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *Bus[T]) Publish(ctx context.Context, ev T) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := make([]subscription[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(ctx, ev)
	}
}

func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
