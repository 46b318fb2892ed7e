// Package cart holds the shopper's in-memory cart. It is never persisted.
package cart

import (
	"context"
	"sync"

	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/events"
)

type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

type EventKind string

const (
	ItemAdded   EventKind = "cart_item_added"
	ItemRemoved EventKind = "cart_item_removed"
	Cleared     EventKind = "cart_cleared"
)

type Event struct {
	Kind      EventKind `json:"type"`
	ProductID int       `json:"product_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Count     int       `json:"count"`
}

type Store struct {
	mu    sync.RWMutex
	items []Item

	events *events.Bus[Event]
}

func NewStore(bus *events.Bus[Event]) *Store {
	return &Store{events: bus}
}

func (s *Store) Events() *events.Bus[Event] { return s.events }

// Add puts one unit of p into the cart. A product already in the cart only
// has its quantity raised; the stored copy of its other fields is kept.
func (s *Store) Add(ctx context.Context, p catalog.Product) Item {
	s.mu.Lock()
	var line Item
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity++
		line = s.items[i]
	} else {
		line = Item{Product: p, Quantity: 1}
		s.items = append(s.items, line)
	}
	count := s.count()
	s.mu.Unlock()

	s.events.Publish(ctx, Event{Kind: ItemAdded, ProductID: line.ID, Name: line.Name, Quantity: line.Quantity, Count: count})
	return line
}

// Remove drops the whole line for productID whatever its quantity.
func (s *Store) Remove(ctx context.Context, productID int) bool {
	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	line := s.items[i]
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	count := s.count()
	s.mu.Unlock()

	s.events.Publish(ctx, Event{Kind: ItemRemoved, ProductID: line.ID, Name: line.Name, Count: count})
	return true
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.events.Publish(ctx, Event{Kind: Cleared})
}

func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count()
}

func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return total(s.items)
}

func (s *Store) Empty() bool {
	return s.Count() == 0
}

func (s *Store) count() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) indexOf(productID int) int {
	for i, it := range s.items {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

func total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += ParsePrice(it.Price) * float64(it.Quantity)
	}
	return sum
}

// Total sums a snapshot of items.
func Total(items []Item) float64 { return total(items) }
