// Package catalog owns the product collection and mirrors it to storage
// after every mutation.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Skotchmaster/vivero/internal/events"
	"github.com/Skotchmaster/vivero/internal/storage"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

type ChangeKind string

const (
	ProductCreated ChangeKind = "product_created"
	ProductUpdated ChangeKind = "product_updated"
	ProductDeleted ChangeKind = "product_deleted"
)

type Change struct {
	Kind    ChangeKind `json:"type"`
	Product Product    `json:"product"`
}

// Store is the authoritative product collection. A failed write-through is
// returned to the caller but the in-memory mutation is kept.
type Store struct {
	mu       sync.RWMutex
	products []Product

	storage storage.Storage
	changes *events.Bus[Change]
}

// NewStore loads the persisted catalog once. An absent or corrupt value
// falls back to the built-in seed, which is not written until the first
// mutation.
func NewStore(ctx context.Context, s storage.Storage, changes *events.Bus[Change]) (*Store, error) {
	l := logging.FromContext(ctx).With("component", "catalog")

	st := &Store{storage: s, changes: changes}

	var loaded []Product
	seeded := true
	found, err := storage.LoadJSON(ctx, s, storage.KeyProducts, &loaded)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		l.Warn("catalog_load_corrupt", "key", storage.KeyProducts, "error", err)
		st.products = Seed()
	case err != nil:
		return nil, fmt.Errorf("load catalog: %w", err)
	case !found || loaded == nil:
		st.products = Seed()
	default:
		st.products = loaded
		seeded = false
	}

	l.Debug("catalog_loaded", "products", len(st.products), "seeded", seeded)
	return st, nil
}

func (s *Store) Changes() *events.Bus[Change] { return s.changes }

// All returns a copy of every product in insertion order.
func (s *Store) All() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByCategory returns the products of category, or every product for "all".
func (s *Store) ByCategory(category string) []Product {
	if category == All || category == "" {
		return s.All()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if string(p.Category) == category {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) ByID(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (s *Store) Add(ctx context.Context, np NewProduct) (Product, error) {
	s.mu.Lock()
	p := np.withID(s.nextID())
	s.products = append(s.products, p)
	err := s.persist(ctx)
	s.mu.Unlock()

	s.changes.Publish(ctx, Change{Kind: ProductCreated, Product: p})
	return p, err
}

// Update merges patch onto the product with id. It reports whether the id
// matched; a miss is not an error.
func (s *Store) Update(ctx context.Context, id int, patch Patch) (Product, bool, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return Product{}, false, nil
	}
	patch.apply(&s.products[idx])
	p := s.products[idx]
	err := s.persist(ctx)
	s.mu.Unlock()

	s.changes.Publish(ctx, Change{Kind: ProductUpdated, Product: p})
	return p, true, err
}

// Remove deletes the product with id. It reports whether the id matched;
// a miss is not an error.
func (s *Store) Remove(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	p := s.products[idx]
	kept := make([]Product, 0, len(s.products)-1)
	kept = append(kept, s.products[:idx]...)
	kept = append(kept, s.products[idx+1:]...)
	s.products = kept
	err := s.persist(ctx)
	s.mu.Unlock()

	s.changes.Publish(ctx, Change{Kind: ProductDeleted, Product: p})
	return true, err
}

func (s *Store) nextID() int {
	maxID := 0
	for _, p := range s.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

func (s *Store) indexOf(id int) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole collection. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	if err := storage.SaveJSON(ctx, s.storage, storage.KeyProducts, s.products); err != nil {
		logging.FromContext(ctx).Error("catalog_persist_failed",
			slog.String("key", storage.KeyProducts), slog.Any("error", err))
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}
