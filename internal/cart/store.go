// Package cart keeps shopper carts and wishlists and prices checkouts.
package cart

import (
	"context"
	"sort"
	"sync"

	"storefront-service/internal/models"
)

type Store interface {
	Get(ctx context.Context, email string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, email string) error
}

// WishlistStore holds a set of product ids per shopper.
type WishlistStore interface {
	Add(ctx context.Context, email string, productID int) error
	Remove(ctx context.Context, email string, productID int) error
	List(ctx context.Context, email string) ([]int, error)
	Contains(ctx context.Context, email string, productID int) (bool, error)
}

type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.CartItem)}
}

func (s *MemoryStore) Get(ctx context.Context, email string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]models.CartItem{}, s.carts[email]...)
	return &models.Cart{UserEmail: email, Items: items}, nil
}

func (s *MemoryStore) Save(ctx context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.UserEmail] = append([]models.CartItem{}, cart.Items...)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, email)
	return nil
}

type MemoryWishlist struct {
	mu    sync.RWMutex
	lists map[string]map[int]struct{}
}

func NewMemoryWishlist() *MemoryWishlist {
	return &MemoryWishlist{lists: make(map[string]map[int]struct{})}
}

func (w *MemoryWishlist) Add(ctx context.Context, email string, productID int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	set, ok := w.lists[email]
	if !ok {
		set = make(map[int]struct{})
		w.lists[email] = set
	}
	set[productID] = struct{}{}
	return nil
}

func (w *MemoryWishlist) Remove(ctx context.Context, email string, productID int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.lists[email], productID)
	return nil
}

func (w *MemoryWishlist) List(ctx context.Context, email string) ([]int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ids := make([]int, 0, len(w.lists[email]))
	for id := range w.lists[email] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (w *MemoryWishlist) Contains(ctx context.Context, email string, productID int) (bool, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.lists[email][productID]
	return ok, nil
}
