// internal/handlers/fakes_test.go
package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shineline/storefront-backend/internal/cartstore"
	"github.com/shineline/storefront-backend/internal/catalog"
	"github.com/shineline/storefront-backend/internal/models"
)

type memStore struct {
	mu        sync.Mutex
	entries   map[string][]cartstore.Entry
	listCalls int
	listErr   error
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string][]cartstore.Entry)}
}

func (m *memStore) List(ctx context.Context, owner string) ([]cartstore.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]cartstore.Entry, len(m.entries[owner]))
	copy(out, m.entries[owner])
	return out, nil
}

func (m *memStore) Add(ctx context.Context, owner string, e cartstore.Entry, mode cartstore.AddMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ItemID = cartstore.GuestItemID(e.ProductID, e.SelectedSize)
	list := m.entries[owner]
	for i := range list {
		if list[i].ItemID == e.ItemID {
			if mode == cartstore.AddModeReplace {
				list[i].Quantity = e.Quantity
			} else {
				list[i].Quantity += e.Quantity
			}
			return nil
		}
	}
	m.entries[owner] = append(list, e)
	return nil
}

func (m *memStore) SetQuantity(ctx context.Context, owner, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.entries[owner]
	for i := range list {
		if list[i].ItemID == itemID {
			list[i].Quantity = quantity
			return nil
		}
	}
	return cartstore.ErrNotFound
}

func (m *memStore) Remove(ctx context.Context, owner, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.entries[owner]
	for i := range list {
		if list[i].ItemID == itemID {
			m.entries[owner] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return cartstore.ErrNotFound
}

func (m *memStore) Clear(ctx context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, owner)
	return nil
}

type memCatalog struct {
	products map[uuid.UUID]*models.Product
}

func newMemCatalog(products ...*models.Product) *memCatalog {
	m := make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &memCatalog{products: m}
}

func (m *memCatalog) Product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, catalog.ErrProductNotFound
}
