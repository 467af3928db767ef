// internal/services/fakes_test.go
package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shineline/storefront-backend/internal/cartstore"
	"github.com/shineline/storefront-backend/internal/catalog"
	"github.com/shineline/storefront-backend/internal/models"
)

// fakeStore is an in-memory cartstore.Store. Entries keep insertion order
// per owner; item handles are (product, size) composites like the guest
// store's. failAddAfter > 0 makes the n+1th Add fail, for merge tests.
type fakeStore struct {
	mu           sync.Mutex
	entries      map[string][]cartstore.Entry
	addCalls     int
	failAddAfter int
	failClear    bool
	clearCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string][]cartstore.Entry)}
}

func itemKey(productID uuid.UUID, size string) string {
	return cartstore.GuestItemID(productID, size)
}

func (f *fakeStore) List(ctx context.Context, owner string) ([]cartstore.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]cartstore.Entry, len(f.entries[owner]))
	copy(out, f.entries[owner])
	return out, nil
}

func (f *fakeStore) Add(ctx context.Context, owner string, e cartstore.Entry, mode cartstore.AddMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addCalls++
	if f.failAddAfter > 0 && f.addCalls > f.failAddAfter {
		return &cartstore.PersistenceError{Op: "add", Err: context.DeadlineExceeded}
	}

	e.ItemID = itemKey(e.ProductID, e.SelectedSize)
	list := f.entries[owner]
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
	f.entries[owner] = append(list, e)
	return nil
}

func (f *fakeStore) SetQuantity(ctx context.Context, owner, itemID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.entries[owner]
	for i := range list {
		if list[i].ItemID == itemID {
			list[i].Quantity = quantity
			return nil
		}
	}
	return cartstore.ErrNotFound
}

func (f *fakeStore) Remove(ctx context.Context, owner, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.entries[owner]
	for i := range list {
		if list[i].ItemID == itemID {
			f.entries[owner] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return cartstore.ErrNotFound
}

func (f *fakeStore) Clear(ctx context.Context, owner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	if f.failClear {
		return &cartstore.PersistenceError{Op: "clear", Err: context.DeadlineExceeded}
	}
	delete(f.entries, owner)
	return nil
}

func (f *fakeStore) count(owner string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries[owner])
}

// fakeCatalog serves products from a map.
type fakeCatalog struct {
	products map[uuid.UUID]*models.Product
}

func newFakeCatalog(products ...*models.Product) *fakeCatalog {
	m := make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeCatalog{products: m}
}

func (f *fakeCatalog) Product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, catalog.ErrProductNotFound
}
