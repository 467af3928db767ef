// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shineline/storefront-backend/internal/cartstore"
	"github.com/shineline/storefront-backend/internal/catalog"
	"github.com/shineline/storefront-backend/internal/models"
	"github.com/shineline/storefront-backend/internal/session"
)

// CartLine is a cart entry enriched with its product snapshot, fetched at
// read time so displayed price and inventory are current as of the last
// read.
type CartLine struct {
	ItemID       string          `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     int             `json:"quantity"`
	SelectedSize string          `json:"selected_size,omitempty"`
	Product      *models.Product `json:"product"`
}

// CartSnapshot is what subscribers receive after every mutation.
type CartSnapshot struct {
	Owner string     `json:"owner"`
	Lines []CartLine `json:"items"`
}

// CartService is the one component the UI talks to. It orchestrates the
// guest and account stores behind a single contract, selecting the variant
// from the request's session state, and republishes the full cart after
// every mutation rather than patching local state.
type CartService struct {
	guest   cartstore.Store
	account cartstore.Store
	catalog catalog.Reader
	mode    cartstore.AddMode

	mu      sync.Mutex
	subs    map[int]chan CartSnapshot
	nextSub int
}

func NewCartService(guest, account cartstore.Store, catalog catalog.Reader, mode cartstore.AddMode) *CartService {
	return &CartService{
		guest:   guest,
		account: account,
		catalog: catalog,
		mode:    mode,
		subs:    make(map[int]chan CartSnapshot),
	}
}

func (s *CartService) storeFor(sess session.State) cartstore.Store {
	if sess.IsAuthenticated() {
		return s.account
	}
	return s.guest
}

// AddItem merges the quantity into the (owner, product, size) identity key
// per the configured add mode.
func (s *CartService) AddItem(ctx context.Context, sess session.State, productID uuid.UUID, quantity int, size string) error {
	if quantity < 1 {
		quantity = 1
	}

	entry := cartstore.Entry{
		ProductID:    productID,
		Quantity:     quantity,
		SelectedSize: size,
	}

	if err := s.storeFor(sess).Add(ctx, sess.Owner(), entry, s.mode); err != nil {
		logrus.WithFields(logrus.Fields{
			"owner":      sess.Owner(),
			"product_id": productID,
			"error":      err,
		}).Error("Failed to add item to cart")
		return err
	}

	s.republish(ctx, sess)
	return nil
}

// UpdateQuantity overwrites the stored quantity. A quantity of zero or
// below removes the entry instead; zero and negative quantities are never
// stored.
func (s *CartService) UpdateQuantity(ctx context.Context, sess session.State, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sess, itemID)
	}

	if err := s.storeFor(sess).SetQuantity(ctx, sess.Owner(), itemID, quantity); err != nil {
		if errors.Is(err, cartstore.ErrNotFound) {
			err = &cartstore.PersistenceError{Op: "update cart item", Err: err}
		}
		logrus.WithFields(logrus.Fields{
			"owner":   sess.Owner(),
			"item_id": itemID,
			"error":   err,
		}).Error("Failed to update quantity")
		return err
	}

	s.republish(ctx, sess)
	return nil
}

// RemoveItem deletes the entry. Removing an absent entry is not an error:
// the store's not-found is swallowed here.
func (s *CartService) RemoveItem(ctx context.Context, sess session.State, itemID string) error {
	if err := s.storeFor(sess).Remove(ctx, sess.Owner(), itemID); err != nil {
		if errors.Is(err, cartstore.ErrNotFound) {
			logrus.WithFields(logrus.Fields{
				"owner":   sess.Owner(),
				"item_id": itemID,
			}).Debug("Remove of absent cart item ignored")
			s.republish(ctx, sess)
			return nil
		}
		logrus.WithFields(logrus.Fields{
			"owner":   sess.Owner(),
			"item_id": itemID,
			"error":   err,
		}).Error("Failed to remove item")
		return err
	}

	s.republish(ctx, sess)
	return nil
}

// ClearCart deletes every entry for the current owner.
func (s *CartService) ClearCart(ctx context.Context, sess session.State) error {
	if err := s.storeFor(sess).Clear(ctx, sess.Owner()); err != nil {
		logrus.WithFields(logrus.Fields{
			"owner": sess.Owner(),
			"error": err,
		}).Error("Failed to clear cart")
		return err
	}

	s.publish(CartSnapshot{Owner: sess.Owner(), Lines: []CartLine{}})
	return nil
}

// List returns the ordered cart with live product snapshots. Entries whose
// product has vanished from the catalog are skipped with a warning; the
// validator reports them, the cart view does not render them.
func (s *CartService) List(ctx context.Context, sess session.State) ([]CartLine, error) {
	entries, err := s.storeFor(sess).List(ctx, sess.Owner())
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(entries))
	for _, e := range entries {
		product, err := s.catalog.Product(ctx, e.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				logrus.WithFields(logrus.Fields{
					"owner":      sess.Owner(),
					"product_id": e.ProductID,
				}).Warn("Cart entry references a product no longer in the catalog")
				continue
			}
			return nil, fmt.Errorf("failed to load product for cart entry: %w", err)
		}

		lines = append(lines, CartLine{
			ItemID:       e.ItemID,
			ProductID:    e.ProductID,
			Quantity:     e.Quantity,
			SelectedSize: e.SelectedSize,
			Product:      product,
		})
	}

	return lines, nil
}

// Subscribe registers for cart snapshots republished after each mutation.
// The returned cancel func must be called to release the channel. Slow
// subscribers miss snapshots rather than blocking mutations.
func (s *CartService) Subscribe() (<-chan CartSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan CartSnapshot, 8)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// PublishEmptyCart pushes an empty snapshot for the owner. Used on
// sign-out, where the account rows stay persisted but the UI must show an
// empty cart.
func (s *CartService) PublishEmptyCart(owner string) {
	s.publish(CartSnapshot{Owner: owner, Lines: []CartLine{}})
}

func (s *CartService) publish(snap CartSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// republish re-reads the full cart and pushes it to subscribers. Mutations
// always go through a store round-trip and a full re-read; there are no
// optimistic partial updates.
func (s *CartService) republish(ctx context.Context, sess session.State) {
	lines, err := s.List(ctx, sess)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"owner": sess.Owner(),
			"error": err,
		}).Error("Failed to re-read cart for republish")
		return
	}
	s.publish(CartSnapshot{Owner: sess.Owner(), Lines: lines})
}
