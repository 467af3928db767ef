// internal/cartstore/account_store.go
package cartstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shineline/storefront-backend/internal/models"
)

// AccountStore persists authenticated carts as cart_items rows. All adds
// (and merges) are single-row upserts against the (user_id, product_id,
// selected_size) unique index, so the identity-key uniqueness invariant is
// enforced by the database, not by application reads. Concurrent writers
// from multiple devices resolve as last-write-wins.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) List(ctx context.Context, owner string) ([]Entry, error) {
	userID, err := uuid.Parse(owner)
	if err != nil {
		return nil, &PersistenceError{Op: "list account cart", Err: err}
	}

	var items []models.CartItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, &PersistenceError{Op: "list account cart", Err: err}
	}

	out := make([]Entry, 0, len(items))
	for _, item := range items {
		out = append(out, Entry{
			ItemID:       item.ID.String(),
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			SelectedSize: item.SelectedSize,
		})
	}
	return out, nil
}

func (s *AccountStore) Add(ctx context.Context, owner string, e Entry, mode AddMode) error {
	userID, err := uuid.Parse(owner)
	if err != nil {
		return &PersistenceError{Op: "add cart item", Err: err}
	}

	item := models.CartItem{
		UserID:       userID,
		ProductID:    e.ProductID,
		SelectedSize: e.SelectedSize,
		Quantity:     e.Quantity,
	}

	conflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "product_id"}, {Name: "selected_size"},
		},
	}
	if mode == AddModeReplace {
		conflict.DoUpdates = clause.AssignmentColumns([]string{"quantity", "updated_at"})
	} else {
		conflict.DoUpdates = clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		})
	}

	if err := s.db.WithContext(ctx).Clauses(conflict).Create(&item).Error; err != nil {
		return &PersistenceError{Op: "add cart item", Err: err}
	}
	return nil
}

func (s *AccountStore) SetQuantity(ctx context.Context, owner, itemID string, quantity int) error {
	userID, id, err := s.parseIDs(owner, itemID)
	if err != nil {
		return &PersistenceError{Op: "update cart item", Err: err}
	}

	result := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return &PersistenceError{Op: "update cart item", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AccountStore) Remove(ctx context.Context, owner, itemID string) error {
	userID, id, err := s.parseIDs(owner, itemID)
	if err != nil {
		return &PersistenceError{Op: "remove cart item", Err: err}
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return &PersistenceError{Op: "remove cart item", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AccountStore) Clear(ctx context.Context, owner string) error {
	userID, err := uuid.Parse(owner)
	if err != nil {
		return &PersistenceError{Op: "clear account cart", Err: err}
	}

	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return &PersistenceError{Op: "clear account cart", Err: err}
	}
	return nil
}

func (s *AccountStore) parseIDs(owner, itemID string) (uuid.UUID, uuid.UUID, error) {
	userID, err := uuid.Parse(owner)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid cart item id")
	}
	return userID, id, nil
}
