// internal/cartstore/store.go
package cartstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound reports an operation on a cart entry that does not exist.
// The cart manager treats it as benign for removes and as a persistence
// failure for quantity updates.
var ErrNotFound = errors.New("cart entry not found")

// PersistenceError wraps a store read/write failure (network, permission,
// constraint violation). The cart manager logs it and surfaces a generic
// per-operation failure to the caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cart store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AddMode selects repeat-add semantics for the same identity key.
type AddMode string

const (
	// AddModeIncrement sums the new quantity into the stored one.
	AddModeIncrement AddMode = "increment"
	// AddModeReplace overwrites the stored quantity.
	AddModeReplace AddMode = "replace"
)

// Entry is a cart line as the stores see it, without product enrichment.
// ItemID is the store's handle for the entry: a row UUID for account
// entries, a (product, size) composite key for guest entries.
type Entry struct {
	ItemID       string
	ProductID    uuid.UUID
	Quantity     int
	SelectedSize string
}

// Store is the persistence contract shared by the guest (Redis) and
// account (Postgres) cart backends. The cart manager selects a variant per
// operation from the current session state and never branches beyond that.
//
// Add merges into the identity key (owner, product, size) per the given
// mode. SetQuantity requires quantity >= 1; the quantity-zero-removes rule
// lives in the manager. List preserves insertion order.
type Store interface {
	List(ctx context.Context, owner string) ([]Entry, error)
	Add(ctx context.Context, owner string, e Entry, mode AddMode) error
	SetQuantity(ctx context.Context, owner, itemID string, quantity int) error
	Remove(ctx context.Context, owner, itemID string) error
	Clear(ctx context.Context, owner string) error
}
