// internal/cartstore/guest_store.go
package cartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shineline/storefront-backend/internal/models"
)

const guestKeyPrefix = "cart:guest:"

// GuestStore persists anonymous carts as one JSON-encoded entry list per
// guest key in Redis. A missing or unparseable key reads as an empty cart,
// never an error. Every write replaces the whole list in a single SET, and
// the TTL is refreshed on each write.
type GuestStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuestStore(client *redis.Client, ttl time.Duration) *GuestStore {
	return &GuestStore{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient connects and pings the guest cart backend.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func (s *GuestStore) key(owner string) string {
	return guestKeyPrefix + owner
}

func (s *GuestStore) load(ctx context.Context, owner string) ([]models.GuestCartEntry, error) {
	data, err := s.client.Get(ctx, s.key(owner)).Result()
	if err == redis.Nil {
		return []models.GuestCartEntry{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load guest cart", Err: err}
	}

	var entries []models.GuestCartEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		// An unparseable cart is treated as empty, not as a failure.
		logrus.WithFields(logrus.Fields{
			"owner": owner,
			"error": err,
		}).Warn("Discarding unparseable guest cart")
		return []models.GuestCartEntry{}, nil
	}

	return entries, nil
}

func (s *GuestStore) save(ctx context.Context, owner string, entries []models.GuestCartEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return &PersistenceError{Op: "encode guest cart", Err: err}
	}

	if err := s.client.Set(ctx, s.key(owner), data, s.ttl).Err(); err != nil {
		return &PersistenceError{Op: "save guest cart", Err: err}
	}
	return nil
}

func (s *GuestStore) List(ctx context.Context, owner string) ([]Entry, error) {
	entries, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{
			ItemID:       GuestItemID(e.ProductID, e.SelectedSize),
			ProductID:    e.ProductID,
			Quantity:     e.Quantity,
			SelectedSize: e.SelectedSize,
		})
	}
	return out, nil
}

func (s *GuestStore) Add(ctx context.Context, owner string, e Entry, mode AddMode) error {
	entries, err := s.load(ctx, owner)
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].ProductID == e.ProductID && entries[i].SelectedSize == e.SelectedSize {
			if mode == AddModeReplace {
				entries[i].Quantity = e.Quantity
			} else {
				entries[i].Quantity += e.Quantity
			}
			found = true
			break
		}
	}

	if !found {
		entries = append(entries, models.GuestCartEntry{
			ProductID:    e.ProductID,
			Quantity:     e.Quantity,
			SelectedSize: e.SelectedSize,
		})
	}

	return s.save(ctx, owner, entries)
}

func (s *GuestStore) SetQuantity(ctx context.Context, owner, itemID string, quantity int) error {
	productID, size, err := ParseGuestItemID(itemID)
	if err != nil {
		// A handle that never identified an entry reads as a missing entry.
		return ErrNotFound
	}

	entries, err := s.load(ctx, owner)
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].ProductID == productID && entries[i].SelectedSize == size {
			entries[i].Quantity = quantity
			return s.save(ctx, owner, entries)
		}
	}
	return ErrNotFound
}

func (s *GuestStore) Remove(ctx context.Context, owner, itemID string) error {
	productID, size, err := ParseGuestItemID(itemID)
	if err != nil {
		return ErrNotFound
	}

	entries, err := s.load(ctx, owner)
	if err != nil {
		return err
	}

	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.ProductID == productID && e.SelectedSize == size {
			found = true
			continue
		}
		kept = append(kept, e)
	}

	if !found {
		return ErrNotFound
	}
	return s.save(ctx, owner, kept)
}

func (s *GuestStore) Clear(ctx context.Context, owner string) error {
	if err := s.client.Del(ctx, s.key(owner)).Err(); err != nil {
		return &PersistenceError{Op: "clear guest cart", Err: err}
	}
	return nil
}

// GuestItemID derives the stable handle for a guest entry from its
// identity key. Guest entries have no row IDs; the (product, size) pair is
// the only identity they carry.
func GuestItemID(productID uuid.UUID, size string) string {
	if size == "" {
		return productID.String()
	}
	return productID.String() + ":" + size
}

// ParseGuestItemID splits a guest item handle back into its identity key.
func ParseGuestItemID(itemID string) (uuid.UUID, string, error) {
	id := itemID
	size := ""
	if i := strings.IndexByte(itemID, ':'); i >= 0 {
		id, size = itemID[:i], itemID[i+1:]
	}

	productID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid guest item id %q: %w", itemID, err)
	}
	return productID, size, nil
}
