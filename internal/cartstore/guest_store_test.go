// internal/cartstore/guest_store_test.go
package cartstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuestStore(t *testing.T) (*GuestStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewGuestStore(client, time.Hour), mr
}

func TestGuestStoreMissingKeyReadsAsEmptyCart(t *testing.T) {
	store, _ := newTestGuestStore(t)

	entries, err := store.List(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGuestStoreCorruptValueReadsAsEmptyCart(t *testing.T) {
	store, mr := newTestGuestStore(t)
	require.NoError(t, mr.Set("cart:guest:guest-1", "{not json"))

	entries, err := store.List(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The first write after a discard starts from a clean list.
	require.NoError(t, store.Add(context.Background(), "guest-1", Entry{ProductID: uuid.New(), Quantity: 2}, AddModeIncrement))
	entries, err = store.List(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGuestStoreAddRoundTrip(t *testing.T) {
	store, mr := newTestGuestStore(t)
	ctx := context.Background()
	productID := uuid.New()

	require.NoError(t, store.Add(ctx, "guest-1", Entry{ProductID: productID, Quantity: 2, SelectedSize: "7"}, AddModeIncrement))
	require.NoError(t, store.Add(ctx, "guest-1", Entry{ProductID: productID, Quantity: 3, SelectedSize: "7"}, AddModeIncrement))

	entries, err := store.List(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Quantity)
	assert.Equal(t, "7", entries[0].SelectedSize)
	assert.Equal(t, GuestItemID(productID, "7"), entries[0].ItemID)

	// The whole cart lives under one key.
	assert.Len(t, mr.Keys(), 1)
	assert.True(t, mr.Exists("cart:guest:guest-1"))
}

func TestGuestStoreWriteRefreshesTTL(t *testing.T) {
	store, mr := newTestGuestStore(t)
	ctx := context.Background()
	productID := uuid.New()

	require.NoError(t, store.Add(ctx, "guest-1", Entry{ProductID: productID, Quantity: 1}, AddModeIncrement))
	assert.Equal(t, time.Hour, mr.TTL("cart:guest:guest-1"))

	mr.FastForward(30 * time.Minute)
	require.NoError(t, store.Add(ctx, "guest-1", Entry{ProductID: productID, Quantity: 1}, AddModeIncrement))
	assert.Equal(t, time.Hour, mr.TTL("cart:guest:guest-1"))

	// An untouched cart expires with its key.
	mr.FastForward(2 * time.Hour)
	entries, err := store.List(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGuestStoreSetQuantityAndRemove(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()
	productID := uuid.New()
	itemID := GuestItemID(productID, "7")

	require.NoError(t, store.Add(ctx, "guest-1", Entry{ProductID: productID, Quantity: 1, SelectedSize: "7"}, AddModeIncrement))

	require.NoError(t, store.SetQuantity(ctx, "guest-1", itemID, 4))
	entries, err := store.List(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Quantity)

	require.NoError(t, store.Remove(ctx, "guest-1", itemID))
	entries, err = store.List(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGuestStoreMissingEntryIsNotFound(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SetQuantity(ctx, "guest-1", GuestItemID(uuid.New(), ""), 2), ErrNotFound)
	assert.ErrorIs(t, store.Remove(ctx, "guest-1", GuestItemID(uuid.New(), "")), ErrNotFound)

	// A handle that cannot name any entry reads as a missing entry.
	assert.ErrorIs(t, store.SetQuantity(ctx, "guest-1", "not-a-handle", 2), ErrNotFound)
	assert.ErrorIs(t, store.Remove(ctx, "guest-1", "not-a-handle"), ErrNotFound)
}

func TestGuestStoreClearDeletesKey(t *testing.T) {
	store, mr := newTestGuestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "guest-1", Entry{ProductID: uuid.New(), Quantity: 1}, AddModeIncrement))
	require.NoError(t, store.Clear(ctx, "guest-1"))

	assert.False(t, mr.Exists("cart:guest:guest-1"))
}

func TestGuestItemIDRoundTrip(t *testing.T) {
	productID := uuid.New()

	for _, size := range []string{"", "7", "one-size"} {
		itemID := GuestItemID(productID, size)

		gotID, gotSize, err := ParseGuestItemID(itemID)
		require.NoError(t, err)
		assert.Equal(t, productID, gotID)
		assert.Equal(t, size, gotSize)
	}
}

func TestGuestItemIDSizelessHasNoSeparator(t *testing.T) {
	productID := uuid.New()

	assert.Equal(t, productID.String(), GuestItemID(productID, ""))
	assert.Equal(t, productID.String()+":7", GuestItemID(productID, "7"))
}

func TestParseGuestItemIDRejectsGarbage(t *testing.T) {
	_, _, err := ParseGuestItemID("not-a-uuid")
	assert.Error(t, err)

	_, _, err = ParseGuestItemID("not-a-uuid:7")
	assert.Error(t, err)
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	perr := &PersistenceError{Op: "save guest cart", Err: ErrNotFound}

	assert.ErrorIs(t, perr, ErrNotFound)
	assert.Contains(t, perr.Error(), "save guest cart")
}
