package cartstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarumkm/internal/domain"
)

func sampleCart() *domain.CartState {
	cart := domain.NewCartState().AddItem(domain.CartItem{
		ID: "p1", Name: "Nasi Goreng", Price: 15000, UMKM: "Warung Tes",
	})
	return &cart
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok", sampleCart()))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalItemCount)
	assert.Equal(t, "p1", got.Items[0].ID)
}

func TestMemoryStoreMissingToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok", sampleCart()))
	require.NoError(t, store.Delete(ctx, "tok"))

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrCartNotFound)

	// Deleting an absent cart is fine.
	assert.NoError(t, store.Delete(ctx, "tok"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok", sampleCart()))

	current = current.Add(30 * time.Second)
	_, err := store.Get(ctx, "tok")
	assert.NoError(t, err)

	current = current.Add(31 * time.Second)
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok", sampleCart()))

	first, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	first.TotalItemCount = 99

	second, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalItemCount)
}
