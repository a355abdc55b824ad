package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarumkm/internal/cartstore"
	"pasarumkm/internal/domain"
)

func newCartUCForTest() domain.CartUseCase {
	return NewCartUseCase(cartstore.NewMemoryStore(time.Hour), testLogger())
}

func TestGetCartMissingSessionIsEmptyCart(t *testing.T) {
	uc := newCartUCForTest()

	cart, err := uc.GetCart(context.Background(), "fresh-token")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItemCount)
}

func TestCartActionsPersistAcrossCalls(t *testing.T) {
	uc := newCartUCForTest()
	ctx := context.Background()
	token := "tok"

	_, err := uc.AddItem(ctx, token, domain.CartItem{ID: "p1", Name: "Nasi", Price: 15000, UMKM: "Warung"})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, token, domain.CartItem{ID: "p1", Name: "Nasi", Price: 15000, UMKM: "Warung"})
	require.NoError(t, err)

	cart, err := uc.SetQuantity(ctx, token, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.TotalItemCount)

	cart, err = uc.RemoveItem(ctx, token, "p1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Sessions are isolated.
	other, err := uc.AddItem(ctx, "other", domain.CartItem{ID: "p2", Name: "Teh", Price: 5000, UMKM: "Warung"})
	require.NoError(t, err)
	assert.Equal(t, 1, other.TotalItemCount)
	mine, err := uc.GetCart(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, mine.Items)
}

func TestCartValidation(t *testing.T) {
	uc := newCartUCForTest()
	ctx := context.Background()

	_, err := uc.GetCart(ctx, "")
	assert.Error(t, err)

	_, err = uc.AddItem(ctx, "tok", domain.CartItem{Name: "no id"})
	assert.Error(t, err)

	_, err = uc.AddItem(ctx, "tok", domain.CartItem{ID: "p1", Name: "Nasi", Price: -1})
	assert.Error(t, err)

	_, err = uc.SetQuantity(ctx, "tok", "p1", -2)
	assert.Error(t, err)
}

func TestClearThenStartOrderKeepsReference(t *testing.T) {
	uc := newCartUCForTest()
	ctx := context.Background()
	token := "tok"

	_, err := uc.AddItem(ctx, token, domain.CartItem{ID: "p1", Name: "Nasi", Price: 15000, UMKM: "Warung"})
	require.NoError(t, err)

	_, err = uc.ClearCart(ctx, token)
	require.NoError(t, err)

	cart, err := uc.StartOrder(ctx, token, domain.OrderRef{OrderID: "o1", MerchantName: "Warung", Total: 15000})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	require.NotNil(t, cart.PendingOrder)
	assert.Equal(t, "o1", cart.PendingOrder.OrderID)

	reloaded, err := uc.GetCart(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, reloaded.PendingOrder)
	assert.Equal(t, "o1", reloaded.PendingOrder.OrderID)
}
