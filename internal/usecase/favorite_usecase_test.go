package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarumkm/internal/domain"
)

func TestFavoriteLifecycle(t *testing.T) {
	merchantRepo := newFakeMerchantRepo()
	merchantRepo.add(&domain.Merchant{ID: "m-1", Name: "Warung", Slug: "warung", Category: domain.CategoryFood})
	favoriteRepo := newFakeFavoriteRepo(merchantRepo)
	uc := NewFavoriteUseCase(favoriteRepo, merchantRepo, testLogger())
	ctx := context.Background()

	favorited, err := uc.IsFavorite(ctx, 7, "m-1")
	require.NoError(t, err)
	assert.False(t, favorited)

	require.NoError(t, uc.AddFavorite(ctx, 7, "m-1"))
	// Favoriting twice is fine.
	require.NoError(t, uc.AddFavorite(ctx, 7, "m-1"))

	favorited, err = uc.IsFavorite(ctx, 7, "m-1")
	require.NoError(t, err)
	assert.True(t, favorited)

	// Another user's view is unchanged.
	favorited, err = uc.IsFavorite(ctx, 8, "m-1")
	require.NoError(t, err)
	assert.False(t, favorited)

	merchants, err := uc.ListFavorites(ctx, 7)
	require.NoError(t, err)
	require.Len(t, merchants, 1)
	assert.Equal(t, "m-1", merchants[0].ID)

	require.NoError(t, uc.RemoveFavorite(ctx, 7, "m-1"))
	favorited, err = uc.IsFavorite(ctx, 7, "m-1")
	require.NoError(t, err)
	assert.False(t, favorited)
}

func TestAddFavoriteRequiresRegisteredMerchant(t *testing.T) {
	merchantRepo := newFakeMerchantRepo()
	favoriteRepo := newFakeFavoriteRepo(merchantRepo)
	uc := NewFavoriteUseCase(favoriteRepo, merchantRepo, testLogger())
	ctx := context.Background()

	err := uc.AddFavorite(ctx, 7, "no-such-merchant")
	assert.Error(t, err)

	_, err = uc.IsFavorite(ctx, 0, "m-1")
	assert.Error(t, err)

	_, err = uc.IsFavorite(ctx, 7, "")
	assert.Error(t, err)
}
