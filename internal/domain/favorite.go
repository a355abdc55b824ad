package domain

import "context"

type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID int64, merchantID string) error
	RemoveFavorite(ctx context.Context, userID int64, merchantID string) error
	ListFavoriteMerchants(ctx context.Context, userID int64) ([]Merchant, error)
	IsFavorite(ctx context.Context, userID int64, merchantID string) (bool, error)
}

type FavoriteUseCase interface {
	AddFavorite(ctx context.Context, userID int64, merchantID string) error
	RemoveFavorite(ctx context.Context, userID int64, merchantID string) error
	ListFavorites(ctx context.Context, userID int64) ([]Merchant, error)
	IsFavorite(ctx context.Context, userID int64, merchantID string) (bool, error)
}
