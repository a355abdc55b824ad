package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

type favoriteUseCase struct {
	favoriteRepo domain.FavoriteRepository
	merchantRepo domain.MerchantRepository
	log          *logrus.Logger
}

func NewFavoriteUseCase(favoriteRepo domain.FavoriteRepository, merchantRepo domain.MerchantRepository, logger *logrus.Logger) domain.FavoriteUseCase {
	return &favoriteUseCase{
		favoriteRepo: favoriteRepo,
		merchantRepo: merchantRepo,
		log:          logger,
	}
}

// AddFavorite is idempotent; favoriting an already favorited merchant
// succeeds silently.
func (uc *favoriteUseCase) AddFavorite(ctx context.Context, userID int64, merchantID string) error {
	if userID <= 0 {
		return errors.New("invalid user ID")
	}
	if merchantID == "" {
		return errors.New("invalid merchant ID")
	}
	// Only registered merchants can be favorited.
	if _, err := uc.merchantRepo.GetMerchantByID(ctx, merchantID); err != nil {
		return err
	}
	if err := uc.favoriteRepo.AddFavorite(ctx, userID, merchantID); err != nil {
		uc.log.Errorf("Use Case: Failed to add favorite %s for user %d: %v", merchantID, userID, err)
		return err
	}
	uc.log.Infof("Use Case: User %d favorited merchant %s", userID, merchantID)
	return nil
}

func (uc *favoriteUseCase) RemoveFavorite(ctx context.Context, userID int64, merchantID string) error {
	if userID <= 0 {
		return errors.New("invalid user ID")
	}
	if merchantID == "" {
		return errors.New("invalid merchant ID")
	}
	if err := uc.favoriteRepo.RemoveFavorite(ctx, userID, merchantID); err != nil {
		uc.log.Errorf("Use Case: Failed to remove favorite %s for user %d: %v", merchantID, userID, err)
		return err
	}
	uc.log.Infof("Use Case: User %d unfavorited merchant %s", userID, merchantID)
	return nil
}

func (uc *favoriteUseCase) ListFavorites(ctx context.Context, userID int64) ([]domain.Merchant, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	return uc.favoriteRepo.ListFavoriteMerchants(ctx, userID)
}

func (uc *favoriteUseCase) IsFavorite(ctx context.Context, userID int64, merchantID string) (bool, error) {
	if userID <= 0 {
		return false, errors.New("invalid user ID")
	}
	if merchantID == "" {
		return false, errors.New("invalid merchant ID")
	}
	return uc.favoriteRepo.IsFavorite(ctx, userID, merchantID)
}
