package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

type merchantUseCase struct {
	merchantRepo domain.MerchantRepository
	userRepo     domain.UserRepository
	log          *logrus.Logger
}

func NewMerchantUseCase(merchantRepo domain.MerchantRepository, userRepo domain.UserRepository, logger *logrus.Logger) domain.MerchantUseCase {
	return &merchantUseCase{
		merchantRepo: merchantRepo,
		userRepo:     userRepo,
		log:          logger,
	}
}

// RegisterMerchant promotes a customer account to a mitra account and
// creates its store. One store per owner.
func (uc *merchantUseCase) RegisterMerchant(ctx context.Context, ownerID int64, name string, category domain.MerchantCategory, description string) (*domain.Merchant, error) {
	if ownerID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("store name cannot be empty")
	}
	if !domain.IsValidCategory(category) {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	if _, err := uc.merchantRepo.GetMerchantByOwnerID(ctx, ownerID); err == nil {
		return nil, errors.New("user already owns a store")
	}

	merchant := &domain.Merchant{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Slug:        domain.Slugify(name),
		Category:    category,
		Description: strings.TrimSpace(description),
	}

	created, err := uc.merchantRepo.CreateMerchant(ctx, merchant)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create merchant for user %d: %v", ownerID, err)
		return nil, err
	}

	if err := uc.userRepo.SetMitra(ctx, ownerID, true); err != nil {
		uc.log.Errorf("Use Case: Merchant %s created but mitra flag update failed for user %d: %v", created.ID, ownerID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Merchant '%s' registered by user %d (slug %s)", created.Name, ownerID, created.Slug)
	return created, nil
}

func (uc *merchantUseCase) GetOwnMerchant(ctx context.Context, ownerID int64) (*domain.Merchant, error) {
	if ownerID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	return uc.merchantRepo.GetMerchantByOwnerID(ctx, ownerID)
}

func (uc *merchantUseCase) UpdateStoreSettings(ctx context.Context, ownerID int64, input domain.StoreSettingsInput) (*domain.Merchant, error) {
	merchant, err := uc.GetOwnMerchant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Address != nil {
		updates["address"] = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		updates["city"] = strings.TrimSpace(*input.City)
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.OpenHours != nil {
		updates["open_hours"] = strings.TrimSpace(*input.OpenHours)
	}
	if input.AcceptsDelivery != nil {
		updates["accepts_delivery"] = *input.AcceptsDelivery
	}
	if len(updates) == 0 {
		return merchant, nil
	}

	updated, err := uc.merchantRepo.UpdateMerchant(ctx, merchant.ID, updates)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to update settings for merchant %s: %v", merchant.ID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Store settings updated for merchant %s (%d fields)", merchant.ID, len(updates))
	return updated, nil
}
