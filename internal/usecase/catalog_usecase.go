package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"pasarumkm/internal/directory"
	"pasarumkm/internal/domain"
)

// catalogUseCase serves the public browsing surface: registered merchants
// from the database merged with the static directory fixture.
type catalogUseCase struct {
	merchantRepo domain.MerchantRepository
	productRepo  domain.ProductRepository
	loader       *directory.Loader
	log          *logrus.Logger
}

func NewCatalogUseCase(merchantRepo domain.MerchantRepository, productRepo domain.ProductRepository, loader *directory.Loader, logger *logrus.Logger) domain.CatalogUseCase {
	return &catalogUseCase{
		merchantRepo: merchantRepo,
		productRepo:  productRepo,
		loader:       loader,
		log:          logger,
	}
}

func (uc *catalogUseCase) ListMerchants(ctx context.Context, query string, category domain.MerchantCategory) ([]domain.Merchant, error) {
	if category != "" && !domain.IsValidCategory(category) {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	merged, err := uc.allMerchants(ctx)
	if err != nil {
		return nil, err
	}

	result := directory.Filter(merged, query, category)
	uc.log.Infof("Use Case: Directory query %q (category %q) matched %d merchants", query, category, len(result))
	return result, nil
}

func (uc *catalogUseCase) GetMerchantBySlug(ctx context.Context, slug string) (*domain.Merchant, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("merchant slug cannot be empty")
	}

	// Registered merchants take precedence over fixture entries with the
	// same slug.
	merchant, err := uc.merchantRepo.GetMerchantBySlug(ctx, slug)
	if err == nil {
		return merchant, nil
	}
	if !strings.Contains(err.Error(), "not found") {
		return nil, err
	}

	listing, dirErr := uc.loader.Merchants(ctx)
	if dirErr != nil {
		uc.log.Errorf("Use Case: Directory unavailable while resolving slug %s: %v", slug, dirErr)
		return nil, dirErr
	}
	if entry, ok := directory.FindBySlug(listing, slug); ok {
		return entry, nil
	}

	uc.log.Warnf("Use Case: Merchant slug '%s' not found", slug)
	return nil, fmt.Errorf("merchant with slug '%s' not found", slug)
}

func (uc *catalogUseCase) ListProductsBySlug(ctx context.Context, slug string) ([]domain.Product, error) {
	merchant, err := uc.GetMerchantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Fixture-only merchants have no product rows yet.
	if merchant.ID == "" {
		return []domain.Product{}, nil
	}
	return uc.productRepo.ListProductsByMerchantID(ctx, merchant.ID)
}

func (uc *catalogUseCase) allMerchants(ctx context.Context) ([]domain.Merchant, error) {
	registered, err := uc.merchantRepo.ListMerchants(ctx)
	if err != nil {
		return nil, err
	}

	listing, err := uc.loader.Merchants(ctx)
	if err != nil {
		// A broken fixture should not take the registered merchants down
		// with it.
		uc.log.Warnf("Use Case: Directory fixture unavailable: %v", err)
		listing = nil
	}

	taken := make(map[string]struct{}, len(registered))
	merged := make([]domain.Merchant, 0, len(registered)+len(listing))
	for _, m := range registered {
		taken[m.Slug] = struct{}{}
		merged = append(merged, m)
	}
	for _, m := range listing {
		if _, ok := taken[m.Slug]; ok {
			continue
		}
		merged = append(merged, m)
	}
	return merged, nil
}
