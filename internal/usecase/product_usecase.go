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

type productUseCase struct {
	productRepo  domain.ProductRepository
	merchantRepo domain.MerchantRepository
	log          *logrus.Logger
}

func NewProductUseCase(productRepo domain.ProductRepository, merchantRepo domain.MerchantRepository, logger *logrus.Logger) domain.ProductUseCase {
	return &productUseCase{
		productRepo:  productRepo,
		merchantRepo: merchantRepo,
		log:          logger,
	}
}

// ownMerchant resolves the store owned by ownerID; every product
// operation is scoped to it.
func (uc *productUseCase) ownMerchant(ctx context.Context, ownerID int64) (*domain.Merchant, error) {
	if ownerID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	return uc.merchantRepo.GetMerchantByOwnerID(ctx, ownerID)
}

func (uc *productUseCase) CreateProduct(ctx context.Context, ownerID int64, product *domain.Product) (*domain.Product, error) {
	merchant, err := uc.ownMerchant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, errors.New("product name cannot be empty")
	}
	if product.Price < 0 {
		return nil, errors.New("product price cannot be negative")
	}
	if product.Category == "" {
		product.Category = merchant.Category
	}
	if !domain.IsValidCategory(product.Category) {
		return nil, fmt.Errorf("invalid product category: %s", product.Category)
	}
	product.ID = uuid.NewString()
	product.MerchantID = merchant.ID

	created, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product for merchant %s: %v", merchant.ID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created for merchant %s", created.Name, merchant.ID)
	return created, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, ownerID int64, productID string, updates map[string]interface{}) (*domain.Product, error) {
	merchant, err := uc.ownMerchant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, errors.New("invalid product ID")
	}

	product, err := uc.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.MerchantID != merchant.ID {
		uc.log.Warnf("Use Case: User %d attempted to update product %s of another merchant", ownerID, productID)
		return nil, errors.New("you are not authorized to update this product")
	}

	if price, ok := updates["price"]; ok {
		switch v := price.(type) {
		case int64:
			if v < 0 {
				return nil, errors.New("product price cannot be negative")
			}
		case float64:
			if v < 0 {
				return nil, errors.New("product price cannot be negative")
			}
		}
	}

	updated, err := uc.productRepo.UpdateProduct(ctx, productID, updates)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to update product %s: %v", productID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product %s updated (%d fields)", productID, len(updates))
	return updated, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, ownerID int64, productID string) error {
	merchant, err := uc.ownMerchant(ctx, ownerID)
	if err != nil {
		return err
	}
	if productID == "" {
		return errors.New("invalid product ID")
	}

	product, err := uc.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.MerchantID != merchant.ID {
		return errors.New("you are not authorized to delete this product")
	}

	if err := uc.productRepo.DeleteProduct(ctx, productID); err != nil {
		uc.log.Errorf("Use Case: Failed to delete product %s: %v", productID, err)
		return err
	}

	uc.log.Infof("Use Case: Product %s deleted by merchant %s", productID, merchant.ID)
	return nil
}

func (uc *productUseCase) ListOwnProducts(ctx context.Context, ownerID int64) ([]domain.Product, error) {
	merchant, err := uc.ownMerchant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return uc.productRepo.ListProductsByMerchantID(ctx, merchant.ID)
}
