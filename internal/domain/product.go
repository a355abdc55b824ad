package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string           `json:"id"`
	MerchantID  string           `json:"merchant_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       int64            `json:"price"`
	Image       string           `json:"image,omitempty"`
	Category    MerchantCategory `json:"category"`
	Available   bool             `json:"available"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProductsByMerchantID(ctx context.Context, merchantID string) ([]Product, error)
}

type ProductUseCase interface {
	CreateProduct(ctx context.Context, ownerID int64, product *Product) (*Product, error)
	UpdateProduct(ctx context.Context, ownerID int64, productID string, updates map[string]interface{}) (*Product, error)
	DeleteProduct(ctx context.Context, ownerID int64, productID string) error
	ListOwnProducts(ctx context.Context, ownerID int64) ([]Product, error)
}
