package domain

import (
	"context"
	"strings"
	"time"
)

// Merchant is a registered UMKM (or one loaded from the public directory
// fixture, in which case ID/OwnerID are empty).
type Merchant struct {
	ID              string           `json:"id,omitempty"`
	OwnerID         int64            `json:"-"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Category        MerchantCategory `json:"category"`
	Description     string           `json:"description,omitempty"`
	Address         string           `json:"address,omitempty"`
	City            string           `json:"city,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	OpenHours       string           `json:"open_hours,omitempty"`
	PriceRange      string           `json:"price_range,omitempty"`
	Photos          []string         `json:"photos,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	GmapsEmbedURL   string           `json:"gmaps_embed_url,omitempty"`
	AcceptsDelivery bool             `json:"accepts_delivery"`
	CreatedAt       time.Time        `json:"created_at,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at,omitempty"`
}

// Slugify turns a display name into a URL-safe identifier. Anything that
// is not a letter or digit collapses into a single dash.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

type MerchantRepository interface {
	CreateMerchant(ctx context.Context, merchant *Merchant) (*Merchant, error)
	GetMerchantByID(ctx context.Context, id string) (*Merchant, error)
	GetMerchantBySlug(ctx context.Context, slug string) (*Merchant, error)
	GetMerchantByOwnerID(ctx context.Context, ownerID int64) (*Merchant, error)
	UpdateMerchant(ctx context.Context, id string, updates map[string]interface{}) (*Merchant, error)
	ListMerchants(ctx context.Context) ([]Merchant, error)
}

// StoreSettingsInput is the merchant-editable part of the store profile.
type StoreSettingsInput struct {
	Description     *string `json:"description"`
	Address         *string `json:"address"`
	City            *string `json:"city"`
	Phone           *string `json:"phone"`
	OpenHours       *string `json:"open_hours"`
	AcceptsDelivery *bool   `json:"accepts_delivery"`
}

type CatalogUseCase interface {
	ListMerchants(ctx context.Context, query string, category MerchantCategory) ([]Merchant, error)
	GetMerchantBySlug(ctx context.Context, slug string) (*Merchant, error)
	ListProductsBySlug(ctx context.Context, slug string) ([]Product, error)
}

type MerchantUseCase interface {
	RegisterMerchant(ctx context.Context, ownerID int64, name string, category MerchantCategory, description string) (*Merchant, error)
	GetOwnMerchant(ctx context.Context, ownerID int64) (*Merchant, error)
	UpdateStoreSettings(ctx context.Context, ownerID int64, input StoreSettingsInput) (*Merchant, error)
}
