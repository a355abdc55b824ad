package domain

import (
	"context"
	"time"
)

type Address struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	Label      string    `json:"label"`
	Recipient  string    `json:"recipient"`
	Phone      string    `json:"phone"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code,omitempty"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AddressRepository interface {
	CreateAddress(ctx context.Context, address *Address) (*Address, error)
	GetAddressByID(ctx context.Context, id int64) (*Address, error)
	ListAddressesByUserID(ctx context.Context, userID int64) ([]Address, error)
	UpdateAddress(ctx context.Context, id int64, updates map[string]interface{}) (*Address, error)
	DeleteAddress(ctx context.Context, id int64) error
	SetPrimaryAddress(ctx context.Context, userID, addressID int64) error
}

type AddressUseCase interface {
	CreateAddress(ctx context.Context, userID int64, address *Address) (*Address, error)
	ListAddresses(ctx context.Context, userID int64) ([]Address, error)
	UpdateAddress(ctx context.Context, userID, addressID int64, updates map[string]interface{}) (*Address, error)
	DeleteAddress(ctx context.Context, userID, addressID int64) error
	SetPrimary(ctx context.Context, userID, addressID int64) error
}
