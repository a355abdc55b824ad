package cartstore

import (
	"context"
	"errors"

	"pasarumkm/internal/domain"
)

// Store keeps one CartState per session token. Carts are ephemeral: both
// implementations expire them after a TTL, mirroring the original
// session-only lifetime.
type Store interface {
	Get(ctx context.Context, token string) (*domain.CartState, error)
	Set(ctx context.Context, token string, cart *domain.CartState) error
	Delete(ctx context.Context, token string) error
}

var ErrCartNotFound = errors.New("cart not found")
