package ports

import (
	"context"

	"github.com/fitstore/storefront/internal/core/domain"
)

// CartRepository defines persistence for cart items.
type CartRepository interface {
	Create(ctx context.Context, ci *domain.CartItem) (*domain.CartItem, error)
	FindByID(ctx context.Context, id string) (*domain.CartItem, error)
	FindByUserAndItem(ctx context.Context, userID, itemID string) (*domain.CartItem, error)

	// IncrementQuantity adds by to the cart item's quantity and returns the
	// updated record.
	IncrementQuantity(ctx context.Context, id string, by int) (*domain.CartItem, error)

	Delete(ctx context.Context, id string) error

	// LinesByUser returns the user's cart items joined with their items.
	LinesByUser(ctx context.Context, userID string) ([]domain.CartLine, error)

	// DeleteByIDs removes the given cart items belonging to userID.
	DeleteByIDs(ctx context.Context, userID string, ids []string) error
}
