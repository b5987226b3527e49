package ports

import (
	"context"

	"github.com/fitstore/storefront/internal/core/domain"
)

// CartService defines use-case operations for the shopping cart.
type CartService interface {
	// Add puts quantity of an item into the user's cart. A repeat add for the
	// same item increments the existing line instead of duplicating it.
	Add(ctx context.Context, userID, itemID string, quantity int) (*domain.CartItem, error)

	// Remove deletes a cart item. It must exist and belong to the acting user.
	Remove(ctx context.Context, userID, cartItemID string) error

	// Lines returns the user's cart with item detail.
	Lines(ctx context.Context, userID string) ([]domain.CartLine, error)
}
