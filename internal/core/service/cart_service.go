package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

// CartService implements cart mutations and reads.
type CartService struct {
	cart  ports.CartRepository
	items ports.ItemRepository
	log   zerolog.Logger
}

func NewCartService(cart ports.CartRepository, items ports.ItemRepository, log zerolog.Logger) *CartService {
	return &CartService{cart: cart, items: items, log: log}
}

// Add upserts a cart line for (user, item): an existing line has its quantity
// incremented, otherwise a new line is created.
func (s *CartService) Add(ctx context.Context, userID, itemID string, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	// Item must exist before it can be carted.
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	existing, err := s.cart.FindByUserAndItem(ctx, userID, itemID)
	switch {
	case err == nil:
		return s.cart.IncrementQuantity(ctx, existing.ID, quantity)
	case errors.Is(err, domain.ErrCartItemNotFound):
		now := time.Now().UTC()
		return s.cart.Create(ctx, &domain.CartItem{
			UserID:    userID,
			ItemID:    itemID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	default:
		return nil, err
	}
}

// Remove deletes a cart line owned by the acting user.
func (s *CartService) Remove(ctx context.Context, userID, cartItemID string) error {
	ci, err := s.cart.FindByID(ctx, cartItemID)
	if err != nil {
		return err
	}
	if ci.UserID != userID {
		return domain.ErrForbidden
	}
	return s.cart.Delete(ctx, cartItemID)
}

func (s *CartService) Lines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return s.cart.LinesByUser(ctx, userID)
}
