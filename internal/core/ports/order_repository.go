package ports

import (
	"context"

	"github.com/fitstore/storefront/internal/core/domain"
)

// OrderRepository defines persistence for completed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
