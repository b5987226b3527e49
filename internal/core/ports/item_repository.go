package ports

import (
	"context"

	"github.com/fitstore/storefront/internal/core/domain"
)

// ItemUpdate carries the mutable item fields for a partial update. Nil fields
// are left untouched. The item ID is intentionally absent: it is not updatable.
type ItemUpdate struct {
	Title       *string
	Description *string
	Image       *string
	LargeImage  *string
	PriceCents  *int64
}

// ItemRepository defines persistence for store items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, id string, update ItemUpdate) (*domain.Item, error)
	Delete(ctx context.Context, id string) error

	// List returns a page of items plus the total count.
	List(ctx context.Context, page, limit int) ([]domain.Item, int64, error)

	// Search matches term as a case-insensitive substring of title or
	// description.
	Search(ctx context.Context, term string, limit int) ([]domain.Item, error)
}
