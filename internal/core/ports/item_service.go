package ports

import (
	"context"

	"github.com/fitstore/storefront/internal/core/domain"
)

// CreateItemInput carries all data needed to list a new item.
type CreateItemInput struct {
	Title       string
	Description string
	Image       string
	LargeImage  string
	PriceCents  int64
}

// SearchResult is the lightweight view returned by Search: just enough to
// render a dropdown row.
type SearchResult struct {
	ID    string
	Image string
	Title string
}

// ListItemsResult is returned by List.
type ListItemsResult struct {
	Items      []domain.Item
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ItemService defines use-case operations for store items.
type ItemService interface {
	Create(ctx context.Context, userID string, input CreateItemInput) (*domain.Item, error)

	// Update applies a partial update. The acting user must own the item.
	Update(ctx context.Context, userID, itemID string, update ItemUpdate) (*domain.Item, error)

	// Delete removes an item, subject to domain.CanDeleteItem.
	Delete(ctx context.Context, userID, itemID string) error

	Get(ctx context.Context, itemID string) (*domain.Item, error)
	List(ctx context.Context, page, limit int) (*ListItemsResult, error)
	Search(ctx context.Context, term string) ([]SearchResult, error)
}
