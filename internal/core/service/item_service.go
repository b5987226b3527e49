package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	searchLimit      = 10
)

// ItemService implements the item listing use-cases.
type ItemService struct {
	items ports.ItemRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewItemService(items ports.ItemRepository, users ports.UserRepository, log zerolog.Logger) *ItemService {
	return &ItemService{items: items, users: users, log: log}
}

func (s *ItemService) Create(ctx context.Context, userID string, input ports.CreateItemInput) (*domain.Item, error) {
	now := time.Now().UTC()
	item := &domain.Item{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		LargeImage:  input.LargeImage,
		PriceCents:  input.PriceCents,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to create item")
		return nil, err
	}

	s.log.Info().Str("item_id", created.ID).Str("user_id", userID).Msg("item created")
	return created, nil
}

// Update applies a partial update after verifying the actor owns the item.
func (s *ItemService) Update(ctx context.Context, userID, itemID string, update ports.ItemUpdate) (*domain.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domain.ErrForbidden
	}

	return s.items.Update(ctx, itemID, update)
}

// Delete removes an item when domain.CanDeleteItem allows it.
func (s *ItemService) Delete(ctx context.Context, userID, itemID string) error {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}

	actor, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !domain.CanDeleteItem(actor, item) {
		return domain.ErrForbidden
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}

	s.log.Info().Str("item_id", itemID).Str("user_id", userID).Msg("item deleted")
	return nil
}

func (s *ItemService) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.items.FindByID(ctx, itemID)
}

func (s *ItemService) List(ctx context.Context, page, limit int) (*ports.ListItemsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.items.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListItemsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Search returns id/image/title triples for items whose title or description
// contains term. A blank term matches nothing.
func (s *ItemService) Search(ctx context.Context, term string) ([]ports.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []ports.SearchResult{}, nil
	}

	items, err := s.items.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]ports.SearchResult, 0, len(items))
	for _, it := range items {
		results = append(results, ports.SearchResult{ID: it.ID, Image: it.Image, Title: it.Title})
	}
	return results, nil
}
