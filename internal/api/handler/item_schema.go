package handler

import (
	"time"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

type createItemRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	LargeImage  string `json:"large_image"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
}

// updateItemRequest carries a partial update. The item ID comes from the URL
// only; an id member in the body is ignored.
type updateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	LargeImage  *string `json:"large_image"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gt=0"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	LargeImage  string    `json:"large_image"`
	PriceCents  int64     `json:"price_cents"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type searchResultResponse struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Title string `json:"title"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listItemsResponse struct {
	Data       []itemResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toItemResponse(it *domain.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Image:       it.Image,
		LargeImage:  it.LargeImage,
		PriceCents:  it.PriceCents,
		UserID:      it.UserID,
		CreatedAt:   it.CreatedAt,
	}
}

func toItemUpdate(req updateItemRequest) ports.ItemUpdate {
	return ports.ItemUpdate{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
		PriceCents:  req.PriceCents,
	}
}
