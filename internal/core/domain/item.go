package domain

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("item not found")

// Item is a product listed in the store. Prices are integer cents.
type Item struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image" bson:"image"`
	LargeImage  string    `json:"large_image" bson:"large_image"`
	PriceCents  int64     `json:"price_cents" bson:"price_cents"`
	UserID      string    `json:"user_id" bson:"user_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CanDeleteItem is the deletion policy: the actor must own the item and hold
// an elevated permission (ADMIN or ITEMDELETE). Both conditions are required,
// so an admin who does not own the item is denied.
func CanDeleteItem(actor *User, item *Item) bool {
	if actor == nil || item == nil {
		return false
	}
	owns := item.UserID == actor.ID
	elevated := actor.HasPermission(PermissionAdmin, PermissionItemDelete)
	return owns && elevated
}
