package domain

import (
	"errors"
	"time"
)

var ErrCartItemNotFound = errors.New("cart item not found")
var ErrCartEmpty = errors.New("cart is empty")

// CartItem links a user to an item with a quantity. At most one CartItem
// exists per (user, item) pair; re-adding increments Quantity.
type CartItem struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	ItemID    string    `json:"item_id" bson:"item_id"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CartLine is a cart item joined with the item it references.
type CartLine struct {
	CartItem CartItem `json:"cart_item"`
	Item     Item     `json:"item"`
}

// Total returns the sum of price*quantity over all lines, in cents.
func Total(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Item.PriceCents * int64(l.CartItem.Quantity)
	}
	return total
}
