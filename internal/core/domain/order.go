package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrPaymentFailed = errors.New("payment failed")
var ErrMailDelivery = errors.New("mail delivery failed")

// OrderItem is an immutable snapshot of a purchased item at checkout time.
// The source item's ID is deliberately not carried: later edits or deletion
// of the listing must not affect past orders.
type OrderItem struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Image       string `json:"image" bson:"image"`
	LargeImage  string `json:"large_image" bson:"large_image"`
	PriceCents  int64  `json:"price_cents" bson:"price_cents"`
	Quantity    int    `json:"quantity" bson:"quantity"`
}

// Order records a completed purchase. Immutable after creation.
type Order struct {
	ID         string      `json:"id" bson:"_id,omitempty"`
	UserID     string      `json:"user_id" bson:"user_id"`
	TotalCents int64       `json:"total_cents" bson:"total_cents"`
	ChargeID   string      `json:"charge_id" bson:"charge_id"`
	Items      []OrderItem `json:"items" bson:"items"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
}

// SnapshotCart converts cart lines into order-line snapshots.
func SnapshotCart(lines []CartLine) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			Title:       l.Item.Title,
			Description: l.Item.Description,
			Image:       l.Item.Image,
			LargeImage:  l.Item.LargeImage,
			PriceCents:  l.Item.PriceCents,
			Quantity:    l.CartItem.Quantity,
		})
	}
	return items
}
