package ports

import (
	"context"

	"github.com/fitstore/storefront/internal/core/domain"
)

// CheckoutService coordinates the order-creation sequence: cart read, charge,
// order persistence, cart clearing, with refund compensation when persistence
// fails after a successful charge.
type CheckoutService interface {
	Checkout(ctx context.Context, userID, paymentToken string) (*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

// PaymentGateway abstracts the external payment processor.
type PaymentGateway interface {
	// Charge captures amountCents against the caller-supplied source token and
	// returns the processor's charge identifier.
	Charge(ctx context.Context, amountCents int64, sourceToken, description string) (string, error)

	// Refund reverses a previously captured charge. Used as the saga
	// compensation step.
	Refund(ctx context.Context, chargeID string) error
}
