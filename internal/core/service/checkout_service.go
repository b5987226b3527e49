package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

// CheckoutService runs the order-creation saga.
type CheckoutService struct {
	cart    ports.CartRepository
	orders  ports.OrderRepository
	users   ports.UserRepository
	gateway ports.PaymentGateway
	mail    ports.MailEnqueuer
	log     zerolog.Logger
}

func NewCheckoutService(
	cart ports.CartRepository,
	orders ports.OrderRepository,
	users ports.UserRepository,
	gateway ports.PaymentGateway,
	mail ports.MailEnqueuer,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{cart: cart, orders: orders, users: users, gateway: gateway, mail: mail, log: log}
}

// Checkout charges the user's cart and persists the resulting order.
//
// Sequence: read cart, total it, charge the gateway, snapshot the lines,
// persist the order, delete the charged cart lines. A charge failure leaves
// the cart untouched. If order persistence fails after a successful charge,
// the charge is refunded before the error is returned.
func (s *CheckoutService) Checkout(ctx context.Context, userID, paymentToken string) (*domain.Order, error) {
	lines, err := s.cart.LinesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	total := domain.Total(lines)

	chargeID, err := s.gateway.Charge(ctx, total, paymentToken, fmt.Sprintf("order for user %s", userID))
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Int64("total_cents", total).Msg("charge failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}

	order := &domain.Order{
		UserID:     userID,
		TotalCents: total,
		ChargeID:   chargeID,
		Items:      domain.SnapshotCart(lines),
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// Compensation: the money moved but the order did not land.
		s.log.Error().Err(err).Str("charge_id", chargeID).Msg("order persistence failed, refunding charge")
		if refundErr := s.gateway.Refund(ctx, chargeID); refundErr != nil {
			s.log.Error().Err(refundErr).Str("charge_id", chargeID).Msg("refund failed, manual reconciliation required")
		}
		return nil, fmt.Errorf("persist order: %w", err)
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.CartItem.ID)
	}
	if err := s.cart.DeleteByIDs(ctx, userID, ids); err != nil {
		// The order is persisted and correct; stale cart lines are the only
		// residue and can be removed on a later request.
		s.log.Warn().Err(err).Str("order_id", created.ID).Msg("failed to clear cart after checkout")
	}

	s.enqueueConfirmation(ctx, userID, created)

	s.log.Info().
		Str("order_id", created.ID).
		Str("user_id", userID).
		Str("charge_id", chargeID).
		Int64("total_cents", total).
		Msg("order created")

	return created, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// enqueueConfirmation sends the order confirmation mail, best effort.
func (s *CheckoutService) enqueueConfirmation(ctx context.Context, userID string, order *domain.Order) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("skipping confirmation mail")
		return
	}
	s.mail.Enqueue(ports.MailMessage{
		To:      user.Email,
		Subject: "Order confirmation",
		Body: fmt.Sprintf("Thanks %s! Your order of %d item(s) totalling $%.2f was received.",
			user.Name, len(order.Items), float64(order.TotalCents)/100),
	})
}
