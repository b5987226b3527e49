package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fitstore/storefront/internal/core/domain"
)

// stubOrderRepo is an in-memory ports.OrderRepository.
type stubOrderRepo struct {
	orders    map[string]*domain.Order
	nextID    int
	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	copy := *order
	r.nextID++
	copy.ID = fmt.Sprintf("order_%03d", r.nextID)
	r.orders[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	out := *o
	return &out, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

// stubGateway records charges and refunds.
type stubGateway struct {
	chargeErr error
	refundErr error
	charges   []int64
	refunds   []string
	nextID    int
}

func (g *stubGateway) Charge(_ context.Context, amountCents int64, sourceToken, description string) (string, error) {
	if g.chargeErr != nil {
		return "", g.chargeErr
	}
	g.nextID++
	g.charges = append(g.charges, amountCents)
	return fmt.Sprintf("ch_%03d", g.nextID), nil
}

func (g *stubGateway) Refund(_ context.Context, chargeID string) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunds = append(g.refunds, chargeID)
	return nil
}

type checkoutFixture struct {
	cart    *stubCartRepo
	items   *stubItemRepo
	orders  *stubOrderRepo
	users   *stubUserRepo
	gateway *stubGateway
	mail    *stubMailQueue
	svc     *CheckoutService
	userID  string
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	items := newStubItemRepo()
	cart := newStubCartRepo(items)
	orders := newStubOrderRepo()
	users := newStubUserRepo()
	gateway := &stubGateway{}
	mail := &stubMailQueue{}

	buyer := seedUser(users, "buyer@example.com", domain.PermissionUser)

	hat, _ := items.Create(context.Background(), &domain.Item{Title: "Hat", PriceCents: 2500, Image: "hat.jpg"})
	shoes, _ := items.Create(context.Background(), &domain.Item{Title: "Shoes", PriceCents: 9900, Image: "shoes.jpg"})

	cartSvc := NewCartService(cart, items, zerolog.Nop())
	if _, err := cartSvc.Add(context.Background(), buyer.ID, hat.ID, 2); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := cartSvc.Add(context.Background(), buyer.ID, shoes.ID, 1); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	return &checkoutFixture{
		cart:    cart,
		items:   items,
		orders:  orders,
		users:   users,
		gateway: gateway,
		mail:    mail,
		svc:     NewCheckoutService(cart, orders, users, gateway, mail, zerolog.Nop()),
		userID:  buyer.ID,
	}
}

func TestCheckout_Success(t *testing.T) {
	f := newCheckoutFixture(t)

	order, err := f.svc.Checkout(context.Background(), f.userID, "tok_visa")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	// 2×2500 + 1×9900
	if order.TotalCents != 14900 {
		t.Fatalf("expected total 14900, got %d", order.TotalCents)
	}
	if len(f.gateway.charges) != 1 || f.gateway.charges[0] != 14900 {
		t.Fatalf("gateway charged %v, want one charge of 14900", f.gateway.charges)
	}
	if order.ChargeID == "" {
		t.Fatalf("order missing charge reference")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(order.Items))
	}
	for _, oi := range order.Items {
		if oi.Title == "" || oi.PriceCents == 0 || oi.Quantity == 0 {
			t.Fatalf("snapshot line incomplete: %+v", oi)
		}
	}

	// Cart is cleared of the charged lines.
	lines, _ := f.cart.LinesByUser(context.Background(), f.userID)
	if len(lines) != 0 {
		t.Fatalf("cart should be empty after checkout, has %d lines", len(lines))
	}

	// Confirmation mail queued.
	if len(f.mail.sent) != 1 || f.mail.sent[0].To != "buyer@example.com" {
		t.Fatalf("expected confirmation mail, got %+v", f.mail.sent)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	if _, err := f.svc.Checkout(context.Background(), "someone_else", "tok_visa"); err != domain.ErrCartEmpty {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckout_ChargeFailureLeavesCartIntact(t *testing.T) {
	f := newCheckoutFixture(t)
	f.gateway.chargeErr = errors.New("card declined")

	_, err := f.svc.Checkout(context.Background(), f.userID, "tok_bad")
	if !errors.Is(err, domain.ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}

	if len(f.orders.orders) != 0 {
		t.Fatalf("no order should exist after failed charge")
	}
	lines, _ := f.cart.LinesByUser(context.Background(), f.userID)
	if len(lines) != 2 {
		t.Fatalf("cart must be untouched after failed charge, has %d lines", len(lines))
	}
	if len(f.gateway.refunds) != 0 {
		t.Fatalf("no refund should be issued when the charge failed")
	}
}

func TestCheckout_PersistenceFailureRefundsCharge(t *testing.T) {
	f := newCheckoutFixture(t)
	f.orders.createErr = errors.New("write failed")

	_, err := f.svc.Checkout(context.Background(), f.userID, "tok_visa")
	if err == nil {
		t.Fatalf("expected persistence error")
	}

	if len(f.gateway.charges) != 1 {
		t.Fatalf("charge should have been attempted once")
	}
	if len(f.gateway.refunds) != 1 {
		t.Fatalf("expected exactly one compensating refund, got %d", len(f.gateway.refunds))
	}
	lines, _ := f.cart.LinesByUser(context.Background(), f.userID)
	if len(lines) != 2 {
		t.Fatalf("cart must be untouched when the order did not persist")
	}
}

func TestCheckout_GetOrder_Ownership(t *testing.T) {
	f := newCheckoutFixture(t)

	order, err := f.svc.Checkout(context.Background(), f.userID, "tok_visa")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	got, err := f.svc.GetOrder(context.Background(), f.userID, order.ID)
	if err != nil || got.ID != order.ID {
		t.Fatalf("owner should read own order: %v", err)
	}

	if _, err := f.svc.GetOrder(context.Background(), "intruder", order.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign order, got %v", err)
	}
	if _, err := f.svc.GetOrder(context.Background(), f.userID, "missing"); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
