package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitstore/storefront/internal/api/metrics"
	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

// OrderHandler handles checkout and order reads.
type OrderHandler struct {
	checkout ports.CheckoutService
}

func NewOrderHandler(checkout ports.CheckoutService) *OrderHandler {
	return &OrderHandler{checkout: checkout}
}

type createOrderRequest struct {
	// Token is the payment-source token minted client-side by the gateway.
	Token string `json:"token" validate:"required"`
}

type orderItemResponse struct {
	Title      string `json:"title"`
	Image      string `json:"image"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	TotalCents int64               `json:"total_cents"`
	ChargeID   string              `json:"charge_id"`
	Items      []orderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, oi := range o.Items {
		items = append(items, orderItemResponse{
			Title:      oi.Title,
			Image:      oi.Image,
			PriceCents: oi.PriceCents,
			Quantity:   oi.Quantity,
		})
	}
	return orderResponse{
		ID:         o.ID,
		TotalCents: o.TotalCents,
		ChargeID:   o.ChargeID,
		Items:      items,
		CreatedAt:  o.CreatedAt,
	}
}

// Create charges the acting user's cart and creates the order.
//
// @Summary      Checkout
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Payment source token"
// @Success      201   {object}  orderResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.checkout.Checkout(c.Request().Context(), userID, req.Token)
	if err != nil {
		metrics.CheckoutFailuresTotal.Inc()
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderTotalCents.Observe(float64(order.TotalCents))
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get returns one of the acting user's orders.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	order, err := h.checkout.GetOrder(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// List returns the acting user's order history.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}  orderResponse
// @Failure      401  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.checkout.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, out)
}
