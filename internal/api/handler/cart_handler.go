package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitstore/storefront/internal/api/metrics"
	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

// CartHandler handles shopping-cart endpoints.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type addToCartRequest struct {
	ItemID   string `json:"item_id"  validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,gt=0"`
}

type cartItemResponse struct {
	ID       string `json:"id"`
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type cartLineResponse struct {
	CartItem cartItemResponse `json:"cart_item"`
	Item     itemResponse     `json:"item"`
}

type cartResponse struct {
	Lines      []cartLineResponse `json:"lines"`
	TotalCents int64              `json:"total_cents"`
}

func toCartItemResponse(ci *domain.CartItem) cartItemResponse {
	return cartItemResponse{ID: ci.ID, ItemID: ci.ItemID, Quantity: ci.Quantity}
}

// Add puts an item into the acting user's cart.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Item and quantity"
// @Success      200   {object}  cartItemResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ci, err := h.cart.Add(c.Request().Context(), userID, req.ItemID, req.Quantity)
	if err != nil {
		return err
	}
	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, toCartItemResponse(ci))
}

// Remove deletes a line from the acting user's cart.
//
// @Summary      Remove from cart
// @Tags         cart
// @Produce      json
// @Param        id  path  string  true  "Cart item ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.cart.Remove(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Get returns the acting user's cart with item detail and running total.
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	lines, err := h.cart.Lines(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]cartLineResponse, 0, len(lines))
	for i := range lines {
		out = append(out, cartLineResponse{
			CartItem: toCartItemResponse(&lines[i].CartItem),
			Item:     toItemResponse(&lines[i].Item),
		})
	}
	return c.JSON(http.StatusOK, cartResponse{Lines: out, TotalCents: domain.Total(lines)})
}
