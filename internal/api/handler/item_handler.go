package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fitstore/storefront/internal/api/metrics"
	"github.com/fitstore/storefront/internal/core/ports"
)

// ItemHandler handles the item listing endpoints.
type ItemHandler struct {
	items ports.ItemService
}

func NewItemHandler(items ports.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// Create lists a new item owned by the acting user.
//
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      createItemRequest  true  "Item details"
// @Success      201   {object}  itemResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.items.Create(c.Request().Context(), userID, ports.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// Update applies a partial update to an item the acting user owns.
//
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Item ID"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  itemResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /items/{id} [patch]
func (h *ItemHandler) Update(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.items.Update(c.Request().Context(), userID, c.Param("id"), toItemUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete removes an item, subject to the ownership-and-permission policy.
//
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.items.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns a single item.
//
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        id  path      string  true  "Item ID"
// @Success      200 {object}  itemResponse
// @Failure      404 {object}  errorResponse
// @Router       /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.items.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// List returns a page of items.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listItemsResponse
// @Router       /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.items.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	data := make([]itemResponse, 0, len(result.Items))
	for i := range result.Items {
		data = append(data, toItemResponse(&result.Items[i]))
	}
	return c.JSON(http.StatusOK, listItemsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Search matches the query term against item titles and descriptions.
//
// @Summary      Search items
// @Tags         items
// @Produce      json
// @Param        q    query     string  true  "Search term"
// @Success      200  {array}   searchResultResponse
// @Router       /items/search [get]
func (h *ItemHandler) Search(c echo.Context) error {
	results, err := h.items.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	metrics.SearchesTotal.Inc()

	out := make([]searchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, searchResultResponse{ID: r.ID, Image: r.Image, Title: r.Title})
	}
	return c.JSON(http.StatusOK, out)
}
