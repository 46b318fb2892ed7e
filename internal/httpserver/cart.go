package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vivero/internal/cart"
	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/checkout"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

type CartHTTP struct {
	Cart    *cart.Store
	Catalog *catalog.Store
	// Checkout, when set, blocks additions while a payment is processing.
	Checkout *checkout.Flow
}

type cartView struct {
	Items        []cart.Item `json:"items"`
	Count        int         `json:"count"`
	Total        float64     `json:"total"`
	TotalDisplay string      `json:"total_display"`
}

func (h *CartHTTP) view() cartView {
	items := h.Cart.Items()
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	total := cart.Total(items)
	return cartView{Items: items, Count: n, Total: total, TotalDisplay: cart.FormatTotal(total)}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view())
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_add_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, ok := h.Catalog.ByID(req.ProductID)
	if !ok {
		l.Warn("cart_add_error", "status", 404, "reason", "product not found", "product_id", req.ProductID)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	if !p.Purchasable() {
		l.Warn("cart_add_error", "status", 409, "reason", "product not available", "product_id", p.ID, "product_status", p.Status)
		return echo.NewHTTPError(http.StatusConflict, "product not available")
	}

	if h.Checkout != nil && h.Checkout.Processing() {
		l.Warn("cart_add_error", "status", 409, "reason", "payment in progress", "product_id", p.ID)
		return echo.NewHTTPError(http.StatusConflict, "payment in progress")
	}

	line := h.Cart.Add(ctx, p)
	l.Info("cart_add_success", "product_id", p.ID, "quantity", line.Quantity)
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	id, err := parseID(c)
	if err != nil {
		l.Warn("cart_remove_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	removed := h.Cart.Remove(ctx, id)
	l.Info("cart_remove_success", "product_id", id, "removed", removed)
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	h.Cart.Clear(ctx)
	logging.FromContext(ctx).With("handler", "cart.clear").Info("cart_clear_success")
	return c.JSON(http.StatusOK, h.view())
}
