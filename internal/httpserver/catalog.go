package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/search"
	"github.com/Skotchmaster/vivero/internal/util"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

type CatalogHTTP struct {
	Catalog *catalog.Store
	Search  search.Searcher
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": catalog.Pages()})
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	category := c.QueryParam("category")
	if category == "" {
		category = catalog.All
	}
	page, ok := catalog.PageFor(category)
	if !ok {
		l.Warn("get_products_error", "status", 400, "reason", "unknown category", "category", category)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}

	pageNum := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(pageNum, size)

	items := h.Catalog.ByCategory(category)
	from, to := util.Window(len(items), offset, limit)

	l.Info("get_products_success", "category", category, "total", len(items))
	return c.JSON(http.StatusOK, echo.Map{
		"page": page,
		"data": items[from:to],
		"meta": util.NewMeta(pageNum, offset, limit, int64(len(items))),
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	p, ok := h.Catalog.ByID(id)
	if !ok {
		l.Warn("get_product_failed", "status", 404, "reason", "product not found", "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_error", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	pageNum := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(pageNum, size)

	total, items, err := h.Search.Search(ctx, q, offset, limit)
	if err != nil {
		l.Error("search_error", "status", 502, "reason", "search backend failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search unavailable")
	}

	l.Info("search_success", "query", q, "total", total)
	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": util.NewMeta(pageNum, offset, limit, total),
	})
}
