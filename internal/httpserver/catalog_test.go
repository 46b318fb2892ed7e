package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/util"
)

type productsResponse struct {
	Page catalog.Page      `json:"page"`
	Data []catalog.Product `json:"data"`
	Meta util.Meta         `json:"meta"`
}

func TestGetProducts_ByCategory(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query string
		title string
		want  int
	}{
		{query: "", title: "Catálogo", want: 8},
		{query: "?category=all", title: "Catálogo", want: 8},
		{query: "?category=plantas", title: "Plantas", want: 4},
		{query: "?category=macetas", title: "Macetas", want: 2},
		{query: "?category=suplementos", title: "Suplementos", want: 2},
	}

	for _, tt := range tests {
		rec := env.serve(http.MethodGet, "/api/v1/catalog/products"+tt.query, nil)
		require.Equal(t, http.StatusOK, rec.Code, tt.query)
		resp := decode[productsResponse](t, rec)
		assert.Len(t, resp.Data, tt.want, tt.query)
		assert.EqualValues(t, tt.want, resp.Meta.Total, tt.query)
		assert.Equal(t, tt.title, resp.Page.Title, tt.query)
	}
}

func TestGetProducts_Pagination(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodGet, "/api/v1/catalog/products?page=3&size=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[productsResponse](t, rec)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, 7, resp.Data[0].ID)
	assert.True(t, resp.Meta.HasPrev)
	assert.False(t, resp.Meta.HasNext)
	assert.EqualValues(t, 3, resp.Meta.TotalPages)
}

func TestGetProducts_HugePage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodGet, "/api/v1/catalog/products?page=100000000000000000&size=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[productsResponse](t, rec)
	assert.Empty(t, resp.Data)
	assert.EqualValues(t, 8, resp.Meta.Total)
	assert.False(t, resp.Meta.HasNext)

	rec = env.serve(http.MethodGet, "/api/v1/catalog/products/search?q=maceta&page=100000000000000000&size=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[productsResponse](t, rec).Data)
}

func TestGetProducts_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodGet, "/api/v1/catalog/products?category=arboles", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/catalog/products/5", nil)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, env.CatalogH.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	p := decode[catalog.Product](t, rec)
	assert.Equal(t, "Orquídea Real", p.Name)
	assert.Equal(t, catalog.StatusVendido, p.Status)

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/catalog/products/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	assert.Equal(t, http.StatusNotFound, httpCode(t, env.CatalogH.GetProduct(c)))

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/catalog/products/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	assert.Equal(t, http.StatusBadRequest, httpCode(t, env.CatalogH.GetProduct(c)))
}

func TestSearchProducts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodGet, "/api/v1/catalog/products/search?q=cactus", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[productsResponse](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 6, resp.Data[0].ID)

	rec = env.serve(http.MethodGet, "/api/v1/catalog/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodGet, "/api/v1/catalog/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[struct {
		Data []catalog.Page `json:"data"`
	}](t, rec)
	assert.Len(t, resp.Data, 4)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.serve(http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, env.serve(http.MethodGet, "/health/ready", nil).Code)
}
