package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vivero/internal/checkout"
)

var goodForm = checkout.Form{Name: "Ana López", Email: "ana@vivero.mx", Address: "Calle 60 #491", City: "Mérida", Zip: "97000"}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodGet, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[checkout.View](t, rec)
	assert.Equal(t, checkout.StateEmpty, v.State)
	assert.Equal(t, "Tu carrito está vacío", v.Message)

	rec = env.serve(http.MethodPost, "/api/v1/checkout", checkout.Form{Email: "x"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, checkout.StateEmpty, decode[checkout.View](t, rec).State)
}

func TestCheckout_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	env.serve(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 1})

	bad := goodForm
	bad.Email = "ana@vivero"
	bad.Zip = "970"
	rec := env.serve(http.MethodPost, "/api/v1/checkout", bad)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[map[string]any](t, rec)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "body: %v", body)
	assert.Equal(t, checkout.MsgInvalidEmail, errs["email"])
	assert.Equal(t, checkout.MsgInvalidZip, errs["zip"])
	assert.Equal(t, 1, env.Cart.Count())
}

func TestCheckout_Success(t *testing.T) {
	env := newTestEnv(t)
	env.serve(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 1})
	env.serve(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 3})

	rec := env.serve(http.MethodGet, "/api/v1/checkout", nil)
	v := decode[checkout.View](t, rec)
	require.Equal(t, checkout.StateForm, v.State)
	require.NotNil(t, v.Summary)
	assert.Equal(t, "$700.00 MXN", v.Summary.Total)
	assert.Equal(t, "Gratis", v.Summary.Shipping)

	rec = env.serve(http.MethodPost, "/api/v1/checkout", goodForm)
	require.Equal(t, http.StatusOK, rec.Code)
	v = decode[checkout.View](t, rec)
	assert.Equal(t, checkout.StateSuccess, v.State)
	assert.NotEmpty(t, v.OrderID)
	assert.True(t, env.Cart.Empty())

	rec = env.serve(http.MethodPost, "/api/v1/checkout/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, checkout.StateEmpty, decode[checkout.View](t, rec).State)
}

func TestCheckout_ValidateField(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout/validate", map[string]string{"field": "zip", "zip": "97-0a0"})
	require.NoError(t, env.Checkout.Validate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "9700", body["zip"])
	errs := body["errors"].(map[string]any)
	assert.Equal(t, checkout.MsgInvalidZip, errs["zip"])
	assert.NotContains(t, errs, "email")

	rec = env.serve(http.MethodPost, "/api/v1/checkout/validate", goodForm)
	body = decode[map[string]any](t, rec)
	assert.Equal(t, true, body["valid"])
}
