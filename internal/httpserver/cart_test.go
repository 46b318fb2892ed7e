package httpserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vivero/internal/cart"
	"github.com/Skotchmaster/vivero/internal/checkout"
	"github.com/Skotchmaster/vivero/internal/events"
)

func TestCart_AddMergeAndTotals(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 1})
		require.NoError(t, env.CartH.AddItem(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.serve(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[cartView](t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, 3, view.Count)
	assert.InDelta(t, 1350.0, view.Total, 1e-9)
	assert.Equal(t, "$1350.00 MXN", view.TotalDisplay)
}

func TestCart_AddUnknownOrUnavailable(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 404})
	assert.Equal(t, http.StatusNotFound, httpCode(t, env.CartH.AddItem(c)))

	_, c = env.doJSONRequest(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 5})
	assert.Equal(t, http.StatusConflict, httpCode(t, env.CartH.AddItem(c)))

	assert.True(t, env.Cart.Empty())
}

func TestCart_RemoveAndClear(t *testing.T) {
	env := newTestEnv(t)

	env.serve(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 1})
	env.serve(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 3})
	env.serve(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 1})

	rec := env.serve(http.MethodDelete, "/api/v1/cart/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[cartView](t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].ID)
	assert.InDelta(t, 250.0, view.Total, 1e-9)

	rec = env.serve(http.MethodDelete, "/api/v1/cart/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.serve(http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[cartView](t, rec).Count)
}

func TestCart_AddRejectedWhilePaymentProcessing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cartStore := cart.NewStore(events.NewBus[cart.Event]())
	flow := checkout.NewFlow(cartStore, 200*time.Millisecond, events.NewBus[checkout.Completed]())
	h := &CartHTTP{Cart: cartStore, Catalog: env.Catalog, Checkout: flow}

	monstera, ok := env.Catalog.ByID(1)
	require.True(t, ok)
	cartStore.Add(ctx, monstera)

	done := make(chan error, 1)
	go func() {
		_, err := flow.Submit(ctx, checkout.Form{
			Name: "Ana", Email: "ana@example.com", Address: "Calle 1", City: "Mérida", Zip: "97000",
		})
		done <- err
	}()
	require.Eventually(t, flow.Processing, time.Second, 5*time.Millisecond)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 2})
	assert.Equal(t, http.StatusConflict, httpCode(t, h.AddItem(c)))

	require.NoError(t, <-done)
	assert.True(t, cartStore.Empty())

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", addItemRequest{ProductID: 2})
	require.NoError(t, h.AddItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, cartStore.Count())
}
