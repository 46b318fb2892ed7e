package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/vivero/internal/admin"
	"github.com/Skotchmaster/vivero/internal/auth"
	"github.com/Skotchmaster/vivero/internal/cart"
	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/checkout"
	"github.com/Skotchmaster/vivero/internal/events"
	"github.com/Skotchmaster/vivero/internal/search"
	"github.com/Skotchmaster/vivero/internal/storage"
	"github.com/Skotchmaster/vivero/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	E       *echo.Echo
	Storage *storage.MemoryStore
	Auth    *auth.Store
	Catalog *catalog.Store
	Cart    *cart.Store
	Flow    *checkout.Flow

	Session  *SessionHTTP
	CatalogH *CatalogHTTP
	CartH    *CartHTTP
	Checkout *CheckoutHTTP
	Admin    *AdminHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	mem := storage.NewMemoryStore()
	authStore, err := auth.NewStore(ctx, mem, auth.Options{HashCost: bcrypt.MinCost})
	require.NoError(t, err)
	catalogStore, err := catalog.NewStore(ctx, mem, events.NewBus[catalog.Change]())
	require.NoError(t, err)
	cartStore := cart.NewStore(events.NewBus[cart.Event]())
	flow := checkout.NewFlow(cartStore, 0, events.NewBus[checkout.Completed]())

	env := &testEnv{
		E:        echo.New(),
		Storage:  mem,
		Auth:     authStore,
		Catalog:  catalogStore,
		Cart:     cartStore,
		Flow:     flow,
		Session:  &SessionHTTP{Auth: authStore, JWTSecret: testSecret, TTL: time.Hour},
		CatalogH: &CatalogHTTP{Catalog: catalogStore, Search: &search.Memory{Catalog: catalogStore}},
		CartH:    &CartHTTP{Cart: cartStore, Catalog: catalogStore, Checkout: flow},
		Checkout: &CheckoutHTTP{Flow: flow},
		Admin:    &AdminHTTP{Dashboard: &admin.Dashboard{Catalog: catalogStore}},
	}

	Register(env.E, &Deps{
		SessionHandler:  env.Session,
		CatalogHandler:  env.CatalogH,
		CartHandler:     env.CartH,
		CheckoutHandler: env.Checkout,
		AdminHandler:    env.Admin,
		JWTSecret:       testSecret,
		Sessions:        authStore,
	})
	return env
}

// doJSONRequest builds a context for calling a handler directly.
func (env *testEnv) doJSONRequest(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

// serve routes a request through the full router and middleware stack.
func (env *testEnv) serve(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, env *testEnv, username, password string) *http.Cookie {
	t.Helper()
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/login", loginRequest{Username: username, Password: password})
	require.NoError(t, env.Session.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == tokens.AccessCookie {
			return &http.Cookie{Name: ck.Name, Value: ck.Value, Path: "/"}
		}
	}
	t.Fatal("login did not set the access cookie")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}
