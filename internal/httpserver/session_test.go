package httpserver

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vivero/internal/auth"
	"github.com/Skotchmaster/vivero/internal/storage"
	"github.com/Skotchmaster/vivero/pkg/tokens"
)

func TestLogin_Admin(t *testing.T) {
	env := newTestEnv(t)

	ck := login(t, env, "admin", "admin123")
	claims, err := tokens.AccessClaimsFromToken(ck.Value, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Administrador", claims.Name)

	var stored auth.User
	found, err := storage.LoadJSON(context.Background(), env.Storage, storage.KeyUser, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "admin", stored.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/login", loginRequest{Username: "admin", Password: "wrong"})
	err := env.Session.Login(c)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	assert.Empty(t, rec.Result().Cookies())
	assert.False(t, env.Auth.IsAuthenticated())
}

func TestLogin_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/login", "not an object")
	assert.Equal(t, http.StatusBadRequest, httpCode(t, env.Session.Login(c)))
}

func TestSession_CurrentAndLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, false, body["authenticated"])

	login(t, env, "user", "user123")
	rec = env.serve(http.MethodGet, "/api/v1/auth/session", nil)
	body = decode[map[string]any](t, rec)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, false, body["is_admin"])

	rec = env.serve(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Auth.IsAuthenticated())
	_, found, err := env.Storage.Get(context.Background(), storage.KeyUser)
	require.NoError(t, err)
	assert.False(t, found)
}
