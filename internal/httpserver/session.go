package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vivero/internal/auth"
	"github.com/Skotchmaster/vivero/pkg/logging"
	"github.com/Skotchmaster/vivero/pkg/tokens"
)

type SessionHTTP struct {
	Auth      *auth.Store
	JWTSecret []byte
	TTL       time.Duration
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *SessionHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			l.Warn("login_failed", "status", 401, "username", req.Username)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		default:
			l.Error("login_failed", "status", 500, "reason", "cannot persist session", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot persist session")
		}
	}

	exp := time.Now().Add(h.TTL)
	token, err := tokens.CreateAccessToken(h.JWTSecret, u.ID, u.Username, u.Name, string(u.Role), exp)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, token, "/", exp))

	l.Info("login_successful", "user_id", u.ID, "role", u.Role)
	return c.JSON(http.StatusOK, echo.Map{
		"user":     u,
		"is_admin": u.IsAdmin(),
	})
}

func (h *SessionHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	if err := h.Auth.Logout(ctx); err != nil {
		l.Error("logout_failed", "status", 500, "reason", "cannot clear session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear session")
	}

	l.Info("successful_logout")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
	})
}

func (h *SessionHTTP) Current(c echo.Context) error {
	u, ok := h.Auth.Current()
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{
			"authenticated": false,
			"is_admin":      false,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"is_admin":      u.IsAdmin(),
		"user":          u,
	})
}
