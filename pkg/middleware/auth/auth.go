package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vivero/pkg/logging"
	"github.com/Skotchmaster/vivero/pkg/tokens"
)

// SessionChecker tells whether userID still owns the live session. A token
// outliving a logout is rejected through it.
type SessionChecker interface {
	HoldsSession(userID string) bool
}

type AuthMiddleware struct {
	JWTSecret []byte
	Sessions  SessionChecker
}

func NewAuthMiddleware(secret []byte, sessions SessionChecker) *AuthMiddleware {
	return &AuthMiddleware{JWTSecret: secret, Sessions: sessions}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *AuthMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "auth")

		accessCookie, err := c.Cookie(tokens.AccessCookie)
		if err != nil || accessCookie.Value == "" {
			l.Warn("auth_failed", "status", 401, "reason", "missing access token")
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
		if err != nil || claims == nil {
			clearAuthCookies(c)
			l.Warn("auth_failed", "status", 401, "reason", "invalid access token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if m.Sessions != nil && !m.Sessions.HoldsSession(claims.Subject) {
			clearAuthCookies(c)
			l.Warn("auth_failed", "status", 401, "reason", "session ended", "user_id", claims.Subject)
			return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				l.Warn("auth_failed", "status", 403, "reason", "validator rejected", "user_id", claims.Subject)
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set("user_id", claims.Subject)
	c.Set("role", claims.Role)
}
