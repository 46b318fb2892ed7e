package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/vivero/pkg/middleware/auth"
)

type Deps struct {
	SessionHandler  *SessionHTTP
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	AdminHandler    *AdminHTTP

	JWTSecret []byte
	Sessions  middleware.SessionChecker

	// Ready reports whether backing services are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAuthMiddleware(d.JWTSecret, d.Sessions)

	api := e.Group("/api/v1")

	session := api.Group("/auth")
	session.POST("/login", d.SessionHandler.Login)
	session.POST("/logout", d.SessionHandler.Logout)
	session.GET("/session", d.SessionHandler.Current)

	catalog := api.Group("/catalog")
	catalog.GET("/categories", d.CatalogHandler.GetCategories)
	catalog.GET("/products", d.CatalogHandler.GetProducts)
	catalog.GET("/products/search", d.CatalogHandler.SearchProducts)
	catalog.GET("/products/:id", d.CatalogHandler.GetProduct)

	cart := api.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddItem)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/:id", d.CartHandler.RemoveItem)

	checkout := api.Group("/checkout")
	checkout.GET("", d.CheckoutHandler.GetCheckout)
	checkout.POST("", d.CheckoutHandler.Submit)
	checkout.POST("/validate", d.CheckoutHandler.Validate)
	checkout.POST("/reset", d.CheckoutHandler.Reset)

	admin := api.Group("/admin", authMW.RequireAdmin)
	admin.GET("/stats", d.AdminHandler.GetStats)
	admin.GET("/products", d.AdminHandler.GetProducts)
	admin.GET("/products/new", d.AdminHandler.NewForm)
	admin.GET("/products/:id/form", d.AdminHandler.EditForm)
	admin.POST("/products", d.AdminHandler.CreateProduct)
	admin.PUT("/products/:id", d.AdminHandler.UpdateProduct)
	admin.PATCH("/products/:id/status", d.AdminHandler.SetStatus)
	admin.DELETE("/products/:id", d.AdminHandler.DeleteProduct)
	admin.POST("/images", d.AdminHandler.UploadImage)
}
