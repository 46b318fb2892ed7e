package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vivero/internal/checkout"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

type CheckoutHTTP struct {
	Flow *checkout.Flow
}

func (h *CheckoutHTTP) GetCheckout(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Flow.View())
}

type validateRequest struct {
	checkout.Form
	// Field limits validation to one input, as on blur.
	Field string `json:"field"`
}

func (h *CheckoutHTTP) Validate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.validate")

	var req validateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_validate_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.Zip = checkout.SanitizeZip(req.Zip)

	errs := checkout.FieldErrors{}
	if req.Field != "" {
		if msg, ok := checkout.ValidateField(req.Field, fieldValue(req.Form, req.Field)); !ok {
			errs[req.Field] = msg
		}
	} else {
		errs = checkout.Validate(req.Form)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"valid":  len(errs) == 0,
		"errors": errs,
		"zip":    req.Zip,
	})
}

func fieldValue(f checkout.Form, field string) string {
	switch field {
	case "name":
		return f.Name
	case "email":
		return f.Email
	case "address":
		return f.Address
	case "city":
		return f.City
	case "zip":
		return f.Zip
	}
	return ""
}

func (h *CheckoutHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.submit")

	var form checkout.Form
	if err := c.Bind(&form); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Flow.Submit(ctx, form)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			l.Warn("checkout_error", "status", 422, "reason", "invalid form", "error", err)
			return echo.NewHTTPError(http.StatusUnprocessableEntity, echo.Map{
				"message": "invalid form",
				"errors":  verr.Fields,
			})
		case errors.Is(err, checkout.ErrProcessing):
			l.Warn("checkout_error", "status", 409, "reason", "payment in progress")
			return echo.NewHTTPError(http.StatusConflict, "payment already in progress")
		default:
			l.Error("checkout_error", "status", 500, "reason", "checkout failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "checkout failed")
		}
	}

	if view.State == checkout.StateSuccess {
		l.Info("checkout_success", "order_id", view.OrderID)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHTTP) Reset(c echo.Context) error {
	h.Flow.Reset()
	return c.JSON(http.StatusOK, h.Flow.View())
}
