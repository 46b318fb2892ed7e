package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vivero/internal/admin"
	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

const maxImageSize = 10 << 20

type AdminHTTP struct {
	Dashboard *admin.Dashboard
}

func (h *AdminHTTP) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Dashboard.Stats())
}

func (h *AdminHTTP) GetProducts(c echo.Context) error {
	f := admin.Filter{Category: c.QueryParam("category"), Status: c.QueryParam("status")}
	if f.Category == "" {
		f.Category = catalog.All
	}
	if f.Status == "" {
		f.Status = catalog.All
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":   h.Dashboard.List(f),
		"filter": f,
	})
}

func (h *AdminHTTP) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, admin.NewForm())
}

func (h *AdminHTTP) EditForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.edit_form")

	id, err := parseID(c)
	if err != nil {
		l.Warn("edit_form_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	form, err := h.Dashboard.EditForm(id)
	if err != nil {
		l.Warn("edit_form_error", "status", 404, "reason", "product not found", "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, form)
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var form admin.ProductForm
	if err := c.Bind(&form); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Dashboard.Save(ctx, nil, form)
	if err != nil {
		return h.saveError(c, "product_create_error", err)
	}

	l.Info("create_product_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var form admin.ProductForm
	if err := c.Bind(&form); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Dashboard.Save(ctx, &id, form)
	if err != nil {
		return h.saveError(c, "product_update_error", err)
	}

	l.Info("update_product_success", "product_id", p.ID)
	return c.JSON(http.StatusOK, p)
}

type statusRequest struct {
	Status catalog.Status `json:"status"`
}

func (h *AdminHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.set_status")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_status_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Dashboard.SetStatus(ctx, id, req.Status)
	if err != nil {
		return h.saveError(c, "product_status_error", err)
	}

	l.Info("product_status_success", "product_id", p.ID, "product_status", p.Status)
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	if err := h.Dashboard.Delete(ctx, id, confirmed); err != nil {
		switch {
		case errors.Is(err, admin.ErrConfirmationRequired):
			l.Warn("product_delete_error", "status", 428, "reason", "not confirmed", "product_id", id)
			return echo.NewHTTPError(http.StatusPreconditionRequired, "delete requires confirmation")
		case errors.Is(err, admin.ErrNotFound):
			l.Warn("product_delete_error", "status", 404, "reason", "product not found", "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("product_delete_error", "status", 500, "reason", "cannot persist catalog", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot persist catalog")
		}
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.upload_image")

	fh, err := c.FormFile("image")
	if err != nil {
		l.Warn("image_upload_error", "status", 400, "reason", "missing image file", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "missing image file")
	}
	if fh.Size > maxImageSize {
		l.Warn("image_upload_error", "status", 413, "reason", "image too large", "size", fh.Size)
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}
	file, err := fh.Open()
	if err != nil {
		l.Error("image_upload_error", "status", 500, "reason", "cannot open upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot open upload")
	}
	defer file.Close()

	url, err := h.Dashboard.UploadImage(ctx, fh.Filename, file)
	if err != nil {
		if errors.Is(err, admin.ErrUploadsDisabled) {
			l.Warn("image_upload_error", "status", 503, "reason", "uploads disabled")
			return echo.NewHTTPError(http.StatusServiceUnavailable, "image uploads are not configured")
		}
		l.Error("image_upload_error", "status", 502, "reason", "upload failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "upload failed")
	}

	l.Info("image_upload_success", "file", fh.Filename)
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

func (h *AdminHTTP) saveError(c echo.Context, event string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "admin")

	var ferr *admin.FormError
	switch {
	case errors.As(err, &ferr):
		l.Warn(event, "status", 400, "reason", "invalid form", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"message": "invalid form",
			"errors":  ferr.Fields,
		})
	case errors.Is(err, admin.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "product not found")
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	default:
		l.Error(event, "status", 500, "reason", "cannot persist catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot persist catalog")
	}
}
