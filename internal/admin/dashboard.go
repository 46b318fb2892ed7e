// Package admin implements the product management dashboard on top of the
// catalog store. Callers are expected to have checked the admin session.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Skotchmaster/vivero/internal/catalog"
)

var (
	ErrNotFound             = errors.New("product not found")
	ErrConfirmationRequired = errors.New("delete requires confirmation")
	ErrUploadsDisabled      = errors.New("image uploads are not configured")
)

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

type Dashboard struct {
	Catalog  *catalog.Store
	Uploader ImageUploader
}

type Filter struct {
	Category string `json:"category" query:"category"`
	Status   string `json:"status"   query:"status"`
}

func (f Filter) matches(p catalog.Product) bool {
	catOK := f.Category == "" || f.Category == catalog.All || string(p.Category) == f.Category
	statusOK := f.Status == "" || f.Status == catalog.All || string(p.Status) == f.Status
	return catOK && statusOK
}

func (d *Dashboard) List(f Filter) []catalog.Product {
	all := d.Catalog.All()
	out := make([]catalog.Product, 0, len(all))
	for _, p := range all {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

type Stats struct {
	Total      int `json:"total"`
	Disponible int `json:"disponible"`
	Vendido    int `json:"vendido"`
	Agotado    int `json:"agotado"`
}

func (d *Dashboard) Stats() Stats {
	var s Stats
	for _, p := range d.Catalog.All() {
		s.Total++
		switch p.Status {
		case catalog.StatusDisponible:
			s.Disponible++
		case catalog.StatusVendido:
			s.Vendido++
		case catalog.StatusAgotado:
			s.Agotado++
		}
	}
	return s
}

// EditForm returns the form pre-filled with product id.
func (d *Dashboard) EditForm(id int) (ProductForm, error) {
	p, ok := d.Catalog.ByID(id)
	if !ok {
		return ProductForm{}, ErrNotFound
	}
	return FormFromProduct(p), nil
}

// Save creates a product when id is nil and otherwise replaces every field
// of product id with the form.
func (d *Dashboard) Save(ctx context.Context, id *int, form ProductForm) (catalog.Product, error) {
	if err := form.Validate(); err != nil {
		return catalog.Product{}, err
	}
	np := form.NewProduct()
	if id == nil {
		return d.Catalog.Add(ctx, np)
	}
	p, found, err := d.Catalog.Update(ctx, *id, catalog.FullPatch(np))
	if !found {
		return catalog.Product{}, ErrNotFound
	}
	return p, err
}

func (d *Dashboard) SetStatus(ctx context.Context, id int, status catalog.Status) (catalog.Product, error) {
	if !status.Valid() {
		return catalog.Product{}, &FormError{Fields: map[string]string{"status": "estado desconocido"}}
	}
	p, found, err := d.Catalog.Update(ctx, id, catalog.StatusPatch(status))
	if !found {
		return catalog.Product{}, ErrNotFound
	}
	return p, err
}

// Delete removes product id once confirmed is set. Without confirmation
// nothing changes.
func (d *Dashboard) Delete(ctx context.Context, id int, confirmed bool) error {
	if _, ok := d.Catalog.ByID(id); !ok {
		return ErrNotFound
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	found, err := d.Catalog.Remove(ctx, id)
	if !found {
		return ErrNotFound
	}
	return err
}

func (d *Dashboard) UploadImage(ctx context.Context, name string, r io.Reader) (string, error) {
	if d.Uploader == nil {
		return "", ErrUploadsDisabled
	}
	url, err := d.Uploader.Upload(ctx, name, r)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}
