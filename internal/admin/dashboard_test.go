package admin

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/storage"
)

type fakeUploader struct {
	name string
	body string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.name, f.body = name, string(b)
	return "https://res.cloudinary.com/vivero/" + name, nil
}

func newDashboard(t *testing.T) *Dashboard {
	t.Helper()
	c, err := catalog.NewStore(context.Background(), storage.NewMemoryStore(), nil)
	require.NoError(t, err)
	return &Dashboard{Catalog: c}
}

func ids(ps []catalog.Product) []int {
	out := []int{}
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestDashboard_List(t *testing.T) {
	t.Parallel()

	d := newDashboard(t)

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{name: "defaults", filter: Filter{}, want: []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "all all", filter: Filter{Category: "all", Status: "all"}, want: []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "plantas", filter: Filter{Category: "plantas", Status: "all"}, want: []int{1, 2, 5, 6}},
		{name: "plantas disponible", filter: Filter{Category: "plantas", Status: "disponible"}, want: []int{1, 2, 6}},
		{name: "agotado", filter: Filter{Status: "agotado"}, want: []int{8}},
		{name: "macetas vendido", filter: Filter{Category: "macetas", Status: "vendido"}, want: []int{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ids(d.List(tt.filter)), tt.name)
	}
}

func TestDashboard_Stats(t *testing.T) {
	t.Parallel()

	d := newDashboard(t)
	assert.Equal(t, Stats{Total: 8, Disponible: 6, Vendido: 1, Agotado: 1}, d.Stats())
}

func TestFormFromProduct_StripsPrice(t *testing.T) {
	t.Parallel()

	d := newDashboard(t)
	f, err := d.EditForm(1)
	require.NoError(t, err)
	assert.Equal(t, "450", f.Price)
	assert.Equal(t, "Best Seller", f.Tag)

	_, err = d.EditForm(99)
	assert.ErrorIs(t, err, ErrNotFound)

	nf := NewForm()
	assert.Equal(t, catalog.CategoryPlantas, nf.Category)
	assert.Equal(t, catalog.StatusDisponible, nf.Status)
}

func TestDashboard_SaveCreateAndEdit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := newDashboard(t)

	form := NewForm()
	form.Name = "Pothos Dorado"
	form.Price = "180"
	form.Image = "https://images.unsplash.com/pothos"
	created, err := d.Save(ctx, nil, form)
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, "$180 MXN", created.Price)

	edit := FormFromProduct(created)
	edit.Price = "200.50"
	edit.Status = catalog.StatusAgotado
	updated, err := d.Save(ctx, &created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "$200.50 MXN", updated.Price)
	assert.Equal(t, catalog.StatusAgotado, updated.Status)

	missing := 404
	_, err = d.Save(ctx, &missing, edit)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboard_SaveValidates(t *testing.T) {
	t.Parallel()

	d := newDashboard(t)
	form := NewForm()
	form.Category = "arboles"

	_, err := d.Save(context.Background(), nil, form)
	require.ErrorIs(t, err, ErrValidation)

	var ferr *FormError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Fields, "name")
	assert.Contains(t, ferr.Fields, "price")
	assert.Contains(t, ferr.Fields, "image")
	assert.Contains(t, ferr.Fields, "category")
	assert.Len(t, d.Catalog.All(), 8)
}

func TestProductForm_Validate(t *testing.T) {
	t.Parallel()

	f := NewForm()
	f.Name = "   "
	f.Price = "$ MXN"
	f.Image = "https://images.unsplash.com/aloe"
	f.Status = "regalado"

	var ferr *FormError
	require.ErrorAs(t, f.Validate(), &ferr)
	assert.Equal(t, map[string]string{
		"name":   "Este campo es obligatorio",
		"price":  "Este campo es obligatorio",
		"status": "estado desconocido",
	}, ferr.Fields)

	f.Name = "Aloe Vera"
	f.Price = "$120 MXN"
	f.Status = catalog.StatusAgotado
	assert.NoError(t, f.Validate())
}

func TestDashboard_SetStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := newDashboard(t)

	p, err := d.SetStatus(ctx, 2, catalog.StatusVendido)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusVendido, p.Status)
	assert.Equal(t, "$800 MXN", p.Price)

	_, err = d.SetStatus(ctx, 2, "regalado")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = d.SetStatus(ctx, 77, catalog.StatusVendido)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboard_DeleteNeedsConfirmation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := newDashboard(t)

	require.ErrorIs(t, d.Delete(ctx, 3, false), ErrConfirmationRequired)
	_, ok := d.Catalog.ByID(3)
	assert.True(t, ok)

	require.NoError(t, d.Delete(ctx, 3, true))
	_, ok = d.Catalog.ByID(3)
	assert.False(t, ok)

	assert.ErrorIs(t, d.Delete(ctx, 3, true), ErrNotFound)
}

func TestDashboard_UploadImage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := newDashboard(t)

	_, err := d.UploadImage(ctx, "monstera.jpg", strings.NewReader("img"))
	assert.ErrorIs(t, err, ErrUploadsDisabled)

	up := &fakeUploader{}
	d.Uploader = up
	url, err := d.UploadImage(ctx, "monstera.jpg", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/vivero/monstera.jpg", url)
	assert.Equal(t, "img", up.body)

	d.Uploader = &fakeUploader{err: errors.New("quota")}
	_, err = d.UploadImage(ctx, "x.jpg", strings.NewReader(""))
	assert.Error(t, err)
}
