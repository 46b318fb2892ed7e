package admin

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/vivero/internal/cart"
	"github.com/Skotchmaster/vivero/internal/catalog"
)

const msgRequired = "Este campo es obligatorio"

var ErrValidation = errors.New("validation")

// ProductForm is the edit form. Price holds the bare number ("450"); the
// currency decoration is added back on save.
type ProductForm struct {
	Name        string           `json:"name" validate:"notblank"`
	Price       string           `json:"price" validate:"price"`
	Image       string           `json:"image" validate:"notblank"`
	Tag         string           `json:"tag"`
	Category    catalog.Category `json:"category" validate:"oneof=plantas macetas suplementos"`
	Status      catalog.Status   `json:"status" validate:"oneof=disponible vendido agotado"`
	Description string           `json:"description"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// price accepts anything that still has a number once decoration is stripped
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return cart.StripPrice(fl.Field().String()) != ""
	})
	return v
}

func NewForm() ProductForm {
	return ProductForm{Category: catalog.CategoryPlantas, Status: catalog.StatusDisponible}
}

func FormFromProduct(p catalog.Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Price:       cart.StripPrice(p.Price),
		Image:       p.Image,
		Tag:         p.Tag,
		Category:    p.Category,
		Status:      p.Status,
		Description: p.Description,
	}
}

type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "admin: invalid " + strings.Join(keys, ", ")
}

func (e *FormError) Unwrap() error { return ErrValidation }

func (f ProductForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		errs[fe.Field()] = fieldMessage(fe.Field())
	}
	return &FormError{Fields: errs}
}

func fieldMessage(field string) string {
	switch field {
	case "category":
		return "categoría desconocida"
	case "status":
		return "estado desconocido"
	}
	return msgRequired
}

// NewProduct formats the form for the catalog: price becomes "$<bare> MXN".
func (f ProductForm) NewProduct() catalog.NewProduct {
	return catalog.NewProduct{
		Name:        f.Name,
		Price:       cart.FormatPrice(cart.StripPrice(f.Price)),
		Image:       f.Image,
		Tag:         f.Tag,
		Category:    f.Category,
		Status:      f.Status,
		Description: f.Description,
	}
}
