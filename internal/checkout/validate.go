package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidEmail  = "Por favor ingresa un email válido"
	MsgInvalidZip    = "El código postal debe tener 5 dígitos"
	MsgRequiredField = "Este campo es obligatorio"

	zipLength = 5
)

var (
	ErrValidation = errors.New("validation")

	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe   = regexp.MustCompile(`^\d{5}$`)

	validate = newValidator()
)

type Form struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"shopemail"`
	Address string `json:"address" validate:"notblank"`
	City    string `json:"city" validate:"notblank"`
	Zip     string `json:"zip" validate:"zip5"`
}

// fieldRules mirrors the Form tags for single-field checks.
var fieldRules = map[string]string{
	"name":    "notblank",
	"email":   "shopemail",
	"address": "notblank",
	"city":    "notblank",
	"zip":     "zip5",
}

var messages = map[string]string{
	"notblank":  MsgRequiredField,
	"shopemail": MsgInvalidEmail,
	"zip5":      MsgInvalidZip,
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("shopemail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("zip5", func(fl validator.FieldLevel) bool {
		return ValidZip(fl.Field().String())
	})
	return v
}

// FieldErrors maps a form field to the message shown under it.
type FieldErrors map[string]string

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "checkout: invalid " + strings.Join(keys, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func ValidEmail(s string) bool { return emailRe.MatchString(s) }

func ValidZip(s string) bool { return zipRe.MatchString(s) }

// SanitizeZip drops every non-digit and keeps at most five digits, the way
// the zip input filters keystrokes.
func SanitizeZip(s string) string {
	var b strings.Builder
	for i := 0; i < len(s) && b.Len() < zipLength; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Validate checks the form the way submit and blur do. An empty result
// means the form can be submitted.
func Validate(f Form) FieldErrors {
	errs := FieldErrors{}
	var verrs validator.ValidationErrors
	if errors.As(validate.Struct(f), &verrs) {
		for _, fe := range verrs {
			errs[fe.Field()] = messages[fe.Tag()]
		}
	}
	return errs
}

// ValidateField re-checks a single field, for blur handling. Unknown fields
// are always valid.
func ValidateField(field, value string) (string, bool) {
	rule, ok := fieldRules[field]
	if !ok {
		return "", true
	}
	if err := validate.Var(value, rule); err != nil {
		return messages[rule], false
	}
	return "", true
}
