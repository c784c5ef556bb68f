package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/partdb-api/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los errores se reportan con el nombre JSON del campo.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate ejecuta las reglas `validate:` de v y devuelve una ValidationException
// con un mensaje por campo (clave = nombre JSON).
func Validate(v any) error {
	fields := map[string]string{}
	collect(fields, "", v)
	if len(fields) > 0 {
		return domain.NewValidation(fields)
	}
	return nil
}

func collect(fields map[string]string, prefix string, v any) {
	err := instance().Struct(v)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields[prefix+"_"] = "This value is invalid"
		return
	}
	for _, fe := range verrs {
		fields[prefix+fieldPath(fe)] = messageFor(fe)
	}
}

// fieldPath quita el struct raíz y los structs embebidos del namespace
// ("CompanyRequest.ContactRequest.email" → "email"). Los nombres JSON van en minúscula.
func fieldPath(fe validator.FieldError) string {
	segs := strings.Split(fe.Namespace(), ".")
	out := make([]string, 0, len(segs))
	for i, s := range segs {
		if i == 0 || s == "" || (s[0] >= 'A' && s[0] <= 'Z') {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return fe.Field()
	}
	return strings.Join(out, ".")
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "This value is too long"
	case "min":
		if fe.Kind() == reflect.String {
			return "This field is required"
		}
		return "This value is too small"
	case "email":
		return "This value is not a valid email address"
	case "url":
		return "This value is not a valid URL"
	default:
		return "This value is invalid"
	}
}

// Validate valida la pieza y cada registro hijo insertado o actualizado.
func (r *SavePartRequest) Validate() error {
	fields := map[string]string{}
	collect(fields, "", r)
	collectRecords(fields, "manufacturerChanges", r.ManufacturerChanges.Inserts, r.ManufacturerChanges.Updates)
	collectRecords(fields, "distributorChanges", r.DistributorChanges.Inserts, r.DistributorChanges.Updates)
	collectRecords(fields, "parameterChanges", r.ParameterChanges.Inserts, r.ParameterChanges.Updates)
	if len(fields) > 0 {
		return domain.NewValidation(fields)
	}
	return nil
}

func collectRecords[T any](fields map[string]string, grid string, inserts, updates []T) {
	for i := range inserts {
		collect(fields, fmt.Sprintf("%s.inserts[%d].", grid, i), &inserts[i])
	}
	for i := range updates {
		collect(fields, fmt.Sprintf("%s.updates[%d].", grid, i), &updates[i])
	}
}
