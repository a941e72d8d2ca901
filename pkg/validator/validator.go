package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que no pasó la validación.
type FieldError struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct valida data con sus tags `validate` y devuelve un error por campo.
func ValidateStruct(data any) []*FieldError {
	var errs []*FieldError
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*FieldError{{FailedField: "-", Tag: err.Error()}}
	}
	for _, e := range verrs {
		errs = append(errs, &FieldError{
			FailedField: e.StructNamespace(),
			Tag:         e.Tag(),
			Value:       e.Param(),
		})
	}
	return errs
}

// Summary une los errores en un mensaje legible: "Campo 'X' falló en 'required'".
func Summary(errs []*FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("campo '%s' falló en '%s'", e.FailedField, e.Tag))
	}
	return strings.Join(parts, "; ")
}
