// Package validator checks decoded request payloads and reports failures
// per field, using the payload's JSON field names.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"pantry/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// expdate accepts strings in model.ExpDateLayout.
	_ = v.RegisterValidation("expdate", func(fl validator.FieldLevel) bool {
		_, err := model.ParseExpDate(fl.Field().String())
		return err == nil
	})

	return v
}

// ValidateStruct validates data and returns one FieldError per failed rule.
// A nil result means data is valid.
func ValidateStruct(data interface{}) []model.FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []model.FieldError{{Field: "", Tag: "invalid"}}
	}

	fields := make([]model.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, model.FieldError{
			Field: fieldPath(fe.Namespace()),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return fields
}

// fieldPath strips the struct name from a validator namespace, so
// "ProductRequest.prodType" becomes "prodType".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
