package http_utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// ValidationErrors flattens validator errors into human-readable strings
// for a ValidationErrorResponse.
func ValidationErrors(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	return lo.Map(verrs, func(item validator.FieldError, _ int) string {
		return item.Error()
	})
}
