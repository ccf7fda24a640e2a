package validator

import (
	"fmt"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("payment_method", validatePaymentMethod)

	return validator
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	method, ok := fl.Field().Interface().(api.PaymentMethod)
	if !ok {
		return false
	}

	return method == api.PaymentMethodOnline || method == api.PaymentMethodCounter
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s items", err.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s items", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "payment_method":
		return "must be either 'online' or 'counter'"
	case "dive":
		return "contains an invalid element"
	default:
		return "is invalid"
	}
}
