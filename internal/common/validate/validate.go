package validate

import (
	"github.com/go-playground/validator/v10"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/checkout"
)

func Phone10(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return checkout.ValidPhone(value)
}

// New builds a validator with the storefront's custom rules registered.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("phone10", Phone10)
	return validate
}
