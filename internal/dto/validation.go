package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations wires the decimal validations used by the binding
// tags above into gin's validator engine. Must be called once at startup.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("decimalgt0", decimalGreaterThanZero); err != nil {
		return err
	}
	return v.RegisterValidation("decimalgte0", decimalNotNegative)
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}

func decimalNotNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}
