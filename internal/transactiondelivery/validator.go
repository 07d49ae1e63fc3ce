package transactiondelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidMoney validates that the amount is a positive number with at most two
// decimal digits.
var ValidMoney validator.Func = func(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return false
	}

	return amountDecimal.IsPositive() && amountDecimal.Exponent() >= -2
}
