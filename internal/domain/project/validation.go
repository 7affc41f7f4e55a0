package project

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Hours and costs are stored as DECIMAL(7,2).
const (
	amountMaxExponent = 5
	amountMinExponent = -32
)

var maxAmount = decimal.New(100000, 0)

// InAmountRange reports whether d fits the fixed-point columns used for hours
// and costs. The exponent is checked first so that no rescaling of an extreme
// value happens.
func InAmountRange(d decimal.Decimal) bool {
	if exp := d.Exponent(); exp > amountMaxExponent || exp < amountMinExponent {
		return false
	}
	return d.Abs().LessThan(maxAmount)
}

func validateAmount(field string, d *decimal.Decimal) error {
	if d == nil || InAmountRange(*d) {
		return nil
	}
	return fmt.Errorf("%w: %s must be less than %s in magnitude", ErrInvalidInput, field, maxAmount)
}

func validateHours(estimated, actual *decimal.Decimal) error {
	if err := validateAmount("estimated hours", estimated); err != nil {
		return err
	}
	return validateAmount("actual hours", actual)
}
