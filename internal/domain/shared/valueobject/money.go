package valueobject

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CurrencyScale is the number of decimals kept on monetary amounts.
const CurrencyScale int32 = 2

var hundred = decimal.NewFromInt(100)

// RoundAmount rounds a monetary amount half away from zero to the currency scale.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// PercentOf returns amount × rate / 100, rounded to the currency scale.
func PercentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return RoundAmount(amount.Mul(rate).Div(hundred))
}

// ErrInvalidTaxRate is returned for rates outside [0, 100].
var ErrInvalidTaxRate = errors.New("tax rate must be between 0 and 100")

// ValidateTaxRate checks that v is a percentage between 0 and 100 inclusive.
func ValidateTaxRate(v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return ErrInvalidTaxRate
	}
	return nil
}

// FormatAmount renders an amount with exactly two decimals, "12.50".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(CurrencyScale)
}
