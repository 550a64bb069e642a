package paybyrd

import (
	"github.com/shopspring/decimal"
)

// Amount is a major-unit amount rendered as a bare JSON number with two
// decimals, e.g. 49.90.
type Amount decimal.Decimal

func NewAmount(d decimal.Decimal) Amount {
	return Amount(d)
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}

// MinorUnits converts a major-unit amount to minor units (cents),
// truncating anything below one cent.
func MinorUnits(d decimal.Decimal) int64 {
	return d.Shift(2).IntPart()
}
