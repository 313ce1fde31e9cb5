package tax

import "github.com/shopspring/decimal"

// Regime classifies how tax applies to an order.
type Regime string

const (
	RegimeTaxed      Regime = "taxed"
	RegimeExempt     Regime = "exempt"
	RegimeNotSubject Regime = "not_subject"
)

// DefaultRatePercent is the standard rate applied to taxed orders
// when no explicit override is supplied.
var DefaultRatePercent = decimal.NewFromInt(18)

var hundred = decimal.NewFromInt(100)

// Valid reports whether r is a known regime.
func (r Regime) Valid() bool {
	switch r {
	case RegimeTaxed, RegimeExempt, RegimeNotSubject:
		return true
	}
	return false
}

// Line is one order line as seen by the calculator.
type Line struct {
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Subtotal returns quantity x unit price x (1 - discount/100), rounded
// to 2 decimal places.
func (l Line) Subtotal() decimal.Decimal {
	factor := hundred.Sub(l.DiscountPercent).Div(hundred)
	return l.Quantity.Mul(l.UnitPrice).Mul(factor).Round(2)
}

// Breakdown is the computed monetary summary of an order.
type Breakdown struct {
	Subtotal    decimal.Decimal
	RatePercent decimal.Decimal
	TaxAmount   decimal.Decimal
	Total       decimal.Decimal
}
