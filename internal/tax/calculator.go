package tax

import "github.com/shopspring/decimal"

// Calculator computes subtotal, tax and total for a set of order lines
// under a tax regime. It is pure: no side effects, no persistence.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute validates the lines and returns the monetary breakdown.
// Exempt and not-subject regimes force a zero rate regardless of any
// supplied override; taxed orders fall back to DefaultRatePercent.
func (c *Calculator) Compute(lines []Line, regime Regime, overrideRatePercent *decimal.Decimal) (Breakdown, error) {
	if !regime.Valid() {
		return Breakdown{}, ErrInvalidRegime
	}
	if len(lines) == 0 {
		return Breakdown{}, ErrNoLines
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if err := validateLine(line); err != nil {
			return Breakdown{}, err
		}
		subtotal = subtotal.Add(line.Subtotal())
	}

	rate, err := resolveRate(regime, overrideRatePercent)
	if err != nil {
		return Breakdown{}, err
	}

	taxAmount := subtotal.Mul(rate).Div(hundred).Round(2)

	return Breakdown{
		Subtotal:    subtotal,
		RatePercent: rate,
		TaxAmount:   taxAmount,
		Total:       subtotal.Add(taxAmount),
	}, nil
}

func validateLine(line Line) error {
	if line.Quantity.Sign() <= 0 {
		return ErrNonPositiveQty
	}
	if line.UnitPrice.Sign() < 0 {
		return ErrNegativeUnitPrice
	}
	if line.DiscountPercent.Sign() < 0 || line.DiscountPercent.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	return nil
}

func resolveRate(regime Regime, override *decimal.Decimal) (decimal.Decimal, error) {
	if regime == RegimeExempt || regime == RegimeNotSubject {
		return decimal.Zero, nil
	}
	if override == nil {
		return DefaultRatePercent, nil
	}
	if override.Sign() < 0 || override.GreaterThan(hundred) {
		return decimal.Decimal{}, ErrInvalidRate
	}
	return *override, nil
}
