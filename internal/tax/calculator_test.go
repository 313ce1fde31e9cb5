package tax_test

import (
	"testing"

	"github.com/indpack-sist/spi-backend/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func line(qty, price, discount string) tax.Line {
	return tax.Line{
		Quantity:        decimal.RequireFromString(qty),
		UnitPrice:       decimal.RequireFromString(price),
		DiscountPercent: decimal.RequireFromString(discount),
	}
}

func TestComputeTaxedDefaultRate(t *testing.T) {
	calc := tax.NewCalculator()

	breakdown, err := calc.Compute([]tax.Line{
		line("10", "5.00", "0"),
		line("5", "8.00", "0"),
	}, tax.RegimeTaxed, nil)
	require.NoError(t, err)

	require.True(t, breakdown.Subtotal.Equal(decimal.RequireFromString("90.00")), "subtotal %s", breakdown.Subtotal)
	require.True(t, breakdown.TaxAmount.Equal(decimal.RequireFromString("16.20")), "tax %s", breakdown.TaxAmount)
	require.True(t, breakdown.Total.Equal(decimal.RequireFromString("106.20")), "total %s", breakdown.Total)
}

func TestComputeDiscountedLine(t *testing.T) {
	calc := tax.NewCalculator()

	breakdown, err := calc.Compute([]tax.Line{
		line("4", "25.00", "10"),
	}, tax.RegimeTaxed, nil)
	require.NoError(t, err)

	// 4 x 25 x 0.9 = 90, tax 16.20
	require.True(t, breakdown.Subtotal.Equal(decimal.RequireFromString("90.00")))
	require.True(t, breakdown.Total.Equal(decimal.RequireFromString("106.20")))
}

func TestComputeExemptForcesZeroRate(t *testing.T) {
	calc := tax.NewCalculator()
	override := decimal.RequireFromString("18")

	for _, regime := range []tax.Regime{tax.RegimeExempt, tax.RegimeNotSubject} {
		breakdown, err := calc.Compute([]tax.Line{line("1", "100.00", "0")}, regime, &override)
		require.NoError(t, err)
		require.True(t, breakdown.TaxAmount.IsZero(), "regime %s", regime)
		require.True(t, breakdown.Total.Equal(breakdown.Subtotal))
	}
}

func TestComputeExplicitOverride(t *testing.T) {
	calc := tax.NewCalculator()
	override := decimal.RequireFromString("10")

	breakdown, err := calc.Compute([]tax.Line{line("1", "200.00", "0")}, tax.RegimeTaxed, &override)
	require.NoError(t, err)
	require.True(t, breakdown.TaxAmount.Equal(decimal.RequireFromString("20.00")))
	require.True(t, breakdown.Total.Equal(decimal.RequireFromString("220.00")))
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	calc := tax.NewCalculator()

	cases := []struct {
		name    string
		lines   []tax.Line
		regime  tax.Regime
		wantErr error
	}{
		{"zero quantity", []tax.Line{line("0", "5.00", "0")}, tax.RegimeTaxed, tax.ErrNonPositiveQty},
		{"negative quantity", []tax.Line{line("-1", "5.00", "0")}, tax.RegimeTaxed, tax.ErrNonPositiveQty},
		{"negative price", []tax.Line{line("1", "-5.00", "0")}, tax.RegimeTaxed, tax.ErrNegativeUnitPrice},
		{"discount above 100", []tax.Line{line("1", "5.00", "101")}, tax.RegimeTaxed, tax.ErrInvalidDiscount},
		{"unknown regime", []tax.Line{line("1", "5.00", "0")}, tax.Regime("vat"), tax.ErrInvalidRegime},
		{"no lines", nil, tax.RegimeTaxed, tax.ErrNoLines},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Compute(tc.lines, tc.regime, nil)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestComputeRejectsNegativeOverride(t *testing.T) {
	calc := tax.NewCalculator()
	override := decimal.RequireFromString("-1")

	_, err := calc.Compute([]tax.Line{line("1", "5.00", "0")}, tax.RegimeTaxed, &override)
	require.ErrorIs(t, err, tax.ErrInvalidRate)
}
