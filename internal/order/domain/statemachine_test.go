package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusWaiting, StatusInProcess},
		{StatusWaiting, StatusReceived},
		{StatusWaiting, StatusCancelled},
		{StatusInProcess, StatusReceived},
		{StatusInProcess, StatusCancelled},
		{StatusReceived, StatusReceived},
	}
	for _, tc := range legal {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	illegal := []struct{ from, to Status }{
		{StatusInProcess, StatusWaiting},
		{StatusReceived, StatusWaiting},
		{StatusReceived, StatusInProcess},
		{StatusReceived, StatusCancelled},
		{StatusCancelled, StatusWaiting},
		{StatusCancelled, StatusReceived},
		{StatusWaiting, StatusWaiting},
	}
	for _, tc := range illegal {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, Terminal(StatusReceived))
	assert.True(t, Terminal(StatusCancelled))
	assert.False(t, Terminal(StatusWaiting))
	assert.False(t, Terminal(StatusInProcess))
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.NewFromFloat(106.20)

	assert.Equal(t, PaymentStatusPending, DerivePaymentStatus(decimal.Zero, total))
	assert.Equal(t, PaymentStatusPartial, DerivePaymentStatus(decimal.NewFromFloat(0.05), total))
	assert.Equal(t, PaymentStatusPartial, DerivePaymentStatus(decimal.NewFromFloat(50), total))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(decimal.NewFromFloat(106.15), total))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(total, total))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(decimal.NewFromFloat(106.30), total))
}
