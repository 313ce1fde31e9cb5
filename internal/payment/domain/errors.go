package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("payment_not_found")
	ErrInvalidAmount    = errors.New("invalid_payment_amount")
	ErrInvalidMethod    = errors.New("invalid_payment_method")
	ErrEmployeeRequired = errors.New("payment_employee_required")
)

// OverPaymentError rejects a registration that would push the ledger
// past the order total, carrying the amount still payable.
type OverPaymentError struct {
	Remaining decimal.Decimal
}

func (e *OverPaymentError) Error() string {
	return fmt.Sprintf("over_payment: amount exceeds order balance, remaining %s", e.Remaining.StringFixed(2))
}
