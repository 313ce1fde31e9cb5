package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	"github.com/shopspring/decimal"
)

// Method is how a payment was made.
type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodCheck    Method = "check"
	MethodCard     Method = "card"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCheck, MethodCard:
		return true
	}
	return false
}

// Payment is one installment against a purchase order. Voiding hard
// deletes the row; the order's paid_amount is the only surviving trace.
type Payment struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	PaymentNumber string       `json:"payment_number" gorm:"column:payment_number;type:text;not null;uniqueIndex"`
	OrderID       snowflake.ID `json:"order_id" gorm:"column:order_id;not null;index"`

	PaidAt time.Time       `json:"paid_at" gorm:"column:paid_at;not null"`
	Amount decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Method Method          `json:"method" gorm:"type:text;not null"`

	OperationRef  *string       `json:"operation_ref,omitempty" gorm:"column:operation_ref;type:text"`
	BankAccountID *snowflake.ID `json:"bank_account_id,omitempty" gorm:"column:bank_account_id"`
	Notes         *string       `json:"notes,omitempty" gorm:"type:text"`

	RegisteredByID snowflake.ID `json:"registered_by_id" gorm:"column:registered_by_id;not null"`
	CreatedAt      time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Payment) TableName() string { return "order_payments" }

// Balance is the recomputed ledger position returned after a mutation.
type Balance struct {
	OrderID       snowflake.ID              `json:"order_id"`
	PaidAmount    decimal.Decimal           `json:"paid_amount"`
	Pending       decimal.Decimal           `json:"pending"`
	PaymentStatus orderdomain.PaymentStatus `json:"payment_status"`
}

// Summary aggregates the ledger of one order.
type Summary struct {
	OrderID       snowflake.ID              `json:"order_id"`
	OrderNumber   string                    `json:"order_number"`
	Total         decimal.Decimal           `json:"total"`
	PaidAmount    decimal.Decimal           `json:"paid_amount"`
	Pending       decimal.Decimal           `json:"pending"`
	PercentPaid   decimal.Decimal           `json:"percent_paid"`
	PaymentStatus orderdomain.PaymentStatus `json:"payment_status"`
	PaymentCount  int64                     `json:"payment_count"`
}
