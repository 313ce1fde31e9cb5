package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/indpack-sist/spi-backend/internal/tax"
	"github.com/shopspring/decimal"
)

// Status is the purchase order lifecycle state.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusInProcess Status = "in_process"
	StatusReceived  Status = "received"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusInProcess, StatusReceived, StatusCancelled:
		return true
	}
	return false
}

// Priority orders the purchasing queue.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// PurchaseType distinguishes cash orders from credit-term orders.
type PurchaseType string

const (
	PurchaseTypeCash   PurchaseType = "cash"
	PurchaseTypeCredit PurchaseType = "credit"
)

func (t PurchaseType) Valid() bool {
	return t == PurchaseTypeCash || t == PurchaseTypeCredit
}

// PaymentStatus is derived from the payment ledger, never set directly.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// PaymentEpsilon is the rounding tolerance for ledger comparisons:
// an order is fully paid once paid_amount >= total - PaymentEpsilon.
var PaymentEpsilon = decimal.NewFromFloat(0.10)

// DerivePaymentStatus maps a paid amount against the order total.
// Pending means nothing has been paid; any positive balance short of
// the total is partial.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	if paid.Sign() <= 0 {
		return PaymentStatusPending
	}
	if paid.GreaterThanOrEqual(total.Sub(PaymentEpsilon)) {
		return PaymentStatusPaid
	}
	return PaymentStatusPartial
}

type PurchaseOrder struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	OrderNumber string       `json:"order_number" gorm:"column:order_number;type:text;not null;uniqueIndex"`

	SupplierID    snowflake.ID  `json:"supplier_id" gorm:"column:supplier_id;not null;index"`
	BankAccountID *snowflake.ID `json:"bank_account_id,omitempty" gorm:"column:bank_account_id"`

	IssueDate             time.Time  `json:"issue_date" gorm:"column:issue_date;not null"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty" gorm:"column:estimated_delivery_date"`
	ActualDeliveryDate    *time.Time `json:"actual_delivery_date,omitempty" gorm:"column:actual_delivery_date"`
	DueDate               time.Time  `json:"due_date" gorm:"column:due_date;not null"`

	PurchaseType PurchaseType `json:"purchase_type" gorm:"column:purchase_type;type:text;not null"`
	CreditDays   int          `json:"credit_days" gorm:"column:credit_days;not null;default:0"`
	Priority     Priority     `json:"priority" gorm:"type:text;not null"`

	Currency     string          `json:"currency" gorm:"type:char(3);not null"`
	ExchangeRate decimal.Decimal `json:"exchange_rate" gorm:"column:exchange_rate;type:numeric(14,6);not null;default:1"`

	TaxRegime      tax.Regime      `json:"tax_regime" gorm:"column:tax_regime;type:text;not null"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent" gorm:"column:tax_rate_percent;type:numeric(6,2);not null"`

	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:numeric(14,2);not null"`
	TaxAmount decimal.Decimal `json:"tax_amount" gorm:"column:tax_amount;type:numeric(14,2);not null"`
	Total     decimal.Decimal `json:"total" gorm:"type:numeric(14,2);not null"`

	PaidAmount    decimal.Decimal `json:"paid_amount" gorm:"column:paid_amount;type:numeric(14,2);not null;default:0"`
	PaymentStatus PaymentStatus   `json:"payment_status" gorm:"column:payment_status;type:text;not null"`

	Status Status `json:"status" gorm:"type:text;not null;index"`

	ResponsibleID snowflake.ID `json:"responsible_id" gorm:"column:responsible_id;not null"`
	CreatedByID   snowflake.ID `json:"created_by_id" gorm:"column:created_by_id;not null"`

	// InventoryReceiptID is set exactly once, on the transition into
	// received; a non-nil value means the receipt side effect already
	// happened.
	InventoryReceiptID *snowflake.ID `json:"inventory_receipt_id,omitempty" gorm:"column:inventory_receipt_id"`

	Notes *string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

type PurchaseOrderLine struct {
	ID      snowflake.ID `json:"id" gorm:"primaryKey"`
	OrderID snowflake.ID `json:"order_id" gorm:"column:order_id;not null;index"`

	ProductID       snowflake.ID    `json:"product_id" gorm:"column:product_id;not null"`
	Quantity        decimal.Decimal `json:"quantity" gorm:"type:numeric(14,2);not null"`
	UnitPrice       decimal.Decimal `json:"unit_price" gorm:"column:unit_price;type:numeric(14,2);not null"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"column:discount_percent;type:numeric(6,2);not null;default:0"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:numeric(14,2);not null"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PurchaseOrderLine) TableName() string { return "purchase_order_lines" }

// OrderWithLines is the fully hydrated read model.
type OrderWithLines struct {
	PurchaseOrder
	Lines []PurchaseOrderLine `json:"lines"`
}
