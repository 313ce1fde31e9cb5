package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ReceiptTypeFromPurchase tags receipts generated automatically when a
// purchase order is received, as opposed to manual stock adjustments.
const ReceiptTypeFromPurchase = "from-purchase"

type InventoryReceipt struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	ReceiptNumber string          `json:"receipt_number" gorm:"column:receipt_number;type:text;not null;uniqueIndex"`
	ReceiptType   string          `json:"receipt_type" gorm:"column:receipt_type;type:text;not null"`
	SupplierID    snowflake.ID    `json:"supplier_id" gorm:"column:supplier_id;not null;index"`
	OrderID       *snowflake.ID   `json:"order_id,omitempty" gorm:"column:order_id;uniqueIndex"`
	Currency      string          `json:"currency" gorm:"type:char(3);not null"`
	TotalCost     decimal.Decimal `json:"total_cost" gorm:"column:total_cost;type:numeric(14,2);not null"`
	Note          string          `json:"note" gorm:"type:text"`
	EmployeeID    snowflake.ID    `json:"employee_id" gorm:"column:employee_id;not null"`
	ReceivedAt    time.Time       `json:"received_at" gorm:"column:received_at;not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (InventoryReceipt) TableName() string { return "inventory_receipts" }

type InventoryReceiptLine struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	ReceiptID snowflake.ID    `json:"receipt_id" gorm:"column:receipt_id;not null;index"`
	ProductID snowflake.ID    `json:"product_id" gorm:"column:product_id;not null"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"type:numeric(14,2);not null"`
	UnitCost  decimal.Decimal `json:"unit_cost" gorm:"column:unit_cost;type:numeric(14,2);not null"`
	LineTotal decimal.Decimal `json:"line_total" gorm:"column:line_total;type:numeric(14,2);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (InventoryReceiptLine) TableName() string { return "inventory_receipt_lines" }
