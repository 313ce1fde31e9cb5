package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Generator creates the stock receipt for a received purchase order.
// It runs inside the caller's transaction: the receipt, its lines and
// the stock increments commit or roll back with the status change.
type Generator interface {
	GenerateFromOrder(ctx context.Context, tx *gorm.DB, in GenerateInput) (snowflake.ID, error)
}

type GenerateInput struct {
	OrderID     snowflake.ID
	OrderNumber string
	SupplierID  snowflake.ID
	Currency    string
	Subtotal    decimal.Decimal
	EmployeeID  snowflake.ID
	ReceivedAt  time.Time
	Lines       []GenerateLine
}

type GenerateLine struct {
	ProductID snowflake.ID
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	LineTotal decimal.Decimal
}
