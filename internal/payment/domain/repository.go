package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository is stateless; mutating methods run on the transaction the
// caller is already inside, so payment rows and the parent order's
// balance always move together.
type Repository interface {
	Insert(ctx context.Context, tx *gorm.DB, payment *Payment) error
	Delete(ctx context.Context, tx *gorm.DB, id snowflake.ID) error

	// FindByOrder returns the payment only when it belongs to orderID.
	FindByOrder(ctx context.Context, db *gorm.DB, orderID, paymentID snowflake.ID) (*Payment, error)
	ListByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]Payment, error)
	SumByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (decimal.Decimal, int64, error)

	// UpdateOrderBalance writes the recomputed paid amount and derived
	// status back onto the purchase order row.
	UpdateOrderBalance(ctx context.Context, tx *gorm.DB, orderID snowflake.ID, paid decimal.Decimal, status orderdomain.PaymentStatus) error
}
